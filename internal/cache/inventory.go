package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix          = "post:%d:%d"
	SubreditPostsKeyPrefix = "subredit:%d:posts"
	RankingKey             = "subredits:ranking"
)

const (
	PostTTL          = 5 * time.Minute
	SubreditPostsTTL = 1 * time.Minute
	RankingTTL       = 30 * time.Second
)

// PostKey is scoped by subredit so a cached hit can never leak a post to a
// request that names the wrong community.
func PostKey(subreditID, postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, subreditID, postID)
}

func SubreditPostsKey(subreditID uint) string {
	return fmt.Sprintf(SubreditPostsKeyPrefix, subreditID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops every cached view a post write can stale: the post
// itself, its subredit's ordered post list, and the ranking.
func InvalidatePost(ctx context.Context, subreditID, postID uint) {
	Invalidate(ctx, PostKey(subreditID, postID))
	Invalidate(ctx, SubreditPostsKey(subreditID))
	Invalidate(ctx, RankingKey)
}

func InvalidateRanking(ctx context.Context) {
	Invalidate(ctx, RankingKey)
}
