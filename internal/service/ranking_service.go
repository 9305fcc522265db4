package service

import (
	"context"

	"subredit/internal/cache"
	"subredit/internal/models"
	"subredit/internal/observability"
	"subredit/internal/repository"
)

// RankingService derives the subredit ranking from the current post set.
// It keeps no state of its own; every call is a full recompute over the
// store, fronted by a short-TTL cache that every post write invalidates.
type RankingService struct {
	postRepo repository.PostRepository
}

func NewRankingService(postRepo repository.PostRepository) *RankingService {
	return &RankingService{postRepo: postRepo}
}

// RankSubredits returns subredits ordered by the arithmetic mean of their
// posts' like counters, descending, ties broken by subredit id ascending.
// Subredits without posts do not appear.
func (s *RankingService) RankSubredits(ctx context.Context) ([]*models.SubreditRanking, error) {
	span, ctx := observability.NewSpan(ctx, "subredit.rank")
	defer span.End()

	var rankings []*models.SubreditRanking
	err := cache.Aside(ctx, cache.RankingKey, &rankings, cache.RankingTTL, func() error {
		var fetchErr error
		rankings, fetchErr = s.postRepo.Rank(ctx)
		return fetchErr
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if rankings == nil {
		rankings = []*models.SubreditRanking{}
	}
	return rankings, nil
}
