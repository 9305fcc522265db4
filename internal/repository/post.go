package repository

import (
	"context"

	"subredit/internal/cache"
	"subredit/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. Every lookup
// and mutation that targets an existing post is keyed by (subreditID, postID)
// so a post can never be reached through the wrong community.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, subreditID, postID uint) (*models.Post, error)
	ListBySubredit(ctx context.Context, subreditID uint) ([]*models.Post, error)
	AppendComment(ctx context.Context, subreditID, postID uint, content string) error
	UpdateContent(ctx context.Context, subreditID, postID uint, content string) (bool, error)
	Like(ctx context.Context, subreditID, postID uint) (bool, error)
	Rank(ctx context.Context) ([]*models.SubreditRanking, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		if post.Comments == nil {
			post.Comments = []string{}
		}
		cache.Invalidate(ctx, cache.SubreditPostsKey(post.SubreditID))
		cache.InvalidateRanking(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, subreditID, postID uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(subreditID, postID), &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("id = ? AND subredit_id = ?", postID, subreditID).
			First(&post).Error; err != nil {
			return err
		}
		return r.loadComments(ctx, &post)
	})
	if err != nil {
		return nil, err
	}
	if post.Comments == nil {
		post.Comments = []string{}
	}
	return &post, nil
}

func (r *postRepository) ListBySubredit(ctx context.Context, subreditID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.SubreditPostsKey(subreditID), &posts, cache.SubreditPostsTTL, func() error {
		// id ASC keeps ties in insertion order.
		if err := r.db.WithContext(ctx).
			Where("subredit_id = ?", subreditID).
			Order("likes DESC, id ASC").
			Find(&posts).Error; err != nil {
			return err
		}
		return r.loadComments(ctx, posts...)
	})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// loadComments fills in the comment sequences for the given posts in one
// batched query, oldest first.
func (r *postRepository) loadComments(ctx context.Context, posts ...*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(posts))
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		p.Comments = []string{}
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return err
	}

	for _, c := range comments {
		if p := byID[c.PostID]; p != nil {
			p.Comments = append(p.Comments, c.Content)
		}
	}
	return nil
}

func (r *postRepository) AppendComment(ctx context.Context, subreditID, postID uint, content string) error {
	comment := models.Comment{PostID: postID, Content: content}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(subreditID, postID))
	cache.Invalidate(ctx, cache.SubreditPostsKey(subreditID))
	return nil
}

func (r *postRepository) UpdateContent(ctx context.Context, subreditID, postID uint, content string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND subredit_id = ?", postID, subreditID).
		Update("content", content)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	cache.Invalidate(ctx, cache.PostKey(subreditID, postID))
	cache.Invalidate(ctx, cache.SubreditPostsKey(subreditID))
	return true, nil
}

func (r *postRepository) Like(ctx context.Context, subreditID, postID uint) (bool, error) {
	// A single guarded UPDATE: the increment happens at the store, so two
	// concurrent likes can never lose an update, and a wrong-community id
	// simply matches zero rows.
	result := r.db.WithContext(ctx).Exec(
		`UPDATE posts SET likes = likes + 1 WHERE id = ? AND subredit_id = ?`,
		postID, subreditID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	cache.InvalidatePost(ctx, subreditID, postID)
	return true, nil
}

func (r *postRepository) Rank(ctx context.Context) ([]*models.SubreditRanking, error) {
	var rankings []*models.SubreditRanking
	// The inner join drops posts whose subredit record cannot be resolved
	// rather than failing the whole aggregation. Subredits without posts have
	// no group and therefore no row. The id tie-break keeps equal averages in
	// a deterministic order.
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.subredit_id AS id, s.name AS name, s.description AS description,
		       AVG(p.likes) AS average_likes
		FROM posts p
		INNER JOIN subredits s ON s.id = p.subredit_id
		GROUP BY p.subredit_id, s.name, s.description
		ORDER BY average_likes DESC, id ASC`).
		Scan(&rankings).Error
	if err != nil {
		return nil, err
	}
	if rankings == nil {
		rankings = []*models.SubreditRanking{}
	}
	return rankings, nil
}
