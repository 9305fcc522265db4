package service

import (
	"context"
	"errors"

	"subredit/internal/models"
	"subredit/internal/observability"
	"subredit/internal/repository"
	"subredit/internal/validation"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo     repository.PostRepository
	subreditRepo repository.SubreditRepository
}

type CreatePostInput struct {
	SubreditID uint
	Title      string
	Content    string
}

type AppendCommentInput struct {
	SubreditID uint
	PostID     uint
	Content    string
}

type UpdatePostContentInput struct {
	SubreditID uint
	PostID     uint
	Content    string
}

func NewPostService(postRepo repository.PostRepository, subreditRepo repository.SubreditRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		subreditRepo: subreditRepo,
	}
}

// CreatePost validates input, checks the owning subredit exists, then stores
// the post with a zero like counter and an empty comment sequence. The stored
// community reference is the resolved subredit's own identifier, not the raw
// caller-supplied value.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "post.create", observability.SubreditID(in.SubreditID))
	defer span.End()

	if violations := validation.NewPost(in.Title, in.Content); len(violations) > 0 {
		return nil, models.NewConstraintError(violations)
	}

	subredit, err := s.subreditRepo.GetByID(ctx, in.SubreditID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError()
		}
		return nil, err
	}

	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		SubreditID: subredit.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		span.SetError(err)
		return nil, err
	}
	return post, nil
}

// ListPosts returns a subredit's posts ordered by descending like counter.
// An unknown subredit yields an empty list, not an error.
func (s *PostService) ListPosts(ctx context.Context, subreditID uint) ([]*models.Post, error) {
	return s.postRepo.ListBySubredit(ctx, subreditID)
}

// AppendComment adds a comment to the end of a post's comment sequence and
// returns the post's full current state. A post that exists under a different
// subredit is reported exactly like a post that does not exist.
func (s *PostService) AppendComment(ctx context.Context, in AppendCommentInput) (*models.Post, error) {
	if violations := validation.NewComment(in.Content); len(violations) > 0 {
		return nil, models.NewConstraintError(violations)
	}

	post, err := s.getOwned(ctx, in.SubreditID, in.PostID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.AppendComment(ctx, in.SubreditID, post.ID, in.Content); err != nil {
		return nil, err
	}
	return s.getOwned(ctx, in.SubreditID, in.PostID)
}

// UpdatePostContent replaces a post's content entirely and returns the
// updated state.
func (s *PostService) UpdatePostContent(ctx context.Context, in UpdatePostContentInput) (*models.Post, error) {
	if violations := validation.PostUpdate(in.Content); len(violations) > 0 {
		return nil, models.NewConstraintError(violations)
	}

	matched, err := s.postRepo.UpdateContent(ctx, in.SubreditID, in.PostID, in.Content)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, models.NewNotFoundError()
	}
	return s.getOwned(ctx, in.SubreditID, in.PostID)
}

// LikePost increments a post's like counter by exactly one. The increment
// happens at the store so concurrent likes are never lost.
func (s *PostService) LikePost(ctx context.Context, subreditID, postID uint) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "post.like",
		observability.SubreditID(subreditID), observability.PostID(postID))
	defer span.End()

	matched, err := s.postRepo.Like(ctx, subreditID, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if !matched {
		return nil, models.NewNotFoundError()
	}
	return s.getOwned(ctx, subreditID, postID)
}

func (s *PostService) getOwned(ctx context.Context, subreditID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, subreditID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError()
		}
		return nil, err
	}
	return post, nil
}
