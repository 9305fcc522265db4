package server

import (
	"subredit/internal/models"
	"subredit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/subredits/:id/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	subreditID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		SubreditID: subreditID,
		Title:      req.Title,
		Content:    req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    post.ID,
		"title": post.Title,
	})
}

// GetSubreditPosts handles GET /api/subredits/:id/posts
func (s *Server) GetSubreditPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	subreditID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postService.ListPosts(ctx, subreditID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// CreateComment handles POST /api/subredits/:id/posts/:postId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	subreditID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.AppendComment(ctx, service.AppendCommentInput{
		SubreditID: subreditID,
		PostID:     postID,
		Content:    req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/subredits/:id/posts/:postId
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	subreditID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePostContent(ctx, service.UpdatePostContentInput{
		SubreditID: subreditID,
		PostID:     postID,
		Content:    req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// LikePost handles POST /api/subredits/:id/posts/:postId/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	subreditID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.LikePost(ctx, subreditID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}
