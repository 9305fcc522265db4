package server

import (
	"subredit/internal/models"
	"subredit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSubredit handles POST /api/subredits
func (s *Server) CreateSubredit(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	subredit, err := s.subreditService.CreateSubredit(ctx, service.CreateSubreditInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(subredit)
}

// RankSubredits handles GET /api/subredits
func (s *Server) RankSubredits(c *fiber.Ctx) error {
	rankings, err := s.rankingService.RankSubredits(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(rankings)
}
