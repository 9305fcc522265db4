// Package service implements the business rules on top of the repositories:
// input constraints, parent-existence checks and the ranking aggregation.
package service

import (
	"context"

	"subredit/internal/models"
	"subredit/internal/repository"
	"subredit/internal/validation"
)

type SubreditService struct {
	subreditRepo repository.SubreditRepository
}

type CreateSubreditInput struct {
	Name        string
	Description string
}

func NewSubreditService(subreditRepo repository.SubreditRepository) *SubreditService {
	return &SubreditService{subreditRepo: subreditRepo}
}

// CreateSubredit validates and stores a new subredit, returning the stored
// record including its generated identifier.
func (s *SubreditService) CreateSubredit(ctx context.Context, in CreateSubreditInput) (*models.Subredit, error) {
	if violations := validation.NewSubredit(in.Name, in.Description); len(violations) > 0 {
		return nil, models.NewConstraintError(violations)
	}

	subredit := &models.Subredit{
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.subreditRepo.Create(ctx, subredit); err != nil {
		return nil, err
	}
	return subredit, nil
}
