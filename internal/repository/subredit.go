// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"subredit/internal/models"

	"gorm.io/gorm"
)

// SubreditRepository defines the interface for subredit data operations
type SubreditRepository interface {
	Create(ctx context.Context, subredit *models.Subredit) error
	GetByID(ctx context.Context, id uint) (*models.Subredit, error)
}

// subreditRepository implements SubreditRepository
type subreditRepository struct {
	db *gorm.DB
}

// NewSubreditRepository creates a new subredit repository
func NewSubreditRepository(db *gorm.DB) SubreditRepository {
	return &subreditRepository{db: db}
}

func (r *subreditRepository) Create(ctx context.Context, subredit *models.Subredit) error {
	return r.db.WithContext(ctx).Create(subredit).Error
}

func (r *subreditRepository) GetByID(ctx context.Context, id uint) (*models.Subredit, error) {
	var subredit models.Subredit
	if err := r.db.WithContext(ctx).First(&subredit, id).Error; err != nil {
		return nil, err
	}
	return &subredit, nil
}
