package repository

import (
	"context"
	"regexp"
	"testing"

	"subredit/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestSubreditRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubreditRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		subreditID    uint
		mockBehavior  func()
		expectedName  string
		expectedError error
	}{
		{
			name:       "Success",
			subreditID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "description"}).
					AddRow(1, "gophers", "all things Go")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "subredits" WHERE "subredits"."id" = $1 ORDER BY "subredits"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedName: "gophers",
		},
		{
			name:       "Not Found",
			subreditID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "subredits" WHERE "subredits"."id" = $1 ORDER BY "subredits"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: gorm.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			subredit, err := repo.GetByID(ctx, tt.subreditID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else if assert.NotNil(t, subredit) {
				assert.Equal(t, tt.expectedName, subredit.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubreditRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubreditRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "subredits"`)).
		WithArgs("gophers", "all things Go", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	subredit := &models.Subredit{Name: "gophers", Description: "all things Go"}
	err := repo.Create(context.Background(), subredit)
	require.NoError(t, err)
	assert.Equal(t, uint(1), subredit.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
