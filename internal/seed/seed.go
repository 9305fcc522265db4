// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"subredit/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumSubredits int
	PostsPerSub  int
	ShouldClean  bool
}

var subreditTopics = []string{
	"golang", "gaming", "movies", "music", "fitness", "books",
	"travel", "cooking", "science", "history", "linux", "space",
}

// Run populates the database with demo subredits, posts, comments and likes.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := db.Exec("DELETE FROM comments").Error; err != nil {
			return fmt.Errorf("clean comments: %w", err)
		}
		if err := db.Exec("DELETE FROM posts").Error; err != nil {
			return fmt.Errorf("clean posts: %w", err)
		}
		if err := db.Exec("DELETE FROM subredits").Error; err != nil {
			return fmt.Errorf("clean subredits: %w", err)
		}
		log.Println("Cleaned existing data")
	}

	n := opts.NumSubredits
	if n <= 0 || n > len(subreditTopics) {
		n = len(subreditTopics)
	}
	postsPer := opts.PostsPerSub
	if postsPer <= 0 {
		postsPer = 5
	}

	for i := 0; i < n; i++ {
		subredit := &models.Subredit{
			// Topics are padded so every name lands inside the [5,20] bound.
			Name:        fmt.Sprintf("r-%s", subreditTopics[i]),
			Description: gofakeit.Sentence(8),
		}
		if len(subredit.Description) > 100 {
			subredit.Description = subredit.Description[:100]
		}
		if err := db.Create(subredit).Error; err != nil {
			return fmt.Errorf("seed subredit %q: %w", subredit.Name, err)
		}

		for j := 0; j < postsPer; j++ {
			post := &models.Post{
				Title:      gofakeit.Sentence(4),
				Content:    gofakeit.Paragraph(1, 3, 8, " "),
				SubreditID: subredit.ID,
			}
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("seed post: %w", err)
			}

			for k := 0; k < rand.Intn(4); k++ {
				comment := &models.Comment{
					PostID:  post.ID,
					Content: gofakeit.Sentence(6),
				}
				if err := db.Create(comment).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}

			// Likes go through the same increment the API uses.
			for k := 0; k < rand.Intn(20); k++ {
				if err := db.Exec(
					"UPDATE posts SET likes = likes + 1 WHERE id = ?", post.ID,
				).Error; err != nil {
					return fmt.Errorf("seed likes: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %d subredits with ~%d posts each", n, postsPer)
	return nil
}
