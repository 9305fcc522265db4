// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a content item belonging to exactly one subredit.
// The like counter only ever moves through the atomic increment in the
// repository; it is never written directly.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	SubreditID uint      `gorm:"not null;index" json:"subredit_id"`
	Subredit   *Subredit `gorm:"foreignKey:SubreditID" json:"-"`
	Likes      int       `gorm:"not null;default:0" json:"likes"`
	// Comments is not a column; loaded from the comments table in id order.
	Comments  []string  `gorm:"-" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
