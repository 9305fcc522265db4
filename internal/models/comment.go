package models

import "time"

// Comment is a plain text entry in a post's comment sequence. It is not
// independently addressable: no author, no update path, surfaced to the API
// only as a string inside its post. The auto-increment id doubles as the
// append order.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PostID    uint      `gorm:"not null;index" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
