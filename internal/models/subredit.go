package models

import "time"

// Subredit represents a community that owns zero or more posts.
// Subredits are immutable after creation; there is no update or delete path.
type Subredit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:20;not null" json:"name"`
	Description string    `gorm:"size:100" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Subredit) TableName() string {
	return "subredits"
}

// SubreditRanking is one row of the ranking aggregation: a subredit joined
// with the arithmetic mean of its posts' like counters. Subredits without
// posts never appear in a ranking.
type SubreditRanking struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	AverageLikes float64 `json:"average_likes"`
}
