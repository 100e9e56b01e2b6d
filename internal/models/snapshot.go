package models

import "time"

// FeedSnapshot is one serialized feed stored under a key in a SQL backend.
type FeedSnapshot struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey;size:191"`
	Data      string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name independent of gorm's pluralization.
func (FeedSnapshot) TableName() string {
	return "feed_snapshots"
}
