package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowModel is one edge of the social graph: follower follows followee.
// A single row holds both directions of the relationship, so the
// following/followers views can never diverge.
type FollowModel struct {
	ID         string    `gorm:"type:uuid;primary_key"`
	FollowerID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_follow_edge"`
	FolloweeID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_follow_edge"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (FollowModel) TableName() string {
	return "follows"
}

func (f *FollowModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
