package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	PostID    string `gorm:"type:uuid;not null;index"`
	AuthorID  string `gorm:"type:uuid;not null;index"`
	Text      string `gorm:"type:varchar(500);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
