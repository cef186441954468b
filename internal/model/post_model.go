package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID            string           `gorm:"type:uuid;primary_key"`
	AuthorID      string           `gorm:"type:uuid;not null;index"`
	ContentType   string           `gorm:"type:varchar(10);not null"`
	Text          string           `gorm:"type:varchar(2000)"`
	VideoURL      string
	LikesCount    int64            `gorm:"default:0"`
	CommentsCount int64            `gorm:"default:0"`
	Images        []PostImageModel `gorm:"foreignKey:PostID"`
	Comments      []CommentModel   `gorm:"foreignKey:PostID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostImageModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	PostID    string `gorm:"type:uuid;not null;index"`
	ImageURL  string `gorm:"not null"`
	Order     int    `gorm:"default:0;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PostImageModel) TableName() string {
	return "post_images"
}

func (pi *PostImageModel) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
