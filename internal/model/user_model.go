package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID             string         `gorm:"type:uuid;primary_key"`
	Email          string         `gorm:"uniqueIndex;not null"`
	Username       string         `gorm:"uniqueIndex;not null"`
	Password       string         `gorm:"not null"`
	FullName       string         `gorm:"column:full_name"`
	University     string
	Course         string
	YearOfStudy    string         `gorm:"column:year_of_study"`
	Bio            string         `gorm:"type:varchar(500)"`
	ProfilePicture string
	CoverPhoto     string
	Role           string         `gorm:"type:varchar(20);default:'student'"`
	IsVerified     bool           `gorm:"default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
