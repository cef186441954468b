package entity

import "time"

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	Password       string    `json:"-"`
	FullName       string    `json:"full_name"`
	University     string    `json:"university"`
	Course         string    `json:"course"`
	YearOfStudy    string    `json:"year_of_study"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	CoverPhoto     string    `json:"cover_photo"`
	Role           UserRole  `json:"role"`
	IsVerified     bool      `json:"is_verified"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
