package entity

import "time"

type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
	ContentTypeReel  ContentType = "reel"
)

// AuthorInfo is the username+avatar projection attached to posts and comments
// in place of the full (password-bearing) user record.
type AuthorInfo struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

type Comment struct {
	ID        string      `json:"id"`
	PostID    string      `json:"post_id"`
	AuthorID  string      `json:"author_id"`
	Author    *AuthorInfo `json:"author,omitempty"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

type Post struct {
	ID            string      `json:"id"`
	AuthorID      string      `json:"author_id"`
	Author        *AuthorInfo `json:"author,omitempty"`
	ContentType   ContentType `json:"content_type"`
	Text          string      `json:"text,omitempty"`
	ImageURLs     []string    `json:"image_urls,omitempty"`
	VideoURL      string      `json:"video_url,omitempty"`
	LikesCount    int64       `json:"likes_count"`
	CommentsCount int64       `json:"comments_count"`
	Comments      []Comment   `json:"comments,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
