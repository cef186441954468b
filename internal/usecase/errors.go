package usecase

import "errors"

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidBio         = errors.New("bio cannot exceed 500 characters")

	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")

	ErrInvalidPostID      = errors.New("invalid post id")
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidText        = errors.New("text content is required and cannot exceed 2000 characters")
	ErrInvalidImageURLs   = errors.New("image urls are required and must be valid")
	ErrInvalidVideoURL    = errors.New("video url is required and must be valid")
	ErrInvalidComment     = errors.New("comment text is required and cannot exceed 500 characters")
)
