package persistent

import (
	"sort"

	"campusnet/internal/entity"
	"campusnet/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:             m.ID,
		Email:          m.Email,
		Username:       m.Username,
		Password:       m.Password,
		FullName:       m.FullName,
		University:     m.University,
		Course:         m.Course,
		YearOfStudy:    m.YearOfStudy,
		Bio:            m.Bio,
		ProfilePicture: m.ProfilePicture,
		CoverPhoto:     m.CoverPhoto,
		Role:           entity.UserRole(m.Role),
		IsVerified:     m.IsVerified,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:             e.ID,
		Email:          e.Email,
		Username:       e.Username,
		Password:       e.Password,
		FullName:       e.FullName,
		University:     e.University,
		Course:         e.Course,
		YearOfStudy:    e.YearOfStudy,
		Bio:            e.Bio,
		ProfilePicture: e.ProfilePicture,
		CoverPhoto:     e.CoverPhoto,
		Role:           string(e.Role),
		IsVerified:     e.IsVerified,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	images := make([]model.PostImageModel, len(m.Images))
	copy(images, m.Images)
	sort.Slice(images, func(i, j int) bool { return images[i].Order < images[j].Order })

	imageURLs := make([]string, 0, len(images))
	for _, img := range images {
		imageURLs = append(imageURLs, img.ImageURL)
	}

	comments := make([]entity.Comment, 0, len(m.Comments))
	for i := range m.Comments {
		comments = append(comments, *ToCommentEntity(&m.Comments[i]))
	}

	return &entity.Post{
		ID:            m.ID,
		AuthorID:      m.AuthorID,
		ContentType:   entity.ContentType(m.ContentType),
		Text:          m.Text,
		ImageURLs:     imageURLs,
		VideoURL:      m.VideoURL,
		LikesCount:    m.LikesCount,
		CommentsCount: m.CommentsCount,
		Comments:      comments,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	images := make([]model.PostImageModel, 0, len(e.ImageURLs))
	for i, url := range e.ImageURLs {
		images = append(images, model.PostImageModel{
			PostID:   e.ID,
			ImageURL: url,
			Order:    i,
		})
	}

	return &model.PostModel{
		ID:            e.ID,
		AuthorID:      e.AuthorID,
		ContentType:   string(e.ContentType),
		Text:          e.Text,
		VideoURL:      e.VideoURL,
		LikesCount:    e.LikesCount,
		CommentsCount: e.CommentsCount,
		Images:        images,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:       e.ID,
		PostID:   e.PostID,
		AuthorID: e.AuthorID,
		Text:     e.Text,
	}
}
