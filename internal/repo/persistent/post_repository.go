package persistent

import (
	"campusnet/internal/entity"
	"campusnet/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	List() ([]*entity.Post, error)
	ListByAuthor(authorID string) ([]*entity.Post, error)
	Delete(id string) (*entity.Post, error)
	UpdateCounts(postID string, likesCount, commentsCount int64) error

	IsLiked(userID, postID string) (bool, error)
	CreateLike(userID, postID string) error
	DeleteLike(userID, postID string) error
	LikeCount(postID string) (int64, error)

	CreateComment(comment *entity.Comment) error
	CommentCount(postID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
		for i := range postModel.Images {
			postModel.Images[i].PostID = postModel.ID
		}
	}
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.
		Preload("Images").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Where("id = ?", id).
		First(&postModel).Error
	if err != nil {
		return nil, err
	}

	post := ToPostEntity(&postModel)
	if err := r.populateAuthors([]*entity.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepository) List() ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.
		Preload("Images").
		Order("created_at DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return r.toPostEntities(postModels)
}

func (r *postRepository) ListByAuthor(authorID string) ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.
		Preload("Images").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return r.toPostEntities(postModels)
}

func (r *postRepository) Delete(id string) (*entity.Post, error) {
	post, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("id = ?", id).Delete(&model.PostModel{}).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepository) UpdateCounts(postID string, likesCount, commentsCount int64) error {
	return r.db.Model(&model.PostModel{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"likes_count":    likesCount,
			"comments_count": commentsCount,
		}).Error
}

func (r *postRepository) IsLiked(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) CreateLike(userID, postID string) error {
	like := &model.LikeModel{
		ID:     uuid.New().String(),
		UserID: userID,
		PostID: postID,
	}
	return r.db.Create(like).Error
}

func (r *postRepository) DeleteLike(userID, postID string) error {
	return r.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.LikeModel{}).Error
}

func (r *postRepository) LikeCount(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) CreateComment(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if commentModel.ID == "" {
		commentModel.ID = uuid.New().String()
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *postRepository) CommentCount(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.CommentModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) toPostEntities(postModels []model.PostModel) ([]*entity.Post, error) {
	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	if err := r.populateAuthors(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// populateAuthors attaches the username+avatar projection for post and
// comment authors in one batched query, the read-time join replacing the
// document store's populate().
func (r *postRepository) populateAuthors(posts []*entity.Post) error {
	idSet := make(map[string]struct{})
	for _, p := range posts {
		idSet[p.AuthorID] = struct{}{}
		for i := range p.Comments {
			idSet[p.Comments[i].AuthorID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var authors []struct {
		ID             string
		Username       string
		ProfilePicture string
	}
	err := r.db.Table("users").
		Select("id, username, profile_picture").
		Where("id IN ?", ids).
		Scan(&authors).Error
	if err != nil {
		return err
	}

	byID := make(map[string]*entity.AuthorInfo, len(authors))
	for _, a := range authors {
		byID[a.ID] = &entity.AuthorInfo{
			ID:             a.ID,
			Username:       a.Username,
			ProfilePicture: a.ProfilePicture,
		}
	}

	for _, p := range posts {
		p.Author = byID[p.AuthorID]
		for i := range p.Comments {
			p.Comments[i].Author = byID[p.Comments[i].AuthorID]
		}
	}
	return nil
}
