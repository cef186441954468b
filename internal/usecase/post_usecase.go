package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"campusnet/internal/entity"
	"campusnet/internal/repo/persistent"
	"campusnet/pkg/logger"
	"campusnet/pkg/queue"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	imageURLPattern = regexp.MustCompile(`^https?://.+\.(jpg|jpeg|png|gif)$`)
	videoURLPattern = regexp.MustCompile(`^https?://.+\.(mp4|webm|ogg)$`)
)

const (
	maxPostTextLen    = 2000
	maxCommentTextLen = 500

	feedCacheKey = "posts:all"
	feedCacheTTL = time.Minute
)

// CreatePostInput carries the per-type payload of a new post. Exactly one of
// Text, ImageURLs, VideoURL/ReelURL is honored, selected by ContentType.
type CreatePostInput struct {
	ContentType string   `json:"content_type"`
	Text        string   `json:"text"`
	ImageURLs   []string `json:"image_urls"`
	VideoURL    string   `json:"video_url"`
	ReelURL     string   `json:"reel_url"`
}

type PostUseCase interface {
	Create(authorID string, in CreatePostInput) (*entity.Post, error)
	Get(postID string) (*entity.Post, error)
	List() ([]*entity.Post, error)
	ListByAuthor(authorID string) ([]*entity.Post, error)
	Delete(postID string) (*entity.Post, error)
	ToggleLike(userID, postID string) (bool, int64, error)
	AddComment(userID, postID, text string) (*entity.Comment, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	userRepo    persistent.UserRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		userRepo:    userRepo,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *postUseCase) Create(authorID string, in CreatePostInput) (*entity.Post, error) {
	if _, err := uc.userRepo.GetByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	post := &entity.Post{
		AuthorID:    authorID,
		ContentType: entity.ContentType(in.ContentType),
	}

	switch post.ContentType {
	case entity.ContentTypeText:
		if in.Text == "" || utf8.RuneCountInString(in.Text) > maxPostTextLen {
			return nil, ErrInvalidText
		}
		post.Text = in.Text
	case entity.ContentTypeImage:
		if len(in.ImageURLs) == 0 {
			return nil, ErrInvalidImageURLs
		}
		for _, url := range in.ImageURLs {
			if !imageURLPattern.MatchString(url) {
				return nil, ErrInvalidImageURLs
			}
		}
		post.ImageURLs = in.ImageURLs
	case entity.ContentTypeVideo:
		if !videoURLPattern.MatchString(in.VideoURL) {
			return nil, ErrInvalidVideoURL
		}
		post.VideoURL = in.VideoURL
	case entity.ContentTypeReel:
		if !videoURLPattern.MatchString(in.ReelURL) {
			return nil, ErrInvalidVideoURL
		}
		post.VideoURL = in.ReelURL
	default:
		return nil, ErrInvalidContentType
	}

	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post")
	}

	uc.invalidateFeedCache()
	return post, nil
}

func (uc *postUseCase) Get(postID string) (*entity.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, ErrInvalidPostID
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (uc *postUseCase) List() ([]*entity.Post, error) {
	if posts, ok := uc.cachedFeed(); ok {
		return posts, nil
	}

	posts, err := uc.postRepo.List()
	if err != nil {
		return nil, err
	}

	uc.cacheFeed(posts)
	return posts, nil
}

func (uc *postUseCase) ListByAuthor(authorID string) ([]*entity.Post, error) {
	if _, err := uuid.Parse(authorID); err != nil {
		return nil, ErrInvalidUserID
	}
	if _, err := uc.userRepo.GetByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return uc.postRepo.ListByAuthor(authorID)
}

func (uc *postUseCase) Delete(postID string) (*entity.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, ErrInvalidPostID
	}

	post, err := uc.postRepo.Delete(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		uc.logger.Error("Failed to delete post %s: %v", postID, err)
		return nil, fmt.Errorf("failed to delete post")
	}

	uc.invalidateFeedCache()
	return post, nil
}

func (uc *postUseCase) ToggleLike(userID, postID string) (bool, int64, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return false, 0, ErrInvalidPostID
	}
	if _, err := uc.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrPostNotFound
		}
		return false, 0, err
	}

	liked, err := uc.postRepo.IsLiked(userID, postID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		err = uc.postRepo.DeleteLike(userID, postID)
	} else {
		err = uc.postRepo.CreateLike(userID, postID)
	}
	if err != nil {
		uc.logger.Error("Failed to toggle like on post %s: %v", postID, err)
		return false, 0, fmt.Errorf("failed to update like")
	}

	likeCount, err := uc.resyncCounts(postID)
	if err != nil {
		return false, 0, err
	}

	uc.invalidateFeedCache()
	return !liked, likeCount, nil
}

func (uc *postUseCase) AddComment(userID, postID, text string) (*entity.Comment, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, ErrInvalidPostID
	}
	if text == "" || utf8.RuneCountInString(text) > maxCommentTextLen {
		return nil, ErrInvalidComment
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &entity.Comment{
		PostID:   postID,
		AuthorID: userID,
		Text:     text,
	}
	if err := uc.postRepo.CreateComment(comment); err != nil {
		uc.logger.Error("Failed to create comment on post %s: %v", postID, err)
		return nil, fmt.Errorf("failed to create comment")
	}

	if _, err := uc.resyncCounts(postID); err != nil {
		return nil, err
	}

	if uc.queueClient != nil && post.AuthorID != userID {
		go func() {
			task := map[string]interface{}{
				"type":         "comment",
				"user_id":      post.AuthorID,
				"commenter_id": userID,
				"post_id":      postID,
				"priority":     3,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("Failed to publish comment notification: %v", err)
			}
		}()
	}

	uc.invalidateFeedCache()
	return comment, nil
}

// resyncCounts recomputes the denormalized like/comment counters from the
// relationship tables and persists them, keeping the stored counts in step
// with the sets they summarize.
func (uc *postUseCase) resyncCounts(postID string) (int64, error) {
	likeCount, err := uc.postRepo.LikeCount(postID)
	if err != nil {
		return 0, err
	}
	commentCount, err := uc.postRepo.CommentCount(postID)
	if err != nil {
		return 0, err
	}
	if err := uc.postRepo.UpdateCounts(postID, likeCount, commentCount); err != nil {
		uc.logger.Error("Failed to resync counters for post %s: %v", postID, err)
		return 0, fmt.Errorf("failed to update post counters")
	}
	return likeCount, nil
}

func (uc *postUseCase) cachedFeed() ([]*entity.Post, bool) {
	if uc.redisClient == nil {
		return nil, false
	}

	data, err := uc.redisClient.Get(context.Background(), feedCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var posts []*entity.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		uc.logger.Warn("Failed to decode cached feed, dropping it: %v", err)
		uc.invalidateFeedCache()
		return nil, false
	}
	return posts, true
}

func (uc *postUseCase) cacheFeed(posts []*entity.Post) {
	if uc.redisClient == nil {
		return
	}

	data, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := uc.redisClient.Set(context.Background(), feedCacheKey, data, feedCacheTTL).Err(); err != nil {
		uc.logger.Warn("Failed to cache feed: %v", err)
	}
}

func (uc *postUseCase) invalidateFeedCache() {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Del(context.Background(), feedCacheKey).Err(); err != nil {
		uc.logger.Warn("Failed to invalidate feed cache: %v", err)
	}
}
