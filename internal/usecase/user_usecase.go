package usecase

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"campusnet/internal/entity"
	"campusnet/internal/repo/persistent"
	"campusnet/pkg/jwt"
	"campusnet/pkg/logger"
	"campusnet/pkg/queue"
	"campusnet/pkg/s3"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxBioLen = 500

// FollowCounts is returned from follow/unfollow: the actor's updated
// following count and the target's updated followers count.
type FollowCounts struct {
	FollowingCount int64 `json:"following_count"`
	FollowersCount int64 `json:"followers_count"`
}

type ProfileUpdate struct {
	Email          *string `json:"email"`
	Username       *string `json:"username"`
	FullName       *string `json:"full_name"`
	University     *string `json:"university"`
	Course         *string `json:"course"`
	YearOfStudy    *string `json:"year_of_study"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	CoverPhoto     *string `json:"cover_photo"`
}

type UserUseCase interface {
	Register(email, username, password string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, upd ProfileUpdate) (*entity.User, error)
	ListUsers() ([]*entity.User, error)
	Follow(actorID, targetID string) (*FollowCounts, error)
	Unfollow(actorID, targetID string) (*FollowCounts, error)
	UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error)
	UploadCover(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error)
}

type userUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	s3Client    *s3.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	s3Client *s3.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		s3Client:    s3Client,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *userUseCase) Register(email, username, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	// Only a definite not-found means the name is free. Any other lookup
	// failure must not slip through as a successful uniqueness check.
	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to look up email during registration: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}
	if _, err := uc.userRepo.GetByUsername(username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to look up username during registration: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		Role:     entity.RoleStudent,
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *userUseCase) Login(email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		uc.logger.Error("Failed to look up user by email: %v", err)
		return nil, "", fmt.Errorf("failed to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *userUseCase) GetUser(userID string) (*entity.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidUserID
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := uc.attachFollowCounts(user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (uc *userUseCase) UpdateProfile(userID string, upd ProfileUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if email != user.Email {
			if existing, err := uc.userRepo.GetByEmail(email); err == nil && existing.ID != userID {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username != user.Username {
			if existing, err := uc.userRepo.GetByUsername(username); err == nil && existing.ID != userID {
				return nil, ErrUsernameTaken
			}
			user.Username = username
		}
	}
	if upd.FullName != nil {
		user.FullName = strings.TrimSpace(*upd.FullName)
	}
	if upd.University != nil {
		user.University = strings.TrimSpace(*upd.University)
	}
	if upd.Course != nil {
		user.Course = strings.TrimSpace(*upd.Course)
	}
	if upd.YearOfStudy != nil {
		user.YearOfStudy = strings.TrimSpace(*upd.YearOfStudy)
	}
	if upd.Bio != nil {
		if utf8.RuneCountInString(*upd.Bio) > maxBioLen {
			return nil, ErrInvalidBio
		}
		user.Bio = *upd.Bio
	}
	if upd.ProfilePicture != nil {
		user.ProfilePicture = *upd.ProfilePicture
	}
	if upd.CoverPhoto != nil {
		user.CoverPhoto = *upd.CoverPhoto
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update profile")
	}

	if err := uc.attachFollowCounts(user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (uc *userUseCase) ListUsers() ([]*entity.User, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, nil
}

func (uc *userUseCase) Follow(actorID, targetID string) (*FollowCounts, error) {
	if err := uc.checkFollowPair(actorID, targetID); err != nil {
		return nil, err
	}

	following, err := uc.userRepo.IsFollowing(actorID, targetID)
	if err != nil {
		return nil, err
	}
	if following {
		return nil, ErrAlreadyFollowing
	}

	if err := uc.userRepo.CreateFollow(actorID, targetID); err != nil {
		uc.logger.Error("Failed to create follow %s -> %s: %v", actorID, targetID, err)
		return nil, fmt.Errorf("failed to follow user")
	}

	if uc.queueClient != nil {
		go func() {
			task := map[string]interface{}{
				"type":        "follow",
				"user_id":     targetID,
				"follower_id": actorID,
				"priority":    4,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("Failed to publish follow notification: %v", err)
			}
		}()
	}

	return uc.followCounts(actorID, targetID)
}

func (uc *userUseCase) Unfollow(actorID, targetID string) (*FollowCounts, error) {
	if err := uc.checkFollowPair(actorID, targetID); err != nil {
		return nil, err
	}

	following, err := uc.userRepo.IsFollowing(actorID, targetID)
	if err != nil {
		return nil, err
	}
	if !following {
		return nil, ErrNotFollowing
	}

	if err := uc.userRepo.DeleteFollow(actorID, targetID); err != nil {
		uc.logger.Error("Failed to delete follow %s -> %s: %v", actorID, targetID, err)
		return nil, fmt.Errorf("failed to unfollow user")
	}

	return uc.followCounts(actorID, targetID)
}

func (uc *userUseCase) UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	return uc.uploadProfileMedia(userID, fileReader, fileKey, contentType, false)
}

func (uc *userUseCase) UploadCover(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	return uc.uploadProfileMedia(userID, fileReader, fileKey, contentType, true)
}

func (uc *userUseCase) uploadProfileMedia(userID string, fileReader io.Reader, fileKey string, contentType string, cover bool) (*entity.User, error) {
	mediaURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload profile media: %v", err)
		return nil, fmt.Errorf("failed to upload file")
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if cover {
		user.CoverPhoto = mediaURL
	} else {
		user.ProfilePicture = mediaURL
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	if err := uc.attachFollowCounts(user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// checkFollowPair validates the ids of a follow/unfollow mutation. Well-formed
// ids are required before self-follow and existence checks so that a malformed
// reference is always a 400, never a 404.
func (uc *userUseCase) checkFollowPair(actorID, targetID string) error {
	if _, err := uuid.Parse(actorID); err != nil {
		return ErrInvalidUserID
	}
	if _, err := uuid.Parse(targetID); err != nil {
		return ErrInvalidUserID
	}
	if actorID == targetID {
		return ErrSelfFollow
	}
	if _, err := uc.userRepo.GetByID(actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if _, err := uc.userRepo.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (uc *userUseCase) followCounts(actorID, targetID string) (*FollowCounts, error) {
	_, following, err := uc.userRepo.FollowCounts(actorID)
	if err != nil {
		return nil, err
	}
	followers, _, err := uc.userRepo.FollowCounts(targetID)
	if err != nil {
		return nil, err
	}
	return &FollowCounts{
		FollowingCount: following,
		FollowersCount: followers,
	}, nil
}

func (uc *userUseCase) attachFollowCounts(user *entity.User) error {
	followers, following, err := uc.userRepo.FollowCounts(user.ID)
	if err != nil {
		return err
	}
	user.FollowersCount = followers
	user.FollowingCount = following
	return nil
}
