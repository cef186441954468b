package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusnet/internal/entity"
	"campusnet/internal/repo/persistent"
	"campusnet/pkg/jwt"
	"campusnet/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) List() ([]*entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) IsFollowing(followerID, followeeID string) (bool, error) {
	args := m.Called(followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CreateFollow(followerID, followeeID string) error {
	args := m.Called(followerID, followeeID)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteFollow(followerID, followeeID string) error {
	args := m.Called(followerID, followeeID)
	return args.Error(0)
}

func (m *MockUserRepository) FollowCounts(userID string) (int64, int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func authTestSetup(t *testing.T) (*jwt.Service, *MockUserRepository, *gin.Engine) {
	t.Helper()
	jwtService := jwt.NewService("test-secret-key", time.Hour)
	userRepo := new(MockUserRepository)

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService, userRepo, logger.New()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return jwtService, userRepo, router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService, userRepo, router := authTestSetup(t)
	token, _ := jwtService.GenerateToken("user-123", "student")

	userRepo.On("GetByID", "user-123").Return(&entity.User{
		ID:       "user-123",
		Username: "alice",
		Role:     entity.RoleStudent,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
	userRepo.AssertExpectations(t)
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	_, _, router := authTestSetup(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidFormat(t *testing.T) {
	_, _, router := authTestSetup(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Basic some-token")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A structurally invalid token is a 400, not a 401: the client presented
// credentials, they just failed verification.
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	_, _, router := authTestSetup(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	_, _, router := authTestSetup(t)

	expiredService := jwt.NewService("test-secret-key", -time.Minute)
	token, _ := expiredService.GenerateToken("user-123", "student")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware_VanishedUser(t *testing.T) {
	jwtService, userRepo, router := authTestSetup(t)
	token, _ := jwtService.GenerateToken("user-gone", "student")

	userRepo.On("GetByID", "user-gone").Return(nil, gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func adminTestRouter(role entity.UserRole) *gin.Engine {
	router := setupTestRouter()
	router.Use(func(c *gin.Context) {
		c.Set(currentUserKey, &entity.User{ID: "user-123", Role: role})
		c.Next()
	})
	router.Use(AdminMiddleware())
	router.DELETE("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestAdminMiddleware_Admin(t *testing.T) {
	router := adminTestRouter(entity.RoleAdmin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware_Student(t *testing.T) {
	router := adminTestRouter(entity.RoleStudent)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddleware_Moderator(t *testing.T) {
	router := adminTestRouter(entity.RoleModerator)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddleware_NoUser(t *testing.T) {
	router := setupTestRouter()
	router.Use(AdminMiddleware())
	router.DELETE("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
