package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"campusnet/internal/entity"
	"campusnet/internal/repo/persistent"
	"campusnet/pkg/jwt"
	"campusnet/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory stand-in for the postgres repository. It
// returns gorm.ErrRecordNotFound for missing rows, so the use cases see the
// same error shapes they would against the real thing.
type fakeUserRepo struct {
	users   map[string]*entity.User
	follows map[[2]string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*entity.User),
		follows: make(map[[2]string]bool),
	}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (r *fakeUserRepo) IsFollowing(followerID, followeeID string) (bool, error) {
	return r.follows[[2]string{followerID, followeeID}], nil
}

func (r *fakeUserRepo) CreateFollow(followerID, followeeID string) error {
	r.follows[[2]string{followerID, followeeID}] = true
	return nil
}

func (r *fakeUserRepo) DeleteFollow(followerID, followeeID string) error {
	delete(r.follows, [2]string{followerID, followeeID})
	return nil
}

func (r *fakeUserRepo) FollowCounts(userID string) (int64, int64, error) {
	var followers, following int64
	for edge, ok := range r.follows {
		if !ok {
			continue
		}
		if edge[1] == userID {
			followers++
		}
		if edge[0] == userID {
			following++
		}
	}
	return followers, following, nil
}

func (r *fakeUserRepo) edgeCount() int {
	count := 0
	for _, ok := range r.follows {
		if ok {
			count++
		}
	}
	return count
}

var _ persistent.UserRepository = (*fakeUserRepo)(nil)

func newUserFixture() (UserUseCase, *fakeUserRepo, *jwt.Service) {
	repo := newFakeUserRepo()
	jwtService := jwt.NewService("test-secret-key", time.Hour)
	uc := NewUserUseCase(repo, jwtService, nil, nil, logger.New())
	return uc, repo, jwtService
}

func TestRegister_HashesPassword(t *testing.T) {
	uc, repo, jwtService := newUserFixture()

	user, token, err := uc.Register("alice@campus.test", "alice", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.Password)
	assert.Equal(t, entity.RoleStudent, user.Role)

	stored := repo.users[user.ID]
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	uc, _, _ := newUserFixture()

	user, _, err := uc.Register("  Alice@Campus.TEST ", "alice", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "alice@campus.test", user.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, repo, _ := newUserFixture()

	_, _, err := uc.Register("alice@campus.test", "alice", "password123")
	assert.NoError(t, err)

	_, _, err = uc.Register("alice@campus.test", "alice2", "password456")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, repo.users, 1)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc, repo, _ := newUserFixture()

	_, _, err := uc.Register("alice@campus.test", "alice", "password123")
	assert.NoError(t, err)

	_, _, err = uc.Register("alice2@campus.test", "alice", "password456")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Len(t, repo.users, 1)
}

func TestLogin_RoundTrip(t *testing.T) {
	uc, _, _ := newUserFixture()

	registered, _, err := uc.Register("alice@campus.test", "alice", "password123")
	assert.NoError(t, err)

	user, token, err := uc.Login("alice@campus.test", "password123")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.Password)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newUserFixture()

	_, _, err := uc.Register("alice@campus.test", "alice", "password123")
	assert.NoError(t, err)

	_, _, err = uc.Login("alice@campus.test", "not-the-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _, _ := newUserFixture()

	_, _, err := uc.Login("ghost@campus.test", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func registerPair(t *testing.T, uc UserUseCase) (string, string) {
	t.Helper()
	alice, _, err := uc.Register("alice@campus.test", "alice", "password123")
	assert.NoError(t, err)
	bob, _, err := uc.Register("bob@campus.test", "bob", "password123")
	assert.NoError(t, err)
	return alice.ID, bob.ID
}

func TestFollow_CreatesSingleEdge(t *testing.T) {
	uc, repo, _ := newUserFixture()
	aliceID, bobID := registerPair(t, uc)

	counts, err := uc.Follow(aliceID, bobID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), counts.FollowingCount)
	assert.Equal(t, int64(1), counts.FollowersCount)
	assert.Equal(t, 1, repo.edgeCount())

	_, err = uc.Follow(aliceID, bobID)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
	assert.Equal(t, 1, repo.edgeCount())
}

func TestFollow_Self(t *testing.T) {
	uc, _, _ := newUserFixture()
	aliceID, _ := registerPair(t, uc)

	_, err := uc.Follow(aliceID, aliceID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollow_MalformedID(t *testing.T) {
	uc, _, _ := newUserFixture()
	aliceID, _ := registerPair(t, uc)

	_, err := uc.Follow(aliceID, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestFollow_UnknownTarget(t *testing.T) {
	uc, _, _ := newUserFixture()
	aliceID, _ := registerPair(t, uc)

	_, err := uc.Follow(aliceID, uuid.New().String())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnfollow_RestoresState(t *testing.T) {
	uc, repo, _ := newUserFixture()
	aliceID, bobID := registerPair(t, uc)

	_, err := uc.Follow(aliceID, bobID)
	assert.NoError(t, err)

	counts, err := uc.Unfollow(aliceID, bobID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), counts.FollowingCount)
	assert.Equal(t, int64(0), counts.FollowersCount)
	assert.Equal(t, 0, repo.edgeCount())

	_, err = uc.Unfollow(aliceID, bobID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestGetUser_AttachesFollowCounts(t *testing.T) {
	uc, _, _ := newUserFixture()
	aliceID, bobID := registerPair(t, uc)

	_, err := uc.Follow(aliceID, bobID)
	assert.NoError(t, err)

	bob, err := uc.GetUser(bobID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), bob.FollowersCount)
	assert.Equal(t, int64(0), bob.FollowingCount)

	alice, err := uc.GetUser(aliceID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), alice.FollowersCount)
	assert.Equal(t, int64(1), alice.FollowingCount)
}

func TestUpdateProfile_TrimsAndApplies(t *testing.T) {
	uc, _, _ := newUserFixture()
	aliceID, _ := registerPair(t, uc)

	fullName := "  Alice Adler "
	university := "State University"
	bio := "Third-year physics student."
	updated, err := uc.UpdateProfile(aliceID, ProfileUpdate{
		FullName:   &fullName,
		University: &university,
		Bio:        &bio,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Alice Adler", updated.FullName)
	assert.Equal(t, "State University", updated.University)
	assert.Equal(t, bio, updated.Bio)
	assert.Empty(t, updated.Password)
}

func TestUpdateProfile_BioLimit(t *testing.T) {
	uc, repo, _ := newUserFixture()
	aliceID, _ := registerPair(t, uc)

	tooLong := strings.Repeat("b", 501)
	_, err := uc.UpdateProfile(aliceID, ProfileUpdate{Bio: &tooLong})
	assert.ErrorIs(t, err, ErrInvalidBio)
	assert.Empty(t, repo.users[aliceID].Bio)

	// 500 characters is the ceiling, counted in runes, not bytes
	atLimit := strings.Repeat("ü", 500)
	updated, err := uc.UpdateProfile(aliceID, ProfileUpdate{Bio: &atLimit})
	assert.NoError(t, err)
	assert.Equal(t, atLimit, updated.Bio)
}

// erroringUserRepo simulates a storage outage on uniqueness lookups.
type erroringUserRepo struct {
	*fakeUserRepo
	lookupErr error
}

func (r *erroringUserRepo) GetByEmail(email string) (*entity.User, error) {
	return nil, r.lookupErr
}

func TestRegister_LookupFailureIsNotNameFree(t *testing.T) {
	repo := &erroringUserRepo{
		fakeUserRepo: newFakeUserRepo(),
		lookupErr:    errors.New("connection refused"),
	}
	uc := NewUserUseCase(repo, jwt.NewService("test-secret-key", time.Hour), nil, nil, logger.New())

	_, _, err := uc.Register("alice@campus.test", "alice", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, repo.users)
}

func TestUpdateProfile_EmailCollision(t *testing.T) {
	uc, _, _ := newUserFixture()
	aliceID, _ := registerPair(t, uc)

	taken := "bob@campus.test"
	_, err := uc.UpdateProfile(aliceID, ProfileUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
