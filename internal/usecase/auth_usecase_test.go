package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentio/internal/domain/entity"
	apperrors "rentio/pkg/errors"
)

type fakeAuthClient struct {
	users  map[string]string // email -> password
	tokens map[string]string // token -> uid
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{
		users:  make(map[string]string),
		tokens: make(map[string]string),
	}
}

func (f *fakeAuthClient) CreateUser(_ context.Context, email, password, _ string) (string, error) {
	if _, exists := f.users[email]; exists {
		return "", apperrors.Conflict("Email is already registered")
	}
	f.users[email] = password
	uid := "uid-" + email
	f.tokens["token-"+email] = uid
	return uid, nil
}

func (f *fakeAuthClient) VerifyToken(_ context.Context, token string) (string, error) {
	uid, ok := f.tokens[token]
	if !ok {
		return "", apperrors.Unauthorized("Invalid token", nil)
	}
	return uid, nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	stored, ok := f.users[email]
	if !ok {
		return "", apperrors.NotFound("User", nil)
	}
	if stored != password {
		return "", apperrors.Unauthorized("Invalid email or password", nil)
	}
	return "token-" + email, nil
}

type fakeUserRepository struct {
	users map[string]*entity.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("User", nil)
	}
	return user, nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func TestRegisterCreatesProfileAndSignsIn(t *testing.T) {
	userRepo := newFakeUserRepository()
	uc := NewAuthUseCase(userRepo, newFakeAuthClient())

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:       "anna@example.com",
		Password:    "secret123",
		DisplayName: "Anna",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "anna@example.com", result.User.Email)
	assert.Equal(t, "Anna", result.User.DisplayName)
	assert.NotEmpty(t, result.User.PhotoURL)

	stored, err := userRepo.GetByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", stored.DisplayName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepository(), newFakeAuthClient())
	ctx := context.Background()

	input := RegisterInput{Email: "anna@example.com", Password: "secret123", DisplayName: "Anna"}
	_, err := uc.Register(ctx, input)
	require.NoError(t, err)

	_, err = uc.Register(ctx, input)
	assert.True(t, apperrors.Is(err, "CONFLICT"))
}

func TestLogin(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepository(), newFakeAuthClient())
	ctx := context.Background()

	_, err := uc.Register(ctx, RegisterInput{
		Email: "anna@example.com", Password: "secret123", DisplayName: "Anna",
	})
	require.NoError(t, err)

	result, err := uc.Login(ctx, "anna@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Anna", result.User.DisplayName)

	_, err = uc.Login(ctx, "anna@example.com", "wrong")
	assert.True(t, apperrors.Is(err, "UNAUTHORIZED"))

	_, err = uc.Login(ctx, "nobody@example.com", "secret123")
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
}

func TestCurrentUser(t *testing.T) {
	userRepo := newFakeUserRepository()
	uc := NewAuthUseCase(userRepo, newFakeAuthClient())
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{
		Email: "anna@example.com", Password: "secret123", DisplayName: "Anna",
	})
	require.NoError(t, err)

	user, err := uc.CurrentUser(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)

	_, err = uc.CurrentUser(ctx, "unknown")
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
}
