package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/internal/repository/mocks"
	"github.com/segyhp/loan-ledger/internal/service"
	customError "github.com/segyhp/loan-ledger/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, now *time.Time) (*service.AuthService, *mocks.MockUserRepository, *mocks.MockTokenStore) {
	t.Helper()
	users := &mocks.MockUserRepository{}
	tokens := &mocks.MockTokenStore{}
	svc := service.NewAuthService(users, tokens, "test-secret", time.Hour, nil).
		WithClock(func() time.Time { return *now })
	return svc, users, tokens
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin(t *testing.T) {
	now := time.Now()
	svc, users, tokens := newAuthService(t, &now)
	users.On("GetByUsername", mock.Anything, "admin").
		Return(&domain.User{ID: 1, Username: "admin", PasswordHash: hashed(t, "correct horse")}, nil)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, sql.ErrNoRows)
	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)

	t.Run("valid credentials issue a usable token", func(t *testing.T) {
		response, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "admin", Password: "correct horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, response.Token)
		assert.WithinDuration(t, now.Add(time.Hour), response.ExpiresAt, time.Second)

		claims, err := svc.Authenticate(context.Background(), response.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "1", claims.Subject)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "admin", Password: "wrong"})
		assert.ErrorIs(t, err, customError.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "ghost", Password: "whatever"})
		assert.ErrorIs(t, err, customError.ErrInvalidCredentials)
	})
}

func TestAuthenticate_Rejections(t *testing.T) {
	now := time.Now()
	svc, users, tokens := newAuthService(t, &now)
	users.On("GetByUsername", mock.Anything, "admin").
		Return(&domain.User{ID: 1, Username: "admin", PasswordHash: hashed(t, "correct horse")}, nil)

	response, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "admin", Password: "correct horse"})
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, customError.ErrAuthorizationRequired)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, customError.ErrAuthorizationRequired)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := service.NewAuthService(users, tokens, "other-secret", time.Hour, nil)
		_, err := other.Authenticate(context.Background(), response.Token)
		assert.ErrorIs(t, err, customError.ErrAuthorizationRequired)
	})

	t.Run("expired token", func(t *testing.T) {
		later := now.Add(2 * time.Hour)
		expired, _, _ := newAuthService(t, &later)
		_, err := expired.Authenticate(context.Background(), response.Token)
		assert.ErrorIs(t, err, customError.ErrAuthorizationRequired)
	})

	t.Run("revoked token", func(t *testing.T) {
		tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(true, nil).Once()
		_, err := svc.Authenticate(context.Background(), response.Token)
		assert.ErrorIs(t, err, customError.ErrAuthorizationRequired)
	})

	t.Run("revocation store down", func(t *testing.T) {
		tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, errors.New("redis: connection refused")).Once()
		_, err := svc.Authenticate(context.Background(), response.Token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), customError.ErrCodeCacheError)
	})
}

func TestLogout(t *testing.T) {
	now := time.Now()
	svc, users, tokens := newAuthService(t, &now)
	users.On("GetByUsername", mock.Anything, "admin").
		Return(&domain.User{ID: 1, Username: "admin", PasswordHash: hashed(t, "correct horse")}, nil)

	response, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "admin", Password: "correct horse"})
	require.NoError(t, err)

	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil).Once()
	tokens.On("Revoke", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)

	require.NoError(t, svc.Logout(context.Background(), response.Token))
	tokens.AssertExpectations(t)
}

func TestRegister(t *testing.T) {
	now := time.Now()

	t.Run("hashes the password", func(t *testing.T) {
		svc, users, _ := newAuthService(t, &now)
		users.On("GetByUsername", mock.Anything, "admin").Return(nil, sql.ErrNoRows)
		users.On("Create", mock.Anything, mock.MatchedBy(func(user *domain.User) bool {
			return user.Username == "admin" &&
				bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")) == nil
		})).Return(nil)

		user, err := svc.Register(context.Background(), "admin", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		users.AssertExpectations(t)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _, _ := newAuthService(t, &now)
		_, err := svc.Register(context.Background(), "admin", "123456")
		assert.ErrorIs(t, err, customError.ErrValidation)
	})

	t.Run("existing user", func(t *testing.T) {
		svc, users, _ := newAuthService(t, &now)
		users.On("GetByUsername", mock.Anything, "admin").Return(&domain.User{ID: 1, Username: "admin"}, nil)
		_, err := svc.Register(context.Background(), "admin", "s3cret-pass")
		assert.ErrorIs(t, err, customError.ErrUserAlreadyExists)
	})
}
