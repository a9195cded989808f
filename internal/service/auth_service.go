package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/internal/repository"
	customError "github.com/segyhp/loan-ledger/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to accounts created through Register.
const MinPasswordLength = 8

// Claims identify the actor behind a session token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	UserRepo repository.UserRepository
	Tokens   repository.TokenStore
	secret   []byte
	ttl      time.Duration
	log      *logrus.Logger
	now      func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens repository.TokenStore,
	secret string,
	ttl time.Duration,
	log *logrus.Logger,
) *AuthService {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &AuthService{
		UserRepo: userRepo,
		Tokens:   tokens,
		secret:   []byte(secret),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// WithClock replaces the time source used to issue and verify tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Register creates a user with a bcrypt password hash
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, customError.WrapValidation(errors.New("username is required"))
	}
	if len(password) < MinPasswordLength {
		return nil, customError.WrapValidation(errors.New("password must have at least 8 characters"))
	}

	_, err := s.UserRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, customError.WrapUserAlreadyExists(username)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Username: username, PasswordHash: string(hash)}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithField("username", username).Info("user registered")
	return user, nil
}

// Login checks the credentials and issues a signed session token
func (s *AuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.UserRepo.GetByUsername(ctx, request.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapInvalidCredentials()
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		s.log.WithField("username", request.Username).Warn("login rejected")
		return nil, customError.WrapInvalidCredentials()
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	s.log.WithField("username", user.Username).Info("user logged in")
	return &domain.LoginResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// Authenticate validates a session token and returns its claims
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, customError.WrapAuthorizationRequired("missing session token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, customError.WrapAuthorizationRequired("invalid session token")
	}

	revoked, err := s.Tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, customError.WrapCacheError(err)
	}
	if revoked {
		return nil, customError.WrapAuthorizationRequired("session has ended")
	}

	return claims, nil
}

// Logout revokes a token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.Authenticate(ctx, tokenString)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.Tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return customError.WrapCacheError(err)
	}

	s.log.WithField("username", claims.Username).Info("user logged out")
	return nil
}
