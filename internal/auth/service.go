package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service handles registration and login. It is a collaborator of the
// catalog: the catalog core only ever sees the bearer tokens it issues.
type Service struct {
	repo      UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewService(repo UserRepository, jwtSecret string, tokenTTL time.Duration, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    log,
	}
}

// Register creates a new user and returns a signed bearer token.
func (s *Service) Register(ctx context.Context, email, firstName, lastName, password string) (string, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.logger.Warn("registration rejected, email already exists", zap.String("email", email))
		return "", ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	userID, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}

	s.logger.Info("user registered successfully", zap.String("user_id", userID))
	return s.issueToken(userID)
}

// Login verifies credentials and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login rejected, password mismatch", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user.ID)
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
