package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"taskchat/internal/config"
	"taskchat/internal/models"
	"taskchat/internal/repository"
)

// bcrypt operates on at most 72 bytes; longer passwords are truncated before
// hashing, matching what existing hashes were produced from.
const maxPasswordBytes = 72

const bcryptCost = 12

// AuthService handles registration, credential checks and bearer tokens.
type AuthService struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
}

// NewAuthService initializes a new auth service
func NewAuthService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, log: log, config: cfg}
}

// Register creates a new user with a hashed password. Fails with
// ErrEmailTaken when the email is already registered (exact match).
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	existing, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), truncatePassword(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs an expiring bearer token for the user. A non-positive ttl
// falls back to the configured default.
func (s *AuthService) IssueToken(user *models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.config.TokenTTL
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the subject email.
// Any failure yields ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		s.log.Debugf("Token verification failed: %v", err)
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
