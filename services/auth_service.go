package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/project-registry/dto"
	"github.com/project-registry/logutils"
	"github.com/project-registry/models"
	"github.com/project-registry/repositories"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for stored password hashes
const passwordCost = 10

// AuthService registers accounts and issues access tokens
type AuthService struct {
	userRepo  repositories.UserRepository
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates an auth service signing tokens with secret
func NewAuthService(userRepo repositories.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		secretKey: []byte(secret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	// Check if email already exists
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, persistenceError("find user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, persistenceError("create user", err)
	}

	logutils.Log.WithField("user_id", user.ID).Info("user registered")
	return &user, nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, persistenceError("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateToken generates a signed HS256 JWT for a user
func (s *AuthService) GenerateToken(userID string) (string, time.Time, error) {
	if len(s.secretKey) == 0 {
		return "", time.Time{}, errors.New("token signing secret is not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := dto.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
