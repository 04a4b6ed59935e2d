package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"storefront-service/models"
	"storefront-service/repository"
)

// AuthService handles account registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret string) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
	}
}

// Register creates an account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *ServiceError) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "Email already registered"}
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, persistenceFailure("Failed to check existing account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, persistenceFailure("Failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, persistenceFailure("Failed to create account", err)
	}
	return user, nil
}

// Login verifies the password and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, *ServiceError) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
		}
		return "", nil, persistenceFailure("Failed to look up account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, persistenceFailure("Failed to sign token", err)
	}
	return token, user, nil
}

// ParseToken validates a session token and returns the user id carried
// in its claims.
func (s *AuthService) ParseToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("missing user_id claim")
	}
	return uint(id), nil
}
