package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"task-planner/internal/model"
	"task-planner/internal/repository"
)

// Credentials is the register/login payload.
type Credentials struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// AuthService registers users and issues bearer tokens for them.
type AuthService struct {
	users  *repository.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl}
}

func (s *AuthService) Register(ctx context.Context, creds Credentials) (*model.User, error) {
	verr := newValidationError()
	if err := validate.Struct(creds); err != nil {
		collectFieldErrors(err, verr)
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	_, err := s.users.FindByUsername(ctx, creds.Username)
	switch {
	case err == nil:
		return nil, fmt.Errorf("username %q: %w", creds.Username, ErrConflict)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Username: creds.Username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (string, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, creds.Username)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", nil, ErrInvalidCredentials
	case err != nil:
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *model.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.ID
	claims["username"] = user.Username
	claims["exp"] = time.Now().Add(s.ttl).Unix()
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a bearer token and returns the user id it carries.
func (s *AuthService) ParseToken(raw string) (uint, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidCredentials
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidCredentials
	}
	return uint(id), nil
}
