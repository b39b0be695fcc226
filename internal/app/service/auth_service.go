package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

// AuthService owns credential handling so the rest of the core only ever
// sees a resolved user id.
type AuthService struct {
	users  ports.UserStore
	secret []byte
	expire time.Duration
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(users ports.UserStore, secret string, expire time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), expire: expire}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthSession, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.CreateUserInput{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	return s.session(*user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.session(*user)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// VerifyToken parses a bearer token and returns the user id it carries.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected token claims")
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", errors.New("token missing user id")
	}
	return id, nil
}

func (s *AuthService) session(user domain.User) (*ports.AuthSession, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.expire).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &ports.AuthSession{Token: signed, User: user}, nil
}
