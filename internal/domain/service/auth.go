package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/studyhive/studyhive-backend/internal/domain/common/errorz"
	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type sessionStorage interface {
	Set(ctx context.Context, sessionID, userID string, expiration time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type AuthService struct {
	userStorage UserStorage
	sessions    sessionStorage

	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userStorage UserStorage, sessions sessionStorage, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userStorage: userStorage,
		sessions:    sessions,
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	user, err = s.userStorage.Create(ctx, user)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorz.EmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a signed bearer token whose
// jti is backed by a redis session, so a token can be revoked by
// deleting the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errorz.InvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", errorz.InvalidCredentials
	}

	sessionID := uuid.New().String()
	if err = s.sessions.Set(ctx, sessionID, user.ID, s.tokenTTL); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sub": user.ID,
		"jti": sessionID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Authenticate resolves a bearer token to the user id it was issued for.
// The signature, the expiry and the backing session must all be valid.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errorz.InvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errorz.InvalidCredentials
	}
	userID, _ := claims["sub"].(string)
	sessionID, _ := claims["jti"].(string)
	if userID == "" || sessionID == "" {
		return "", errorz.InvalidCredentials
	}

	sessionUser, err := s.sessions.Get(ctx, sessionID)
	if err != nil || sessionUser != userID {
		return "", errorz.InvalidCredentials
	}
	return userID, nil
}

// Logout revokes the session behind the token. Revoking an unknown or
// already revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}
