package biz

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/store"
)

// Config carries the credential-signing state. It is constructed once at
// startup and handed to the AuthService; nothing mutates it afterwards.
type Config struct {
	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string `conf:"jwt_secret" yaml:"jwt_secret" json:"jwt_secret"`
	// TokenExpiry bounds token lifetime. Zero means tokens never expire,
	// which matches the historical behavior clients rely on.
	TokenExpiry time.Duration `conf:"token_expiry" yaml:"token_expiry" json:"token_expiry"`
}

type AuthServiceParams struct {
	fx.In

	Config      Config
	UserService *UserService
}

func NewAuthService(params AuthServiceParams) *AuthService {
	return &AuthService{
		Config:      params.Config,
		UserService: params.UserService,
	}
}

type AuthService struct {
	Config      Config
	UserService *UserService
}

// GenerateSecretKey generates a random secret key for JWT.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32) // 256 bits

	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}

// SignToken mints a bearer token embedding the user id.
func (s *AuthService) SignToken(ctx context.Context, user *store.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
	}

	if s.Config.TokenExpiry > 0 {
		claims["exp"] = time.Now().Add(s.Config.TokenExpiry).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Login authenticates a user by username and password and mints a token.
// Unknown usernames and wrong passwords both come back as ErrLoginFailed, so
// callers cannot probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.UserService.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error(ctx, "failed to look up user for login", log.Cause(err))
		}

		return "", ErrLoginFailed
	}

	if user.Password != password {
		return "", ErrLoginFailed
	}

	token, err := s.SignToken(ctx, user)
	if err != nil {
		log.Error(ctx, "failed to sign token", log.Cause(err))
		return "", ErrLoginFailed
	}

	log.Debug(ctx, "user logged in", log.String("user_id", user.ID))

	return token, nil
}

// AuthenticateToken validates a bearer token and returns the user it
// identifies. Every failure mode collapses into ErrInvalidToken.
func (s *AuthService) AuthenticateToken(ctx context.Context, tokenString string) (*store.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method: %v", ErrInvalidToken, token.Header["alg"])
		}

		return []byte(s.Config.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse token: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrInvalidToken)
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}

	user, err := s.UserService.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %w", ErrInvalidToken, err)
	}

	return user, nil
}
