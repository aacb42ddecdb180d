package biz

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MagedNabil/graphQL/internal/pkg/xcache"
	"github.com/MagedNabil/graphQL/internal/store"
)

func setupTestServices(t *testing.T) (*AuthService, *UserService, store.Stores) {
	t.Helper()

	stores := store.NewMemory()
	userService := NewUserService(UserServiceParams{
		CacheConfig: xcache.Config{Mode: xcache.ModeMemory},
		Stores:      stores,
	})
	authService := NewAuthService(AuthServiceParams{
		Config:      Config{JWTSecret: "test-secret-key"},
		UserService: userService,
	})

	return authService, userService, stores
}

func registerTestUser(t *testing.T, users *UserService, username, password string) *store.User {
	t.Helper()

	user, err := users.CreateUser(context.Background(), CreateUserInput{
		Username:  username,
		Password:  password,
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)

	return user
}

func TestGenerateSecretKey(t *testing.T) {
	secretKey, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEmpty(t, secretKey)
	assert.Len(t, secretKey, 64) // 32 bytes * 2 (hex encoding)

	// Test that multiple calls produce different keys
	secretKey2, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, secretKey, secretKey2)
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := setupTestServices(t)
	user := registerTestUser(t, users, "alice", "pw1")

	token, err := auth.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	authenticated, err := auth.AuthenticateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)
	assert.Equal(t, "alice", authenticated.Username)
}

func TestLoginGenericFailure(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := setupTestServices(t)
	registerTestUser(t, users, "alice", "pw1")

	_, unknownErr := auth.Login(ctx, "nobody", "pw1")
	require.Error(t, unknownErr)

	_, wrongErr := auth.Login(ctx, "alice", "wrong")
	require.Error(t, wrongErr)

	// Unknown handle and wrong password must be indistinguishable.
	assert.ErrorIs(t, unknownErr, ErrLoginFailed)
	assert.ErrorIs(t, wrongErr, ErrLoginFailed)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthenticateTokenFailures(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := setupTestServices(t)
	user := registerTestUser(t, users, "alice", "pw1")

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.AuthenticateToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := auth.AuthenticateToken(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("forged signature", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
		})

		tokenString, err := forged.SignedString([]byte("wrong-secret"))
		require.NoError(t, err)

		_, err = auth.AuthenticateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown account", func(t *testing.T) {
		orphan := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "no-such-user",
		})

		tokenString, err := orphan.SignedString([]byte(auth.Config.JWTSecret))
		require.NoError(t, err)

		_, err = auth.AuthenticateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user_id claim", func(t *testing.T) {
		bare := jwt.New(jwt.SigningMethodHS256)

		tokenString, err := bare.SignedString([]byte(auth.Config.JWTSecret))
		require.NoError(t, err)

		_, err = auth.AuthenticateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSignTokenExpiry(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := setupTestServices(t)
	user := registerTestUser(t, users, "alice", "pw1")

	parseClaims := func(t *testing.T, tokenString string) jwt.MapClaims {
		t.Helper()

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			return []byte(auth.Config.JWTSecret), nil
		})
		require.NoError(t, err)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)

		return claims
	}

	t.Run("no expiry by default", func(t *testing.T) {
		tokenString, err := auth.SignToken(ctx, user)
		require.NoError(t, err)

		claims := parseClaims(t, tokenString)
		assert.Equal(t, user.ID, claims["user_id"])
		assert.NotContains(t, claims, "exp")
	})

	t.Run("expiry when configured", func(t *testing.T) {
		bounded := NewAuthService(AuthServiceParams{
			Config: Config{
				JWTSecret:   auth.Config.JWTSecret,
				TokenExpiry: time.Hour,
			},
			UserService: auth.UserService,
		})

		tokenString, err := bounded.SignToken(ctx, user)
		require.NoError(t, err)

		claims := parseClaims(t, tokenString)
		assert.Contains(t, claims, "exp")
	})
}
