package biz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/pkg/xcache"
	"github.com/MagedNabil/graphQL/internal/store"
)

type UserServiceParams struct {
	fx.In

	CacheConfig xcache.Config
	Stores      store.Stores
}

type UserService struct {
	users store.Users

	UserCache xcache.Cache[store.User]
}

func NewUserService(params UserServiceParams) *UserService {
	return &UserService{
		users:     params.Stores.Users,
		UserCache: xcache.NewFromConfig[store.User](params.CacheConfig),
	}
}

// CreateUserInput is the registration payload. Username, password and both
// names are mandatory; age is optional.
type CreateUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Age       *int32
}

// CreateUser persists a new account. Username uniqueness is enforced by the
// store's unique index; a violation surfaces as a plain write failure, there
// is no pre-check here.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*store.User, error) {
	user := &store.User{
		ID:        uuid.NewString(),
		Username:  input.Username,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Age:       input.Age,
	}

	err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Debug(ctx, "user created", log.String("user_id", user.ID))

	return user, nil
}

// GetUserByID loads a user, consulting the cache first.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*store.User, error) {
	cacheKey := userCacheKey(id)

	cached, err := s.UserCache.Get(ctx, cacheKey)
	if err == nil && cached.ID != "" {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.UserCache.Set(ctx, cacheKey, *user); err != nil {
		log.Warn(ctx, "failed to cache user", log.String("user_id", id), log.Cause(err))
	}

	return user, nil
}

// GetUserByUsername loads a user by its unique username. Not cached: it is
// only on the login path, which must always see current credentials.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func userCacheKey(id string) string {
	return "user:" + id
}
