package biz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/store"
)

type PostServiceParams struct {
	fx.In

	Stores      store.Stores
	UserService *UserService
}

type PostService struct {
	posts store.Posts

	UserService *UserService
}

func NewPostService(params PostServiceParams) *PostService {
	return &PostService{
		posts:       params.Stores.Posts,
		UserService: params.UserService,
	}
}

// CreatePost persists a new post owned by the given user, with an empty
// comment list.
func (s *PostService) CreatePost(ctx context.Context, userID, content string) error {
	post := &store.Post{
		ID:      uuid.NewString(),
		UserID:  userID,
		Content: content,
	}

	err := s.posts.Create(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	log.Debug(ctx, "post created", log.String("post_id", post.ID), log.String("user_id", userID))

	return nil
}

// UpdatePost overwrites the post's content, then re-reads it joined with its
// owner. Returns store.ErrNotFound when no post has the given id. There is no
// ownership check: any authenticated caller may update any post.
func (s *PostService) UpdatePost(ctx context.Context, postID, content string) (*store.Post, *store.User, error) {
	err := s.posts.UpdateContent(ctx, postID, content)
	if err != nil {
		return nil, nil, err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload updated post: %w", err)
	}

	owner, err := s.UserService.GetUserByID(ctx, post.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load post owner: %w", err)
	}

	return post, owner, nil
}

// DeletePost removes the post by id. Deleting a missing id succeeds as a
// no-op, and there is no ownership check beyond authentication.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	err := s.posts.Delete(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	log.Debug(ctx, "post deleted", log.String("post_id", postID))

	return nil
}

// ListByUser returns all posts owned by the given user.
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]*store.Post, error) {
	return s.posts.FindByUser(ctx, userID)
}

// ListAll returns every post.
func (s *PostService) ListAll(ctx context.Context) ([]*store.Post, error) {
	return s.posts.FindAll(ctx)
}

// GetPost loads one post by id.
func (s *PostService) GetPost(ctx context.Context, postID string) (*store.Post, error) {
	return s.posts.FindByID(ctx, postID)
}
