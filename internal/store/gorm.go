package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// NewGorm returns Stores backed by the given gorm database.
func NewGorm(db *gorm.DB) Stores {
	return Stores{
		Users:    &gormUsers{db: db},
		Posts:    &gormPosts{db: db},
		Comments: &gormComments{db: db},
	}
}

type gormUsers struct {
	db *gorm.DB
}

func (s *gormUsers) Create(ctx context.Context, user *User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *gormUsers) FindByID(ctx context.Context, id string) (*User, error) {
	var row User

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}

	return &row, nil
}

func (s *gormUsers) FindByUsername(ctx context.Context, username string) (*User, error) {
	var row User

	err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	return &row, nil
}

type gormPosts struct {
	db *gorm.DB
}

func (s *gormPosts) Create(ctx context.Context, post *Post) error {
	err := s.db.WithContext(ctx).Create(post).Error
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (s *gormPosts) FindByID(ctx context.Context, id string) (*Post, error) {
	var row Post

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find post by id: %w", err)
	}

	return &row, nil
}

func (s *gormPosts) FindByUser(ctx context.Context, userID string) ([]*Post, error) {
	var rows []*Post

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find posts by user: %w", err)
	}

	return rows, nil
}

func (s *gormPosts) FindAll(ctx context.Context) ([]*Post, error) {
	var rows []*Post

	err := s.db.WithContext(ctx).Order("created_at").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	return rows, nil
}

func (s *gormPosts) UpdateContent(ctx context.Context, id, content string) error {
	res := s.db.WithContext(ctx).
		Model(&Post{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return fmt.Errorf("failed to update post content: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *gormPosts) SetCommentIDs(ctx context.Context, id string, commentIDs IDList) error {
	res := s.db.WithContext(ctx).
		Model(&Post{}).
		Where("id = ?", id).
		Update("comment_ids", commentIDs)
	if res.Error != nil {
		return fmt.Errorf("failed to update post comments: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *gormPosts) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Post{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

type gormComments struct {
	db *gorm.DB
}

func (s *gormComments) Create(ctx context.Context, comment *Comment) error {
	err := s.db.WithContext(ctx).Create(comment).Error
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (s *gormComments) FindByPost(ctx context.Context, postID string) ([]*Comment, error) {
	var rows []*Comment

	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments by post: %w", err)
	}

	return rows, nil
}

func (s *gormComments) FindByIDs(ctx context.Context, ids []string) ([]*Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []*Comment

	err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments by ids: %w", err)
	}

	// The database returns the IN set in arbitrary order; the caller's id
	// list is the post's ordered reference list, so follow it.
	byID := lo.KeyBy(rows, func(c *Comment) string { return c.ID })

	ordered := make([]*Comment, 0, len(rows))

	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}

	return ordered, nil
}

func (s *gormComments) CountOrphans(ctx context.Context) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&Comment{}).
		Where("post_id NOT IN (?)", s.db.Model(&Post{}).Select("id")).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orphaned comments: %w", err)
	}

	return count, nil
}
