package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// NewMemory returns Stores backed by in-process maps. Used by unit tests and
// available as a db-less dialect for local experiments.
func NewMemory() Stores {
	posts := &memoryPosts{byID: map[string]Post{}}

	return Stores{
		Users:    &memoryUsers{byID: map[string]User{}},
		Posts:    posts,
		Comments: &memoryComments{byID: map[string]Comment{}, posts: posts},
	}
}

type memoryUsers struct {
	mu   sync.RWMutex
	byID map[string]User
}

func (s *memoryUsers) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byID {
		if u.Username == user.Username {
			return fmt.Errorf("failed to create user: duplicate username %q", user.Username)
		}
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	s.byID[user.ID] = *user

	return nil
}

func (s *memoryUsers) FindByID(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

func (s *memoryUsers) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.byID {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

type memoryPosts struct {
	mu   sync.RWMutex
	byID map[string]Post
}

func (s *memoryPosts) Create(_ context.Context, post *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
		post.UpdatedAt = post.CreatedAt
	}

	s.byID[post.ID] = *post

	return nil
}

func (s *memoryPosts) FindByID(_ context.Context, id string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &p, nil
}

func (s *memoryPosts) FindByUser(_ context.Context, userID string) ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []*Post

	for _, p := range s.byID {
		if p.UserID == userID {
			p := p
			rows = append(rows, &p)
		}
	}

	sortPosts(rows)

	return rows, nil
}

func (s *memoryPosts) FindAll(_ context.Context) ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*Post, 0, len(s.byID))

	for _, p := range s.byID {
		p := p
		rows = append(rows, &p)
	}

	sortPosts(rows)

	return rows, nil
}

func (s *memoryPosts) UpdateContent(_ context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	p.Content = content
	p.UpdatedAt = time.Now()
	s.byID[id] = p

	return nil
}

func (s *memoryPosts) SetCommentIDs(_ context.Context, id string, commentIDs IDList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	p.CommentIDs = commentIDs
	s.byID[id] = p

	return nil
}

func (s *memoryPosts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, id)

	return nil
}

type memoryComments struct {
	mu    sync.RWMutex
	byID  map[string]Comment
	posts *memoryPosts
}

func (s *memoryComments) Create(_ context.Context, comment *Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	s.byID[comment.ID] = *comment

	return nil
}

func (s *memoryComments) FindByPost(_ context.Context, postID string) ([]*Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []*Comment

	for _, c := range s.byID {
		if c.PostID == postID {
			c := c
			rows = append(rows, &c)
		}
	}

	sortComments(rows)

	return rows, nil
}

func (s *memoryComments) FindByIDs(_ context.Context, ids []string) ([]*Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []*Comment

	for _, id := range ids {
		if c, ok := s.byID[id]; ok {
			c := c
			rows = append(rows, &c)
		}
	}

	return rows, nil
}

func (s *memoryComments) CountOrphans(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.posts == nil {
		return 0, nil
	}

	s.posts.mu.RLock()
	defer s.posts.mu.RUnlock()

	var count int64

	for _, c := range s.byID {
		if _, ok := s.posts.byID[c.PostID]; !ok {
			count++
		}
	}

	return count, nil
}

func sortPosts(rows []*Post) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID < rows[j].ID
		}

		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
}

func sortComments(rows []*Comment) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID < rows[j].ID
		}

		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
}
