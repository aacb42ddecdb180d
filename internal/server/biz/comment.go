package biz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/store"
)

type CommentServiceParams struct {
	fx.In

	Stores store.Stores
}

type CommentService struct {
	comments store.Comments
	posts    store.Posts
}

func NewCommentService(params CommentServiceParams) *CommentService {
	return &CommentService{
		comments: params.Stores.Comments,
		posts:    params.Stores.Posts,
	}
}

// CreateComment writes the comment row, then appends its id to the parent
// post's comment list in a second write. The two writes are not atomic: when
// the second one fails the comment stays behind unlinked, and the caller gets
// ErrCommentLink so the outcome is distinguishable from a clean save.
func (s *CommentService) CreateComment(ctx context.Context, postID, content string) error {
	comment := &store.Comment{
		ID:      uuid.NewString(),
		PostID:  postID,
		Content: content,
	}

	err := s.comments.Create(ctx, comment)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommentSave, err)
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		log.Warn(ctx, "comment saved but parent post could not be loaded",
			log.String("comment_id", comment.ID),
			log.String("post_id", postID),
			log.Cause(err),
		)

		return fmt.Errorf("%w: %w", ErrCommentLink, err)
	}

	err = s.posts.SetCommentIDs(ctx, postID, append(post.CommentIDs, comment.ID))
	if err != nil {
		log.Warn(ctx, "comment saved but could not be linked to post",
			log.String("comment_id", comment.ID),
			log.String("post_id", postID),
			log.Cause(err),
		)

		return fmt.Errorf("%w: %w", ErrCommentLink, err)
	}

	log.Debug(ctx, "comment created", log.String("comment_id", comment.ID), log.String("post_id", postID))

	return nil
}

// ListByPost returns all comments attached to the given post id.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*store.Comment, error) {
	return s.comments.FindByPost(ctx, postID)
}

// GetByIDs resolves a post's comment reference list into comment rows.
// References that no longer resolve are dropped silently.
func (s *CommentService) GetByIDs(ctx context.Context, ids []string) ([]*store.Comment, error) {
	return s.comments.FindByIDs(ctx, ids)
}
