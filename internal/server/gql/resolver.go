package gql

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/MagedNabil/graphQL/internal/contexts"
	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/server/biz"
	"github.com/MagedNabil/graphQL/internal/store"
)

// Status markers returned inside the declared response shapes.
const (
	statusAuthError      = "Authentication error"
	statusLoginFailed    = "Login failed"
	statusPostCreated    = "Success"
	statusPostDeleted    = "Post Deleted"
	statusPostDeleteFail = "can not delete the post"
	statusPostUpdateFail = "Failed to update post"
	statusCommentSaved   = "Comment Created Successfully"
	statusCommentSave    = "Error saving comment"
	statusCommentLink    = "Comment Couldn't be saved"
	statusCommentsFail   = "Error Happened"
)

// Resolver is the resolver root.
type Resolver struct {
	authService    *biz.AuthService
	userService    *biz.UserService
	postService    *biz.PostService
	commentService *biz.CommentService
}

func NewResolver(
	authService *biz.AuthService,
	userService *biz.UserService,
	postService *biz.PostService,
	commentService *biz.CommentService,
) *Resolver {
	return &Resolver{
		authService:    authService,
		userService:    userService,
		postService:    postService,
		commentService: commentService,
	}
}

// authenticate turns a bearer token argument into the calling user. Every
// failure mode collapses into nil: the caller only ever distinguishes
// authenticated from not. On success the user is stashed on the request
// container so access logging can attribute the request.
func (r *Resolver) authenticate(ctx context.Context, token *string) (context.Context, *store.User) {
	user, err := r.authService.AuthenticateToken(ctx, lo.FromPtr(token))
	if err != nil {
		contexts.AddError(ctx, err)
		return ctx, nil
	}

	return contexts.WithUser(ctx, user), user
}

// shapePost joins a stored post with its owner and resolved comments.
func (r *Resolver) shapePost(ctx context.Context, post *store.Post, owner *store.User) *postResolver {
	comments, err := r.commentService.GetByIDs(ctx, post.CommentIDs)
	if err != nil {
		log.Warn(ctx, "failed to resolve post comments",
			log.String("post_id", post.ID), log.Cause(err))

		comments = nil
	}

	return &postResolver{
		comments: lo.Map(comments, func(c *store.Comment, _ int) *commentResolver {
			return newCommentResolver(c)
		}),
		content: post.Content,
		user:    newUserResolver(owner),
	}
}

func (r *Resolver) Hello() *string {
	return lo.ToPtr("Hello world")
}

type userRegistrationInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Age       *int32
}

func (r *Resolver) CreateUser(ctx context.Context, args struct {
	UserData *userRegistrationInput
},
) (*userResolver, error) {
	if args.UserData == nil {
		return nil, errors.New("userData is required")
	}

	ctx = contexts.WithOperationName(ctx, "createUser")

	user, err := r.userService.CreateUser(ctx, biz.CreateUserInput{
		Username:  args.UserData.Username,
		Password:  args.UserData.Password,
		FirstName: args.UserData.FirstName,
		LastName:  args.UserData.LastName,
		Age:       args.UserData.Age,
	})
	if err != nil {
		// Registration is the one operation whose write failures surface
		// on the transport error channel, uniqueness violations included.
		return nil, err
	}

	return newUserResolver(user), nil
}

func (r *Resolver) LoginUser(ctx context.Context, args struct {
	Username *string
	Password *string
},
) *loginPayloadResolver {
	ctx = contexts.WithOperationName(ctx, "loginUser")

	token, err := r.authService.Login(ctx, lo.FromPtr(args.Username), lo.FromPtr(args.Password))
	if err != nil {
		// Unknown username and wrong password produce the same payload.
		contexts.AddError(ctx, err)

		return &loginPayloadResolver{err: lo.ToPtr(statusLoginFailed)}
	}

	return &loginPayloadResolver{token: lo.ToPtr(token)}
}

func (r *Resolver) PostCreate(ctx context.Context, args struct {
	Token   *string
	Content *string
},
) (*string, error) {
	ctx = contexts.WithOperationName(ctx, "postCreate")

	ctx, user := r.authenticate(ctx, args.Token)
	if user == nil {
		return lo.ToPtr(statusAuthError), nil
	}

	err := r.postService.CreatePost(ctx, user.ID, lo.FromPtr(args.Content))
	if err != nil {
		return nil, err
	}

	return lo.ToPtr(statusPostCreated), nil
}

func (r *Resolver) PostUpdate(ctx context.Context, args struct {
	Token   *string
	Content *string
	PostID  *string
},
) *postResolver {
	ctx = contexts.WithOperationName(ctx, "postUpdate")

	ctx, user := r.authenticate(ctx, args.Token)
	if user == nil {
		return newPostErrorResolver(statusAuthError)
	}

	post, owner, err := r.postService.UpdatePost(ctx, lo.FromPtr(args.PostID), lo.FromPtr(args.Content))
	if err != nil {
		contexts.AddError(ctx, err)

		return newPostErrorResolver(statusPostUpdateFail)
	}

	return r.shapePost(ctx, post, owner)
}

func (r *Resolver) PostDelete(ctx context.Context, args struct {
	Token  *string
	PostID *string
},
) *string {
	ctx = contexts.WithOperationName(ctx, "postDelete")

	ctx, user := r.authenticate(ctx, args.Token)
	if user == nil {
		return lo.ToPtr(statusAuthError)
	}

	err := r.postService.DeletePost(ctx, lo.FromPtr(args.PostID))
	if err != nil {
		contexts.AddError(ctx, err)

		return lo.ToPtr(statusPostDeleteFail)
	}

	return lo.ToPtr(statusPostDeleted)
}

func (r *Resolver) CommentCreate(ctx context.Context, args struct {
	Token   *string
	PostID  *string
	Content *string
},
) *string {
	ctx = contexts.WithOperationName(ctx, "commentCreate")

	ctx, user := r.authenticate(ctx, args.Token)
	if user == nil {
		return lo.ToPtr(statusAuthError)
	}

	err := r.commentService.CreateComment(ctx, lo.FromPtr(args.PostID), lo.FromPtr(args.Content))

	switch {
	case errors.Is(err, biz.ErrCommentSave):
		contexts.AddError(ctx, err)

		return lo.ToPtr(statusCommentSave)
	case err != nil:
		// Covers the link step: the comment row exists but the parent
		// post's comment list was not updated.
		contexts.AddError(ctx, err)

		return lo.ToPtr(statusCommentLink)
	}

	return lo.ToPtr(statusCommentSaved)
}

func (r *Resolver) GetMyPosts(ctx context.Context, args struct {
	Token *string
},
) []*postResolver {
	ctx = contexts.WithOperationName(ctx, "getMyPosts")

	ctx, user := r.authenticate(ctx, args.Token)
	if user == nil {
		return []*postResolver{newPostErrorResolver(statusAuthError)}
	}

	posts, err := r.postService.ListByUser(ctx, user.ID)
	if err != nil {
		log.Error(ctx, "failed to list posts", log.String("user_id", user.ID), log.Cause(err))
		contexts.AddError(ctx, err)

		return []*postResolver{newPostErrorResolver(statusPostUpdateFail)}
	}

	// The owner is the caller for every row; no per-post re-fetch.
	return lo.Map(posts, func(post *store.Post, _ int) *postResolver {
		return r.shapePost(ctx, post, user)
	})
}

func (r *Resolver) GetAllPosts(ctx context.Context) []*postResolver {
	ctx = contexts.WithOperationName(ctx, "getAllPosts")

	posts, err := r.postService.ListAll(ctx)
	if err != nil {
		log.Error(ctx, "failed to list posts", log.Cause(err))
		contexts.AddError(ctx, err)

		return []*postResolver{}
	}

	return lo.Map(posts, func(post *store.Post, _ int) *postResolver {
		owner, err := r.userService.GetUserByID(ctx, post.UserID)
		if err != nil {
			log.Warn(ctx, "failed to resolve post owner",
				log.String("post_id", post.ID), log.Cause(err))
		}

		return r.shapePost(ctx, post, owner)
	})
}

func (r *Resolver) GetPostComments(ctx context.Context, args struct {
	PostID *string
},
) []*commentResolver {
	ctx = contexts.WithOperationName(ctx, "getPostComments")

	comments, err := r.commentService.ListByPost(ctx, lo.FromPtr(args.PostID))
	if err != nil {
		contexts.AddError(ctx, err)

		return []*commentResolver{newCommentErrorMarker(statusCommentsFail)}
	}

	return lo.Map(comments, func(c *store.Comment, _ int) *commentResolver {
		return newCommentResolver(c)
	})
}
