package gql

import (
	"github.com/samber/lo"

	"github.com/MagedNabil/graphQL/internal/store"
)

// Response shapes. Domain failures travel inside these values, never as
// transport-level errors: an operation that declares Post always yields a
// Post-shaped result, error-marked when it failed.

type userResolver struct {
	firstName string
	lastName  string
	age       *int32
}

func (r *userResolver) FirstName() string { return r.firstName }
func (r *userResolver) LastName() string  { return r.lastName }
func (r *userResolver) Age() *int32       { return r.age }

func newUserResolver(user *store.User) *userResolver {
	if user == nil {
		return &userResolver{}
	}

	return &userResolver{
		firstName: user.FirstName,
		lastName:  user.LastName,
		age:       user.Age,
	}
}

type commentResolver struct {
	err     *string
	content *string
}

func (r *commentResolver) Error() *string   { return r.err }
func (r *commentResolver) Content() *string { return r.content }

func newCommentResolver(comment *store.Comment) *commentResolver {
	return &commentResolver{content: lo.ToPtr(comment.Content)}
}

func newCommentErrorMarker(message string) *commentResolver {
	return &commentResolver{err: lo.ToPtr(message)}
}

type postResolver struct {
	err      *string
	comments []*commentResolver
	content  string
	user     *userResolver
}

func (r *postResolver) Error() *string { return r.err }

func (r *postResolver) Comments() *[]*commentResolver {
	if r.comments == nil {
		return nil
	}

	return &r.comments
}

func (r *postResolver) Content() string     { return r.content }
func (r *postResolver) User() *userResolver { return r.user }

// newPostErrorResolver builds the error-shaped Post callers destructure
// unconditionally: empty content, empty nested user, explicit message.
func newPostErrorResolver(message string) *postResolver {
	return &postResolver{
		err:     lo.ToPtr(message),
		content: "",
		user:    &userResolver{},
	}
}

type loginPayloadResolver struct {
	token *string
	err   *string
}

func (r *loginPayloadResolver) Token() *string { return r.token }
func (r *loginPayloadResolver) Error() *string { return r.err }
