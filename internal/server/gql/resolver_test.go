package gql

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MagedNabil/graphQL/internal/contexts"
	"github.com/MagedNabil/graphQL/internal/pkg/xcache"
	"github.com/MagedNabil/graphQL/internal/server/biz"
	"github.com/MagedNabil/graphQL/internal/store"
)

type testBackend struct {
	Schema *graphql.Schema
	Stores store.Stores
	Auth   *biz.AuthService
	Users  *biz.UserService
	Posts  *biz.PostService
}

func setupBackend(t *testing.T) *testBackend {
	t.Helper()

	stores := store.NewMemory()
	users := biz.NewUserService(biz.UserServiceParams{
		CacheConfig: xcache.Config{Mode: xcache.ModeMemory},
		Stores:      stores,
	})
	auth := biz.NewAuthService(biz.AuthServiceParams{
		Config:      biz.Config{JWTSecret: "test-secret-key"},
		UserService: users,
	})
	posts := biz.NewPostService(biz.PostServiceParams{
		Stores:      stores,
		UserService: users,
	})
	comments := biz.NewCommentService(biz.CommentServiceParams{Stores: stores})

	schema := NewSchema(Dependencies{
		AuthService:    auth,
		UserService:    users,
		PostService:    posts,
		CommentService: comments,
	})

	return &testBackend{
		Schema: schema,
		Stores: stores,
		Auth:   auth,
		Users:  users,
		Posts:  posts,
	}
}

// exec runs a query and requires a clean response.
func (b *testBackend) exec(t *testing.T, query string, variables map[string]any) map[string]any {
	t.Helper()

	resp := b.Schema.Exec(context.Background(), query, "", variables)
	require.Empty(t, resp.Errors)

	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))

	return data
}

func (b *testBackend) register(t *testing.T, username, password, firstName, lastName string) string {
	t.Helper()

	user, err := b.Users.CreateUser(context.Background(), biz.CreateUserInput{
		Username:  username,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	require.NoError(t, err)

	return user.ID
}

func (b *testBackend) login(t *testing.T, username, password string) string {
	t.Helper()

	data := b.exec(t, fmt.Sprintf(
		`mutation { loginUser(username: %q, password: %q) { token error } }`,
		username, password,
	), nil)
	payload := data["loginUser"].(map[string]any)
	require.Nil(t, payload["error"])
	require.NotEmpty(t, payload["token"])

	return payload["token"].(string)
}

func TestHello(t *testing.T) {
	b := setupBackend(t)

	data := b.exec(t, `{ hello }`, nil)
	assert.Equal(t, "Hello world", data["hello"])
}

func TestCreateUser(t *testing.T) {
	b := setupBackend(t)

	data := b.exec(t, `mutation ($userData: UserRegistrationInput) {
		createUser(userData: $userData) { firstName lastName age }
	}`, map[string]any{
		"userData": map[string]any{
			"username":  "alice",
			"password":  "pw1",
			"firstName": "Alice",
			"lastName":  "A",
			"age":       30,
		},
	})

	profile := data["createUser"].(map[string]any)
	assert.Equal(t, "Alice", profile["firstName"])
	assert.Equal(t, "A", profile["lastName"])
	assert.Equal(t, float64(30), profile["age"])
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	b := setupBackend(t)
	b.register(t, "alice", "pw1", "Alice", "A")

	resp := b.Schema.Exec(context.Background(), `mutation ($userData: UserRegistrationInput) {
		createUser(userData: $userData) { firstName }
	}`, "", map[string]any{
		"userData": map[string]any{
			"username":  "alice",
			"password":  "other",
			"firstName": "Another",
			"lastName":  "A",
		},
	})

	require.NotEmpty(t, resp.Errors)
}

func TestLoginUserGenericFailure(t *testing.T) {
	b := setupBackend(t)
	b.register(t, "alice", "pw1", "Alice", "A")

	wrongPassword := b.exec(t, `mutation { loginUser(username: "alice", password: "wrong") { token error } }`, nil)
	unknownUser := b.exec(t, `mutation { loginUser(username: "nobody", password: "pw1") { token error } }`, nil)

	for _, data := range []map[string]any{wrongPassword, unknownUser} {
		payload := data["loginUser"].(map[string]any)
		assert.Nil(t, payload["token"])
		assert.Equal(t, "Login failed", payload["error"])
	}
}

func TestPostCreateRequiresAuth(t *testing.T) {
	b := setupBackend(t)

	data := b.exec(t, `mutation { postCreate(token: "garbage", content: "hello") }`, nil)
	assert.Equal(t, "Authentication error", data["postCreate"])

	all, err := b.Stores.Posts.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPostCreateAndGetMyPosts(t *testing.T) {
	b := setupBackend(t)
	b.register(t, "alice", "pw1", "Alice", "A")
	token := b.login(t, "alice", "pw1")

	data := b.exec(t, fmt.Sprintf(`mutation { postCreate(token: %q, content: "hello") }`, token), nil)
	assert.Equal(t, "Success", data["postCreate"])

	data = b.exec(t, fmt.Sprintf(`{ getMyPosts(token: %q) { error content user { firstName } } }`, token), nil)
	posts := data["getMyPosts"].([]any)
	require.Len(t, posts, 1)

	post := posts[0].(map[string]any)
	assert.Nil(t, post["error"])
	assert.Equal(t, "hello", post["content"])
	assert.Equal(t, "Alice", post["user"].(map[string]any)["firstName"])
}

func TestGetMyPostsRequiresAuth(t *testing.T) {
	b := setupBackend(t)

	data := b.exec(t, `{ getMyPosts(token: "garbage") { error content } }`, nil)
	posts := data["getMyPosts"].([]any)
	require.Len(t, posts, 1)

	post := posts[0].(map[string]any)
	assert.Equal(t, "Authentication error", post["error"])
	assert.Equal(t, "", post["content"])
}

func TestGetAllPostsEmpty(t *testing.T) {
	b := setupBackend(t)

	data := b.exec(t, `{ getAllPosts { content } }`, nil)
	assert.Empty(t, data["getAllPosts"])
}

func TestPostUpdate(t *testing.T) {
	b := setupBackend(t)
	aliceID := b.register(t, "alice", "pw1", "Alice", "A")
	token := b.login(t, "alice", "pw1")

	b.exec(t, fmt.Sprintf(`mutation { postCreate(token: %q, content: "hello") }`, token), nil)

	mine, err := b.Posts.ListByUser(context.Background(), aliceID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	data := b.exec(t, fmt.Sprintf(
		`mutation { postUpdate(token: %q, postId: %q, content: "edited") { error content user { firstName lastName } } }`,
		token, mine[0].ID,
	), nil)

	post := data["postUpdate"].(map[string]any)
	assert.Nil(t, post["error"])
	assert.Equal(t, "edited", post["content"])
	assert.Equal(t, "Alice", post["user"].(map[string]any)["firstName"])
}

func TestPostUpdateMissingPost(t *testing.T) {
	b := setupBackend(t)
	b.register(t, "alice", "pw1", "Alice", "A")
	token := b.login(t, "alice", "pw1")

	data := b.exec(t, fmt.Sprintf(
		`mutation { postUpdate(token: %q, postId: "no-such-post", content: "edited") { error content user { firstName lastName age } } }`,
		token,
	), nil)

	post := data["postUpdate"].(map[string]any)
	assert.Equal(t, "Failed to update post", post["error"])
	assert.Equal(t, "", post["content"])

	user := post["user"].(map[string]any)
	assert.Equal(t, "", user["firstName"])
	assert.Equal(t, "", user["lastName"])
	assert.Nil(t, user["age"])
}

func TestPostUpdateRequiresAuth(t *testing.T) {
	b := setupBackend(t)

	data := b.exec(t, `mutation { postUpdate(token: "garbage", postId: "x", content: "y") { error content } }`, nil)

	post := data["postUpdate"].(map[string]any)
	assert.Equal(t, "Authentication error", post["error"])
	assert.Equal(t, "", post["content"])
}

func TestPostDelete(t *testing.T) {
	b := setupBackend(t)
	aliceID := b.register(t, "alice", "pw1", "Alice", "A")
	token := b.login(t, "alice", "pw1")

	b.exec(t, fmt.Sprintf(`mutation { postCreate(token: %q, content: "hello") }`, token), nil)

	mine, err := b.Posts.ListByUser(context.Background(), aliceID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	data := b.exec(t, fmt.Sprintf(`mutation { postDelete(token: %q, postId: %q) }`, token, mine[0].ID), nil)
	assert.Equal(t, "Post Deleted", data["postDelete"])

	// Deleting an id that no longer exists is not distinguishable from a
	// real delete.
	data = b.exec(t, fmt.Sprintf(`mutation { postDelete(token: %q, postId: %q) }`, token, mine[0].ID), nil)
	assert.Equal(t, "Post Deleted", data["postDelete"])
}

func TestCommentFlow(t *testing.T) {
	b := setupBackend(t)
	aliceID := b.register(t, "alice", "pw1", "Alice", "A")
	token := b.login(t, "alice", "pw1")

	b.exec(t, fmt.Sprintf(`mutation { postCreate(token: %q, content: "hello") }`, token), nil)

	mine, err := b.Posts.ListByUser(context.Background(), aliceID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	postID := mine[0].ID

	data := b.exec(t, fmt.Sprintf(
		`mutation { commentCreate(token: %q, postId: %q, content: "nice post") }`,
		token, postID,
	), nil)
	assert.Equal(t, "Comment Created Successfully", data["commentCreate"])

	data = b.exec(t, fmt.Sprintf(`{ getPostComments(postId: %q) { error content } }`, postID), nil)
	comments := data["getPostComments"].([]any)
	require.Len(t, comments, 1)
	assert.Nil(t, comments[0].(map[string]any)["error"])
	assert.Equal(t, "nice post", comments[0].(map[string]any)["content"])

	// The owner's view of the post picked up the new comment.
	data = b.exec(t, fmt.Sprintf(`{ getMyPosts(token: %q) { comments { content } } }`, token), nil)
	posts := data["getMyPosts"].([]any)
	require.Len(t, posts, 1)
	assert.Len(t, posts[0].(map[string]any)["comments"].([]any), 1)
}

func TestResolversFillRequestContainer(t *testing.T) {
	b := setupBackend(t)
	b.register(t, "alice", "pw1", "Alice", "A")
	token := b.login(t, "alice", "pw1")

	// A container-backed context, as the tracing middleware installs per request.
	ctx := contexts.WithTraceID(context.Background(), "gq-test")

	resp := b.Schema.Exec(ctx, `mutation { loginUser(username: "alice", password: "wrong") { error } }`, "", nil)
	require.Empty(t, resp.Errors)
	assert.NotEmpty(t, contexts.GetErrors(ctx))

	ctx = contexts.WithTraceID(context.Background(), "gq-test-2")

	resp = b.Schema.Exec(ctx, fmt.Sprintf(`mutation { postCreate(token: %q, content: "hi") }`, token), "", nil)
	require.Empty(t, resp.Errors)

	caller, ok := contexts.GetUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", caller.Username)
	assert.Empty(t, contexts.GetErrors(ctx))
}

func TestCommentsKeepCreationOrder(t *testing.T) {
	b := setupBackend(t)
	aliceID := b.register(t, "alice", "pw1", "Alice", "A")
	token := b.login(t, "alice", "pw1")

	b.exec(t, fmt.Sprintf(`mutation { postCreate(token: %q, content: "hello") }`, token), nil)

	mine, err := b.Posts.ListByUser(context.Background(), aliceID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	postID := mine[0].ID

	want := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		content := fmt.Sprintf("c%d", i)
		want = append(want, content)

		data := b.exec(t, fmt.Sprintf(
			`mutation { commentCreate(token: %q, postId: %q, content: %q) }`,
			token, postID, content,
		), nil)
		require.Equal(t, "Comment Created Successfully", data["commentCreate"])
	}

	data := b.exec(t, fmt.Sprintf(`{ getPostComments(postId: %q) { content } }`, postID), nil)
	comments := data["getPostComments"].([]any)
	require.Len(t, comments, len(want))
	for i, c := range comments {
		assert.Equal(t, want[i], c.(map[string]any)["content"])
	}

	// The post's own comment list resolves in the same order.
	data = b.exec(t, fmt.Sprintf(`{ getMyPosts(token: %q) { comments { content } } }`, token), nil)
	posts := data["getMyPosts"].([]any)
	require.Len(t, posts, 1)
	attached := posts[0].(map[string]any)["comments"].([]any)
	require.Len(t, attached, len(want))
	for i, c := range attached {
		assert.Equal(t, want[i], c.(map[string]any)["content"])
	}
}

func TestCommentCreateMissingPost(t *testing.T) {
	b := setupBackend(t)
	b.register(t, "alice", "pw1", "Alice", "A")
	token := b.login(t, "alice", "pw1")

	data := b.exec(t, fmt.Sprintf(
		`mutation { commentCreate(token: %q, postId: "no-such-post", content: "orphan") }`,
		token,
	), nil)
	assert.Equal(t, "Comment Couldn't be saved", data["commentCreate"])
}

func TestGetPostCommentsEmpty(t *testing.T) {
	b := setupBackend(t)

	data := b.exec(t, `{ getPostComments(postId: "whatever") { content } }`, nil)
	assert.Empty(t, data["getPostComments"])
}

// End-to-end walk through the whole surface with a single account.
func TestRegisterLoginPostBrowse(t *testing.T) {
	b := setupBackend(t)

	data := b.exec(t, `mutation ($userData: UserRegistrationInput) {
		createUser(userData: $userData) { firstName lastName age }
	}`, map[string]any{
		"userData": map[string]any{
			"username":  "alice",
			"password":  "pw1",
			"firstName": "Alice",
			"lastName":  "A",
			"age":       30,
		},
	})
	require.Equal(t, "Alice", data["createUser"].(map[string]any)["firstName"])

	token := b.login(t, "alice", "pw1")

	data = b.exec(t, `mutation { loginUser(username: "alice", password: "wrong") { token error } }`, nil)
	assert.Equal(t, "Login failed", data["loginUser"].(map[string]any)["error"])

	data = b.exec(t, fmt.Sprintf(`mutation { postCreate(token: %q, content: "hello") }`, token), nil)
	require.Equal(t, "Success", data["postCreate"])

	data = b.exec(t, `{ getAllPosts { content user { firstName } } }`, nil)
	posts := data["getAllPosts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].(map[string]any)["content"])
	assert.Equal(t, "Alice", posts[0].(map[string]any)["user"].(map[string]any)["firstName"])
}
