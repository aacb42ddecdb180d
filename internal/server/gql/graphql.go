package gql

import (
	"context"
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/server/biz"
)

type Dependencies struct {
	fx.In

	AuthService    *biz.AuthService
	UserService    *biz.UserService
	PostService    *biz.PostService
	CommentService *biz.CommentService
}

type GraphqlHandler struct {
	Graphql    http.Handler
	Playground http.Handler
}

func NewGraphqlHandlers(deps Dependencies) *GraphqlHandler {
	schema := NewSchema(deps)

	return &GraphqlHandler{
		Graphql:    &relay.Handler{Schema: schema},
		Playground: graphiqlHandler(),
	}
}

// NewSchema parses the SDL against the root resolver.
func NewSchema(deps Dependencies) *graphql.Schema {
	return graphql.MustParseSchema(
		Schema,
		NewResolver(deps.AuthService, deps.UserService, deps.PostService, deps.CommentService),
		graphql.Logger(panicLogger{}),
		graphql.MaxParallelism(10),
	)
}

// panicLogger routes resolver panics into the process logger instead of the
// engine's default stderr printer.
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value any) {
	log.Error(ctx, "graphql resolver panic", log.Any("panic", value))
}
