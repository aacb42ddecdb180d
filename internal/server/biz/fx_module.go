package biz

import (
	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(NewAuthService),
	fx.Provide(NewUserService),
	fx.Provide(NewPostService),
	fx.Provide(NewCommentService),
)
