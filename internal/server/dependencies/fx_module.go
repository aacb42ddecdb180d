package dependencies

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/server/db"
	"github.com/MagedNabil/graphQL/internal/store"
)

var Module = fx.Module("dependencies",
	fx.Provide(log.New),
	fx.Provide(db.NewClient),
	fx.Provide(func(client *db.Client) store.Stores { return client.Stores }),
	fx.Provide(NewExecutors),
	fx.Invoke(func(lc fx.Lifecycle, client *db.Client, executor executors.ScheduledExecutor) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if err := executor.Shutdown(ctx); err != nil {
					return err
				}

				return client.Close()
			},
		})
	}),
)
