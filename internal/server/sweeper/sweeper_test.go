package sweeper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MagedNabil/graphQL/internal/store"
)

func TestSweepCountsUnlinkedComments(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemory()
	worker := NewWorker(Params{Stores: stores})

	t.Cleanup(func() {
		_ = worker.Stop(ctx)
	})

	orphans, err := worker.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, orphans)

	// A comment referencing a post that was never created.
	require.NoError(t, stores.Comments.Create(ctx, &store.Comment{
		ID:      "c1",
		PostID:  "gone",
		Content: "unlinked",
	}))

	orphans, err = worker.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), orphans)
}

func TestStartDisabled(t *testing.T) {
	ctx := context.Background()
	worker := NewWorker(Params{Stores: store.NewMemory()})

	require.NoError(t, worker.Start(ctx))
	assert.Nil(t, worker.CancelFunc)
	require.NoError(t, worker.Stop(ctx))
}

func TestStartAndStop(t *testing.T) {
	ctx := context.Background()
	worker := NewWorker(Params{
		Config: Config{Enabled: true, CRON: "0 0 * * * *"},
		Stores: store.NewMemory(),
	})

	require.NoError(t, worker.Start(ctx))
	assert.NotNil(t, worker.CancelFunc)
	require.NoError(t, worker.Stop(ctx))
}
