package expansion

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/binder/internal/cardtrader"
	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/model"
	"github.com/Veraticus/binder/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testTable() model.ExpansionTable {
	return NewTable([]model.Expansion{
		{ID: 1, GameID: 1, Code: "dom", Name: "Dominaria"},
		{ID: 2, GameID: 1, Code: "war", Name: "War of the Spark"},
	}, 1)
}

type recordingProgress struct {
	total      int
	increments atomic.Int32
	finished   bool
}

func (p *recordingProgress) Start(total int) { p.total = total }
func (p *recordingProgress) Increment()      { p.increments.Add(1) }
func (p *recordingProgress) Finish()         { p.finished = true }

func TestResolver_Resolve(t *testing.T) {
	mock := cardtrader.NewMockClient(map[model.BlueprintID]model.ExpansionID{42: 1, 43: 2, 44: 99})
	r := NewResolver(mock, testTable())
	ctx := context.Background()

	t.Run("memoizes per blueprint", func(t *testing.T) {
		first, err := r.Resolve(ctx, 42)
		require.NoError(t, err)
		second, err := r.Resolve(ctx, 42)
		require.NoError(t, err)

		assert.Equal(t, "Dominaria", first)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, mock.CallsFor(42))
	})

	t.Run("lookup failure", func(t *testing.T) {
		_, err := r.Resolve(ctx, 500)

		var resErr *common.ResolutionError
		require.True(t, errors.As(err, &resErr))
		assert.Equal(t, model.BlueprintID(500), resErr.BlueprintID)
		var apiErr *cardtrader.APIError
		assert.True(t, errors.As(err, &apiErr))
	})

	t.Run("expansion missing from table", func(t *testing.T) {
		_, err := r.Resolve(ctx, 44)

		var resErr *common.ResolutionError
		require.True(t, errors.As(err, &resErr))
		assert.Equal(t, model.BlueprintID(44), resErr.BlueprintID)
		assert.ErrorIs(t, err, common.ErrUnknownExpansion)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		_, _ = r.Resolve(ctx, 44)
		assert.Equal(t, 2, mock.CallsFor(44))
	})

	assert.Equal(t, 1, r.Len())
}

func TestResolver_ResolveAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	mock := cardtrader.NewMockClient(map[model.BlueprintID]model.ExpansionID{42: 1, 43: 2})
	r := NewResolver(mock, testTable())
	progress := &recordingProgress{}

	names, err := r.ResolveAll(context.Background(), []model.BlueprintID{42, 43, 42, 42}, 1, progress)
	require.NoError(t, err)

	assert.Equal(t, map[model.BlueprintID]string{42: "Dominaria", 43: "War of the Spark"}, names)
	assert.Equal(t, 2, r.Lookups())
	assert.Equal(t, 2, progress.total)
	assert.Equal(t, int32(2), progress.increments.Load())
	assert.True(t, progress.finished)
}

func TestResolver_ResolveAllFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	mock := cardtrader.NewMockClient(map[model.BlueprintID]model.ExpansionID{42: 1})
	r := NewResolver(mock, testTable())

	names, err := r.ResolveAll(context.Background(), []model.BlueprintID{42, 7}, 4, nil)
	assert.Nil(t, names)

	var resErr *common.ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, model.BlueprintID(7), resErr.BlueprintID)
}

func TestResolver_ConcurrentMemoization(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	release := make(chan struct{})
	lookup := service.BlueprintLookupFunc(func(_ context.Context, _ model.BlueprintID) (model.ExpansionID, error) {
		calls.Add(1)
		<-release
		return 1, nil
	})
	r := NewResolver(lookup, testTable())

	const callers = 50
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := r.Resolve(context.Background(), 42)
			assert.NoError(t, err)
			results[i] = name
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, r.Lookups())
	for _, name := range results {
		assert.Equal(t, "Dominaria", name)
	}
}

func TestResolver_ResolveAllParallel(t *testing.T) {
	defer goleak.VerifyNone(t)

	mock := cardtrader.NewMockClient(map[model.BlueprintID]model.ExpansionID{1: 1, 2: 2, 3: 1, 4: 2, 5: 1})
	r := NewResolver(mock, testTable())

	ids := []model.BlueprintID{1, 2, 3, 4, 5, 1, 2, 3, 4, 5}
	names, err := r.ResolveAll(context.Background(), ids, 3, nil)
	require.NoError(t, err)
	assert.Len(t, names, 5)
	for id := model.BlueprintID(1); id <= 5; id++ {
		assert.Equal(t, 1, mock.CallsFor(id), "blueprint %d", id)
	}
}

func TestResolver_ResolveAllCanceled(t *testing.T) {
	mock := cardtrader.NewMockClient(map[model.BlueprintID]model.ExpansionID{1: 1})
	r := NewResolver(mock, testTable())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ResolveAll(ctx, []model.BlueprintID{1}, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.Lookups())
}
