package resource

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FetchesOncePerParams(t *testing.T) {
	calls := 0
	r := New(func(_ context.Context, id int) (string, error) {
		calls++
		return "item", nil
	})
	ctx := context.Background()

	s, err := r.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, State[int, string]{Params: 1, Data: "item", HasData: true}, s)

	_, err = r.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = r.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	_, err = r.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestLoad_ErrorClearsData(t *testing.T) {
	boom := errors.New("boom")
	r := New(func(_ context.Context, id int) (string, error) {
		if id == 2 {
			return "", boom
		}
		return "ok", nil
	})
	ctx := context.Background()

	_, err := r.Load(ctx, 1)
	require.NoError(t, err)

	s, err := r.Load(ctx, 2)
	require.ErrorIs(t, err, boom)
	assert.False(t, s.HasData)
	assert.Empty(t, s.Data)
	assert.Equal(t, boom, s.Err)
	assert.False(t, s.Loading)

	s, err = r.Load(ctx, 2)
	require.ErrorIs(t, err, boom, "same params report the stored error")
	assert.Equal(t, boom, s.Err)
}

func TestLoad_LoadingVisibleWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	r := New(func(_ context.Context, id int) (int, error) {
		close(started)
		<-release
		return id * 10, nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Load(context.Background(), 4)
	}()

	<-started
	s := r.State()
	assert.True(t, s.Loading)
	assert.Nil(t, s.Err)
	assert.Equal(t, 4, s.Params)

	close(release)
	<-done
	s = r.State()
	assert.False(t, s.Loading)
	assert.Equal(t, 40, s.Data)
}

func TestLoad_StaleResponseIsDiscarded(t *testing.T) {
	gates := map[string]chan struct{}{
		"old": make(chan struct{}),
		"new": make(chan struct{}),
	}
	var startedOld sync.WaitGroup
	startedOld.Add(1)

	r := New(func(_ context.Context, p string) (string, error) {
		if p == "old" {
			startedOld.Done()
		}
		<-gates[p]
		return "data:" + p, nil
	})
	ctx := context.Background()

	oldErr := make(chan error, 1)
	go func() {
		_, err := r.Load(ctx, "old")
		oldErr <- err
	}()
	startedOld.Wait()

	newDone := make(chan struct{})
	go func() {
		defer close(newDone)
		_, _ = r.Load(ctx, "new")
	}()

	// new settles first, then the old response arrives late
	close(gates["new"])
	<-newDone
	close(gates["old"])
	require.ErrorIs(t, <-oldErr, ErrSuperseded)

	s := r.State()
	assert.Equal(t, "new", s.Params)
	assert.Equal(t, "data:new", s.Data)
	assert.False(t, s.Loading)
}
