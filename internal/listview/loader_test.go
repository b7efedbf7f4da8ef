package listview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/medics-admin/internal/models"
)

func pageOf(total int, rows ...string) models.Page[string] {
	return models.Page[string]{Data: rows, Total: total}
}

func TestLoader_AppliesServerTotal(t *testing.T) {
	l := NewLoader(func(ctx context.Context, st State) (models.Page[string], error) {
		return pageOf(42, "a", "b"), nil
	}, "Failed to fetch")

	snap := l.Load(context.Background(), State{})
	assert.Equal(t, []string{"a", "b"}, snap.Rows)
	assert.Equal(t, 42, snap.Total)
	assert.Empty(t, snap.Error)
	assert.Equal(t, 5, snap.Pages())
	assert.Equal(t, snap, l.Current())
}

func TestLoader_FailureEmptiesRows(t *testing.T) {
	fail := false
	l := NewLoader(func(ctx context.Context, st State) (models.Page[string], error) {
		if fail {
			return models.Page[string]{}, errors.New("502")
		}
		return pageOf(1, "a"), nil
	}, "Failed to fetch appointments")

	l.Load(context.Background(), State{})

	fail = true
	snap := l.Load(context.Background(), State{})
	assert.Empty(t, snap.Rows)
	assert.NotNil(t, snap.Rows)
	assert.Equal(t, 0, snap.Total)
	assert.Equal(t, "Failed to fetch appointments", snap.Error)
	assert.EqualError(t, snap.Err, "502")
	assert.False(t, snap.Empty(), "a failed load shows the error, not the empty state")
}

func TestLoader_EmptyResult(t *testing.T) {
	l := NewLoader(func(ctx context.Context, st State) (models.Page[string], error) {
		return models.Page[string]{Data: nil, Total: 0}, nil
	}, "x")

	snap := l.Load(context.Background(), State{})
	assert.True(t, snap.Empty())
	assert.NotNil(t, snap.Rows)
}

// A slow early request still gets its own rows, but does not replace the
// result of a later one that finished first.
func TestLoader_LateResultNotRecorded(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	l := NewLoader(func(ctx context.Context, st State) (models.Page[string], error) {
		if st.Search == "slow" {
			close(slowStarted)
			<-releaseSlow
			return pageOf(1, "stale"), nil
		}
		return pageOf(1, "fresh"), nil
	}, "x")

	var wg sync.WaitGroup
	var slow Snapshot[string]
	wg.Add(1)
	go func() {
		defer wg.Done()
		slow = l.Load(context.Background(), State{Search: "slow"})
	}()
	<-slowStarted

	fast := l.Load(context.Background(), State{Search: "fast"})
	assert.Equal(t, []string{"fresh"}, fast.Rows)

	close(releaseSlow)
	wg.Wait()

	assert.Equal(t, []string{"stale"}, slow.Rows)
	assert.Equal(t, "slow", slow.State.Search)
	assert.Less(t, slow.Seq, fast.Seq)
	assert.Equal(t, []string{"fresh"}, l.Current().Rows)
	assert.Equal(t, "fast", l.Current().State.Search)
}

func TestLoader_CallerCancelEndsFetch(t *testing.T) {
	l := NewLoader(func(ctx context.Context, st State) (models.Page[string], error) {
		<-ctx.Done()
		return models.Page[string]{}, ctx.Err()
	}, "x")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Snapshot[string], 1)
	go func() { done <- l.Load(ctx, State{}) }()
	cancel()

	select {
	case snap := <-done:
		assert.ErrorIs(t, snap.Err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("fetch outlived its caller")
	}
}

func TestLoader_OverlappingLoadsDoNotCancelEachOther(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	l := NewLoader(func(ctx context.Context, st State) (models.Page[string], error) {
		if st.Search == "first" {
			close(firstStarted)
			select {
			case <-releaseFirst:
				return pageOf(1, "first"), nil
			case <-ctx.Done():
				return models.Page[string]{}, ctx.Err()
			}
		}
		return pageOf(1, "second"), nil
	}, "x")

	done := make(chan Snapshot[string], 1)
	go func() { done <- l.Load(context.Background(), State{Search: "first"}) }()
	<-firstStarted

	second := l.Load(context.Background(), State{Search: "second"})
	assert.Equal(t, []string{"second"}, second.Rows)

	close(releaseFirst)
	first := <-done
	require.NoError(t, first.Err)
	assert.Equal(t, []string{"first"}, first.Rows)
}

func TestLoader_StopCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	l := NewLoader(func(ctx context.Context, st State) (models.Page[string], error) {
		close(started)
		<-ctx.Done()
		return models.Page[string]{}, ctx.Err()
	}, "x")

	done := make(chan Snapshot[string], 1)
	go func() { done <- l.Load(context.Background(), State{}) }()
	<-started
	l.stop()

	select {
	case snap := <-done:
		assert.ErrorIs(t, snap.Err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("stop did not cancel the fetch")
	}
}

// Each load fetches the page and filters it was asked for, whatever the
// session loaded before.
func TestLoader_RequestStateIsAuthoritative(t *testing.T) {
	var seen []State
	l := NewLoader(func(ctx context.Context, st State) (models.Page[string], error) {
		seen = append(seen, st)
		return pageOf(100), nil
	}, "x")
	ctx := context.Background()

	l.Load(ctx, State{Status: "pending"})
	l.Load(ctx, State{Status: "confirmed"})
	snap := l.Load(ctx, State{Status: "pending", Page: 2})
	l.Load(ctx, State{Status: "completed", Page: 3})

	require.Len(t, seen, 4)
	assert.Equal(t, 2, seen[2].Page)
	assert.Equal(t, "pending", seen[2].Status)
	assert.Equal(t, 2, snap.State.Page)
	assert.Equal(t, 3, seen[3].Page)
	assert.Equal(t, "completed", seen[3].Status)
	assert.Equal(t, 100, snap.Total)
}

func TestRegistry_PerSessionAndEviction(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(func(ctx context.Context, st State) (models.Page[string], error) {
		return pageOf(0), nil
	}, "x", 10*time.Minute)
	r.now = func() time.Time { return now }

	a := r.Get("a")
	assert.Same(t, a, r.Get("a"))
	assert.NotSame(t, a, r.Get("b"))
	assert.Equal(t, 2, r.Len())

	now = now.Add(5 * time.Minute)
	r.Get("b")
	now = now.Add(6 * time.Minute)
	r.Get("b")
	assert.Equal(t, 1, r.Len(), "session a idled past the TTL")

	r.Drop("b")
	assert.Equal(t, 0, r.Len())

	assert.Equal(t, 0, func() int { r.Get(""); return r.Len() }(), "anonymous loaders are not retained")
}

func TestFilterRows(t *testing.T) {
	type row struct{ name, email string }
	rows := []row{{"Ann Lee", "ann@x.io"}, {"Bob Stone", "bob@y.io"}, {"Cy", "CY@X.IO"}}
	fields := func(r row) []string { return []string{r.name, r.email} }

	assert.Len(t, FilterRows(rows, "", fields), 3)
	assert.Equal(t, []row{{"Ann Lee", "ann@x.io"}, {"Cy", "CY@X.IO"}}, FilterRows(rows, "X.io", fields))
	assert.Equal(t, []row{{"Bob Stone", "bob@y.io"}}, FilterRows(rows, "stone", fields))
	assert.Empty(t, FilterRows(rows, "zzz", fields))
}
