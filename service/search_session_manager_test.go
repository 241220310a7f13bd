package service

import (
	"context"
	"io"
	"log"
	"sort"
	"testing"
	"time"

	"github.com/beka-birhanu/gridpath-api/maze"
	"github.com/beka-birhanu/gridpath-api/search"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeSortedQueue records enqueued runs in memory.
type fakeSortedQueue struct {
	scores map[string]float64
}

func newFakeSortedQueue() *fakeSortedQueue {
	return &fakeSortedQueue{scores: make(map[string]float64)}
}

func (f *fakeSortedQueue) Enqueue(_ context.Context, _ string, score float64, member string) error {
	f.scores[member] = score
	return nil
}

func (f *fakeSortedQueue) Tops(_ context.Context, _ string, amount int64) ([]string, error) {
	members := make([]string, 0, len(f.scores))
	for member := range f.scores {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool { return f.scores[members[i]] < f.scores[members[j]] })
	if int64(len(members)) > amount {
		members = members[:amount]
	}
	return members, nil
}

func (f *fakeSortedQueue) Count(_ context.Context, _ string) int64 {
	return int64(len(f.scores))
}

// gatedSortedQueue holds Enqueue open until released, to expose what else a
// leaderboard write blocks.
type gatedSortedQueue struct {
	inner   *fakeSortedQueue
	entered chan struct{}
	release chan struct{}
}

func (g *gatedSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	close(g.entered)
	<-g.release
	return g.inner.Enqueue(ctx, queueKey, score, member)
}

func (g *gatedSortedQueue) Tops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	return g.inner.Tops(ctx, queueKey, amount)
}

func (g *gatedSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return g.inner.Count(ctx, queueKey)
}

func newTestManager(t *testing.T) (*SearchSessionManager, *fakeSortedQueue) {
	t.Helper()
	queue := newFakeSortedQueue()
	manager, err := NewSearchSessionManager(&Config{
		Leaderboard: queue,
		Logger:      log.New(io.Discard, "", 0),
	})
	assert.NoError(t, err)
	return manager, queue
}

func testGrid(t *testing.T) *maze.Grid {
	t.Helper()
	grid, err := maze.Parse([]string{
		"...",
		".#.",
		"...",
	})
	assert.NoError(t, err)
	return grid
}

func TestSearchSessionManager(t *testing.T) {
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 2, Row: 2}

	t.Run("rejects invalid sessions", func(t *testing.T) {
		manager, _ := newTestManager(t)

		_, err := manager.NewSession(search.Algorithm("warp"), testGrid(t), start, goal)
		assert.ErrorIs(t, err, search.ErrUnknownAlgorithm)

		_, err = manager.NewSession(search.BFS, testGrid(t), maze.Coordinate{Col: 1, Row: 1}, goal)
		assert.ErrorIs(t, err, search.ErrInvalidCoordinate)
	})

	t.Run("unknown session handles", func(t *testing.T) {
		manager, _ := newTestManager(t)

		_, err := manager.Advance(uuid.New(), 1)
		assert.ErrorIs(t, err, ErrNoSession)

		_, err = manager.Frame(uuid.New())
		assert.ErrorIs(t, err, ErrNoSession)

		assert.ErrorIs(t, manager.Abandon(uuid.New()), ErrNoSession)
	})

	t.Run("frame before first advance", func(t *testing.T) {
		manager, _ := newTestManager(t)
		id, err := manager.NewSession(search.BFS, testGrid(t), start, goal)
		assert.NoError(t, err)

		_, err = manager.Frame(id)
		assert.ErrorIs(t, err, ErrNoFrame)
	})

	t.Run("runs to completion and records the result once", func(t *testing.T) {
		manager, queue := newTestManager(t)
		id, err := manager.NewSession(search.BFS, testGrid(t), start, goal)
		assert.NoError(t, err)

		frame, err := manager.Advance(id, 1000)
		assert.NoError(t, err)
		assert.True(t, frame.Done)
		assert.NotEmpty(t, frame.Path)

		latest, err := manager.Frame(id)
		assert.NoError(t, err)
		assert.Equal(t, frame, latest)

		tops, err := manager.TopRuns(context.Background(), 10)
		assert.NoError(t, err)
		assert.Len(t, tops, 1)
		assert.Contains(t, tops[0], "bfs:")

		// Advancing a finished session changes nothing.
		again, err := manager.Advance(id, 5)
		assert.NoError(t, err)
		assert.True(t, again.Done)
		assert.Equal(t, int64(1), queue.Count(context.Background(), "search:runs"))
	})

	t.Run("exhausted runs are not ranked", func(t *testing.T) {
		manager, queue := newTestManager(t)
		enclosed, err := maze.Parse([]string{
			"..#.",
			"..#.",
			"####",
		})
		assert.NoError(t, err)

		id, err := manager.NewSession(search.BFS, enclosed, maze.Coordinate{Col: 0, Row: 0}, maze.Coordinate{Col: 3, Row: 0})
		assert.NoError(t, err)

		frame, err := manager.Advance(id, 1000)
		assert.NoError(t, err)
		assert.True(t, frame.Done)
		assert.Empty(t, frame.Path)
		assert.Equal(t, int64(0), queue.Count(context.Background(), "search:runs"))
	})

	t.Run("abandon discards the run", func(t *testing.T) {
		manager, _ := newTestManager(t)
		id, err := manager.NewSession(search.DFS, testGrid(t), start, goal)
		assert.NoError(t, err)

		assert.NoError(t, manager.Abandon(id))
		_, err = manager.Advance(id, 1)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("recording does not block the session table", func(t *testing.T) {
		queue := &gatedSortedQueue{
			inner:   newFakeSortedQueue(),
			entered: make(chan struct{}),
			release: make(chan struct{}),
		}
		manager, err := NewSearchSessionManager(&Config{
			Leaderboard: queue,
			Logger:      log.New(io.Discard, "", 0),
		})
		assert.NoError(t, err)

		id, err := manager.NewSession(search.BFS, testGrid(t), start, goal)
		assert.NoError(t, err)

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			frame, err := manager.Advance(id, 1000)
			assert.NoError(t, err)
			assert.True(t, frame.Done)
		}()
		<-queue.entered

		// The leaderboard write is in flight; other sessions must still start.
		created := make(chan error, 1)
		go func() {
			_, err := manager.NewSession(search.DFS, testGrid(t), start, goal)
			created <- err
		}()
		select {
		case err := <-created:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("session table stayed locked during a leaderboard write")
		}

		close(queue.release)
		select {
		case <-finished:
		case <-time.After(2 * time.Second):
			t.Fatal("advance did not return after the leaderboard write completed")
		}
	})

	t.Run("advance clamps step counts", func(t *testing.T) {
		manager, _ := newTestManager(t)
		id, err := manager.NewSession(search.AStar, testGrid(t), start, goal)
		assert.NoError(t, err)

		frame, err := manager.Advance(id, 0)
		assert.NoError(t, err)
		assert.False(t, frame.Done)
	})
}
