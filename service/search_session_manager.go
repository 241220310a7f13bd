package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/gridpath-api/config"
	"github.com/beka-birhanu/gridpath-api/maze"
	"github.com/beka-birhanu/gridpath-api/search"
	"github.com/beka-birhanu/gridpath-api/service/i"
	"github.com/google/uuid"
)

const (
	defaultAdvanceSteps = 1
	maxAdvanceSteps     = 1000

	leaderboardKey     = "search:runs"
	leaderboardTimeout = time.Second
)

var (
	ErrNoSession = errors.New("no session")
	ErrNoFrame   = errors.New("session has not been advanced yet")
)

// searchSession is one live run: the stepper plus its bookkeeping.
type searchSession struct {
	algorithm search.Algorithm
	stepper   search.Stepper
	lastFrame *search.Frame
	steps     int
	recorded  bool
	createdAt time.Time
}

// finishedRun is the bookkeeping snapshot taken when a run completes, so the
// leaderboard write can happen outside the session table lock.
type finishedRun struct {
	id        uuid.UUID
	algorithm search.Algorithm
	steps     int
	solved    bool
}

// SearchSessionManager owns every live stepper, keyed by session ID. All of
// a run's mutable state lives inside its stepper; the manager only
// serializes access to the session table and to each stepper.
type SearchSessionManager struct {
	sessions    map[uuid.UUID]*searchSession
	leaderboard i.SortedQueue
	logger      *log.Logger
	sync.RWMutex
}

// Config holds the dependencies for creating a SearchSessionManager.
type Config struct {
	Leaderboard i.SortedQueue
	Logger      *log.Logger
}

// NewSearchSessionManager creates a manager with an empty session table.
func NewSearchSessionManager(c *Config) (*SearchSessionManager, error) {
	if c.Leaderboard == nil {
		return nil, errors.New("leaderboard storage is required")
	}
	return &SearchSessionManager{
		sessions:    make(map[uuid.UUID]*searchSession),
		leaderboard: c.Leaderboard,
		logger:      c.Logger,
	}, nil
}

// NewSession constructs a stepper for the given algorithm and registers it
// under a fresh session ID.
func (m *SearchSessionManager) NewSession(algorithm search.Algorithm, grid *maze.Grid, start, goal maze.Coordinate) (uuid.UUID, error) {
	stepper, err := search.New(algorithm, grid, start, goal)
	if err != nil {
		return uuid.Nil, err
	}

	m.Lock()
	defer m.Unlock()

	sessionID := uuid.New()
	for {
		if _, ok := m.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	m.sessions[sessionID] = &searchSession{
		algorithm: algorithm,
		stepper:   stepper,
		createdAt: time.Now().UTC(),
	}

	m.logger.Printf("%s[INFO]%s started %s session: %s", config.LogInfoColor, config.LogColorReset, algorithm, sessionID)
	return sessionID, nil
}

// Advance runs the session's stepper for up to `steps` bounded work units,
// stopping early when the run finishes. A finished run is recorded after the
// session table lock is released, so a slow leaderboard write never stalls
// other sessions.
func (m *SearchSessionManager) Advance(id uuid.UUID, steps int) (*search.Frame, error) {
	if steps < 1 {
		steps = defaultAdvanceSteps
	}
	if steps > maxAdvanceSteps {
		steps = maxAdvanceSteps
	}

	frame, finished, err := m.advance(id, steps)
	if err != nil {
		return nil, err
	}
	if finished != nil {
		m.recordRun(finished)
	}
	return frame, nil
}

// advance is the locked part of Advance. When the run just finished it also
// returns the snapshot needed to record it.
func (m *SearchSessionManager) advance(id uuid.UUID, steps int) (*search.Frame, *finishedRun, error) {
	m.Lock()
	defer m.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, nil, ErrNoSession
	}

	var frame *search.Frame
	for n := 0; n < steps; n++ {
		var err error
		frame, err = session.stepper.Step()
		if err != nil {
			// A stepping error is an engine invariant violation; the run is
			// unrecoverable, drop it.
			m.logger.Printf("%s[ERROR]%s session %s failed while stepping: %s", config.LogErrorColor, config.LogColorReset, id, err)
			delete(m.sessions, id)
			return nil, nil, err
		}
		if !session.recorded {
			session.steps++
		}
		if frame.Done {
			break
		}
	}

	session.lastFrame = frame
	if !frame.Done || session.recorded {
		return frame, nil, nil
	}

	session.recorded = true
	return frame, &finishedRun{
		id:        id,
		algorithm: session.algorithm,
		steps:     session.steps,
		solved:    len(frame.Path) > 0,
	}, nil
}

// Frame returns the session's latest yielded frame without advancing it.
func (m *SearchSessionManager) Frame(id uuid.UUID) (*search.Frame, error) {
	m.RLock()
	defer m.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	if session.lastFrame == nil {
		return nil, ErrNoFrame
	}
	return session.lastFrame, nil
}

// Abandon discards the session and its stepper.
func (m *SearchSessionManager) Abandon(id uuid.UUID) error {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrNoSession
	}
	delete(m.sessions, id)
	m.logger.Printf("%s[INFO]%s abandoned session: %s", config.LogInfoColor, config.LogColorReset, id)
	return nil
}

// TopRuns lists the best finished runs, fewest steps first.
func (m *SearchSessionManager) TopRuns(ctx context.Context, amount int64) ([]string, error) {
	return m.leaderboard.Tops(ctx, leaderboardKey, amount)
}

// recordRun puts a solved run on the leaderboard, scored by how many steps
// it took. Exhausted runs with no path are not ranked. It touches no session
// state and must not be called with the manager locked.
func (m *SearchSessionManager) recordRun(run *finishedRun) {
	if !run.solved {
		m.logger.Printf("%s[INFO]%s session %s finished with no path after %d steps", config.LogInfoColor, config.LogColorReset, run.id, run.steps)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
	defer cancel()

	member := fmt.Sprintf("%s:%s", run.algorithm, run.id)
	if err := m.leaderboard.Enqueue(ctx, leaderboardKey, float64(run.steps), member); err != nil {
		m.logger.Printf("%s[ERROR]%s recording run %s: %s", config.LogErrorColor, config.LogColorReset, run.id, err)
		return
	}
	m.logger.Printf("%s[INFO]%s session %s solved in %d steps", config.LogInfoColor, config.LogColorReset, run.id, run.steps)
}
