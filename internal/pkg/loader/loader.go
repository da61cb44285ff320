// Package loader keeps an in-memory copy of a backend collection with
// fetch-on-demand semantics: loading/error state tracking, explicit refetch,
// and last-issued-wins resolution so a slow response never overwrites the
// result of a newer request.
package loader

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pkgredis "github.com/kmabtech/web/internal/pkg/redis"
	"go.uber.org/zap"
)

// State is the lifecycle of a fetch.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Snapshot is a point-in-time view of a loader.
type Snapshot[T any] struct {
	Data      []T
	State     State
	Err       string
	UpdatedAt time.Time
}

// Loader fetches a collection through fn and caches the result.
type Loader[T any] struct {
	name   string
	fn     func(ctx context.Context) ([]T, error)
	logger *zap.Logger

	rc       *pkgredis.Client
	redisKey string

	mu        sync.RWMutex
	seq       uint64
	data      []T
	state     State
	err       string
	updatedAt time.Time
}

// New creates a Loader. rc may be nil; when set, successful fetches are
// persisted as JSON snapshots so a restart serves warm data.
func New[T any](name string, fn func(ctx context.Context) ([]T, error), logger *zap.Logger, rc *pkgredis.Client) *Loader[T] {
	l := &Loader[T]{
		name:     name,
		fn:       fn,
		logger:   logger,
		rc:       rc,
		redisKey: "kmab:snapshot:" + name,
		state:    StateIdle,
	}
	l.restore()
	return l
}

// Snapshot returns the current cached view.
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Snapshot[T]{Data: l.data, State: l.state, Err: l.err, UpdatedAt: l.updatedAt}
}

// Get returns the cached collection, fetching synchronously when the cache
// is still cold. A stale-but-present snapshot is served as is; background
// refresh keeps it current.
func (l *Loader[T]) Get(ctx context.Context) ([]T, error) {
	snap := l.Snapshot()
	if snap.State == StateSuccess || (snap.State == StateLoading && snap.Data != nil) {
		return snap.Data, nil
	}
	if snap.State == StateError && snap.Data != nil {
		return snap.Data, nil
	}
	if err := l.Refetch(ctx); err != nil {
		return nil, err
	}
	return l.Snapshot().Data, nil
}

// Refetch issues a new fetch. If another fetch is started before this one
// resolves, this one's result is discarded: the most recently issued request
// wins, not the most recently resolved.
func (l *Loader[T]) Refetch(ctx context.Context) error {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.state = StateLoading
	l.mu.Unlock()

	data, err := l.fn(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		// A newer request superseded this one.
		return nil
	}
	if err != nil {
		l.state = StateError
		l.err = err.Error()
		l.logger.Warn("loader refetch failed", zap.String("loader", l.name), zap.Error(err))
		return err
	}
	l.data = data
	l.state = StateSuccess
	l.err = ""
	l.updatedAt = time.Now()
	l.persistLocked()
	return nil
}

// Patch mutates the cached collection in place, e.g. to drop a deleted item
// without a round trip. No-op unless a successful snapshot exists.
func (l *Loader[T]) Patch(fn func([]T) []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateSuccess {
		return
	}
	l.data = fn(l.data)
	l.persistLocked()
}

func (l *Loader[T]) persistLocked() {
	if l.rc == nil {
		return
	}
	payload, err := json.Marshal(l.data)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := l.rc.Set(ctx, l.redisKey, payload, 0); err != nil {
		l.logger.Warn("loader snapshot persist failed", zap.String("loader", l.name), zap.Error(err))
	}
}

func (l *Loader[T]) restore() {
	if l.rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	raw, err := l.rc.Get(ctx, l.redisKey)
	if err != nil || raw == "" {
		return
	}
	var data []T
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return
	}
	l.data = data
	l.state = StateSuccess
	l.updatedAt = time.Now()
	l.logger.Info("loader restored from snapshot", zap.String("loader", l.name), zap.Int("items", len(data)))
}
