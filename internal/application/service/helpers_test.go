package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"healthlog/internal/domain/repository"
	"healthlog/internal/infrastructure/database/sqlite"
	"healthlog/internal/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"), "silent", logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.CloseDB(db) })
	return sqlite.NewStore(db)
}

type wakeup struct {
	at      time.Time
	payload uint
}

// fakeAlarm records registrations instead of scheduling them.
type fakeAlarm struct {
	mu        sync.Mutex
	pending   map[string]wakeup
	cancelled []string
	failFor   map[uint]bool
}

func newFakeAlarm() *fakeAlarm {
	return &fakeAlarm{pending: make(map[string]wakeup), failFor: make(map[uint]bool)}
}

func (a *fakeAlarm) RegisterWakeup(id string, at time.Time, payload uint) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failFor[payload] {
		return fmt.Errorf("alarm rejected %s", id)
	}
	a.pending[id] = wakeup{at: at, payload: payload}
	return nil
}

func (a *fakeAlarm) CancelWakeup(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pending, id)
	a.cancelled = append(a.cancelled, id)
}

func (a *fakeAlarm) get(id string) (wakeup, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	w, ok := a.pending[id]
	return w, ok
}

type shownNotification struct {
	key, title, body, deepLink string
}

// fakeNotifier keeps one slot per key.
type fakeNotifier struct {
	mu      sync.Mutex
	shown   []shownNotification
	active  map[string]shownNotification
	failErr error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{active: make(map[string]shownNotification)}
}

func (n *fakeNotifier) ShowNotification(_ context.Context, key, title, body, deepLink string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failErr != nil {
		return n.failErr
	}
	s := shownNotification{key: key, title: title, body: body, deepLink: deepLink}
	n.shown = append(n.shown, s)
	n.active[key] = s
	return nil
}

func (n *fakeNotifier) CancelNotification(_ context.Context, key string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.active, key)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
