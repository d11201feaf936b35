package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web3guy0/poolbot/internal/database"
)

var errDown = errors.New("database is down")

func newTestStore(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// brokenStore fails every call and counts how often it was reached.
type brokenStore struct {
	mu    sync.Mutex
	calls int
}

func (s *brokenStore) hit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errDown
}

func (s *brokenStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *brokenStore) Find(context.Context, int64) (*database.User, error) {
	return nil, s.hit()
}

func (s *brokenStore) Create(context.Context, int64, database.User) (*database.User, error) {
	return nil, s.hit()
}

func (s *brokenStore) Upsert(context.Context, *database.User, ...string) error {
	return s.hit()
}
