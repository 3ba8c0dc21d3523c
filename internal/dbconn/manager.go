package dbconn

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/dbpg"
)

// DialFunc opens and pings the database. It is called at most once per
// in-flight connection attempt.
type DialFunc func() (*dbpg.DB, error)

type call struct {
	done chan struct{}
	conn *dbpg.DB
	err  error
}

// Manager memoizes a single database handle for the process. Concurrent
// first callers converge on one dial; a failed attempt is discarded so a
// later call can retry.
type Manager struct {
	dial DialFunc

	mu      sync.Mutex
	conn    *dbpg.DB
	pending *call
}

func NewManager(dial DialFunc) *Manager {
	return &Manager{dial: dial}
}

// Connect returns the memoized handle, establishing it on first use. Safe to
// call from any number of goroutines.
func (m *Manager) Connect(ctx context.Context) (*dbpg.DB, error) {
	m.mu.Lock()
	if m.conn != nil {
		conn := m.conn
		m.mu.Unlock()
		return conn, nil
	}

	c := m.pending
	if c == nil {
		c = &call{done: make(chan struct{})}
		m.pending = c
		go m.run(c)
	}
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
	}
	return c.conn, c.err
}

func (m *Manager) run(c *call) {
	conn, err := m.dial()
	c.conn, c.err = conn, err

	m.mu.Lock()
	if err == nil {
		m.conn = conn
	}
	m.pending = nil
	m.mu.Unlock()

	close(c.done)
}
