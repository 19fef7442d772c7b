package connection

import (
	"sync"
	"time"
)

// Manager holds the client for the current server and dials it on first use.
type Manager struct {
	mu      sync.Mutex
	addr    string
	timeout time.Duration
	current *Client
}

// NewManager creates a manager for addr.
func NewManager(addr string, timeout time.Duration) *Manager {
	return &Manager{addr: addr, timeout: timeout}
}

// Addr returns the configured server address.
func (m *Manager) Addr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addr
}

// Client returns the current client, dialing if needed.
func (m *Manager) Client() (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return m.current, nil
	}
	c, err := Dial(m.addr, m.timeout)
	if err != nil {
		return nil, err
	}
	m.current = c
	return c, nil
}

// Use switches to another server. The previous client is closed.
func (m *Manager) Use(addr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.current != nil {
		err = m.current.Close()
		m.current = nil
	}
	m.addr = addr
	return err
}

// Disconnect closes the current client, if any.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	err := m.current.Close()
	m.current = nil
	return err
}

// IsConnected reports whether a client is open.
func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}
