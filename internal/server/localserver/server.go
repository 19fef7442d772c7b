package localserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// Target runs one client session and blocks until it ends.
// *redisserver.Server satisfies it.
type Target interface {
	ServeConn(ctx context.Context, nc net.Conn)
}

// Server accepts connections on a Unix socket and hands them to a Target.
type Server struct {
	path   string
	target Target
	logger logger.Logger

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	conns    map[net.Conn]struct{}

	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a new local server.
func New(socketPath string, target Target, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		path:   socketPath,
		target: target,
		logger: log,
		conns:  make(map[net.Conn]struct{}),
	}
}

// Start creates the socket and accepts connections in the background.
// Listen errors are returned synchronously.
func (s *Server) Start(ctx context.Context) error {
	if err := removeStaleSocket(s.path); err != nil {
		return err
	}

	ln, err := listenPrivate(s.path)
	if err != nil {
		return err
	}
	if err := os.Chmod(s.path, 0600); err != nil {
		_ = ln.Close()
		return fmt.Errorf("chmod %s: %w", s.path, err)
	}

	s.serve(ctx, ln)
	return nil
}

// serve accepts connections from ln in the background.
func (s *Server) serve(ctx context.Context, ln net.Listener) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.listener = ln
	s.cancel = cancel
	s.mu.Unlock()

	s.running.Store(true)
	s.logger.Info("local socket listening", "path", s.path)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(ctx, ln)
	}()
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// acceptLoop runs until ln is closed or the server shuts down. Other accept
// errors are retried after a delay doubling from 5ms up to 1s.
func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(2*delay, time.Second)
			}
			s.logger.Warn("local socket accept error, retrying", "error", err, "delay", delay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			continue
		}
		delay = 0

		s.mu.Lock()
		if !s.running.Load() {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				s.mu.Lock()
				delete(s.conns, conn)
				s.mu.Unlock()
			}()
			s.target.ServeConn(ctx, conn)
		}()
	}
}

// Shutdown stops accepting, closes open local connections, and waits for
// their sessions to end or ctx to expire. The socket file is removed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var closeErr error
	s.mu.Lock()
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			closeErr = err
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// removeStaleSocket deletes a leftover socket file. Any other kind of file
// at path is an error.
func removeStaleSocket(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&fs.ModeSocket == 0 {
		return fmt.Errorf("%s exists and is not a socket", path)
	}
	return os.Remove(path)
}
