package redisserver

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/cmap"
)

// Config holds the RESP server configuration.
type Config struct {
	// Address is the TCP listen address.
	Address string
	// ReadTimeout bounds reading one command once its first byte arrived.
	// 0 disables it.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one reply. 0 disables it.
	WriteTimeout time.Duration
	// IdleTimeout closes connections idle between commands. 0 disables it.
	IdleTimeout time.Duration
	// RateLimit is the commands per second allowed per connection.
	// A client over the limit is delayed, not rejected. 0 disables it.
	RateLimit float64
	// RateBurst is the token bucket size. Defaults to 1 when RateLimit is set.
	RateBurst int
	// MaxConnections caps concurrently open connections. 0 means unlimited.
	MaxConnections int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address: "127.0.0.1:6379",
	}
}

// Server represents the RESP protocol server.
type Server struct {
	cfg     *Config
	handler *CommandHandler
	metrics *metric.Registry
	logger  logger.Logger

	lnMu sync.Mutex
	ln   net.Listener

	cancel  context.CancelFunc
	running atomic.Bool
	active  atomic.Int64
	conns   *cmap.Map[string, *Conn]
	wg      sync.WaitGroup
}

// Conn represents a single client connection.
type Conn struct {
	id      string
	netConn net.Conn
	br      *bufio.Reader
	bw      *bufio.Writer

	closed atomic.Bool
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		id:      ulid.Make().String(),
		netConn: c,
		br:      bufio.NewReader(c),
		bw:      bufio.NewWriter(c),
	}
}

// ID returns the connection ID.
func (c *Conn) ID() string {
	return c.id
}

// Close closes the connection. It is safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a new RESP server. metrics and log may be nil.
func New(cfg *Config, handler *CommandHandler, metrics *metric.Registry, log logger.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}

	return &Server{
		cfg:     cfg,
		handler: handler,
		metrics: metrics,
		logger:  log,
		conns:   cmap.New[string, *Conn](),
	}
}

// Start binds the listen address and serves connections in the background.
//
// Bind errors are returned synchronously.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln in the background.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)

	s.lnMu.Lock()
	s.ln = ln
	s.cancel = cancel
	s.lnMu.Unlock()

	s.running.Store(true)
	s.logger.Info("redis server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(ctx, ln)
	}()

	return nil
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.lnMu.Lock()
	defer s.lnMu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ConnCount returns the number of open client connections.
func (s *Server) ConnCount() int {
	return int(s.active.Load())
}

// Shutdown stops accepting, closes every open connection, and waits for
// session goroutines to exit or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error

	s.lnMu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.lnMu.Unlock()

	s.conns.Range(func(_ string, c *Conn) bool {
		_ = c.Close()
		return true
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

// Accept retry delays after a failed Accept, doubling from min to max.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// acceptLoop runs until ln is closed or the server shuts down. Other accept
// errors, such as running out of file descriptors, are retried with backoff.
func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	var delay time.Duration
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			delay = nextAcceptDelay(delay)
			s.logger.Warn("accept error, retrying", "error", err, "delay", delay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			continue
		}
		delay = 0

		if limit := s.cfg.MaxConnections; limit > 0 && s.active.Load() >= int64(limit) {
			s.logger.Warn("connection limit reached", "remote", c.RemoteAddr().String(), "max", limit)
			if s.metrics != nil {
				s.metrics.ConnectionsRejected.Inc()
			}
			_ = c.Close()
			continue
		}

		s.track(ctx, c)
	}
}

// ServeConn runs a session over an already established connection and
// blocks until it ends.
func (s *Server) ServeConn(ctx context.Context, nc net.Conn) {
	s.track(ctx, nc).Wait()
}

// track registers nc and starts its session goroutine.
func (s *Server) track(ctx context.Context, nc net.Conn) *sync.WaitGroup {
	c := newConn(nc)
	s.conns.Set(c.id, c)
	s.active.Add(1)
	if s.metrics != nil {
		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
	}

	var done sync.WaitGroup
	done.Add(1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer done.Done()
		defer s.untrack(c)
		s.serveConn(ctx, c)
	}()
	return &done
}

func (s *Server) untrack(c *Conn) {
	_ = c.Close()
	s.conns.Delete(c.id)
	s.active.Add(-1)
	if s.metrics != nil {
		s.metrics.ConnectionsActive.Dec()
	}
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	log := s.logger.With("conn_id", c.id, "remote", c.RemoteAddr().String())
	ctx = logger.WithLogger(logger.WithConnID(ctx, c.id), log)

	log.Debug("connection opened")
	defer log.Debug("connection closed")

	var limiter *rate.Limiter
	if s.cfg.RateLimit > 0 {
		burst := s.cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(s.cfg.RateLimit), burst)
	}

	for {
		// First byte: allow the idle timeout between commands.
		if err := c.netConn.SetReadDeadline(deadline(s.cfg.IdleTimeout)); err != nil {
			return
		}
		if _, err := c.br.Peek(1); err != nil {
			s.logReadError(log, err)
			return
		}

		// After first byte: the whole command must arrive within ReadTimeout.
		if err := c.netConn.SetReadDeadline(deadline(s.cfg.ReadTimeout)); err != nil {
			return
		}

		args, err := ReadCommand(c.br)
		if err != nil {
			s.logReadError(log, err)
			return
		}
		if len(args) == 0 {
			continue
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		reply, ok := s.handler.Handle(ctx, args)
		if !ok {
			continue
		}

		if err := c.netConn.SetWriteDeadline(deadline(s.cfg.WriteTimeout)); err != nil {
			return
		}
		if err := WriteReply(c.bw, reply); err != nil {
			log.Debug("write reply failed", "error", err)
			return
		}
		if err := c.bw.Flush(); err != nil {
			log.Debug("write reply failed", "error", err)
			return
		}
	}
}

// logReadError classifies why a session stopped reading.
// Protocol errors end the session without any reply.
func (s *Server) logReadError(log logger.Logger, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, io.EOF):
	case errors.Is(err, ErrProtocol):
		if s.metrics != nil {
			s.metrics.ProtocolErrors.Inc()
		}
		log.Warn("protocol error, closing connection", "error", err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		log.Debug("connection closed mid-command")
	case errors.As(err, &netErr) && netErr.Timeout():
		log.Debug("connection timed out")
	default:
		log.Debug("connection read error", "error", err)
	}
}

func nextAcceptDelay(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptDelay
	}
	return min(2*d, maxAcceptDelay)
}

// deadline converts a timeout to an absolute deadline. Zero means none.
func deadline(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return time.Now().Add(d)
}
