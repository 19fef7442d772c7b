package connection

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/tidwall/resp"
)

// DefaultTimeout bounds dialing and each request/reply round trip.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned when using a client after Close.
var ErrClosed = errors.New("connection: client closed")

// Client sends commands to a RESP server over one TCP connection.
// It is safe for concurrent use; requests are serialized.
type Client struct {
	addr    string
	timeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	bw     *bufio.Writer
	w      *resp.Writer
	r      *resp.Reader
	closed bool
}

// Dial connects to addr. A timeout of 0 uses DefaultTimeout.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return newClient(conn, addr, timeout), nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return newClient(conn, conn.RemoteAddr().String(), timeout)
}

func newClient(conn net.Conn, addr string, timeout time.Duration) *Client {
	bw := bufio.NewWriter(conn)
	return &Client{
		addr:    addr,
		timeout: timeout,
		conn:    conn,
		bw:      bw,
		w:       resp.NewWriter(bw),
		r:       resp.NewReader(bufio.NewReader(conn)),
	}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends args as one command and returns the server's reply.
// Error replies are returned as values, not as Go errors.
func (c *Client) Do(args ...string) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, errors.New("connection: empty command")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return resp.Value{}, ErrClosed
	}

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return resp.Value{}, err
	}

	vals := make([]resp.Value, len(args))
	for i, a := range args {
		vals[i] = resp.StringValue(a)
	}
	if err := c.w.WriteArray(vals); err != nil {
		return resp.Value{}, fmt.Errorf("write command: %w", err)
	}
	if err := c.bw.Flush(); err != nil {
		return resp.Value{}, fmt.Errorf("write command: %w", err)
	}

	v, _, err := c.r.ReadValue()
	if err != nil {
		return resp.Value{}, fmt.Errorf("read reply: %w", err)
	}
	return v, nil
}

// Ping sends PING and checks for PONG.
func (c *Client) Ping() error {
	v, err := c.Do("PING")
	if err != nil {
		return err
	}
	if v.Type() == resp.Error {
		return v.Error()
	}
	if v.String() != "PONG" {
		return fmt.Errorf("unexpected PING reply %q", v.String())
	}
	return nil
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
