package redisserver

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

// Store is the key-value storage the dispatcher executes against.
type Store interface {
	Set(key, value string)
	SetWithTTL(key, value string, ttl time.Duration)
	Get(key string) (string, bool)
}

// Command names. The set is closed.
const (
	cmdPing = "PING"
	cmdEcho = "ECHO"
	cmdSet  = "SET"
	cmdGet  = "GET"

	// metricUnknown labels commands outside the supported set so the
	// label cardinality stays bounded.
	metricUnknown = "unknown"
)

var (
	replyPong = SimpleString("PONG")
	replyOK   = SimpleString("OK")
)

// CommandHandler maps decoded commands to store operations.
//
// It keeps no state of its own; everything observable lives in the Store.
type CommandHandler struct {
	store   Store
	metrics *metric.Registry
}

// NewCommandHandler creates a new CommandHandler. metrics may be nil.
func NewCommandHandler(store Store, metrics *metric.Registry) *CommandHandler {
	return &CommandHandler{
		store:   store,
		metrics: metrics,
	}
}

// Handle executes one command and returns its reply.
//
// ok is false for an empty command, which gets no reply at all.
func (h *CommandHandler) Handle(ctx context.Context, args [][]byte) (reply Reply, ok bool) {
	if len(args) == 0 {
		return Reply{}, false
	}

	name := normalizeCommandName(args[0])
	start := time.Now()

	label := name
	switch name {
	case cmdPing:
		reply = replyPong
	case cmdEcho:
		reply = h.handleEcho(args)
	case cmdSet:
		reply = h.handleSet(ctx, args)
	case cmdGet:
		reply = h.handleGet(args)
	default:
		label = metricUnknown
		reply = Error(domain.ErrUnknownCommand.RESP())
	}

	if h.metrics != nil {
		h.metrics.CommandsTotal.WithLabelValues(label).Inc()
		h.metrics.CommandDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}
	if reply.Kind == ErrorReply {
		logger.FromContext(ctx).Debug("command rejected", "command", name, "args", len(args)-1)
	}

	return reply, true
}

// ECHO <message>
func (h *CommandHandler) handleEcho(args [][]byte) Reply {
	if len(args) != 2 {
		return Error(domain.ErrUnknownCommand.RESP())
	}
	return BulkString(string(args[1]))
}

// SET <key> <value> [PX <milliseconds>]
//
// Options after the value are scanned for the first PX followed by a
// non-negative integer. Any other token, or a PX with an unusable value,
// is ignored.
func (h *CommandHandler) handleSet(ctx context.Context, args [][]byte) Reply {
	if len(args) < 3 {
		return Error(domain.ErrUnknownCommand.RESP())
	}

	key := string(args[1])
	value := string(args[2])

	if ttl, ok := parsePX(args); ok {
		h.store.SetWithTTL(key, value, ttl)
		logger.FromContext(ctx).Debug("set", "key", key, "value", value, "ttl", ttl)
	} else {
		h.store.Set(key, value)
		logger.FromContext(ctx).Debug("set", "key", key, "value", value)
	}

	return replyOK
}

// GET <key>
func (h *CommandHandler) handleGet(args [][]byte) Reply {
	if len(args) != 2 {
		return Error(domain.ErrUnknownCommand.RESP())
	}

	value, ok := h.store.Get(string(args[1]))
	if !ok {
		return NullBulk()
	}
	return BulkString(value)
}

// parsePX returns the TTL of the first "PX <ms>" pair found at index 3 or later.
func parsePX(args [][]byte) (time.Duration, bool) {
	for i := 3; i+1 < len(args); i++ {
		if !strings.EqualFold(string(args[i]), "PX") {
			continue
		}
		ms, err := strconv.ParseInt(string(args[i+1]), 10, 64)
		if err != nil || ms < 0 {
			continue
		}
		return millisToDuration(ms), true
	}
	return 0, false
}

// millisToDuration converts milliseconds, saturating instead of overflowing.
func millisToDuration(ms int64) time.Duration {
	if ms > math.MaxInt64/int64(time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms) * time.Millisecond
}
