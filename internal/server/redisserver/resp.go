package redisserver

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Protocol limits, matching the defaults of Redis itself.
const (
	// MaxArrayLen limits the number of elements in a RESP array.
	MaxArrayLen = 1024 * 1024

	// MaxBulkLen limits the size of a single bulk string (512MB).
	MaxBulkLen = 512 * 1024 * 1024

	// MaxInlineLen limits the length of any protocol line (64KB).
	MaxInlineLen = 64 * 1024

	// bulkChunk is the largest bulk payload allocated up front. Longer
	// payloads grow with the bytes actually received.
	bulkChunk = 64 * 1024

	// argsPrealloc caps the capacity reserved from an array header.
	argsPrealloc = 64
)

var (
	// ErrProtocol reports malformed framing. It is fatal to the connection.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrLimitExceeded reports a frame over one of the protocol limits.
	// It wraps ErrProtocol.
	ErrLimitExceeded = fmt.Errorf("%w: limit exceeded", ErrProtocol)
)

// ReadCommand decodes one command from r.
//
// It returns io.EOF when the stream ends before the first byte of a new
// command, and io.ErrUnexpectedEOF when it ends inside one. A blank inline
// line decodes to an empty command (nil, nil), which carries no reply.
func ReadCommand(r *bufio.Reader) ([][]byte, error) {
	line, crlf, err := readLine(r, MaxInlineLen)
	if err != nil {
		return nil, err
	}

	if len(line) > 0 && line[0] == '*' {
		if !crlf {
			return nil, fmt.Errorf("%w: missing CRLF", ErrProtocol)
		}
		return readArrayCommand(r, line[1:])
	}

	// Inline command: "PING\r\n", "SET k v\r\n". A bare LF is accepted
	// here so that tools like nc work.
	parts := strings.Fields(string(line))
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([][]byte, 0, len(parts))
	for _, p := range parts {
		out = append(out, []byte(p))
	}
	return out, nil
}

// readArrayCommand decodes the N bulk strings following an "*<N>" header.
func readArrayCommand(r *bufio.Reader, count []byte) ([][]byte, error) {
	n, err := parseLength(count)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid array length %q", ErrProtocol, count)
	}
	if n == 0 {
		return nil, nil
	}
	if n > MaxArrayLen {
		return nil, fmt.Errorf("%w: array length %d exceeds %d", ErrLimitExceeded, n, MaxArrayLen)
	}

	out := make([][]byte, 0, min(n, argsPrealloc))
	for i := uint64(0); i < n; i++ {
		arg, err := readBulkString(r)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		out = append(out, arg)
	}
	return out, nil
}

// readBulkString decodes "$<L>\r\n" followed by L bytes and a 2-byte terminator.
// The terminator bytes are consumed but not inspected.
func readBulkString(r *bufio.Reader) ([]byte, error) {
	line, crlf, err := readLine(r, MaxInlineLen)
	if err != nil {
		return nil, err
	}
	if !crlf {
		return nil, fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	if len(line) == 0 || line[0] != '$' {
		return nil, fmt.Errorf("%w: expected bulk string", ErrProtocol)
	}
	n, err := parseLength(line[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bulk length %q", ErrProtocol, line[1:])
	}
	if n > MaxBulkLen {
		return nil, fmt.Errorf("%w: bulk length %d exceeds %d", ErrLimitExceeded, n, MaxBulkLen)
	}

	if n <= bulkChunk {
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf[:n:n], nil
	}

	var payload bytes.Buffer
	payload.Grow(bulkChunk)
	if _, err := io.CopyN(&payload, r, int64(n)); err != nil {
		return nil, err
	}
	if _, err := r.Discard(2); err != nil {
		return nil, err
	}
	return payload.Bytes()[:n:n], nil
}

// readLine reads up to and including LF and returns the line without its
// terminator. crlf reports whether the line ended in CRLF rather than a
// bare LF.
//
// A stream that ends before any byte is read yields io.EOF, and one that
// ends mid-line yields io.ErrUnexpectedEOF.
func readLine(r *bufio.Reader, maxLen int) (line []byte, crlf bool, err error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > maxLen {
				return nil, false, fmt.Errorf("%w: line length exceeds %d", ErrLimitExceeded, maxLen)
			}
			continue
		}
		if errors.Is(err, io.EOF) && len(buf)+len(frag) > 0 {
			return nil, false, io.ErrUnexpectedEOF
		}
		return nil, false, err
	}

	if len(buf) > maxLen {
		return nil, false, fmt.Errorf("%w: line length exceeds %d", ErrLimitExceeded, maxLen)
	}
	if bytes.HasSuffix(buf, []byte("\r\n")) {
		return buf[:len(buf)-2], true, nil
	}
	return buf[:len(buf)-1], false, nil
}

// parseLength parses an unsigned decimal count or length.
func parseLength(b []byte) (uint64, error) {
	return strconv.ParseUint(string(b), 10, 64)
}

// unexpectedEOF converts a clean EOF in the middle of a frame into
// io.ErrUnexpectedEOF.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// normalizeCommandName upper-cases an ASCII command name.
func normalizeCommandName(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	// Uppercase ASCII without allocating for already uppercased tokens.
	if bytes.ContainsAny(b, "abcdefghijklmnopqrstuvwxyz") {
		return strings.ToUpper(string(b))
	}
	return string(b)
}
