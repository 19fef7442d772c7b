package redisserver

import (
	"bufio"
	"strconv"
)

// ReplyKind identifies the RESP type of a Reply.
type ReplyKind uint8

const (
	// SimpleStringReply encodes as "+S\r\n".
	SimpleStringReply ReplyKind = iota + 1
	// BulkStringReply encodes as "$<len>\r\nS\r\n".
	BulkStringReply
	// NullBulkReply encodes as "$-1\r\n".
	NullBulkReply
	// ErrorReply encodes as "-E\r\n".
	ErrorReply
)

// String returns the RESP type name.
func (k ReplyKind) String() string {
	switch k {
	case SimpleStringReply:
		return "simple-string"
	case BulkStringReply:
		return "bulk-string"
	case NullBulkReply:
		return "null-bulk-string"
	case ErrorReply:
		return "error"
	default:
		return "unknown"
	}
}

// Reply is a single RESP reply value.
type Reply struct {
	Kind ReplyKind
	Str  string
}

// SimpleString returns a simple-string reply.
func SimpleString(s string) Reply { return Reply{Kind: SimpleStringReply, Str: s} }

// BulkString returns a bulk-string reply.
func BulkString(s string) Reply { return Reply{Kind: BulkStringReply, Str: s} }

// NullBulk returns the null bulk-string reply.
func NullBulk() Reply { return Reply{Kind: NullBulkReply} }

// Error returns an error reply. msg must not contain CR or LF.
func Error(msg string) Reply { return Reply{Kind: ErrorReply, Str: msg} }

// AppendReply appends the RESP encoding of r to dst.
// Bulk lengths are byte counts.
func AppendReply(dst []byte, r Reply) []byte {
	switch r.Kind {
	case SimpleStringReply:
		dst = append(dst, '+')
		dst = append(dst, r.Str...)
	case BulkStringReply:
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(r.Str)), 10)
		dst = append(dst, '\r', '\n')
		dst = append(dst, r.Str...)
	case NullBulkReply:
		dst = append(dst, "$-1"...)
	case ErrorReply:
		dst = append(dst, '-')
		dst = append(dst, r.Str...)
	}
	return append(dst, '\r', '\n')
}

// Encode returns the RESP encoding of r.
func Encode(r Reply) []byte {
	return AppendReply(make([]byte, 0, len(r.Str)+16), r)
}

// WriteReply writes the encoding of r to w. The caller flushes.
func WriteReply(w *bufio.Writer, r Reply) error {
	_, err := w.Write(Encode(r))
	return err
}
