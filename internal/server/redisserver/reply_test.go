package redisserver

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		reply Reply
		want  string
	}{
		{"simple string", SimpleString("PONG"), "+PONG\r\n"},
		{"ok", SimpleString("OK"), "+OK\r\n"},
		{"bulk string", BulkString("hello"), "$5\r\nhello\r\n"},
		{"empty bulk string", BulkString(""), "$0\r\n\r\n"},
		{"bulk with CRLF", BulkString("a\r\nb"), "$4\r\na\r\nb\r\n"},
		{"bulk length counts bytes", BulkString("héllo"), "$6\r\nhéllo\r\n"},
		{"null bulk", NullBulk(), "$-1\r\n"},
		{"error", Error("ERR unknown command"), "-ERR unknown command\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Encode(tt.reply)); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendReply_Appends(t *testing.T) {
	dst := []byte("+OK\r\n")
	dst = AppendReply(dst, BulkString("x"))
	if got, want := string(dst), "+OK\r\n$1\r\nx\r\n"; got != want {
		t.Errorf("AppendReply() = %q, want %q", got, want)
	}
}

func TestEncode_LargeBulk(t *testing.T) {
	value := strings.Repeat("z", 12345)
	got := Encode(BulkString(value))
	if !bytes.HasPrefix(got, []byte("$12345\r\n")) {
		t.Errorf("prefix = %q", got[:10])
	}
	if !bytes.HasSuffix(got, []byte("z\r\n")) {
		t.Error("missing CRLF terminator")
	}
	if len(got) != len("$12345\r\n")+12345+2 {
		t.Errorf("len = %d", len(got))
	}
}

func TestWriteReply(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	if err := WriteReply(w, SimpleString("PONG")); err != nil {
		t.Fatalf("WriteReply: %v", err)
	}
	if err := WriteReply(w, NullBulk()); err != nil {
		t.Fatalf("WriteReply: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("WriteReply should not flush")
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := buf.String(), "+PONG\r\n$-1\r\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestReplyKind_String(t *testing.T) {
	tests := map[ReplyKind]string{
		SimpleStringReply: "simple-string",
		BulkStringReply:   "bulk-string",
		NullBulkReply:     "null-bulk-string",
		ErrorReply:        "error",
		ReplyKind(0):      "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("ReplyKind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
