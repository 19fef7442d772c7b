package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/resp"
)

// RawFormatter writes replies the way redis-cli does on a terminal.
type RawFormatter struct{}

// Format writes v followed by a newline.
func (f *RawFormatter) Format(w io.Writer, v resp.Value) error {
	var b strings.Builder
	writeRaw(&b, v, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRaw(b *strings.Builder, v resp.Value, indent string) {
	switch v.Type() {
	case resp.SimpleString:
		b.WriteString(v.String())
		b.WriteByte('\n')
	case resp.Error:
		fmt.Fprintf(b, "(error) %s\n", v.String())
	case resp.Integer:
		fmt.Fprintf(b, "(integer) %d\n", v.Integer())
	case resp.Array:
		items := v.Array()
		if v.IsNull() || len(items) == 0 {
			b.WriteString("(empty array)\n")
			return
		}
		width := len(strconv.Itoa(len(items)))
		for i, item := range items {
			if i > 0 {
				b.WriteString(indent)
			}
			prefix := fmt.Sprintf("%*d) ", width, i+1)
			b.WriteString(prefix)
			writeRaw(b, item, indent+strings.Repeat(" ", len(prefix)))
		}
	default:
		if v.IsNull() {
			b.WriteString("(nil)\n")
			return
		}
		b.WriteString(strconv.Quote(v.String()))
		b.WriteByte('\n')
	}
}
