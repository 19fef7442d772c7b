package output

import (
	"io"

	"github.com/tidwall/resp"
)

// Format represents the output format.
type Format string

const (
	FormatRaw  Format = "raw"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formatter writes one reply.
type Formatter interface {
	Format(w io.Writer, v resp.Value) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &RawFormatter{}
	}
}

// Valid reports whether f names a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatRaw, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Reply is the structured form of a reply used by the JSON and YAML formats.
type Reply struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// ToReply converts a RESP value into its structured form. Null bulk
// strings have a nil Value.
func ToReply(v resp.Value) Reply {
	switch v.Type() {
	case resp.SimpleString:
		return Reply{Type: "simple-string", Value: v.String()}
	case resp.Error:
		return Reply{Type: "error", Value: v.String()}
	case resp.Integer:
		return Reply{Type: "integer", Value: v.Integer()}
	case resp.Array:
		if v.IsNull() {
			return Reply{Type: "array"}
		}
		items := make([]Reply, 0, len(v.Array()))
		for _, item := range v.Array() {
			items = append(items, ToReply(item))
		}
		return Reply{Type: "array", Value: items}
	default:
		if v.IsNull() {
			return Reply{Type: "null"}
		}
		return Reply{Type: "bulk-string", Value: v.String()}
	}
}
