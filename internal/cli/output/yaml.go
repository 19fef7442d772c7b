package output

import (
	"io"

	"github.com/tidwall/resp"
	"go.yaml.in/yaml/v3"
)

// YAMLFormatter formats replies as YAML.
type YAMLFormatter struct{}

// Format formats v as YAML.
func (f *YAMLFormatter) Format(w io.Writer, v resp.Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToReply(v)); err != nil {
		return err
	}
	return enc.Close()
}
