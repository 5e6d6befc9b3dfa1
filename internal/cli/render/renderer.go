package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/trebuchet-org/safe-eth/internal/config"
	"gopkg.in/yaml.v3"
)

type Renderer[T any] interface {
	Render(result T) error
}

// writeStructured encodes v as JSON or YAML
func writeStructured(out io.Writer, format config.OutputFormat, v any) error {
	switch format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
