package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var formats = []Format{FormatTable, FormatJSON, FormatYAML}

func ParseFormat(value string) (Format, error) {
	for _, f := range formats {
		if strings.EqualFold(value, string(f)) {
			return f, nil
		}
	}
	allowed := make([]string, len(formats))
	for i, f := range formats {
		allowed[i] = string(f)
	}
	return "", &model.ConfigurationError{
		Parameter: "output",
		Value:     value,
		Allowed:   allowed,
	}
}

// Write renders the report in the requested format
func Write(w io.Writer, format Format, r *Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		_, err := io.WriteString(w, RenderTables(r))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
