package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeStructured encodes v as JSON or YAML. It reports false for text output,
// which each command renders itself.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(v, "", JSONIndent)
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(YAMLIndent)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// Text styles
var (
	styleAction = color.New(color.FgGreen)
	styleHint   = color.New(color.Faint)
	styleTag    = color.New(color.Bold)
	styleWarn   = color.New(color.FgYellow)
)
