package format

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSON formats JSON input with standard 2-space indentation.
// Returns the original string and an error if the input is invalid JSON.
func JSON(src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return src, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(src), "", "  "); err != nil {
		return src, err
	}
	return buf.String(), nil
}

// Value marshals v with the same indentation as JSON, without HTML escaping.
func Value(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Variables decodes a JSON object given on the command line. Empty input
// means no variables.
func Variables(src string) (map[string]any, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}
	var vars map[string]any
	if err := json.Unmarshal([]byte(src), &vars); err != nil {
		return nil, err
	}
	return vars, nil
}
