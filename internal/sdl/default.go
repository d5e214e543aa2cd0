package sdl

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/qraqula/graphmcp/internal/schema"
)

var (
	intLiteral   = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)
	floatLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
	nameLiteral  = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)
)

// DefaultValue renders an introspected default literal for a value of type
// ref. Literals that cannot be classified against the type are returned
// exactly as stored.
func DefaultValue(s *schema.Schema, ref schema.TypeRef, lit string) string {
	out, ok := literal(s, ref, strings.TrimSpace(lit))
	if !ok {
		return lit
	}
	return out
}

func literal(s *schema.Schema, ref schema.TypeRef, lit string) (string, bool) {
	if lit == "null" {
		return lit, true
	}
	switch r := ref.(type) {
	case schema.NonNull:
		return literal(s, r.Of, lit)
	case schema.List:
		if !strings.HasPrefix(lit, "[") {
			// A single item coerces to a one-element list.
			return literal(s, r.Of, lit)
		}
		items, ok := splitList(lit)
		if !ok {
			return "", false
		}
		out := make([]string, len(items))
		for i, item := range items {
			v, ok := literal(s, r.Of, item)
			if !ok {
				return "", false
			}
			out[i] = v
		}
		return "[" + strings.Join(out, ", ") + "]", true
	case schema.Named:
		return namedLiteral(s, r, lit)
	}
	return "", false
}

func namedLiteral(s *schema.Schema, ref schema.Named, lit string) (string, bool) {
	switch ref.Name {
	case "String", "ID":
		if strings.HasPrefix(lit, `"""`) || isQuoted(lit) {
			return lit, true
		}
		return quote(lit), true
	case "Int":
		return lit, intLiteral.MatchString(lit)
	case "Float":
		return lit, floatLiteral.MatchString(lit)
	case "Boolean":
		return lit, lit == "true" || lit == "false"
	}

	kind := ref.Kind
	if t := s.Types.Lookup(ref.Name); t != nil {
		kind = t.Kind
	}
	if kind != schema.KindEnum {
		return "", false
	}
	if isQuoted(lit) {
		var name string
		if err := json.Unmarshal([]byte(lit), &name); err != nil {
			return "", false
		}
		lit = name
	}
	return lit, nameLiteral.MatchString(lit)
}

func isQuoted(lit string) bool {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return false
	}
	var v string
	return json.Unmarshal([]byte(lit), &v) == nil
}

// quote renders s as a GraphQL string literal. JSON string escapes are a
// subset of GraphQL's.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// splitList splits a list literal into its top-level items. GraphQL treats
// commas as whitespace, so both separate items.
func splitList(lit string) ([]string, bool) {
	if len(lit) < 2 || lit[0] != '[' || lit[len(lit)-1] != ']' {
		return nil, false
	}
	body := lit[1 : len(lit)-1]

	var items []string
	depth, start := 0, -1
	inString := false
	flush := func(end int) {
		if start >= 0 {
			items = append(items, body[start:end])
			start = -1
		}
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start < 0 {
				start = i
			}
			inString = true
		case '[', '{':
			if start < 0 {
				start = i
			}
			depth++
		case ']', '}':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',', ' ', '\t', '\n', '\r':
			if depth == 0 {
				flush(i)
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if inString || depth != 0 {
		return nil, false
	}
	flush(len(body))
	return items, true
}
