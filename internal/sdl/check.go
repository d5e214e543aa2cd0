package sdl

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const sourceName = "schema.graphql"

// Check parses a rendered document as SDL. It reports syntax errors only.
func Check(doc string) error {
	if _, err := parser.ParseSchema(&ast.Source{Name: sourceName, Input: doc}); err != nil {
		return fmt.Errorf("rendered sdl does not parse: %w", err)
	}
	return nil
}

// Validate loads a rendered document with gqlparser, which also validates
// it against the built-in prelude. Introspection can legally report types
// that SDL validation rejects, such as an object type with no fields.
func Validate(doc string) error {
	if _, err := gqlparser.LoadSchema(&ast.Source{Name: sourceName, Input: doc}); err != nil {
		return fmt.Errorf("rendered sdl does not load: %w", err)
	}
	return nil
}
