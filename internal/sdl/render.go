// Package sdl renders a parsed introspection schema as GraphQL Schema
// Definition Language.
package sdl

import (
	"fmt"
	"iter"
	"strings"

	"github.com/qraqula/graphmcp/internal/schema"
)

// Separator joins rendered blocks in a Document.
const Separator = "\n\n"

const defaultDeprecationReason = "No longer supported"

// UnresolvedTypeReferenceError reports a type name that is neither declared
// in the schema nor built in.
type UnresolvedTypeReferenceError struct {
	Name     string
	Referrer string
}

func (e *UnresolvedTypeReferenceError) Error() string {
	return fmt.Sprintf("unresolved type reference %q in %s", e.Name, e.Referrer)
}

func (e *UnresolvedTypeReferenceError) Kind() string { return "UnresolvedTypeReference" }

// Render checks every type reference in s and returns the SDL blocks, one
// per rendered type. Nothing is yielded unless the whole schema resolves.
// The sequence may be ranged over any number of times.
func Render(s *schema.Schema) (iter.Seq[string], error) {
	if err := resolve(s); err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		if block := schemaBlock(s); block != "" {
			if !yield(block) {
				return
			}
		}
		for t := range s.Types.All() {
			if skip(t) {
				continue
			}
			if !yield(renderType(s, t)) {
				return
			}
		}
	}, nil
}

// Document renders s and joins the blocks with Separator.
func Document(s *schema.Schema) (string, error) {
	blocks, err := Render(s)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	for block := range blocks {
		if buf.Len() > 0 {
			buf.WriteString(Separator)
		}
		buf.WriteString(block)
	}
	return buf.String(), nil
}

// RenderTypeRef renders a type reference with GraphQL wrapper syntax.
func RenderTypeRef(ref schema.TypeRef) string {
	switch r := ref.(type) {
	case schema.Named:
		return r.Name
	case schema.List:
		return "[" + RenderTypeRef(r.Of) + "]"
	case schema.NonNull:
		return RenderTypeRef(r.Of) + "!"
	}
	return ""
}

func skip(t *schema.NamedType) bool {
	if schema.MetaType(t.Name) {
		return true
	}
	return t.Kind == schema.KindScalar && schema.BuiltinScalar(t.Name)
}

func resolve(s *schema.Schema) error {
	known := func(name string) bool {
		return s.Types.Lookup(name) != nil || schema.BuiltinScalar(name) || schema.MetaType(name)
	}
	check := func(name, referrer string) error {
		if !known(name) {
			return &UnresolvedTypeReferenceError{Name: name, Referrer: referrer}
		}
		return nil
	}
	checkRef := func(ref schema.TypeRef, referrer string) error {
		return check(schema.Unwrap(ref).Name, referrer)
	}

	roots := []struct{ name, op string }{
		{s.QueryType, "query"},
		{s.MutationType, "mutation"},
		{s.SubscriptionType, "subscription"},
	}
	for _, root := range roots {
		if root.name == "" {
			continue
		}
		if err := check(root.name, "schema "+root.op+" root"); err != nil {
			return err
		}
	}

	for t := range s.Types.All() {
		if schema.MetaType(t.Name) {
			continue
		}
		for _, f := range t.Fields {
			where := t.Name + "." + f.Name
			if err := checkRef(f.Type, where); err != nil {
				return err
			}
			for _, a := range f.Args {
				if err := checkRef(a.Type, where+"("+a.Name+":)"); err != nil {
					return err
				}
			}
		}
		for _, f := range t.InputFields {
			if err := checkRef(f.Type, t.Name+"."+f.Name); err != nil {
				return err
			}
		}
		for _, name := range t.Interfaces {
			if err := check(name, t.Name+" implements"); err != nil {
				return err
			}
		}
		for _, name := range t.PossibleTypes {
			if err := check(name, "union "+t.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// schemaBlock is only needed when a root type has a non-conventional name.
func schemaBlock(s *schema.Schema) string {
	if (s.QueryType == "" || s.QueryType == "Query") &&
		(s.MutationType == "" || s.MutationType == "Mutation") &&
		(s.SubscriptionType == "" || s.SubscriptionType == "Subscription") {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("schema {\n")
	if s.QueryType != "" {
		fmt.Fprintf(&buf, "  query: %s\n", s.QueryType)
	}
	if s.MutationType != "" {
		fmt.Fprintf(&buf, "  mutation: %s\n", s.MutationType)
	}
	if s.SubscriptionType != "" {
		fmt.Fprintf(&buf, "  subscription: %s\n", s.SubscriptionType)
	}
	buf.WriteByte('}')
	return buf.String()
}

func renderType(s *schema.Schema, t *schema.NamedType) string {
	var buf strings.Builder
	writeDescription(&buf, t.Description, "")

	switch t.Kind {
	case schema.KindScalar:
		fmt.Fprintf(&buf, "scalar %s", t.Name)
	case schema.KindObject:
		writeObject(&buf, s, "type", t)
	case schema.KindInterface:
		writeObject(&buf, s, "interface", t)
	case schema.KindUnion:
		fmt.Fprintf(&buf, "union %s", t.Name)
		if len(t.PossibleTypes) > 0 {
			fmt.Fprintf(&buf, " = %s", strings.Join(t.PossibleTypes, " | "))
		}
	case schema.KindEnum:
		writeEnum(&buf, t)
	case schema.KindInputObject:
		writeInputObject(&buf, s, t)
	}
	return buf.String()
}

func writeObject(buf *strings.Builder, s *schema.Schema, keyword string, t *schema.NamedType) {
	fmt.Fprintf(buf, "%s %s", keyword, t.Name)
	if len(t.Interfaces) > 0 {
		fmt.Fprintf(buf, " implements %s", strings.Join(t.Interfaces, " & "))
	}
	if len(t.Fields) == 0 {
		return
	}
	buf.WriteString(" {\n")
	for _, f := range t.Fields {
		writeField(buf, s, f)
	}
	buf.WriteByte('}')
}

func writeInputObject(buf *strings.Builder, s *schema.Schema, t *schema.NamedType) {
	fmt.Fprintf(buf, "input %s", t.Name)
	if len(t.InputFields) == 0 {
		return
	}
	buf.WriteString(" {\n")
	for _, f := range t.InputFields {
		writeDescription(buf, f.Description, "  ")
		buf.WriteString("  ")
		writeInputValue(buf, s, f)
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
}

func writeEnum(buf *strings.Builder, t *schema.NamedType) {
	fmt.Fprintf(buf, "enum %s", t.Name)
	if len(t.EnumValues) == 0 {
		return
	}
	buf.WriteString(" {\n")
	for _, v := range t.EnumValues {
		writeDescription(buf, v.Description, "  ")
		fmt.Fprintf(buf, "  %s", v.Name)
		writeDeprecated(buf, v.Deprecated, v.DeprecationReason)
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
}

func writeField(buf *strings.Builder, s *schema.Schema, f schema.Field) {
	writeDescription(buf, f.Description, "  ")
	fmt.Fprintf(buf, "  %s", f.Name)
	if len(f.Args) > 0 {
		buf.WriteByte('(')
		for i, arg := range f.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			if arg.Description != "" {
				buf.WriteString(blockString(arg.Description, ""))
				buf.WriteByte(' ')
			}
			writeInputValue(buf, s, arg)
		}
		buf.WriteByte(')')
	}
	fmt.Fprintf(buf, ": %s", RenderTypeRef(f.Type))
	writeDeprecated(buf, f.Deprecated, f.DeprecationReason)
	buf.WriteByte('\n')
}

func writeInputValue(buf *strings.Builder, s *schema.Schema, v schema.InputValue) {
	fmt.Fprintf(buf, "%s: %s", v.Name, RenderTypeRef(v.Type))
	if v.DefaultValue != nil {
		fmt.Fprintf(buf, " = %s", DefaultValue(s, v.Type, *v.DefaultValue))
	}
}

func writeDeprecated(buf *strings.Builder, deprecated bool, reason string) {
	if !deprecated {
		return
	}
	if reason == "" || reason == defaultDeprecationReason {
		buf.WriteString(" @deprecated")
		return
	}
	fmt.Fprintf(buf, " @deprecated(reason: %s)", quote(reason))
}

func writeDescription(buf *strings.Builder, desc, indent string) {
	if desc == "" {
		return
	}
	buf.WriteString(indent)
	buf.WriteString(blockString(desc, indent))
	buf.WriteByte('\n')
}

// blockString renders a description as a """ block string. A trailing
// quote or backslash would merge with the closing delimiter, so those
// descriptions take the multi-line form.
func blockString(desc, indent string) string {
	desc = strings.ReplaceAll(desc, `"""`, `\"""`)
	if !strings.Contains(desc, "\n") && !strings.HasSuffix(desc, `"`) && !strings.HasSuffix(desc, `\`) {
		return `"""` + desc + `"""`
	}
	lines := strings.Split(desc, "\n")
	var buf strings.Builder
	buf.WriteString(`"""` + "\n")
	for _, line := range lines {
		if line != "" {
			buf.WriteString(indent)
			buf.WriteString(line)
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent + `"""`)
	return buf.String()
}
