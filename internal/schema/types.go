package schema

import (
	"iter"
	"strings"
)

// Kind is the __TypeKind tag reported by introspection.
type Kind string

const (
	KindScalar      Kind = "SCALAR"
	KindObject      Kind = "OBJECT"
	KindInterface   Kind = "INTERFACE"
	KindUnion       Kind = "UNION"
	KindEnum        Kind = "ENUM"
	KindInputObject Kind = "INPUT_OBJECT"
	KindList        Kind = "LIST"
	KindNonNull     Kind = "NON_NULL"
)

// Named reports whether k names a type rather than wrapping one.
func (k Kind) Named() bool {
	switch k {
	case KindScalar, KindObject, KindInterface, KindUnion, KindEnum, KindInputObject:
		return true
	}
	return false
}

// TypeRef is a type reference: either a Named leaf or a List/NonNull wrapper.
// The set of implementations is closed to this package.
type TypeRef interface {
	typeRef()
}

// Named references a named type by name only.
type Named struct {
	Kind Kind
	Name string
}

// List wraps a type reference in [..].
type List struct {
	Of TypeRef
}

// NonNull wraps a type reference with a trailing !.
type NonNull struct {
	Of TypeRef
}

func (Named) typeRef()   {}
func (List) typeRef()    {}
func (NonNull) typeRef() {}

// Unwrap strips every List/NonNull wrapper and returns the innermost named reference.
func Unwrap(ref TypeRef) Named {
	for {
		switch r := ref.(type) {
		case Named:
			return r
		case List:
			ref = r.Of
		case NonNull:
			ref = r.Of
		default:
			return Named{}
		}
	}
}

// InputValue represents a field argument or input object field.
type InputValue struct {
	Name         string
	Description  string
	Type         TypeRef
	DefaultValue *string
}

// Field represents a field on an OBJECT or INTERFACE type.
type Field struct {
	Name              string
	Description       string
	Args              []InputValue
	Type              TypeRef
	Deprecated        bool
	DeprecationReason string
}

// EnumValue represents a value of an ENUM type.
type EnumValue struct {
	Name              string
	Description       string
	Deprecated        bool
	DeprecationReason string
}

// NamedType is a complete type declaration from the introspection result.
type NamedType struct {
	Kind          Kind
	Name          string
	Description   string
	Fields        []Field
	Interfaces    []string
	PossibleTypes []string
	EnumValues    []EnumValue
	InputFields   []InputValue
}

// Types is an order-preserving name -> type association.
type Types struct {
	order  []string
	byName map[string]*NamedType
}

func newTypes(capacity int) Types {
	return Types{
		order:  make([]string, 0, capacity),
		byName: make(map[string]*NamedType, capacity),
	}
}

func (t *Types) add(nt *NamedType) bool {
	if _, dup := t.byName[nt.Name]; dup {
		return false
	}
	t.order = append(t.order, nt.Name)
	t.byName[nt.Name] = nt
	return true
}

// Lookup returns the type with the given name, or nil.
func (t Types) Lookup(name string) *NamedType {
	return t.byName[name]
}

// Len returns the number of declared types.
func (t Types) Len() int {
	return len(t.order)
}

// Names returns type names in declaration order.
func (t Types) Names() []string {
	return append([]string(nil), t.order...)
}

// All iterates types in declaration order.
func (t Types) All() iter.Seq[*NamedType] {
	return func(yield func(*NamedType) bool) {
		for _, name := range t.order {
			if !yield(t.byName[name]) {
				return
			}
		}
	}
}

// Schema represents a parsed GraphQL introspection schema.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            Types
}

// RootTypes returns the root operation types that exist in this schema, in order.
func (s *Schema) RootTypes() []*NamedType {
	var roots []*NamedType
	for _, name := range []string{s.QueryType, s.MutationType, s.SubscriptionType} {
		if name == "" {
			continue
		}
		if t := s.Types.Lookup(name); t != nil {
			roots = append(roots, t)
		}
	}
	return roots
}

// BuiltinScalar reports whether name is one of the five scalars every schema has.
func BuiltinScalar(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	}
	return false
}

// MetaType reports whether name belongs to the introspection system (__Schema, __Type, ...).
func MetaType(name string) bool {
	return strings.HasPrefix(name, "__")
}
