package schema

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/qraqula/graphmcp/internal/graphql"
)

// IntrospectionQuery is the standard GraphQL introspection query with
// the TypeRef fragment for deeply nested NON_NULL/LIST wrapping (8 levels).
const IntrospectionQuery = `
query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`

// MalformedIntrospectionError reports an introspection payload that is
// missing a required key or carries an impossible type reference.
type MalformedIntrospectionError struct {
	Key    string
	Reason string
}

func (e *MalformedIntrospectionError) Error() string {
	return fmt.Sprintf("malformed introspection at %s: %s", e.Key, e.Reason)
}

// Kind returns the error kind name.
func (e *MalformedIntrospectionError) Kind() string { return "MalformedIntrospection" }

func malformed(key, reason string) error {
	return &MalformedIntrospectionError{Key: key, Reason: reason}
}

// Fetch sends the introspection query for subgraphID and returns the raw
// __schema object. GraphQL errors in a 200 response are returned as
// *graphql.ResponseError.
func Fetch(ctx context.Context, exec graphql.Executor, subgraphID string) ([]byte, error) {
	result, err := exec.Execute(ctx, subgraphID, graphql.Request{Query: IntrospectionQuery})
	if err != nil {
		return nil, fmt.Errorf("introspection request: %w", err)
	}
	if err := result.Response.Err(); err != nil {
		return nil, fmt.Errorf("introspection: %w", err)
	}
	return Extract(result.Body)
}

// Extract returns the raw __schema object from a GraphQL response body.
// Bodies that are already the bare {"__schema": ...} wrapper are accepted too.
func Extract(body []byte) ([]byte, error) {
	for _, path := range []string{"data.__schema", "__schema"} {
		if r := gjson.GetBytes(body, path); r.IsObject() {
			return []byte(r.Raw), nil
		}
	}
	return nil, malformed("data.__schema", "missing or not an object")
}

// ParseResponse extracts __schema from a response body and parses it.
func ParseResponse(body []byte) (*Schema, error) {
	raw, err := Extract(body)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse converts a raw __schema object into a Schema. Keys that only apply
// to other kinds (fields on an ENUM, say) are ignored, and kind-specific
// keys with the wrong shape read as empty.
func Parse(raw []byte) (*Schema, error) {
	if !gjson.ValidBytes(raw) {
		return nil, malformed("__schema", "not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, malformed("__schema", "not an object")
	}

	types := root.Get("types")
	if !types.IsArray() {
		return nil, malformed("types", "missing or not an array")
	}
	query := root.Get("queryType.name")
	if query.Type != gjson.String || query.Str == "" {
		return nil, malformed("queryType.name", "missing")
	}

	entries := types.Array()
	s := &Schema{
		QueryType:        query.Str,
		MutationType:     root.Get("mutationType.name").String(),
		SubscriptionType: root.Get("subscriptionType.name").String(),
		Types:            newTypes(len(entries)),
	}
	for i, entry := range entries {
		path := fmt.Sprintf("types[%d]", i)
		nt, err := parseType(entry, path)
		if err != nil {
			return nil, err
		}
		if !s.Types.add(nt) {
			return nil, malformed(path+".name", fmt.Sprintf("duplicate type %q", nt.Name))
		}
	}
	return s, nil
}

func parseType(entry gjson.Result, path string) (*NamedType, error) {
	kind := Kind(entry.Get("kind").String())
	if !kind.Named() {
		return nil, malformed(path+".kind", fmt.Sprintf("unexpected kind %q", kind))
	}
	name := entry.Get("name").String()
	if name == "" {
		return nil, malformed(path+".name", "missing")
	}
	nt := &NamedType{
		Kind:        kind,
		Name:        name,
		Description: entry.Get("description").String(),
	}

	var err error
	switch kind {
	case KindObject, KindInterface:
		if nt.Fields, err = parseFields(entry.Get("fields"), path+".fields"); err != nil {
			return nil, err
		}
		nt.Interfaces = names(entry.Get("interfaces"))
	case KindUnion:
		nt.PossibleTypes = names(entry.Get("possibleTypes"))
	case KindEnum:
		for _, v := range elements(entry.Get("enumValues")) {
			nt.EnumValues = append(nt.EnumValues, EnumValue{
				Name:              v.Get("name").String(),
				Description:       v.Get("description").String(),
				Deprecated:        v.Get("isDeprecated").Bool(),
				DeprecationReason: v.Get("deprecationReason").String(),
			})
		}
	case KindInputObject:
		if nt.InputFields, err = parseInputValues(entry.Get("inputFields"), path+".inputFields"); err != nil {
			return nil, err
		}
	}
	return nt, nil
}

func parseFields(r gjson.Result, path string) ([]Field, error) {
	var fields []Field
	for i, f := range elements(r) {
		fpath := fmt.Sprintf("%s[%d]", path, i)
		ref, err := parseTypeRef(f.Get("type"), fpath+".type")
		if err != nil {
			return nil, err
		}
		args, err := parseInputValues(f.Get("args"), fpath+".args")
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{
			Name:              f.Get("name").String(),
			Description:       f.Get("description").String(),
			Args:              args,
			Type:              ref,
			Deprecated:        f.Get("isDeprecated").Bool(),
			DeprecationReason: f.Get("deprecationReason").String(),
		})
	}
	return fields, nil
}

func parseInputValues(r gjson.Result, path string) ([]InputValue, error) {
	var values []InputValue
	for i, v := range elements(r) {
		vpath := fmt.Sprintf("%s[%d]", path, i)
		ref, err := parseTypeRef(v.Get("type"), vpath+".type")
		if err != nil {
			return nil, err
		}
		iv := InputValue{
			Name:        v.Get("name").String(),
			Description: v.Get("description").String(),
			Type:        ref,
		}
		if dv := v.Get("defaultValue"); dv.Type == gjson.String {
			lit := dv.Str
			iv.DefaultValue = &lit
		}
		values = append(values, iv)
	}
	return values, nil
}

// parseTypeRef unwraps the nested ofType chain. Named leaves keep only
// their name; lookups happen at render time.
func parseTypeRef(r gjson.Result, path string) (TypeRef, error) {
	if !r.IsObject() {
		return nil, malformed(path, "type reference missing")
	}
	kind := Kind(r.Get("kind").String())
	switch {
	case kind == KindList || kind == KindNonNull:
		of, err := parseTypeRef(r.Get("ofType"), path+".ofType")
		if err != nil {
			return nil, err
		}
		if kind == KindList {
			return List{Of: of}, nil
		}
		if _, nested := of.(NonNull); nested {
			return nil, malformed(path, "NON_NULL wraps NON_NULL")
		}
		return NonNull{Of: of}, nil
	case kind.Named():
		name := r.Get("name").String()
		if name == "" {
			return nil, malformed(path+".name", "missing")
		}
		return Named{Kind: kind, Name: name}, nil
	}
	return nil, malformed(path+".kind", fmt.Sprintf("unexpected kind %q", kind))
}

func elements(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

func names(r gjson.Result) []string {
	var out []string
	for _, ref := range elements(r) {
		if name := ref.Get("name").String(); name != "" {
			out = append(out, name)
		}
	}
	return out
}
