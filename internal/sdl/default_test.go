package sdl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qraqula/graphmcp/internal/schema"
)

func TestDefaultValue(t *testing.T) {
	s := parse(t, `{
		"queryType": {"name": "Query"},
		"types": [
			{"kind": "OBJECT", "name": "Query", "fields": []},
			{"kind": "ENUM", "name": "OrderDirection", "enumValues": [{"name": "asc"}, {"name": "desc"}]}
		]
	}`)

	str := schema.Named{Kind: schema.KindScalar, Name: "String"}
	id := schema.Named{Kind: schema.KindScalar, Name: "ID"}
	integer := schema.Named{Kind: schema.KindScalar, Name: "Int"}
	float := schema.Named{Kind: schema.KindScalar, Name: "Float"}
	boolean := schema.Named{Kind: schema.KindScalar, Name: "Boolean"}
	enum := schema.Named{Kind: schema.KindEnum, Name: "OrderDirection"}

	tests := []struct {
		name string
		ref  schema.TypeRef
		lit  string
		want string
	}{
		{"quoted string kept", str, `"uni"`, `"uni"`},
		{"block string kept", str, `"""hi"""`, `"""hi"""`},
		{"multi-line block string kept", str, "\"\"\"\n  two\n  lines\n\"\"\"", "\"\"\"\n  two\n  lines\n\"\"\""},
		{"bare string quoted", str, `uni`, `"uni"`},
		{"string escapes", str, `say "hi"`, `"say \"hi\""`},
		{"id quoted", id, `0x1`, `"0x1"`},
		{"non null string", schema.NonNull{Of: str}, `abc`, `"abc"`},
		{"int bare", integer, `100`, `100`},
		{"negative int", integer, `-3`, `-3`},
		{"float bare", float, `1.5e3`, `1.5e3`},
		{"boolean", boolean, `true`, `true`},
		{"enum bare", enum, `asc`, `asc`},
		{"quoted enum unquoted", enum, `"desc"`, `desc`},
		{"null", integer, `null`, `null`},
		{"int list", schema.List{Of: schema.NonNull{Of: integer}}, `[1,2 3]`, `[1, 2, 3]`},
		{"string list", schema.List{Of: str}, `["a" b]`, `["a", "b"]`},
		{"nested list", schema.List{Of: schema.List{Of: integer}}, `[[1, 2], [3]]`, `[[1, 2], [3]]`},
		{"empty list", schema.List{Of: integer}, `[]`, `[]`},
		{"single item coerced", schema.List{Of: enum}, `asc`, `asc`},
		{"enum list", schema.List{Of: enum}, `[asc, "desc"]`, `[asc, desc]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultValue(s, tt.ref, tt.lit))
		})
	}
}

func TestDefaultValueVerbatimFallback(t *testing.T) {
	s := parse(t, `{
		"queryType": {"name": "Query"},
		"types": [
			{"kind": "OBJECT", "name": "Query", "fields": []},
			{"kind": "SCALAR", "name": "BigInt"},
			{"kind": "INPUT_OBJECT", "name": "Filter", "inputFields": []}
		]
	}`)
	integer := schema.Named{Kind: schema.KindScalar, Name: "Int"}

	tests := []struct {
		name string
		ref  schema.TypeRef
		lit  string
	}{
		{"custom scalar", schema.Named{Kind: schema.KindScalar, Name: "BigInt"}, `"1000000000000000000"`},
		{"input object", schema.Named{Kind: schema.KindInputObject, Name: "Filter"}, `{name: "x"}`},
		{"int that is not an int", integer, `ten`},
		{"float in int", integer, `1.5`},
		{"boolean text", schema.Named{Kind: schema.KindScalar, Name: "Boolean"}, `yes`},
		{"unterminated list", schema.List{Of: integer}, `[1, 2`},
		{"bad list item", schema.List{Of: integer}, `[1, x]`},
		{"unknown type", schema.Named{Kind: schema.KindScalar, Name: "Nope"}, `whatever`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lit, DefaultValue(s, tt.ref, tt.lit))
		})
	}
}
