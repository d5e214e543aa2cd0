package schema

import (
	"slices"
	"testing"
)

func TestUnwrapNamed(t *testing.T) {
	ref := Named{Kind: KindScalar, Name: "String"}
	if got := Unwrap(ref); got != ref {
		t.Errorf("got %+v, want %+v", got, ref)
	}
}

func TestUnwrapNested(t *testing.T) {
	ref := NonNull{Of: List{Of: NonNull{Of: Named{Kind: KindObject, Name: "Post"}}}}
	got := Unwrap(ref)
	if got.Name != "Post" || got.Kind != KindObject {
		t.Errorf("got %+v, want OBJECT Post", got)
	}
}

func TestKindNamed(t *testing.T) {
	for _, k := range []Kind{KindScalar, KindObject, KindInterface, KindUnion, KindEnum, KindInputObject} {
		if !k.Named() {
			t.Errorf("expected %s to be a named kind", k)
		}
	}
	for _, k := range []Kind{KindList, KindNonNull, Kind("BOGUS"), Kind("")} {
		if k.Named() {
			t.Errorf("expected %q not to be a named kind", k)
		}
	}
}

func TestTypesPreserveOrder(t *testing.T) {
	types := newTypes(3)
	for _, name := range []string{"Zebra", "Apple", "Mango"} {
		if !types.add(&NamedType{Kind: KindObject, Name: name}) {
			t.Fatalf("unexpected duplicate %s", name)
		}
	}
	if types.add(&NamedType{Kind: KindEnum, Name: "Apple"}) {
		t.Error("expected duplicate add to be rejected")
	}

	want := []string{"Zebra", "Apple", "Mango"}
	if got := types.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	var iterated []string
	for nt := range types.All() {
		iterated = append(iterated, nt.Name)
	}
	if !slices.Equal(iterated, want) {
		t.Errorf("All() = %v, want %v", iterated, want)
	}
	if types.Len() != 3 {
		t.Errorf("Len() = %d, want 3", types.Len())
	}
	if types.Lookup("Apple").Kind != KindObject {
		t.Error("duplicate add must not replace the original")
	}
	if types.Lookup("Pear") != nil {
		t.Error("expected nil for unknown type")
	}
}

func TestBuiltinAndMeta(t *testing.T) {
	for _, name := range []string{"ID", "String", "Int", "Float", "Boolean"} {
		if !BuiltinScalar(name) {
			t.Errorf("expected %s to be built in", name)
		}
	}
	if BuiltinScalar("BigInt") {
		t.Error("BigInt is not built in")
	}
	if !MetaType("__Type") || MetaType("Type") {
		t.Error("meta type detection is wrong")
	}
}

func TestRootTypes(t *testing.T) {
	types := newTypes(2)
	types.add(&NamedType{Kind: KindObject, Name: "Query"})
	types.add(&NamedType{Kind: KindObject, Name: "Subscription"})
	s := &Schema{QueryType: "Query", MutationType: "Mutation", SubscriptionType: "Subscription", Types: types}

	roots := s.RootTypes()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Name != "Query" || roots[1].Name != "Subscription" {
		t.Errorf("unexpected roots %s, %s", roots[0].Name, roots[1].Name)
	}
}
