package format

import (
	"testing"
)

func TestJSONPrettify(t *testing.T) {
	input := `{"key":"value","num":42}`
	got, err := JSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "{\n  \"key\": \"value\",\n  \"num\": 42\n}"
	if got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestJSONPrettifyInvalid(t *testing.T) {
	got, err := JSON(`{invalid}`)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
	if got != `{invalid}` {
		t.Errorf("expected input back, got %q", got)
	}
}

func TestJSONPrettifyEmpty(t *testing.T) {
	got, err := JSON("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestValue(t *testing.T) {
	got, err := Value([]map[string]string{{"id": "Qm1", "displayName": "A & B"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "[\n  {\n    \"displayName\": \"A & B\",\n    \"id\": \"Qm1\"\n  }\n]"
	if got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestVariables(t *testing.T) {
	vars, err := Variables(`{"first": 5, "where": {"symbol": "UNI"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vars["first"] != float64(5) {
		t.Errorf("first = %v", vars["first"])
	}
	if where, ok := vars["where"].(map[string]any); !ok || where["symbol"] != "UNI" {
		t.Errorf("where = %v", vars["where"])
	}

	vars, err = Variables("  ")
	if err != nil || vars != nil {
		t.Errorf("expected no variables, got %v, %v", vars, err)
	}

	if _, err := Variables(`[1]`); err == nil {
		t.Error("expected error for non-object variables")
	}
}
