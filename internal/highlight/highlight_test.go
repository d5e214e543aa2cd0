package highlight

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestHighlightSDL(t *testing.T) {
	src := "type Query {\n  tokens(first: Int = 100): [Token!]!\n}"
	result := Colorize(src, GraphQL)
	if !strings.Contains(result, "\x1b[") {
		t.Error("expected ANSI escape codes in highlighted output")
	}
	if plain := stripANSI(result); plain != src {
		t.Errorf("expected plain text %q, got %q", src, plain)
	}
}

func TestHighlightJSON(t *testing.T) {
	src := `{"data": {"pairs": [{"id": "0x1", "volume": 42, "active": true, "owner": null}]}}`
	result := Colorize(src, JSON)
	if !strings.Contains(result, "\x1b[") {
		t.Error("expected ANSI escape codes")
	}
	if plain := stripANSI(result); plain != src {
		t.Errorf("expected plain text %q, got %q", src, plain)
	}
}

func TestHighlightEmptyString(t *testing.T) {
	if result := Colorize("", GraphQL); result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestHighlightUnknownLexer(t *testing.T) {
	plain := stripANSI(Colorize("hello", "nonexistent"))
	if plain != "hello" {
		t.Errorf("expected plain text fallback, got %q", plain)
	}
}

func TestFprintln(t *testing.T) {
	var plain bytes.Buffer
	if err := Fprintln(&plain, "scalar BigInt", GraphQL, false); err != nil {
		t.Fatal(err)
	}
	if plain.String() != "scalar BigInt\n" {
		t.Errorf("got %q", plain.String())
	}

	var colored bytes.Buffer
	if err := Fprintln(&colored, "scalar BigInt", GraphQL, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("expected ANSI escape codes")
	}
	if stripANSI(colored.String()) != "scalar BigInt\n" {
		t.Errorf("got %q", stripANSI(colored.String()))
	}
}
