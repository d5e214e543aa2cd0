package highlight

import (
	"bytes"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Lexer names for the documents graphmcp prints.
const (
	GraphQL = "graphql"
	JSON    = "json"
)

const styleName = "graphmcp"

var _ = styles.Register(chroma.MustNewStyle(styleName, chroma.StyleEntries{
	chroma.Keyword:            "#d75f00 bold",
	chroma.KeywordDeclaration: "#d75f00 bold",
	chroma.KeywordType:        "#5f87d7",
	chroma.KeywordConstant:    "#af5fd7", // true/false/null

	chroma.NameBuiltin:   "#5f87d7",
	chroma.NameTag:       "#d75f00", // JSON keys
	chroma.NameAttribute: "#ffffff",
	chroma.NameProperty:  "#ffffff", // field names
	chroma.NameVariable:  "#ff8787",
	chroma.NameClass:     "#5fafd7 bold",
	chroma.NameDecorator: "#808080", // @deprecated

	chroma.LiteralString:       "#afaf87",
	chroma.LiteralStringDouble: "#afaf87",
	chroma.LiteralNumber:       "#af5fd7",

	chroma.Punctuation: "#8a8a8a",
	chroma.Operator:    "#8a8a8a",

	chroma.Comment:       "#626262",
	chroma.CommentSingle: "#626262",

	chroma.GenericError: "#ff0000 bold",
	chroma.Background:   "bg:",
}))

// Colorize returns the source string with ANSI escape codes for syntax highlighting.
func Colorize(src string, lexerName string) string {
	if src == "" {
		return ""
	}

	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	style := styles.Get(styleName)

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}

	result := buf.String()
	if !strings.HasSuffix(src, "\n") {
		result = strings.TrimRight(result, "\n")
	}

	return result
}

// Fprintln writes src followed by a newline, highlighted when color is set.
func Fprintln(w io.Writer, src, lexerName string, color bool) error {
	if color {
		src = Colorize(src, lexerName)
	}
	_, err := io.WriteString(w, src+"\n")
	return err
}
