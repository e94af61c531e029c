// Package lex produces capture annotations from source code
// using Chroma's lexers.
//
// It is the grammar layer in front of the render package:
// file names map to lexers through Chroma's registry,
// and token types map to the dotted scope vocabulary
// that themes are written against.
// Chroma tokens never overlap,
// so captures from this package always satisfy
// the renderer's containment invariant.
package lex

import (
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"braces.dev/errtrace"
	"go.abhg.dev/treepaint/internal/render"
)

// Lexer produces captures for one source buffer.
type Lexer interface {
	Captures(src []byte) ([]render.Capture, error)
}

// Match returns a Lexer for the given file name,
// or false if no known language matches it.
func Match(filename string) (Lexer, bool) {
	l := lexers.Match(filename)
	if l == nil {
		return nil, false
	}
	return &chromaLexer{l: chroma.Coalesce(l)}, true
}

// Get returns the Lexer for a language by name (e.g. "go"),
// or false if the name is not registered.
func Get(lang string) (Lexer, bool) {
	l := lexers.Get(lang)
	if l == nil {
		return nil, false
	}
	return &chromaLexer{l: chroma.Coalesce(l)}, true
}

// chromaLexer builds a [Lexer] from a Chroma lexer.
type chromaLexer struct{ l chroma.Lexer }

// Captures lexically analyzes src and tags each token
// whose type has a scope mapping.
// Unmapped tokens (plain text, whitespace) produce no capture;
// their text still renders, unstyled.
func (cl *chromaLexer) Captures(src []byte) ([]render.Capture, error) {
	tokens, err := chroma.Tokenise(cl.l, nil, string(src))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	caps := make([]render.Capture, 0, len(tokens))
	var pos int
	for _, t := range tokens {
		start := pos
		pos += len(t.Value)

		scope, ok := scopeOf(t.Type)
		if !ok {
			continue
		}
		caps = append(caps, render.Capture{Start: start, End: pos, Scope: scope})
	}
	return caps, nil
}

// _scopes is the token-type to scope vocabulary table.
// Lookups fall back from the exact type to its subcategory
// to its category, so e.g. LiteralStringDouble lands on "string".
var _scopes = map[chroma.TokenType]string{
	chroma.Keyword:          "keyword",
	chroma.KeywordConstant:  "constant.builtin",
	chroma.KeywordNamespace: "include",
	chroma.KeywordType:      "type.builtin",

	chroma.NameAttribute:     "attribute",
	chroma.NameBuiltin:       "function.builtin",
	chroma.NameBuiltinPseudo: "variable.builtin",
	chroma.NameClass:         "type",
	chroma.NameConstant:      "constant",
	chroma.NameDecorator:     "attribute",
	chroma.NameFunction:      "function",
	chroma.NameFunctionMagic: "function.macro",
	chroma.NameLabel:         "label",
	chroma.NameNamespace:     "namespace",
	chroma.NameProperty:      "property",
	chroma.NameVariable:      "variable",

	chroma.LiteralString:       "string",
	chroma.LiteralStringEscape: "escape",
	chroma.LiteralNumber:       "number",

	chroma.Operator:     "operator",
	chroma.OperatorWord: "keyword",
	chroma.Punctuation:  "punctuation",

	chroma.Comment:        "comment",
	chroma.CommentPreproc: "include",
}

func scopeOf(t chroma.TokenType) (string, bool) {
	if s, ok := _scopes[t]; ok {
		return s, true
	}
	if s, ok := _scopes[t.SubCategory()]; ok {
		return s, true
	}
	s, ok := _scopes[t.Category()]
	return s, ok
}
