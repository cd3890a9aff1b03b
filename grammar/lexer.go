package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes MWE2 modules. Quotes push a string state in which only
// escapes, '${' and the closing quote are special; '${' pushes a state
// that accepts a single property name up to '}'. A rule name shared by
// several states must keep the same pattern in each of them.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*|/\*(?s:.*?)\*/`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},

		// Keywords and Identifiers (order matters)
		{"AutoInject", `auto-inject`, nil},
		{"Keyword", `(module|import|var|true|false)\b`, nil},
		{"Ident", `\^?[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		{"Wildcard", `\.\*`, nil},
		{"Punctuation", `[=@:{}.]`, nil},

		{"SingleQuote", `'`, lexer.Push("SingleString")},
		{"DoubleQuote", `"`, lexer.Push("DoubleString")},
	},
	"SingleString": {
		{"SingleQuoteEnd", `'`, lexer.Pop()},
		{"Escape", `\\['"\\]`, nil},
		{"InterpolationStart", `\$\{`, lexer.Push("Interpolation")},
		{"SingleChars", `[^'\\$]+`, nil},
		{"Dollar", `\$`, nil},
		{"Backslash", `\\`, nil},
	},
	"DoubleString": {
		{"DoubleQuoteEnd", `"`, lexer.Pop()},
		{"Escape", `\\['"\\]`, nil},
		{"InterpolationStart", `\$\{`, lexer.Push("Interpolation")},
		{"DoubleChars", `[^"\\$]+`, nil},
		{"Dollar", `\$`, nil},
		{"Backslash", `\\`, nil},
	},
	"Interpolation": {
		{"PropertyName", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"InterpolationEnd", `\}`, lexer.Pop()},
	},
})
