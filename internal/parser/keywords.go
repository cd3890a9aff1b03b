package parser

// KEYWORDS maps reserved words to their token types. 'auto-inject' is
// recognized by the scanner directly since it contains a '-'.
var KEYWORDS = map[string]TokenType{
	"module": MODULE,
	"var":    VAR,
	"import": IMPORT,
	"true":   TRUE,
	"false":  FALSE,
}
