package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Terminal classes
	IDENTIFIER
	WS
	ANY_OTHER
	ML_COMMENT
	SL_COMMENT

	// Keywords
	MODULE
	VAR
	IMPORT
	AUTO_INJECT
	TRUE
	FALSE

	// Punctuation
	EQUAL
	AT
	COLON
	LEFT_BRACE
	RIGHT_BRACE
	DOT
	WILDCARD // .*

	// String content
	DOLLAR_BRACE // ${
	SINGLE_QUOTE
	DOUBLE_QUOTE
	BACKSLASH
)

var tokenNames = [...]string{
	ILLEGAL:      "ILLEGAL",
	EOF:          "EOF",
	IDENTIFIER:   "IDENTIFIER",
	WS:           "WS",
	ANY_OTHER:    "ANY_OTHER",
	ML_COMMENT:   "ML_COMMENT",
	SL_COMMENT:   "SL_COMMENT",
	MODULE:       "MODULE",
	VAR:          "VAR",
	IMPORT:       "IMPORT",
	AUTO_INJECT:  "AUTO_INJECT",
	TRUE:         "TRUE",
	FALSE:        "FALSE",
	EQUAL:        "EQUAL",
	AT:           "AT",
	COLON:        "COLON",
	LEFT_BRACE:   "LEFT_BRACE",
	RIGHT_BRACE:  "RIGHT_BRACE",
	DOT:          "DOT",
	WILDCARD:     "WILDCARD",
	DOLLAR_BRACE: "DOLLAR_BRACE",
	SINGLE_QUOTE: "SINGLE_QUOTE",
	DOUBLE_QUOTE: "DOUBLE_QUOTE",
	BACKSLASH:    "BACKSLASH",
}

var tokenDisplay = map[TokenType]string{
	EOF:          "end of input",
	IDENTIFIER:   "identifier",
	WS:           "whitespace",
	ANY_OTHER:    "character",
	ML_COMMENT:   "comment",
	SL_COMMENT:   "comment",
	MODULE:       "'module'",
	VAR:          "'var'",
	IMPORT:       "'import'",
	AUTO_INJECT:  "'auto-inject'",
	TRUE:         "'true'",
	FALSE:        "'false'",
	EQUAL:        "'='",
	AT:           "'@'",
	COLON:        "':'",
	LEFT_BRACE:   "'{'",
	RIGHT_BRACE:  "'}'",
	DOT:          "'.'",
	WILDCARD:     "'.*'",
	DOLLAR_BRACE: "'${'",
	SINGLE_QUOTE: `"'"`,
	DOUBLE_QUOTE: `'"'`,
	BACKSLASH:    `'\'`,
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "TokenType(?)"
}

// Display returns the form used in diagnostics, e.g. "'{'".
func (t TokenType) Display() string {
	if s, ok := tokenDisplay[t]; ok {
		return s
	}
	return t.String()
}

// IsHidden reports whether the token is skipped between structural tokens.
func (t TokenType) IsHidden() bool {
	return t == WS || t == ML_COMMENT || t == SL_COMMENT
}

// Mode selects how the scanner classifies input.
type Mode int

const (
	// ModeStructural recognizes keywords, punctuation and comments.
	ModeStructural Mode = iota
	// ModeString is used between quotes: only quotes, backslash, '${', '}',
	// identifiers and whitespace are distinguished, everything else is ANY_OTHER.
	ModeString
)

type Position struct {
	Line   int // 1-based
	Column int // 1-based, counted in runes
	Offset int // 0-based byte index in input
}
