package ast

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota
	BAD_VALUE

	// Hidden
	COMMENT

	// Declarations
	MODULE
	IMPORT
	DECLARED_PROPERTY
	COMPONENT
	ASSIGNMENT

	// Values
	STRING_LITERAL
	BOOLEAN_LITERAL
	REFERENCE

	// String content
	COMPOUND_STRING
	PROPERTY_REFERENCE
	PLAIN_STRING

	// Names
	FQN_NAME
	IDENT
)

var nodeTypeNames = [...]string{
	ILLEGAL:            "ILLEGAL",
	BAD_VALUE:          "BAD_VALUE",
	COMMENT:            "COMMENT",
	MODULE:             "MODULE",
	IMPORT:             "IMPORT",
	DECLARED_PROPERTY:  "DECLARED_PROPERTY",
	COMPONENT:          "COMPONENT",
	ASSIGNMENT:         "ASSIGNMENT",
	STRING_LITERAL:     "STRING_LITERAL",
	BOOLEAN_LITERAL:    "BOOLEAN_LITERAL",
	REFERENCE:          "REFERENCE",
	COMPOUND_STRING:    "COMPOUND_STRING",
	PROPERTY_REFERENCE: "PROPERTY_REFERENCE",
	PLAIN_STRING:       "PLAIN_STRING",
	FQN_NAME:           "FQN",
	IDENT:              "IDENT",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(?)"
}
