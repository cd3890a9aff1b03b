package errors

// Error codes for the MWE2 toolchain
// These codes are used in diagnostics and documentation
// to provide consistent error identification across the tools.
//
// Error code ranges:
// E0001-E0099: Linking errors
// E0100-E0199: Parser errors
// E0200-E0299: Type system errors
// E0300-E0399: Module errors
// E0800-E0899: Warning codes

const (
	// E0001: a bare reference names no component or property
	ErrorUnresolvedReference = "E0001"

	// E0002: ${name} names no declared property
	ErrorUnresolvedProperty = "E0002"

	// E0003: two properties or components share a name
	ErrorDuplicateDeclaration = "E0003"

	// E0004: a property default refers to a property declared after it
	ErrorForwardReference = "E0004"

	// Parser errors (E0100-E0199)

	// E0100: token does not fit the grammar at this point
	ErrorUnexpectedToken = "E0100"

	// E0101: a required token is absent
	ErrorMissingToken = "E0101"

	// E0102: end of input inside a quoted string
	ErrorUnterminatedString = "E0102"

	// E0103: the optional type of a 'var' declaration cannot be decided
	ErrorAmbiguousDeclaration = "E0103"

	// E0104: root component has neither a type nor a module reference
	ErrorMissingRootType = "E0104"

	// E0105: input continues after the root component
	ErrorTrailingInput = "E0105"

	// E0106: end of input inside a block comment
	ErrorUnterminatedComment = "E0106"

	// E0107: malformed ${...} interpolation
	ErrorInvalidInterpolation = "E0107"

	// E0108: 'module' is not followed by a name
	ErrorMissingModuleName = "E0108"

	// Type system errors (E0200-E0299)

	// E0200: type name cannot be resolved
	ErrorUnknownType = "E0200"

	// E0201: assigned feature does not exist on the component type
	ErrorUnknownFeature = "E0201"

	// E0202: abstract type used as a component type
	ErrorAbstractType = "E0202"

	// Module errors (E0300-E0399)

	// E0300: @name names no known module
	ErrorUnresolvedModule = "E0300"

	// E0301: two files declare the same canonical module name
	ErrorDuplicateModule = "E0301"

	// E0302: modules reference each other in a cycle
	ErrorModuleCycle = "E0302"

	// Warning codes

	// E0800: backslash not followed by an escapable character
	WarningInvalidEscape = "E0800"

	// E0801: single-valued feature assigned more than once
	WarningRepeatedAssignment = "E0801"

	// E0802: declared property never referenced
	WarningUnusedProperty = "E0802"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnresolvedReference:
		return "Reference does not name a component or declared property"
	case ErrorUnresolvedProperty:
		return "Interpolation does not name a declared property"
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	case ErrorForwardReference:
		return "Property default refers to a property declared later"
	case ErrorUnexpectedToken:
		return "Unexpected token"
	case ErrorMissingToken:
		return "Required token is missing"
	case ErrorUnterminatedString:
		return "String literal is not closed"
	case ErrorAmbiguousDeclaration:
		return "Cannot decide whether a 'var' declaration has a type"
	case ErrorMissingRootType:
		return "Root component needs a type or a module reference"
	case ErrorTrailingInput:
		return "Input continues after the root component"
	case ErrorUnterminatedComment:
		return "Block comment is not closed"
	case ErrorInvalidInterpolation:
		return "Malformed ${...} interpolation"
	case ErrorMissingModuleName:
		return "Module declaration has no name"
	case ErrorUnknownType:
		return "Type cannot be resolved"
	case ErrorUnknownFeature:
		return "Type has no such settable property"
	case ErrorAbstractType:
		return "Abstract types cannot be instantiated"
	case ErrorUnresolvedModule:
		return "Module reference cannot be resolved"
	case ErrorDuplicateModule:
		return "Module name declared by more than one file"
	case ErrorModuleCycle:
		return "Modules reference each other in a cycle"
	case WarningInvalidEscape:
		return "Backslash is kept literally"
	case WarningRepeatedAssignment:
		return "Single-valued property assigned more than once; last value wins"
	case WarningUnusedProperty:
		return "Property is declared but never used"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900"
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Linking"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Type System"
	case code >= "E0300" && code < "E0400":
		return "Module"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	default:
		return "Unknown"
	}
}
