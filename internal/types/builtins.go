package types

// Names of the value types every catalog knows.
const (
	Object  = "java.lang.Object"
	String  = "java.lang.String"
	Boolean = "java.lang.Boolean"
	Bool    = "boolean"
)

// aliases map the short spellings accepted in 'var' declarations.
var aliases = map[string]string{
	"String":  String,
	"Boolean": Boolean,
	"Object":  Object,
}

// BuiltinTypes contains all valid built-in types
var BuiltinTypes = map[string]bool{
	Object:  true,
	String:  true,
	Boolean: true,
	Bool:    true,
}

// IsBuiltin checks if a type name is a built-in type
func IsBuiltin(name string) bool {
	return BuiltinTypes[name]
}

// Canonical expands a builtin alias such as "String" to its full name.
// Other names are returned unchanged.
func Canonical(name string) string {
	if full, ok := aliases[name]; ok {
		return full
	}
	return name
}

// IsBooleanType reports whether values of the named type are written as
// 'true' or 'false'.
func IsBooleanType(name string) bool {
	name = Canonical(name)
	return name == Boolean || name == Bool
}

// IsStringType reports whether the named type takes a string literal.
func IsStringType(name string) bool {
	return Canonical(name) == String
}

func builtinTypes() []*TypeDescriptor {
	var out []*TypeDescriptor
	for name := range BuiltinTypes {
		t := &TypeDescriptor{Name: name, Properties: map[string]*PropertyDescriptor{}}
		if name != Object && name != Bool {
			t.Super = Object
		}
		out = append(out, t)
	}
	return out
}
