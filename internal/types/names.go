package types

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SimpleName returns the last segment of a qualified type name. Nested
// types written with '$' use the part after the last '$'.
func SimpleName(fqn string) string {
	if i := strings.LastIndexAny(fqn, ".$"); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// SetterName returns "setFoo" for feature "foo".
func SetterName(feature string) string {
	return "set" + capitalize(feature)
}

// AdderName returns "addFoo" for feature "foo".
func AdderName(feature string) string {
	return "add" + capitalize(feature)
}

// FeatureName reverses SetterName and AdderName. ok is false when method is
// neither a setter nor an adder.
func FeatureName(method string) (feature string, multi bool, ok bool) {
	for _, prefix := range []string{"set", "add"} {
		rest, found := strings.CutPrefix(method, prefix)
		if !found || rest == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(rest)
		if !unicode.IsUpper(r) {
			continue
		}
		return string(unicode.ToLower(r)) + rest[size:], prefix == "add", true
	}
	return "", false, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
