package presence

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

// NamingPolicy converts a Go field name into the property key the schema
// generator would use for it.
type NamingPolicy func(fieldName string) string

// Identity leaves field names untouched.
func Identity(s string) string { return s }

// CamelCase lowercases the first rune: "FirstName" -> "firstName".
func CamelCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// PascalCase uppercases the first rune: "firstName" -> "FirstName".
func PascalCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SnakeCase converts "FirstName" to "first_name".
func SnakeCase(s string) string {
	return govalidator.CamelCaseToUnderscore(s)
}

// KebabCase converts "FirstName" to "first-name".
func KebabCase(s string) string {
	return strings.ReplaceAll(govalidator.CamelCaseToUnderscore(s), "_", "-")
}

// ParseNamingPolicy returns the policy registered under name.
// Known names are identity, camel, pascal, snake and kebab.
func ParseNamingPolicy(name string) (NamingPolicy, error) {
	switch strings.ToLower(name) {
	case "identity", "":
		return Identity, nil
	case "camel":
		return CamelCase, nil
	case "pascal":
		return PascalCase, nil
	case "snake":
		return SnakeCase, nil
	case "kebab":
		return KebabCase, nil
	}
	return nil, fmt.Errorf("unknown naming policy %q", name)
}
