package common

import "go/token"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// IsIdentifier reports whether s is a valid Go identifier that is neither a
// keyword nor the blank identifier.
func IsIdentifier(s string) bool {
	return s != "_" && token.IsIdentifier(s)
}

// IsExported reports whether the identifier starts with an upper-case letter.
func IsExported(name string) bool {
	return token.IsExported(name)
}
