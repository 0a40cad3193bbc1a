// Package diagnostic provides structured warnings and errors for the
// collection generator.
//
// Key capabilities:
//   - Coded errors for invalid or incomplete marker attributes
//   - Warnings for suspicious but generatable requests
//   - Source positions pointing at the offending marker item
package diagnostic
