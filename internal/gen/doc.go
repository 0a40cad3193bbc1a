// Package gen provides deterministic Go code generation for collection types.
//
// Generation approach uses text/template + go/format for readable Go code.
// Each package with at least one planned collection gets one generated file.
//
// Every collection gets:
//   - Constructors from variadic items, a slice and an iterator
//   - Len and IsEmpty
//   - Iteration by value (All, Values) and by reference (Refs)
//   - Append and Extend
//   - Slice for conversion back to a plain slice
//
// Attached capabilities add Equal, Clone, String and JSON methods.
package gen
