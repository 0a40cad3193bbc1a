// Package analyze provides package loading and marker item discovery.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// type declarations carrying collection markers, and records what the
// planner needs to know about them.
//
// Key types:
//   - Package: a loaded package, its marker items and its declared names
//   - Item: one marker item with its parsed attributes and type facts
//   - TypeKind: the shape of an item's underlying type
package analyze
