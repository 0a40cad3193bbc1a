// Package plan turns analyzed marker items into collection plans consumed
// by code generation.
//
// Planning pipeline:
//  1. Analyze packages → marker items
//  2. For each item:
//     - Report marker syntax errors
//     - Require a valid, unused collection name
//     - Default the doc string and capability list
//     - Resolve capabilities against the item's type facts
//  3. Emit diagnostics; any error blocks generation of the package
package plan
