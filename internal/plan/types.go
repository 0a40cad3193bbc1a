package plan

import (
	"go/token"
	"path/filepath"
	"slices"

	"collection-generator/internal/analyze"
	"collection-generator/internal/diagnostic"
)

// PackagePlan is the output of planning for one package.
// It contains everything needed for code generation.
type PackagePlan struct {
	// Path is the package import path.
	Path string
	// Name is the package name used in the generated file.
	Name string
	// Dir is the package directory.
	Dir string
	// OutputFile is the generated file name inside Dir.
	OutputFile string
	// ExistingFile is the path of a previously generated file, if any.
	ExistingFile string
	// Collections are the collections to generate, in item source order.
	Collections []Collection
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
}

// OutputPath returns the path of the generated file.
func (p *PackagePlan) OutputPath() string {
	return filepath.Join(p.Dir, p.OutputFile)
}

// Imports returns the sorted standard library imports of the generated file.
func (p *PackagePlan) Imports() []string {
	// Every collection uses iterators and the slices helpers.
	imports := []string{"iter", "slices"}

	if p.Has(CapabilityString) {
		imports = append(imports, "fmt", "strings")
	}

	if p.Has(CapabilityJSON) {
		imports = append(imports, "encoding/json")
	}

	slices.Sort(imports)

	return imports
}

// Has reports whether any collection in the package uses the capability.
func (p *PackagePlan) Has(c Capability) bool {
	for _, col := range p.Collections {
		if col.Has(c) {
			return true
		}
	}

	return false
}

// EqualStrategy describes how elements are compared.
type EqualStrategy int

const (
	// EqualOperator compares elements with ==.
	EqualOperator EqualStrategy = iota
	// EqualMethod compares elements with their Equal method.
	EqualMethod
)

// CloneStrategy describes how elements are copied.
type CloneStrategy int

const (
	// CloneCopy copies elements by assignment.
	CloneCopy CloneStrategy = iota
	// CloneMethod copies elements with their Clone method.
	CloneMethod
)

// Collection is a fully planned wrapper type.
type Collection struct {
	// Name is the collection type name, e.g. "Fruits".
	Name string
	// Item is the element type name, e.g. "Fruit".
	Item string
	// ItemKind classifies the underlying type of the item.
	ItemKind analyze.TypeKind
	// ItemAlias is set when the item is declared as a type alias.
	ItemAlias bool
	// Doc holds the documentation lines of the collection type.
	Doc []string
	// Capabilities are the attached capabilities, in declaration order.
	Capabilities []Capability
	// Equal selects how Equal compares elements.
	Equal EqualStrategy
	// Clone selects how Clone copies elements.
	Clone CloneStrategy
	// Idents are local identifiers chosen not to shadow the item type.
	Idents Idents
	// Position is the position of the marker item.
	Position token.Position
}

// KindString describes the item type for listings, e.g. "struct" or
// "struct alias".
func (c Collection) KindString() string {
	if c.ItemAlias {
		return c.ItemKind.String() + " alias"
	}

	return c.ItemKind.String()
}

// Idents are the receiver and parameter names used in generated method bodies.
type Idents struct {
	Recv  string
	Other string
	Data  string
}

// Has reports whether the collection carries capability c.
func (c Collection) Has(cp Capability) bool {
	return slices.Contains(c.Capabilities, cp)
}

// NewFunc returns the name of the variadic constructor.
func (c Collection) NewFunc() string { return "New" + c.Name }

// FromSliceFunc returns the name of the slice conversion.
func (c Collection) FromSliceFunc() string { return c.Name + "FromSlice" }

// CollectFunc returns the name of the iterator constructor.
func (c Collection) CollectFunc() string { return "Collect" + c.Name }

// DeclaredNames returns every package-level name the collection declares.
func (c Collection) DeclaredNames() []string {
	return []string{c.Name, c.NewFunc(), c.FromSliceFunc(), c.CollectFunc()}
}
