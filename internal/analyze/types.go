package analyze

import (
	"go/token"
	"go/types"

	"collection-generator/internal/common"
	"collection-generator/internal/marker"
)

// TypeKind represents the kind of a marker item's underlying type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type
	TypeKindFunc               // function type
	TypeKindChan               // channel type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindFunc:
		return "func"
	case TypeKindChan:
		return "chan"
	default:
		return common.UnknownStr
	}
}

// KindOf classifies the underlying type of t.
func KindOf(t types.Type) TypeKind {
	if t == nil {
		return TypeKindUnknown
	}

	switch t.Underlying().(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Struct:
		return TypeKindStruct
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Interface:
		return TypeKindInterface
	case *types.Signature:
		return TypeKindFunc
	case *types.Chan:
		return TypeKindChan
	default:
		return TypeKindUnknown
	}
}

// Item describes a type declaration that carries collection markers.
type Item struct {
	Name        string             // Go type name, e.g. "Fruit"
	Exported    bool               // Whether the type is exported
	Kind        TypeKind           // Kind of the underlying type
	Type        types.Type         // The go/types type (nil when type checking failed)
	Alias       bool               // Declared as "type A = B"
	Generic     bool               // Declared with type parameters
	Comparable  bool               // Usable with == and slices.Equal
	EqualMethod bool               // Has Equal(T) bool
	CloneMethod bool               // Has Clone() T
	Attrs       *marker.Attributes // Parsed marker attributes
	MarkerErr   error              // Error from parsing the markers, if any
	Position    token.Position     // Position of the type name
}

// Package holds information about a loaded package and its marker items.
type Package struct {
	Path  string  // Import path
	Name  string  // Package name
	Dir   string  // Directory holding the package sources
	Items []*Item // Marker items in source order
	// Declared maps every hand-written package-level name to its position.
	// Names declared in the generated output file are excluded.
	Declared map[string]token.Position
	// GeneratedFile is the path of an existing generated output file, if any.
	GeneratedFile string
	// Errors are the load and type-check errors of a package that failed to
	// load. Such a package has no items.
	Errors []error
}

// Item returns the marker item with the given type name, or nil.
func (p *Package) Item(name string) *Item {
	for _, it := range p.Items {
		if it.Name == name {
			return it
		}
	}

	return nil
}
