// Package items holds marker items used by the analyzer tests.
package items

import "time"

// Fruit is comparable.
//
// +collection:name=Fruits
// +collection:derive=Equal, String
type Fruit struct {
	Name   string
	Weight int
}

// Bag is not comparable but knows how to compare and copy itself.
//
// +collection:name=Bags
// +collection:doc="Bags is a row of bags."
type Bag struct {
	Labels []string
}

// Equal reports whether both bags carry the same labels.
func (b Bag) Equal(other Bag) bool {
	if len(b.Labels) != len(other.Labels) {
		return false
	}

	for i := range b.Labels {
		if b.Labels[i] != other.Labels[i] {
			return false
		}
	}

	return true
}

// Clone returns a deep copy.
func (b *Bag) Clone() Bag {
	return Bag{Labels: append([]string(nil), b.Labels...)}
}

type (
	// Stamp wraps a time.
	//
	// +collection:name=Stamps
	Stamp time.Time

	// Plain carries no marker.
	Plain struct{}
)

// +collection
type nameless int

// Pair is generic.
//
// +collection:name=Pairs
type Pair[T any] struct {
	A, B T
}

// +collection:name=Broken
// +collection:colour=red
type broken string

// Label is an alias.
//
// +collection:name=Labels
type Label = string

// Existing is declared by hand.
var Existing = Fruit{}

const limit = 3

func helper() {}

func init() {}
