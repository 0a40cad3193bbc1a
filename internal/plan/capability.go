package plan

import "strings"

//go:generate go tool stringer -type=Capability -trimprefix=Capability -output=capability_string.go

// Capability is an optional behavior attached to a generated collection.
type Capability int

const (
	_ Capability = iota // zero value is invalid

	CapabilityEqual  // Equal(other) bool
	CapabilityClone  // Clone() copy
	CapabilityString // String() for debug formatting
	CapabilityJSON   // MarshalJSON / UnmarshalJSON as an array
)

// capabilityNames maps lower-cased spellings, including aliases, to capabilities.
var capabilityNames = map[string]Capability{
	"equal":       CapabilityEqual,
	"eq":          CapabilityEqual,
	"partialeq":   CapabilityEqual,
	"clone":       CapabilityClone,
	"string":      CapabilityString,
	"stringer":    CapabilityString,
	"debug":       CapabilityString,
	"json":        CapabilityJSON,
	"serialize":   CapabilityJSON,
	"marshaljson": CapabilityJSON,
}

// ParseCapability resolves a capability name case-insensitively.
func ParseCapability(s string) (Capability, bool) {
	c, ok := capabilityNames[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// CapabilityNames returns the canonical names of all capabilities.
func CapabilityNames() []string {
	names := make([]string, 0, CapabilityJSON)
	for c := CapabilityEqual; c <= CapabilityJSON; c++ {
		names = append(names, c.String())
	}

	return names
}

// IsValid reports whether c names a known capability.
func (c Capability) IsValid() bool {
	return c >= CapabilityEqual && c <= CapabilityJSON
}
