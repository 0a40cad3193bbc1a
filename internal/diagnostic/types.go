package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"collection-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeInvalidMarker       = "INVALID_MARKER"
	CodeMissingName         = "MISSING_NAME"
	CodeInvalidName         = "INVALID_NAME"
	CodeNameCollision       = "NAME_COLLISION"
	CodeDuplicateName       = "DUPLICATE_NAME"
	CodeGenericItem         = "GENERIC_ITEM"
	CodeUnknownCapability   = "UNKNOWN_CAPABILITY"
	CodeEqualUnsupported    = "EQUAL_UNSUPPORTED"
	CodeDuplicateCapability = "DUPLICATE_CAPABILITY"
	CodeUnexportedItem      = "UNEXPORTED_ITEM"
	CodeDefaultDerive       = "DEFAULT_DERIVE"
	CodeLoadError           = "LOAD_ERROR"
)

// Diagnostics holds all diagnostic information collected while planning.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Item is the marker item this relates to (if any).
	Item string
	// Position is the source position of the marker item.
	Position token.Position
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, item string, pos token.Position) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Item:     item,
		Position: pos,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, item string, pos token.Position) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Item:     item,
		Position: pos,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, item string, pos token.Position) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Item:     item,
		Position: pos,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasCode reports whether any error or warning carries the given code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, e := range d.Errors {
		if e.Code == code {
			return true
		}
	}

	for _, w := range d.Warnings {
		if w.Code == code {
			return true
		}
	}

	return false
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Position.IsValid() {
		prefix = append(prefix, d.Position.String())
	}

	if d.Item != "" {
		prefix = append(prefix, d.Item)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, ": ") + ": " + msg
	}

	return msg
}
