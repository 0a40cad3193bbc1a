package marker

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"collection-generator/internal/suggest"
)

// DefaultPrefix is the marker prefix used when none is configured.
const DefaultPrefix = "collection"

// Attribute keys.
const (
	KeyName   = "name"
	KeyDoc    = "doc"
	KeyDerive = "derive"
)

var knownKeys = []string{KeyName, KeyDoc, KeyDerive}

// ErrNoValue is returned for an attribute written without "=value".
var ErrNoValue = errors.New("attribute requires a value")

// Marker is a single parsed marker line.
type Marker struct {
	// Key is the attribute key; empty for a bare marker.
	Key string
	// Value is the unquoted attribute value.
	Value string
	// Pos is the position of the comment.
	Pos token.Pos
}

// Parse parses the text of one line comment (including the leading "//").
// It reports ok=false when the comment is not a marker for prefix.
func Parse(comment, prefix string) (Marker, bool, error) {
	text, found := strings.CutPrefix(comment, "//")
	if !found {
		return Marker{}, false, nil
	}

	text = strings.TrimSpace(text)

	body, found := strings.CutPrefix(text, "+"+prefix)
	if !found {
		return Marker{}, false, nil
	}

	if body == "" {
		return Marker{}, true, nil
	}

	// "+collectionfoo" is a different marker.
	body, found = strings.CutPrefix(body, ":")
	if !found {
		return Marker{}, false, nil
	}

	key, value, hasValue := strings.Cut(body, "=")
	key = strings.TrimSpace(key)

	if !slices.Contains(knownKeys, key) {
		return Marker{}, true, fmt.Errorf("unknown attribute %q%s", key, suggest.Hint(key, knownKeys))
	}

	if !hasValue {
		return Marker{}, true, fmt.Errorf("%s: %w", key, ErrNoValue)
	}

	value, err := unquote(strings.TrimSpace(value))
	if err != nil {
		return Marker{}, true, fmt.Errorf("%s: %w", key, err)
	}

	return Marker{Key: key, Value: value}, true, nil
}

func unquote(value string) (string, error) {
	if !strings.HasPrefix(value, `"`) {
		return value, nil
	}

	s, err := strconv.Unquote(value)
	if err != nil {
		return "", fmt.Errorf("invalid quoted value %s: %w", value, err)
	}

	return s, nil
}

// SplitList splits a capability list such as "Equal, Clone" or "{Equal;Clone}".
func SplitList(value string) []string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "{")
	value = strings.TrimSuffix(value, "}")

	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})

	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}

// Attributes are the markers collected from one doc comment.
type Attributes struct {
	Markers []Marker

	name    string
	hasName bool
	doc     string
	hasDoc  bool
	derive  []string
}

// Name returns the collection name and whether it was given.
func (a *Attributes) Name() (string, bool) {
	return a.name, a.hasName
}

// Doc returns the documentation string and whether it was given.
func (a *Attributes) Doc() (string, bool) {
	return a.doc, a.hasDoc
}

// Derive returns the requested capabilities in marker order.
func (a *Attributes) Derive() []string {
	return a.derive
}

// Has reports whether the attribute key was given.
func (a *Attributes) Has(key string) bool {
	for _, m := range a.Markers {
		if m.Key == key {
			return true
		}
	}

	return false
}

func (a *Attributes) add(m Marker) error {
	switch m.Key {
	case KeyName:
		if a.hasName {
			return fmt.Errorf("%s given more than once", KeyName)
		}

		a.name, a.hasName = m.Value, true

	case KeyDoc:
		if a.hasDoc {
			return fmt.Errorf("%s given more than once", KeyDoc)
		}

		a.doc, a.hasDoc = m.Value, true

	case KeyDerive:
		a.derive = append(a.derive, SplitList(m.Value)...)
	}

	a.Markers = append(a.Markers, m)

	return nil
}

// Collect gathers the markers for prefix from a doc comment group.
// It returns nil attributes when the group holds no marker.
func Collect(doc *ast.CommentGroup, prefix string) (*Attributes, error) {
	if doc == nil {
		return nil, nil
	}

	var (
		attrs *Attributes
		errs  []error
	)

	for _, c := range doc.List {
		m, ok, err := Parse(c.Text, prefix)
		if !ok {
			continue
		}

		if attrs == nil {
			attrs = &Attributes{}
		}

		if err != nil {
			errs = append(errs, err)
			continue
		}

		m.Pos = c.Slash
		if err := attrs.add(m); err != nil {
			errs = append(errs, err)
		}
	}

	return attrs, errors.Join(errs...)
}
