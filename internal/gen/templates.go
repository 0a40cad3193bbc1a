package gen

import "text/template"

// Header is the first line of every generated file.
const Header = "// Code generated by collection-generator. DO NOT EDIT."

var fileTemplate = template.Must(template.New("file").Parse(Header + `

package {{.PackageName}}

import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{range .Collections}}
{{template "collection" .}}
{{end}}
{{- define "collection"}}
{{- range .Doc}}
//{{if .}} {{.}}{{end}}
{{- end}}
type {{.Name}} struct {
	items []{{.Item}}
}

// {{.New}} returns a {{.Name}} holding a copy of items.
func {{.New}}(items ...{{.Item}}) {{.Name}} {
	return {{.Name}}{items: slices.Clone(items)}
}

// {{.FromSlice}} returns a {{.Name}} holding a copy of items.
func {{.FromSlice}}(items []{{.Item}}) {{.Name}} {
	return {{.Name}}{items: slices.Clone(items)}
}

// {{.Collect}} returns a {{.Name}} holding the values of seq in order.
func {{.Collect}}(seq iter.Seq[{{.Item}}]) {{.Name}} {
	return {{.Name}}{items: slices.Collect(seq)}
}

// Len returns the number of items.
func ({{.R}} {{.Name}}) Len() int {
	return len({{.R}}.items)
}

// IsEmpty reports whether the collection holds no items.
func ({{.R}} {{.Name}}) IsEmpty() bool {
	return len({{.R}}.items) == 0
}

// All returns an iterator over index-item pairs in order.
func ({{.R}} {{.Name}}) All() iter.Seq2[int, {{.Item}}] {
	return slices.All({{.R}}.items)
}

// Values returns an iterator over the items in order.
func ({{.R}} {{.Name}}) Values() iter.Seq[{{.Item}}] {
	return slices.Values({{.R}}.items)
}

// Refs returns an iterator over pointers to the items in order.
// Writes through the pointers modify the collection.
func ({{.R}} *{{.Name}}) Refs() iter.Seq[*{{.Item}}] {
	return func(yield func(*{{.Item}}) bool) {
		for i := range {{.R}}.items {
			if !yield(&{{.R}}.items[i]) {
				return
			}
		}
	}
}

// Append adds items to the end of the collection.
func ({{.R}} *{{.Name}}) Append(items ...{{.Item}}) {
	{{.R}}.items = append({{.R}}.items, items...)
}

// Extend adds the values of seq to the end of the collection.
func ({{.R}} *{{.Name}}) Extend(seq iter.Seq[{{.Item}}]) {
	{{.R}}.items = slices.AppendSeq({{.R}}.items, seq)
}

// Slice returns a copy of the items as a slice.
func ({{.R}} {{.Name}}) Slice() []{{.Item}} {
	return slices.Clone({{.R}}.items)
}
{{- if .HasEqual}}

// Equal reports whether both collections hold equal items in the same order.
func ({{.R}} {{.Name}}) Equal({{.O}} {{.Name}}) bool {
{{- if .EqualMethod}}
	return slices.EqualFunc({{.R}}.items, {{.O}}.items, func(a, b {{.Item}}) bool {
		return a.Equal(b)
	})
{{- else}}
	return slices.Equal({{.R}}.items, {{.O}}.items)
{{- end}}
}
{{- end}}
{{- if .HasClone}}

// Clone returns a copy of the collection that shares no backing array.
func ({{.R}} {{.Name}}) Clone() {{.Name}} {
{{- if .CloneMethod}}
	if {{.R}}.items == nil {
		return {{.Name}}{}
	}

	items := make([]{{.Item}}, len({{.R}}.items))
	for i := range {{.R}}.items {
		items[i] = {{.R}}.items[i].Clone()
	}

	return {{.Name}}{items: items}
{{- else}}
	return {{.Name}}{items: slices.Clone({{.R}}.items)}
{{- end}}
}
{{- end}}
{{- if .HasString}}

// String formats the collection as {{.Name}}[item item ...].
func ({{.R}} {{.Name}}) String() string {
	var b strings.Builder

	b.WriteString("{{.Name}}[")

	for i, item := range {{.R}}.items {
		if i > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprint(&b, item)
	}

	b.WriteByte(']')

	return b.String()
}
{{- end}}
{{- if .HasJSON}}

// MarshalJSON encodes the collection as a JSON array.
func ({{.R}} {{.Name}}) MarshalJSON() ([]byte, error) {
	if {{.R}}.items == nil {
		return []byte("[]"), nil
	}

	return json.Marshal({{.R}}.items)
}

// UnmarshalJSON decodes a JSON array into the collection, replacing its items.
func ({{.R}} *{{.Name}}) UnmarshalJSON({{.D}} []byte) error {
	var items []{{.Item}}
	if err := json.Unmarshal({{.D}}, &items); err != nil {
		return err
	}

	{{.R}}.items = items

	return nil
}
{{- end}}
{{- end}}
`))
