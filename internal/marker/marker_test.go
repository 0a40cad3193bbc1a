package marker

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		ok      bool
		want    Marker
		wantErr string
	}{
		{name: "name", comment: "// +collection:name=Fruits", ok: true, want: Marker{Key: KeyName, Value: "Fruits"}},
		{name: "no space", comment: "//+collection:name=Fruits", ok: true, want: Marker{Key: KeyName, Value: "Fruits"}},
		{name: "padded", comment: "//   +collection:name = Fruits  ", ok: true, want: Marker{Key: KeyName, Value: "Fruits"}},
		{name: "quoted", comment: `// +collection:doc="Fruits is a \"bowl\"."`, ok: true, want: Marker{Key: KeyDoc, Value: `Fruits is a "bowl".`}},
		{name: "derive", comment: "// +collection:derive=Equal, Clone", ok: true, want: Marker{Key: KeyDerive, Value: "Equal, Clone"}},
		{name: "bare", comment: "// +collection", ok: true, want: Marker{}},
		{name: "plain comment", comment: "// Fruit is a fruit.", ok: false},
		{name: "other prefix", comment: "// +kubebuilder:object:root=true", ok: false},
		{name: "longer prefix", comment: "// +collections:name=X", ok: false},
		{name: "block comment", comment: "/* +collection:name=X */", ok: false},
		{name: "unknown key", comment: "// +collection:title=X", ok: true, wantErr: `unknown attribute "title"`},
		{name: "misspelled key", comment: "// +collection:derve=Clone", ok: true, wantErr: `unknown attribute "derve" (did you mean derive?)`},
		{name: "no value", comment: "// +collection:name", ok: true, wantErr: "name: attribute requires a value"},
		{name: "bad quote", comment: `// +collection:doc="unterminated`, ok: true, wantErr: "invalid quoted value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Parse(tt.comment, DefaultPrefix)
			assert.Equal(t, tt.ok, ok)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_CustomPrefix(t *testing.T) {
	m, ok, err := Parse("// +wrap:name=Fruits", "wrap")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Fruits", m.Value)

	_, ok, err = Parse("// +collection:name=Fruits", "wrap")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Equal", "Clone", "String"}, SplitList("Equal, Clone,String"))
	assert.Equal(t, []string{"Equal", "Clone"}, SplitList("{Equal;Clone}"))
	assert.Equal(t, []string{"Clone", "Debug"}, SplitList(" Clone, Debug, "))
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList("{}"))
}

func parseDoc(t *testing.T, src string) *ast.CommentGroup {
	t.Helper()

	f, err := parser.ParseFile(token.NewFileSet(), "x.go", src, parser.ParseComments)
	require.NoError(t, err)

	decl, ok := f.Decls[0].(*ast.GenDecl)
	require.True(t, ok)

	return decl.Doc
}

func TestCollect(t *testing.T) {
	doc := parseDoc(t, `package x

// Fruit is a fruit.
//
// +collection:name=Fruits
// +collection:doc="Fruits is a bowl."
// +collection:derive=Equal
// +collection:derive={Clone;String}
type Fruit struct{}
`)

	attrs, err := Collect(doc, DefaultPrefix)
	require.NoError(t, err)
	require.NotNil(t, attrs)

	name, ok := attrs.Name()
	assert.True(t, ok)
	assert.Equal(t, "Fruits", name)

	d, ok := attrs.Doc()
	assert.True(t, ok)
	assert.Equal(t, "Fruits is a bowl.", d)

	assert.Equal(t, []string{"Equal", "Clone", "String"}, attrs.Derive())
	assert.True(t, attrs.Has(KeyDerive))
	assert.Len(t, attrs.Markers, 4)
	assert.True(t, attrs.Markers[0].Pos.IsValid())
}

func TestCollect_NoMarkers(t *testing.T) {
	doc := parseDoc(t, `package x

// Fruit is a fruit.
type Fruit struct{}
`)

	attrs, err := Collect(doc, DefaultPrefix)
	require.NoError(t, err)
	assert.Nil(t, attrs)

	attrs, err = Collect(nil, DefaultPrefix)
	require.NoError(t, err)
	assert.Nil(t, attrs)
}

func TestCollect_BareMarker(t *testing.T) {
	doc := parseDoc(t, `package x

// +collection
type Fruit struct{}
`)

	attrs, err := Collect(doc, DefaultPrefix)
	require.NoError(t, err)
	require.NotNil(t, attrs)

	_, ok := attrs.Name()
	assert.False(t, ok)
	assert.Empty(t, attrs.Derive())
}

func TestCollect_Errors(t *testing.T) {
	doc := parseDoc(t, `package x

// +collection:name=Fruits
// +collection:name=Apples
// +collection:colour=red
type Fruit struct{}
`)

	attrs, err := Collect(doc, DefaultPrefix)
	require.Error(t, err)
	require.NotNil(t, attrs)
	assert.Contains(t, err.Error(), "name given more than once")
	assert.Contains(t, err.Error(), `unknown attribute "colour"`)

	name, _ := attrs.Name()
	assert.Equal(t, "Fruits", name)
}
