package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Code:     CodeMissingName,
		Message:  "name attribute is required",
		Item:     "Fruit",
		Position: token.Position{Filename: "fruit.go", Line: 7, Column: 6},
	}
	assert.Equal(t, "fruit.go:7:6: Fruit: [MISSING_NAME] name attribute is required", d.String())

	bare := Diagnostic{Message: "plain"}
	assert.Equal(t, "plain", bare.String())
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning(CodeUnexportedItem, "w", "fruit", token.Position{})
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Error())

	d.AddError(CodeMissingName, "first", "A", token.Position{})
	d.AddError(CodeInvalidName, "second", "B", token.Position{})

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "A: [MISSING_NAME] first; B: [INVALID_NAME] second", err.Error())
	assert.True(t, d.HasCode(CodeUnexportedItem))
	assert.True(t, d.HasCode(CodeInvalidName))
	assert.False(t, d.HasCode(CodeNameCollision))
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo("I", "info", "", token.Position{})
	b.AddError("E", "err", "", token.Position{})
	b.AddWarning("W", "warn", "", token.Position{})

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
