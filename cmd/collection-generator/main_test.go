package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"collection-generator/internal/config"
	"collection-generator/internal/gen"
)

const fruitSource = `package fruit

// +collection:name=Fruits
// +collection:derive=Equal
type Fruit struct {
	Name string
}
`

// resetFlags restores the package-level flag state between tests.
func resetFlags(t *testing.T) {
	t.Helper()

	configPath, verbose, outputFile, prefix = "", false, "", ""
	dryRun, watchMode, forceInit = false, false, false
	cfg, logger = nil, zap.NewNop()
}

// chdirModule creates a throwaway module holding fruit.go and moves into it.
func chdirModule(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/fruit\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fruit.go"), []byte(fruitSource), 0o644))
	t.Chdir(dir)

	return dir
}

func newTestCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&outputFile, "output-file", "", "")
	cmd.Flags().StringVar(&prefix, "prefix", "", "")
	cmd.SetOut(out)

	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())

	c, err := loadConfig(newTestCommand(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestLoadConfig_FileAndOverrides(t *testing.T) {
	resetFlags(t)

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(config.DefaultFile, []byte("marker_prefix: wrap\noutput_file: wrap_gen.go\n"), 0o644))

	cmd := newTestCommand(&bytes.Buffer{})
	require.NoError(t, cmd.Flags().Set("output-file", "other_gen.go"))

	c, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "wrap", c.MarkerPrefix)
	assert.Equal(t, "other_gen.go", c.OutputFile)
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())

	configPath = "missing.yaml"

	_, err := loadConfig(newTestCommand(&bytes.Buffer{}))
	require.Error(t, err)
}

func TestLoadConfig_InvalidPrefix(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())

	cmd := newTestCommand(&bytes.Buffer{})
	require.NoError(t, cmd.Flags().Set("prefix", "bad prefix"))

	_, err := loadConfig(cmd)
	require.Error(t, err)
}

func TestRunGen_DryRun(t *testing.T) {
	resetFlags(t)
	dir := chdirModule(t)

	dryRun = true

	var out bytes.Buffer
	require.NoError(t, runGen(newTestCommand(&out), nil))

	assert.Contains(t, out.String(), "type Fruits struct")
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultOutputFile))
}

func TestRunGen_ThenCheck(t *testing.T) {
	resetFlags(t)
	dir := chdirModule(t)

	var out bytes.Buffer

	err := runCheck(newTestCommand(&out), nil)
	require.ErrorIs(t, err, gen.ErrStale)
	assert.Contains(t, out.String(), "stale: ")

	require.NoError(t, runGen(newTestCommand(&out), nil))
	assert.FileExists(t, filepath.Join(dir, config.DefaultOutputFile))

	out.Reset()
	require.NoError(t, runCheck(newTestCommand(&out), nil))
	assert.Empty(t, out.String())
}

func TestRunList(t *testing.T) {
	resetFlags(t)
	chdirModule(t)

	var out bytes.Buffer
	require.NoError(t, runList(newTestCommand(&out), []string{"."}))

	assert.Contains(t, out.String(), "Fruits")
	assert.Contains(t, out.String(), "Equal")
}

func TestRunInit(t *testing.T) {
	resetFlags(t)

	dir := t.TempDir()
	t.Chdir(dir)

	cmd := newTestCommand(&bytes.Buffer{})
	require.NoError(t, cmd.Flags().Set("prefix", "wrap"))

	c, err := loadConfig(cmd)
	require.NoError(t, err)

	cfg = c

	var out bytes.Buffer
	require.NoError(t, runInit(newTestCommand(&out), nil))
	assert.Contains(t, out.String(), config.DefaultFile)

	written, err := config.LoadFile(filepath.Join(dir, config.DefaultFile), true)
	require.NoError(t, err)
	assert.Equal(t, "wrap", written.MarkerPrefix)
	assert.Equal(t, config.DefaultOutputFile, written.OutputFile)

	// An existing file is kept without --force.
	err = runInit(newTestCommand(&bytes.Buffer{}), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	forceInit = true
	require.NoError(t, runInit(newTestCommand(&bytes.Buffer{}), nil))
}

func TestLoadConfig_InitAllowsMissingExplicitFile(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())

	configPath = "new.yaml"

	c, err := loadConfig(initCmd)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}
