package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}
	// Keep it a .go file so editors can syntax highlight, but keep it out of
	// the build with a build tag.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"
	p := filepath.Join(outDir, debugName)

	return os.WriteFile(p, append([]byte("//go:build ignore\n\n"), content...), filePerm)
}
