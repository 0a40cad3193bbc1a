package gen

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"collection-generator/internal/plan"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrStale is returned by Check when generated files are out of date.
var ErrStale = errors.New("generated files are stale")

// WriteFiles writes all generated files, skipping those whose content on
// disk is already identical. It returns the paths that were written.
func WriteFiles(files []GeneratedFile) ([]string, error) {
	var written []string

	for _, file := range files {
		current, err := os.ReadFile(file.Path)
		if err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(file.Path), dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(file.Path, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Path, err)
		}

		written = append(written, file.Path)
	}

	return written, nil
}

// Obsolete returns previously generated files of valid plans that no longer
// have any collection. Files that do not carry the generated header, and
// those of plans with errors, are left alone.
func Obsolete(plans []*plan.PackagePlan) ([]string, error) {
	var out []string

	for _, p := range plans {
		if len(p.Collections) > 0 || p.ExistingFile == "" || p.Diagnostics.HasErrors() {
			continue
		}

		ok, err := IsGenerated(p.ExistingFile)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, p.ExistingFile)
		}
	}

	return out, nil
}

// RemoveFiles deletes the given files, ignoring ones that are already gone.
func RemoveFiles(paths []string) error {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}

	return nil
}

// IsGenerated reports whether the file at path starts with the generated header.
func IsGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	return strings.TrimSpace(line) == Header, nil
}

// Check compares generated files with the files on disk. It returns the
// stale or missing paths, and obsolete files that should be removed, wrapped
// in ErrStale when any exist.
func Check(files []GeneratedFile, plans []*plan.PackagePlan) ([]string, error) {
	var stale []string

	for _, file := range files {
		current, err := os.ReadFile(file.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", file.Path, err)
		}

		if !bytes.Equal(current, file.Content) {
			stale = append(stale, file.Path)
		}
	}

	obsolete, err := Obsolete(plans)
	if err != nil {
		return nil, err
	}

	stale = append(stale, obsolete...)

	if len(stale) > 0 {
		return stale, fmt.Errorf("%w: %s", ErrStale, strings.Join(stale, ", "))
	}

	return nil, nil
}
