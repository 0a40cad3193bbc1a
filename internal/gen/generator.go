package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"collection-generator/internal/plan"
)

// ErrPlanInvalid is returned when a package plan carries error diagnostics.
var ErrPlanInvalid = errors.New("invalid collection plan")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Workers bounds the number of packages generated concurrently.
	Workers int
	// DebugUnformatted writes unformatted output next to the target when
	// formatting fails.
	DebugUnformatted bool
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Workers:          4,
		DebugUnformatted: true,
	}
}

// Generator generates Go code from package plans.
type Generator struct {
	config GeneratorConfig
	logger *zap.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{config: cfg, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Path is where the file belongs (package dir + output file name).
	Path string
	// Package is the import path of the package the file belongs to.
	Package string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per valid plan that has collections. Plans
// carrying error diagnostics are skipped. A failing package does not stop
// the others; their errors are joined. Files are returned in plan order
// regardless of how generation was scheduled.
func (g *Generator) Generate(ctx context.Context, plans []*plan.PackagePlan) ([]GeneratedFile, error) {
	results := make([]*GeneratedFile, len(plans))
	errs := make([]error, len(plans))

	var eg errgroup.Group
	eg.SetLimit(g.config.Workers)

	for i, p := range plans {
		if p.Diagnostics.HasErrors() {
			continue
		}

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			file, err := g.GeneratePackage(p)
			if err != nil {
				errs[i] = fmt.Errorf("generating %s: %w", p.Path, err)
				return nil
			}

			results[i] = file

			return nil
		})
	}

	_ = eg.Wait()

	var files []GeneratedFile
	for _, f := range results {
		if f != nil {
			files = append(files, *f)
		}
	}

	return files, errors.Join(errs...)
}

// GeneratePackage generates the file for a single package plan.
// It returns nil when the plan has no collections.
func (g *Generator) GeneratePackage(p *plan.PackagePlan) (*GeneratedFile, error) {
	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrPlanInvalid, p.Diagnostics.Error())
	}

	if len(p.Collections) == 0 {
		return nil, nil
	}

	data := buildTemplateData(p)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.DebugUnformatted && p.Dir != "" {
			_ = writeDebugUnformatted(p.Dir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Path:    p.OutputPath(),
			Package: p.Path,
			Content: buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	g.logger.Debug("generated collections",
		zap.String("package", p.Path),
		zap.String("file", filepath.Base(p.OutputPath())),
		zap.Int("collections", len(p.Collections)))

	return &GeneratedFile{
		Path:    p.OutputPath(),
		Package: p.Path,
		Content: formatted,
	}, nil
}
