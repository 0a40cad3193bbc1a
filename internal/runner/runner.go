// Package runner wires analysis, planning and generation into the
// operations exposed by the command line: gen, check, list and watch.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bndr/gotabulate"
	"go.uber.org/zap"

	"collection-generator/internal/analyze"
	"collection-generator/internal/config"
	"collection-generator/internal/diagnostic"
	"collection-generator/internal/gen"
	"collection-generator/internal/plan"
	"collection-generator/internal/watch"
)

// listCellSize is the width at which List wraps table cells.
const listCellSize = 60

// ErrNoMarkers is returned when none of the loaded packages has a marker item.
var ErrNoMarkers = errors.New("no marker items found")

// Options configures a Runner.
type Options struct {
	// Config is the generator configuration (defaults when nil).
	Config *config.Config
	// Dir is the directory package patterns are resolved in.
	Dir string
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

// Runner executes generator operations.
type Runner struct {
	config *config.Config
	dir    string
	logger *zap.Logger
}

// New creates a Runner.
func New(opts Options) *Runner {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{config: cfg, dir: opts.Dir, logger: logger}
}

// Result describes the outcome of a generation run.
type Result struct {
	// Files are the generated files.
	Files []gen.GeneratedFile
	// Written are the paths whose content changed on disk.
	Written []string
	// Removed are obsolete generated files that were deleted.
	Removed []string
}

// Plan loads the packages matching patterns and plans their collections.
// Warnings are logged. Plans are returned for every package, including
// invalid ones; the error combines the diagnostics of all invalid packages.
func (r *Runner) Plan(ctx context.Context, patterns ...string) ([]*plan.PackagePlan, error) {
	pkgs, err := r.analyzer().LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	planner := plan.NewPlanner(plan.ConfigFrom(r.config))

	var (
		plans []*plan.PackagePlan
		diags diagnostic.Diagnostics
		errs  []error
		items int
	)

	for _, pkg := range pkgs {
		p := planner.Plan(pkg)
		plans = append(plans, p)
		diags.Merge(p.Diagnostics)
		items += len(pkg.Items)

		if err := p.Diagnostics.Error(); err != nil {
			r.logger.Error("skipping invalid package", zap.String("package", p.Path), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", p.Path, err))
		}
	}

	for _, w := range diags.Warnings {
		r.logger.Warn(w.Message,
			zap.String("code", w.Code),
			zap.String("item", w.Item),
			zap.String("position", w.Position.String()))
	}

	for _, i := range diags.Infos {
		r.logger.Debug(i.Message, zap.String("code", i.Code), zap.String("item", i.Item))
	}

	if len(errs) > 0 {
		return plans, errors.Join(errs...)
	}

	r.logger.Debug("planned packages", zap.Int("packages", len(plans)), zap.Int("items", items))

	return plans, nil
}

func (r *Runner) analyzer() *analyze.Analyzer {
	return analyze.NewAnalyzer(analyze.Config{
		Dir:          r.dir,
		MarkerPrefix: r.config.MarkerPrefix,
		OutputFile:   r.config.OutputFile,
		Logger:       r.logger,
	})
}

func (r *Runner) generator() *gen.Generator {
	return gen.NewGenerator(gen.GeneratorConfig{
		Workers:          r.config.Workers,
		DebugUnformatted: true,
		Logger:           r.logger,
	})
}

// Generate plans and generates collections. Unless dryRun is set, changed
// files are written and obsolete generated files removed. Invalid packages
// are skipped; the valid ones are still generated and the errors of the
// others are returned together at the end.
func (r *Runner) Generate(ctx context.Context, dryRun bool, patterns ...string) (*Result, error) {
	plans, planErr := r.Plan(ctx, patterns...)
	if plans == nil {
		return nil, planErr
	}

	files, genErr := r.generator().Generate(ctx, plans)

	obsolete, err := gen.Obsolete(plans)
	if err != nil {
		return nil, errors.Join(planErr, genErr, err)
	}

	res := &Result{Files: files}

	if planErr == nil && genErr == nil && len(files) == 0 && len(obsolete) == 0 {
		return res, fmt.Errorf("%w in %s", ErrNoMarkers, strings.Join(defaultPatterns(patterns), " "))
	}

	if dryRun {
		return res, errors.Join(planErr, genErr)
	}

	res.Written, err = gen.WriteFiles(files)
	if err != nil {
		return res, errors.Join(planErr, genErr, err)
	}

	if err := gen.RemoveFiles(obsolete); err != nil {
		return res, errors.Join(planErr, genErr, err)
	}

	res.Removed = obsolete

	for _, p := range res.Written {
		r.logger.Info("wrote collections", zap.String("file", p))
	}

	for _, p := range res.Removed {
		r.logger.Info("removed obsolete collections", zap.String("file", p))
	}

	return res, errors.Join(planErr, genErr)
}

// Check reports generated files that are stale, missing or obsolete.
// Invalid packages are reported in the error and not checked.
func (r *Runner) Check(ctx context.Context, patterns ...string) ([]string, error) {
	plans, planErr := r.Plan(ctx, patterns...)
	if plans == nil {
		return nil, planErr
	}

	files, genErr := r.generator().Generate(ctx, plans)

	stale, err := gen.Check(files, plans)

	return stale, errors.Join(planErr, genErr, err)
}

// List writes a table of the marker items and their planned collections.
// The collections of valid packages are listed even when others fail.
func (r *Runner) List(ctx context.Context, w io.Writer, patterns ...string) error {
	plans, planErr := r.Plan(ctx, patterns...)
	if plans == nil {
		return planErr
	}

	var rows [][]string
	for _, p := range plans {
		for _, c := range p.Collections {
			caps := make([]string, 0, len(c.Capabilities))
			for _, cp := range c.Capabilities {
				caps = append(caps, cp.String())
			}

			rows = append(rows, []string{p.Path, c.Item, c.KindString(), c.Name, strings.Join(caps, ",")})
		}
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no marker items found")
		return errors.Join(planErr, err)
	}

	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"PACKAGE", "ITEM", "KIND", "COLLECTION", "CAPABILITIES"})
	t.SetAlign("left")
	t.SetEmptyString("-")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(listCellSize)

	_, err := fmt.Fprint(w, t.Render("simple"))

	return errors.Join(planErr, err)
}

// Watch generates once, then regenerates whenever sources of the matched
// packages change, until ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, patterns ...string) error {
	if _, err := r.Generate(ctx, false, patterns...); err != nil {
		r.logger.Error("initial generation failed", zap.Error(err))
	}

	dirs, err := r.packageDirs(ctx, patterns...)
	if err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Dirs:   dirs,
		Ignore: []string{r.config.OutputFile},
		Logger: r.logger,
	})
	if err != nil {
		return err
	}

	r.logger.Info("watching for changes", zap.Strings("dirs", dirs))

	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		r.logger.Debug("regenerating", zap.Strings("changed", changed))

		_, err := r.Generate(ctx, false, patterns...)

		return err
	})
}

// packageDirs returns the directories of the packages matching patterns.
func (r *Runner) packageDirs(ctx context.Context, patterns ...string) ([]string, error) {
	pkgs, err := r.analyzer().LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		if p.Dir != "" {
			dirs = append(dirs, p.Dir)
		}
	}

	return dirs, nil
}

func defaultPatterns(patterns []string) []string {
	if len(patterns) == 0 {
		return []string{"."}
	}

	return patterns
}
