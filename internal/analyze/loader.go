package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"collection-generator/internal/config"
	"collection-generator/internal/marker"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// listMode is enough to locate package directories and names.
const listMode = packages.NeedName | packages.NeedFiles

// ErrNoPackages is returned when the patterns match no Go package.
var ErrNoPackages = errors.New("no packages matched")

// Config holds configuration for package analysis.
type Config struct {
	// Dir is the directory patterns are resolved in (defaults to the working directory).
	Dir string
	// MarkerPrefix is the marker prefix, e.g. "collection".
	MarkerPrefix string
	// OutputFile is the generated file name; its contents are ignored.
	OutputFile string
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// Analyzer loads Go packages and discovers marker items.
type Analyzer struct {
	config Config
	logger *zap.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.MarkerPrefix == "" {
		cfg.MarkerPrefix = marker.DefaultPrefix
	}

	if cfg.OutputFile == "" {
		cfg.OutputFile = config.DefaultOutputFile
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{config: cfg, logger: logger}
}

// LoadPackages loads the specified packages and extracts their marker items.
// Patterns are standard Go package patterns (e.g., ".", "./...", "collection-generator/examples/fruits").
//
// Existing output files are replaced by an empty stub while loading, so stale
// generated code never breaks analysis. A package that fails to load is
// returned with its Errors set and no items.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	overlay, err := a.outputOverlay(ctx, patterns)
	if err != nil {
		return nil, err
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     a.config.Dir,
		Mode:    LoadMode,
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var result []*Package
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			result = append(result, a.brokenPackage(pkg, overlay))
			continue
		}

		p, err := a.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		if p != nil {
			result = append(result, p)
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackages, strings.Join(patterns, " "))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result, nil
}

// outputOverlay maps every existing output file of the matched packages to a
// bare package clause.
func (a *Analyzer) outputOverlay(ctx context.Context, patterns []string) (map[string][]byte, error) {
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Dir:     a.config.Dir,
		Mode:    listMode,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	overlay := make(map[string][]byte)

	for _, pkg := range pkgs {
		for _, f := range pkg.GoFiles {
			if filepath.Base(f) != a.config.OutputFile {
				continue
			}

			overlay[f] = []byte("package " + pkg.Name + "\n")

			a.logger.Debug("stubbing generated file", zap.String("file", f))
		}
	}

	return overlay, nil
}

// brokenPackage describes a package that failed to load.
func (a *Analyzer) brokenPackage(pkg *packages.Package, overlay map[string][]byte) *Package {
	p := &Package{
		Path:     pkg.PkgPath,
		Name:     pkg.Name,
		Dir:      pkg.Dir,
		Declared: make(map[string]token.Position),
	}

	if p.Dir == "" && len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	if p.Dir != "" {
		if out := filepath.Join(p.Dir, a.config.OutputFile); overlay[out] != nil {
			p.GeneratedFile = out
		}
	}

	for _, e := range pkg.Errors {
		p.Errors = append(p.Errors, e)
	}

	a.logger.Debug("package failed to load",
		zap.String("package", p.Path), zap.Int("errors", len(p.Errors)))

	return p
}

// processPackage extracts marker items from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) (*Package, error) {
	if len(pkg.GoFiles) == 0 {
		return nil, nil
	}

	p := &Package{
		Path:     pkg.PkgPath,
		Name:     pkg.Name,
		Dir:      filepath.Dir(pkg.GoFiles[0]),
		Declared: make(map[string]token.Position),
	}

	for _, file := range pkg.Syntax {
		filename := pkg.Fset.File(file.Pos()).Name()
		if filepath.Base(filename) == a.config.OutputFile {
			p.GeneratedFile = filename
			continue
		}

		a.collectDeclared(pkg.Fset, file, p.Declared)

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}

				attrs, markerErr := marker.Collect(doc, a.config.MarkerPrefix)
				if attrs == nil && markerErr == nil {
					continue
				}

				item := a.analyzeItem(pkg, ts)
				item.Attrs = attrs
				item.MarkerErr = markerErr

				if item.Attrs == nil {
					item.Attrs = &marker.Attributes{}
				}

				p.Items = append(p.Items, item)
			}
		}
	}

	if p.GeneratedFile == "" {
		candidate := filepath.Join(p.Dir, a.config.OutputFile)
		if _, err := os.Stat(candidate); err == nil {
			// Present but excluded from the build, e.g. by a build tag.
			p.GeneratedFile = candidate
		}
	}

	sort.SliceStable(p.Items, func(i, j int) bool {
		pi, pj := p.Items[i].Position, p.Items[j].Position
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}

		return pi.Offset < pj.Offset
	})

	a.logger.Debug("analyzed package",
		zap.String("package", p.Path),
		zap.Int("items", len(p.Items)))

	return p, nil
}

// collectDeclared records the package-level names declared in file.
func (a *Analyzer) collectDeclared(fset *token.FileSet, file *ast.File, declared map[string]token.Position) {
	add := func(id *ast.Ident) {
		if id == nil || id.Name == "_" {
			return
		}

		declared[id.Name] = fset.Position(id.Pos())
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil && d.Name.Name != "init" {
				add(d.Name)
			}

		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					add(s.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						add(n)
					}
				}
			}
		}
	}
}

// analyzeItem extracts type facts for a marker item.
func (a *Analyzer) analyzeItem(pkg *packages.Package, ts *ast.TypeSpec) *Item {
	item := &Item{
		Name:     ts.Name.Name,
		Exported: ts.Name.IsExported(),
		Alias:    ts.Assign.IsValid(),
		Generic:  ts.TypeParams != nil && ts.TypeParams.NumFields() > 0,
		Position: pkg.Fset.Position(ts.Name.Pos()),
	}

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok || obj == nil {
		return item
	}

	t := obj.Type()
	item.Type = t
	item.Kind = KindOf(t)

	if item.Generic {
		return item
	}

	item.Comparable = types.Comparable(t)
	item.EqualMethod = hasEqualMethod(t, pkg.Types)
	item.CloneMethod = hasCloneMethod(t, pkg.Types)

	return item
}

// lookupMethod finds a method of t or *t.
func lookupMethod(t types.Type, pkg *types.Package, name string) *types.Signature {
	if _, isPtr := t.Underlying().(*types.Pointer); isPtr {
		return nil
	}

	sel := types.NewMethodSet(types.NewPointer(t)).Lookup(pkg, name)
	if sel == nil {
		return nil
	}

	sig, _ := sel.Type().(*types.Signature)

	return sig
}

// hasEqualMethod reports whether t has a method Equal(T) bool.
func hasEqualMethod(t types.Type, pkg *types.Package) bool {
	sig := lookupMethod(t, pkg, "Equal")
	if sig == nil || sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return false
	}

	if !types.Identical(sig.Params().At(0).Type(), t) {
		return false
	}

	res, ok := sig.Results().At(0).Type().Underlying().(*types.Basic)

	return ok && res.Kind() == types.Bool
}

// hasCloneMethod reports whether t has a method Clone() T.
func hasCloneMethod(t types.Type, pkg *types.Package) bool {
	sig := lookupMethod(t, pkg, "Clone")
	if sig == nil || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	return types.Identical(sig.Results().At(0).Type(), t)
}
