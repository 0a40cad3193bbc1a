package plan

import (
	"fmt"
	"go/token"
	"path"
	"strings"

	"collection-generator/internal/analyze"
	"collection-generator/internal/common"
	"collection-generator/internal/config"
	"collection-generator/internal/diagnostic"
	"collection-generator/internal/marker"
	"collection-generator/internal/suggest"
)

// PlanConfig holds configuration for the planning process.
type PlanConfig struct {
	// OutputFile is the generated file name inside each package.
	OutputFile string
	// DefaultDerive applies to items that give no derive attribute.
	DefaultDerive []string
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() PlanConfig {
	return PlanConfig{
		OutputFile: config.DefaultOutputFile,
	}
}

// ConfigFrom derives a planning configuration from the generator config.
func ConfigFrom(cfg *config.Config) PlanConfig {
	return PlanConfig{
		OutputFile:    cfg.OutputFile,
		DefaultDerive: cfg.DefaultDerive,
	}
}

// Planner validates marker items and builds collection plans.
type Planner struct {
	config PlanConfig
}

// NewPlanner creates a new Planner.
func NewPlanner(cfg PlanConfig) *Planner {
	if cfg.OutputFile == "" {
		cfg.OutputFile = config.DefaultOutputFile
	}

	return &Planner{config: cfg}
}

// Plan builds the plan for one analyzed package. Problems are reported in
// the plan's diagnostics; only valid collections are included.
func (p *Planner) Plan(pkg *analyze.Package) *PackagePlan {
	out := &PackagePlan{
		Path:         pkg.Path,
		Name:         pkg.Name,
		Dir:          pkg.Dir,
		OutputFile:   p.config.OutputFile,
		ExistingFile: pkg.GeneratedFile,
	}

	if len(pkg.Errors) > 0 {
		for _, e := range pkg.Errors {
			out.Diagnostics.AddError(diagnostic.CodeLoadError, e.Error(), "", token.Position{})
		}

		return out
	}

	// claimed maps generated names to the item that claimed them.
	claimed := make(map[string]*analyze.Item)

	for _, item := range pkg.Items {
		col, ok := p.planItem(item, pkg, claimed, &out.Diagnostics)
		if !ok {
			continue
		}

		for _, n := range col.DeclaredNames() {
			claimed[n] = item
		}

		out.Collections = append(out.Collections, col)
	}

	p.checkImports(out, pkg)

	return out
}

// checkImports reports names that would clash with the imports of the
// generated file: package-level declarations and collection names alike.
func (p *Planner) checkImports(out *PackagePlan, pkg *analyze.Package) {
	if len(out.Collections) == 0 {
		return
	}

	for _, imp := range out.Imports() {
		name := path.Base(imp)

		if at, taken := pkg.Declared[name]; taken {
			out.Diagnostics.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("%s clashes with the generated import of %q", name, imp), name, at)

			continue
		}

		for _, c := range out.Collections {
			if c.Name == name {
				out.Diagnostics.AddError(diagnostic.CodeNameCollision,
					fmt.Sprintf("collection name %s clashes with the generated import of %q", name, imp), c.Item, c.Position)
			}
		}
	}
}

// planItem builds the collection for one item, reporting problems to diags.
func (p *Planner) planItem(
	item *analyze.Item,
	pkg *analyze.Package,
	claimed map[string]*analyze.Item,
	diags *diagnostic.Diagnostics,
) (Collection, bool) {
	pos := item.Position
	if item.Attrs == nil {
		item.Attrs = &marker.Attributes{}
	}

	if item.MarkerErr != nil {
		for _, line := range strings.Split(item.MarkerErr.Error(), "\n") {
			diags.AddError(diagnostic.CodeInvalidMarker, line, item.Name, pos)
		}

		return Collection{}, false
	}

	name, ok := item.Attrs.Name()
	if !ok || strings.TrimSpace(name) == "" {
		diags.AddError(diagnostic.CodeMissingName,
			"missing required attribute \"name\" (add // +collection:name=<Collection>)", item.Name, pos)

		return Collection{}, false
	}

	if !common.IsIdentifier(name) {
		diags.AddError(diagnostic.CodeInvalidName,
			fmt.Sprintf("collection name %q is not a valid Go identifier", name), item.Name, pos)

		return Collection{}, false
	}

	if item.Generic {
		diags.AddError(diagnostic.CodeGenericItem,
			"items with type parameters are not supported", item.Name, pos)

		return Collection{}, false
	}

	col := Collection{
		Name:      name,
		Item:      item.Name,
		ItemKind:  item.Kind,
		ItemAlias: item.Alias,
		Position:  pos,
	}

	if !p.checkNames(col, item, pkg, claimed, diags) {
		return Collection{}, false
	}

	if common.IsExported(name) && !item.Exported {
		diags.AddWarning(diagnostic.CodeUnexportedItem,
			fmt.Sprintf("exported collection %s holds unexported item type", name), item.Name, pos)
	}

	caps, ok := p.capabilities(item, diags)
	if !ok {
		return Collection{}, false
	}

	col.Capabilities = caps

	if item.EqualMethod {
		col.Equal = EqualMethod
	}

	if item.CloneMethod {
		col.Clone = CloneMethod
	}

	if col.Has(CapabilityEqual) && !item.EqualMethod && !item.Comparable {
		diags.AddError(diagnostic.CodeEqualUnsupported,
			fmt.Sprintf("Equal requires %s to be comparable or to have an Equal(%s) bool method", item.Name, item.Name),
			item.Name, pos)

		return Collection{}, false
	}

	col.Doc = docLines(item.Attrs, name, item.Name)
	col.Idents = chooseIdents(item.Name)

	return col, true
}

// checkNames verifies that the generated names are free.
func (p *Planner) checkNames(
	col Collection,
	item *analyze.Item,
	pkg *analyze.Package,
	claimed map[string]*analyze.Item,
	diags *diagnostic.Diagnostics,
) bool {
	ok := true

	for _, n := range col.DeclaredNames() {
		if other, dup := claimed[n]; dup {
			diags.AddError(diagnostic.CodeDuplicateName,
				fmt.Sprintf("%s is already generated for item %s", n, other.Name), item.Name, item.Position)

			ok = false

			continue
		}

		if at, taken := pkg.Declared[n]; taken {
			diags.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("%s is already declared at %s", n, at), item.Name, item.Position)

			ok = false
		}
	}

	return ok
}

// capabilities resolves the derive list of an item.
func (p *Planner) capabilities(item *analyze.Item, diags *diagnostic.Diagnostics) ([]Capability, bool) {
	names := item.Attrs.Derive()
	if !item.Attrs.Has(marker.KeyDerive) && len(p.config.DefaultDerive) > 0 {
		names = p.config.DefaultDerive
		diags.AddInfo(diagnostic.CodeDefaultDerive,
			"using default derive "+strings.Join(names, ", "), item.Name, item.Position)
	}

	var (
		caps []Capability
		ok   = true
	)

	for _, n := range names {
		c, known := ParseCapability(n)
		if !known {
			diags.AddError(diagnostic.CodeUnknownCapability,
				fmt.Sprintf("unknown capability %q%s", n, suggest.Hint(n, CapabilityNames())), item.Name, item.Position)

			ok = false

			continue
		}

		caps = append(caps, c)
	}

	caps, dropped := common.Dedupe(caps)
	for _, c := range dropped {
		diags.AddWarning(diagnostic.CodeDuplicateCapability,
			fmt.Sprintf("capability %s requested more than once", c), item.Name, item.Position)
	}

	return caps, ok
}

// docLines returns the documentation of the collection, one entry per line.
func docLines(attrs *marker.Attributes, name, item string) []string {
	doc, ok := attrs.Doc()
	if !ok || strings.TrimSpace(doc) == "" {
		return []string{fmt.Sprintf("%s is a collection of %s values.", name, item)}
	}

	lines := strings.Split(strings.TrimSpace(doc), "\n")
	for i := range lines {
		lines[i] = strings.TrimRightFunc(lines[i], func(r rune) bool { return r == ' ' || r == '\t' })
	}

	return lines
}

// chooseIdents picks body identifiers that do not shadow the item type.
func chooseIdents(item string) Idents {
	pick := func(candidates ...string) string {
		for _, c := range candidates {
			if c != item {
				return c
			}
		}

		return candidates[len(candidates)-1]
	}

	return Idents{
		Recv:  pick("c", "col"),
		Other: pick("other", "rhs"),
		Data:  pick("data", "raw"),
	}
}
