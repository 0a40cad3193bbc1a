package gen

import "collection-generator/internal/plan"

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName string
	Filename    string
	Imports     []string
	Collections []collectionData
}

// collectionData holds the per-collection template inputs.
type collectionData struct {
	Name      string
	Item      string
	Doc       []string
	New       string
	FromSlice string
	Collect   string
	// Local identifiers: receiver, the Equal argument and the UnmarshalJSON argument.
	R, O, D string

	HasEqual    bool
	EqualMethod bool
	HasClone    bool
	CloneMethod bool
	HasString   bool
	HasJSON     bool
}

// buildTemplateData converts a package plan into template inputs.
func buildTemplateData(p *plan.PackagePlan) *templateData {
	data := &templateData{
		PackageName: p.Name,
		Filename:    p.OutputFile,
		Imports:     p.Imports(),
	}

	for _, c := range p.Collections {
		data.Collections = append(data.Collections, collectionData{
			Name:        c.Name,
			Item:        c.Item,
			Doc:         c.Doc,
			New:         c.NewFunc(),
			FromSlice:   c.FromSliceFunc(),
			Collect:     c.CollectFunc(),
			R:           c.Idents.Recv,
			O:           c.Idents.Other,
			D:           c.Idents.Data,
			HasEqual:    c.Has(plan.CapabilityEqual),
			EqualMethod: c.Equal == plan.EqualMethod,
			HasClone:    c.Has(plan.CapabilityClone),
			CloneMethod: c.Clone == plan.CloneMethod,
			HasString:   c.Has(plan.CapabilityString),
			HasJSON:     c.Has(plan.CapabilityJSON),
		})
	}

	return data
}
