package subdiv

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/TuftsBCB/exsub/clade"
	"github.com/TuftsBCB/exsub/taxa"
)

// Report describes a delimitation: the retained clades and the taxa that no
// retained clade contains.
type Report struct {
	MinSupport int       `yaml:"min_support"`
	Taxa       int       `yaml:"taxa"`
	Clades     int       `yaml:"clades"`
	Species    []Species `yaml:"species"`
	Unassigned []string  `yaml:"unassigned"`
}

// Species is one retained clade.
type Species struct {
	ID      int      `yaml:"id"`
	Support int      `yaml:"support"`
	Members []string `yaml:"members"`
}

// NewReport summarizes the retained clades, largest first.
func NewReport(universe taxa.Set, retained clade.IDSet, table *clade.Table, minSupport int) (Report, error) {
	if universe == nil {
		return Report{}, fmt.Errorf("nil universe: %w", taxa.ErrInvalidArgument)
	}
	cands, err := candidates(retained, table)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		MinSupport: minSupport,
		Taxa:       universe.Len(),
		Clades:     table.Len(),
		Species:    []Species{},
		Unassigned: []string{},
	}
	unassigned := universe.Copy()
	for _, c := range ordered(retained, cands, larger) {
		r.Species = append(r.Species, Species{
			ID:      c.ID,
			Support: c.Support,
			Members: c.sorted,
		})
		for _, taxon := range c.sorted {
			unassigned.Remove(taxon)
		}
	}
	r.Unassigned = append(r.Unassigned, unassigned.Sorted()...)
	return r, nil
}

// WriteYAML writes the report to `w` as a YAML document.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
