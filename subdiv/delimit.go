package subdiv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/TuftsBCB/exsub/clade"
	"github.com/TuftsBCB/exsub/newick"
	"github.com/TuftsBCB/exsub/taxa"
)

// Options configure Delimit.
type Options struct {
	MinSupport int
	Workers    int
	Strict     bool
	Logger     *zap.Logger
}

// Result is everything produced by one delimitation.
type Result struct {
	Table      *clade.Table
	Universe   taxa.Set
	Retained   clade.IDSet
	MinSupport int
	Tree       string
}

// Report returns the report of this result.
func (r *Result) Report() (Report, error) {
	return NewReport(r.Universe, r.Retained, r.Table, r.MinSupport)
}

// Delimit collects every clade of `trees`, subdivides the universe of taxa
// and renders the result.
func Delimit(ctx context.Context, trees []*newick.Tree, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	table := clade.NewTable()
	col := clade.NewCollector(table, log)
	col.Strict = opts.Strict
	if err := col.CollectAll(ctx, trees, opts.Workers); err != nil {
		return nil, fmt.Errorf("collect clades: %w", err)
	}
	universe := table.Universe()
	if universe.Len() == 0 {
		log.Warn("No taxa found in the input trees")
	}
	log.Info("Collected clades",
		zap.Int("trees", len(trees)),
		zap.Int("taxa", universe.Len()),
		zap.Int("clades", table.Len()))

	retained, err := NewEngine(table, opts.MinSupport, log).Subdivide(universe, table.IDs())
	if err != nil {
		return nil, fmt.Errorf("subdivide: %w", err)
	}
	log.Info("Subdivided taxa",
		zap.Int("min_support", opts.MinSupport),
		zap.Int("species", retained.Len()))

	out, err := Output(universe, retained, table)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &Result{
		Table:      table,
		Universe:   universe,
		Retained:   retained,
		MinSupport: opts.MinSupport,
		Tree:       out,
	}, nil
}
