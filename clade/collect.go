package clade

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TuftsBCB/exsub/newick"
	"github.com/TuftsBCB/exsub/taxa"
)

// ErrMalformedTree is returned when a leaf has no identifier or an internal
// node has a label that is not a non-negative integer support value.
var ErrMalformedTree = errors.New("malformed tree")

// Collector folds trees into a Table.
type Collector struct {
	// The table that clades and taxa are recorded in.
	Table *Table

	// When true, an internal node without a label is an error. Otherwise it
	// contributes a support of 0.
	Strict bool

	log *zap.Logger
}

// NewCollector returns a collector that records into `table`. A nil logger
// disables logging.
func NewCollector(table *Table, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{Table: table, log: logger}
}

// observation is a leaf set of size >= 2 found under one internal node.
type observation struct {
	members taxa.Set
	support int
}

// extraction is everything a single tree contributes to a table.
type extraction struct {
	observations []observation
	leaves       []string
}

// Collect records every internal node of `tree` (including its root) in the
// table and adds every leaf to the universe. Calling Collect twice with the
// same tree counts its support twice.
func (c *Collector) Collect(tree *newick.Tree) error {
	ex, err := extract(tree, c.Strict)
	if err != nil {
		return err
	}
	return c.apply(ex)
}

// CollectAll records each of `trees` in order. The leaf sets of different
// trees are computed concurrently by at most `workers` goroutines, but they
// are recorded in input order, so clade ids are the same as when each tree
// is given to Collect in turn.
func (c *Collector) CollectAll(ctx context.Context, trees []*newick.Tree, workers int) error {
	if workers < 1 {
		workers = 1
	}
	results := make([]extraction, len(trees))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, tree := range trees {
		i, tree := i, tree
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ex, err := extract(tree, c.Strict)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i+1, err)
			}
			results[i] = ex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range results {
		if err := c.apply(results[i]); err != nil {
			return fmt.Errorf("tree %d: %w", i+1, err)
		}
	}
	return nil
}

func (c *Collector) apply(ex extraction) error {
	c.Table.AddTaxa(ex.leaves...)
	created := 0
	for _, obs := range ex.observations {
		_, isNew, err := c.Table.Observe(obs.members, obs.support)
		if err != nil {
			return err
		}
		if isNew {
			created++
		}
	}
	c.log.Debug("Collected tree",
		zap.Int("leaves", len(ex.leaves)),
		zap.Int("clades", len(ex.observations)),
		zap.Int("new_clades", created),
		zap.Int("table_size", c.Table.Len()))
	return nil
}

// extract computes the leaf set of every internal node of `tree` in
// post-order. It does not touch any table.
func extract(tree *newick.Tree, strict bool) (extraction, error) {
	var ex extraction
	if tree == nil {
		return ex, fmt.Errorf("nil tree: %w", ErrMalformedTree)
	}

	var walk func(t *newick.Tree) ([]string, error)
	walk = func(t *newick.Tree) ([]string, error) {
		if t.IsLeaf() {
			id := taxa.Normalize(t.Label)
			if len(id) == 0 {
				return nil, fmt.Errorf("leaf without an identifier: %w",
					ErrMalformedTree)
			}
			ex.leaves = append(ex.leaves, id)
			return []string{id}, nil
		}

		var below []string
		for i := range t.Children {
			ids, err := walk(&t.Children[i])
			if err != nil {
				return nil, err
			}
			below = append(below, ids...)
		}

		members := taxa.New(below...)
		if members.Len() < 2 {
			return below, nil
		}
		support, err := parseSupport(t.Label, strict)
		if err != nil {
			return nil, err
		}
		ex.observations = append(ex.observations, observation{members, support})
		return below, nil
	}
	if _, err := walk(tree); err != nil {
		return extraction{}, err
	}
	return ex, nil
}

// parseSupport reads the support value of an internal node. Integral
// floating point labels such as "3.0" are accepted.
func parseSupport(label string, strict bool) (int, error) {
	if len(label) == 0 {
		if strict {
			return 0, fmt.Errorf("internal node without a support value: %w",
				ErrMalformedTree)
		}
		return 0, nil
	}
	n, err := strconv.Atoi(label)
	if err != nil {
		f, ferr := strconv.ParseFloat(label, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt {
			return 0, fmt.Errorf("support value %q is not an integer: %w",
				label, ErrMalformedTree)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative support value %d: %w", n, ErrMalformedTree)
	}
	return n, nil
}
