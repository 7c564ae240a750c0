package main

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"

	"go.uber.org/zap"

	"github.com/TuftsBCB/exsub/config"
	"github.com/TuftsBCB/exsub/newick"
	"github.com/TuftsBCB/exsub/nexus"
)

// sniffSize is how much of an input is inspected to detect NEXUS.
const sniffSize = 512

// readForest reads every tree in the named files, in order. The name "-"
// (or no names at all) reads from `stdin`. Files ending with ".gz" are
// decompressed.
func readForest(names []string, format string, stdin io.Reader, log *zap.Logger) ([]*newick.Tree, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	var forest []*newick.Tree
	for _, name := range names {
		trees, err := readFile(name, format, stdin)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		log.Debug("Read trees", zap.String("input", name), zap.Int("trees", len(trees)))
		forest = append(forest, trees...)
	}
	return forest, nil
}

func readFile(name, format string, stdin io.Reader) ([]*newick.Tree, error) {
	var reader io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f

		// If the file is gzipped, use the gzip decompressor.
		if path.Ext(name) == ".gz" {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return nil, err
			}
			defer gz.Close()
			reader = gz
		}
	}
	return readTrees(reader, format)
}

// readTrees reads Newick or NEXUS trees from `r`. In automatic mode the
// input is NEXUS if it starts with a #NEXUS header.
func readTrees(r io.Reader, format string) ([]*newick.Tree, error) {
	br := bufio.NewReader(r)
	if format == config.FormatAuto {
		format = config.FormatNewick
		prefix, _ := br.Peek(sniffSize)
		if nexus.IsNexus(prefix) {
			format = config.FormatNexus
		}
	}

	if format == config.FormatNexus {
		named, err := nexus.ReadTrees(br)
		if err != nil {
			return nil, err
		}
		trees := make([]*newick.Tree, len(named))
		for i := range named {
			trees[i] = named[i].Tree
		}
		return trees, nil
	}
	return newick.NewReader(br).ReadAll()
}
