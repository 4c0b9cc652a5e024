package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sofmeright/fedguard/src/guard"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultExtensions are the source files the collector reads.
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// Collector builds a module graph from a source tree on disk.
type Collector struct {
	Root        string
	Extensions  []string // defaults to DefaultExtensions
	Concurrency int      // parallel file reads; defaults to 2x NumCPU
}

// Collect walks Root and returns one module per source file, sorted by path,
// with the import requests found in it. Hidden directories and dependency
// directories are not descended into.
func (c *Collector) Collect(ctx context.Context) ([]guard.Module, error) {
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", c.Root, err)
	}

	files, err := c.walk(root)
	if err != nil {
		return nil, err
	}

	limit := c.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU() * 2
	}
	sem := semaphore.NewWeighted(int64(limit))
	g, gctx := errgroup.WithContext(ctx)

	modules := make([]guard.Module, len(files))
	for i, path := range files {
		i, path := i, path
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			reqs := ExtractRequests(data)
			deps := make([]guard.Dependency, len(reqs))
			for j, r := range reqs {
				deps[j] = guard.Dependency{Request: r}
			}
			modules[i] = guard.Module{Resource: path, Dependencies: deps}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return modules, nil
}

// walk returns matching files in lexical order.
func (c *Collector) walk(root string) ([]string, error) {
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == guard.DependencyDirMarker) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if want[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
