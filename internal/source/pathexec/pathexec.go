// Package pathexec lists executables reachable through PATH.
package pathexec

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/kk-code-lab/rpick/internal/candidate"
)

const maxParallelDirs = 8

// Scan lists regular executable files in every directory of pathEnv.
// A name found in several directories resolves to the earliest one, the
// way a shell lookup would. Items come back sorted by name.
func Scan(ctx context.Context, pathEnv string, logger *slog.Logger) ([]candidate.Item, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var dirs []string
	for _, d := range filepath.SplitList(pathEnv) {
		if d == "" {
			d = "."
		}
		// Exec must not be a bare name, or exec would search PATH again.
		if abs, err := filepath.Abs(d); err == nil {
			d = abs
		}
		if !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}

	results := make([][]candidate.Item, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDirs)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = listDir(dir, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var items []candidate.Item
	for _, found := range results {
		for _, it := range found {
			if _, dup := seen[it.Name]; dup {
				continue
			}
			seen[it.Name] = struct{}{}
			items = append(items, it)
		}
	}
	slices.SortFunc(items, func(a, b candidate.Item) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	logger.Debug("path scan done", "dirs", len(dirs), "items", len(items))
	return items, nil
}

func listDir(dir string, logger *slog.Logger) []candidate.Item {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("skip path dir", "dir", dir, "error", err)
		return nil
	}

	var items []candidate.Item
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		// Stat follows symlinks; most of /usr/bin is links.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			continue
		}
		items = append(items, candidate.Item{
			Name:        e.Name(),
			Description: dir,
			Exec:        path,
			Kind:        candidate.KindExecutable,
			Source:      path,
		})
	}
	return items
}
