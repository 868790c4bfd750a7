package desktop

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kk-code-lab/rpick/internal/candidate"
)

const maxParallelDirs = 4

// SearchDirs lists application directories in lookup order: extra first,
// then XDG_DATA_HOME, XDG_DATA_DIRS and the flatpak export directories.
// getenv is usually os.Getenv; home may be empty.
func SearchDirs(getenv func(string) string, home string, extra ...string) []string {
	var dirs []string
	dirs = append(dirs, extra...)

	dataHome := getenv("XDG_DATA_HOME")
	if dataHome == "" && home != "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataDirs := getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range filepath.SplitList(dataDirs) {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}

	dirs = append(dirs, "/var/lib/flatpak/exports/share/applications")
	if home != "" {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "flatpak", "exports", "share", "applications"))
	}

	return dedupe(dirs)
}

func dedupe(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		d = filepath.Clean(d)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

type found struct {
	id   string
	item candidate.Item
	// masked entries claim their id without being listed
	masked bool
}

// Scan reads every descriptor below dirs. Directories are walked in
// parallel; when the same desktop file id appears in several directories
// the earliest directory wins, also when that descriptor is hidden, so a
// user entry with Hidden=true removes the system one. Missing or unreadable
// directories and broken descriptors are skipped.
func Scan(ctx context.Context, dirs []string, logger *slog.Logger) ([]candidate.Item, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	results := make([][]found, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDirs)

	for i, dir := range dirs {
		g.Go(func() error {
			entries, err := scanDir(ctx, dir, logger)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var items []candidate.Item
	masked := 0
	for _, entries := range results {
		for _, e := range entries {
			if _, dup := seen[e.id]; dup {
				continue
			}
			seen[e.id] = struct{}{}
			if e.masked {
				masked++
				continue
			}
			items = append(items, e.item)
		}
	}
	logger.Debug("desktop scan done", "dirs", len(dirs), "items", len(items), "masked", masked)
	return items, nil
}

func scanDir(ctx context.Context, dir string, logger *slog.Logger) ([]found, error) {
	var out []found
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == dir {
				return fs.SkipDir
			}
			logger.Debug("skip unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".desktop" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Debug("skip unreadable descriptor", "path", path, "error", err)
			return nil
		}
		item, err := Parse(data, path)
		if errors.Is(err, ErrSkipped) {
			logger.Debug("skip descriptor", "path", path, "reason", err)
			out = append(out, found{id: fileID(dir, path), masked: true})
			return nil
		}
		if err != nil {
			logger.Debug("skip broken descriptor", "path", path, "error", err)
			return nil
		}

		out = append(out, found{id: fileID(dir, path), item: item})
		return nil
	})
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return out, nil
}

// fileID is the desktop file id: the path below the applications
// directory with separators replaced by dashes.
func fileID(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}
