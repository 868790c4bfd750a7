package mode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kk-code-lab/rpick/internal/candidate"
	"github.com/kk-code-lab/rpick/internal/source/desktop"
	"github.com/kk-code-lab/rpick/internal/source/lines"
	"github.com/kk-code-lab/rpick/internal/source/pathexec"
)

// Sources describes where each mode finds its candidates.
type Sources struct {
	DesktopDirs []string
	PathEnv     string
	Input       io.Reader
}

// Load materializes the candidate store for kind. It runs to completion
// before the picker starts.
func Load(ctx context.Context, kind Kind, src Sources, logger *slog.Logger) (*candidate.Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	start := time.Now()

	var (
		items []candidate.Item
		err   error
	)
	switch kind {
	case Apps:
		items, err = desktop.Scan(ctx, src.DesktopDirs, logger)
	case Run:
		items, err = pathexec.Scan(ctx, src.PathEnv, logger)
	case Echo:
		if src.Input == nil {
			return nil, fmt.Errorf("echo mode: no input stream")
		}
		items, err = lines.Read(src.Input)
	default:
		return nil, fmt.Errorf("load %v: %w", kind, ErrUnknownMode)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s candidates: %w", kind, err)
	}

	logger.Info("candidates loaded", "mode", kind.String(), "count", len(items), "elapsed", time.Since(start))
	return candidate.NewStore(items), nil
}
