// Package commands wires the rpick command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kk-code-lab/rpick/internal/app"
	"github.com/kk-code-lab/rpick/internal/config"
	"github.com/kk-code-lab/rpick/internal/launch"
	"github.com/kk-code-lab/rpick/internal/logging"
	"github.com/kk-code-lab/rpick/internal/mode"
	"github.com/kk-code-lab/rpick/internal/source/desktop"
	renderui "github.com/kk-code-lab/rpick/internal/ui/render"
)

// ErrTerminalInput is returned when echo mode would read candidates from an
// interactive terminal.
var ErrTerminalInput = errors.New("echo mode reads candidates from stdin; pipe some lines in")

// pickFunc shows the picker for m and reports what the user chose.
type pickFunc func(m *mode.Mode, opts app.Options) (app.Result, error)

type runner struct {
	v          *viper.Viper
	configPath string
	getenv     func(string) string
	pick       pickFunc
	launch     func(logger *slog.Logger, stdout io.Writer, res app.Result) error
}

// New returns the root command.
func New() *cobra.Command {
	return newRoot(&runner{
		v:      viper.New(),
		getenv: os.Getenv,
		pick:   pickInteractive,
		launch: launchResult,
	})
}

func newRoot(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpick",
		Short: "Incremental picker for applications, commands and stdin lines.",
		Example: `
rpick                      # pick a desktop application
rpick -m run               # pick an executable from $PATH
ls | rpick -m echo         # pick a line, print it to stdout
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringP("mode", "m", "apps", "Candidate source. One of "+strings.Join(mode.Kinds(), ", ")+".")
	flags.StringP("prompt", "p", "", "Prompt shown before the query.")
	flags.StringP("query", "q", "", "Initial query.")
	flags.String("log-file", "", "Append logs to this file.")
	flags.String("log-level", "info", "Log level: debug, info, warn or error.")
	flags.StringSlice("dirs", nil, "Extra directories searched for desktop entries.")
	flags.StringVar(&r.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/rpick/config.yaml).")
	if err := config.BindFlags(r.v, flags); err != nil {
		panic(err)
	}

	addVersion(cmd)
	return cmd
}

func (r *runner) run(ctx context.Context, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(r.v, r.configPath)
	if err != nil {
		return err
	}
	kind, err := mode.ParseKind(cfg.Mode)
	if err != nil {
		return err
	}
	theme, err := renderui.GetColorTheme().ApplyOverrides(cfg.Theme)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}

	if kind == mode.Echo && isTerminal(in) {
		return ErrTerminalInput
	}

	// A missing home only loses the per-user directories.
	home, err := homedir.Dir()
	if err != nil {
		logger.Warn("home directory unavailable", "err", err)
	}
	src := mode.Sources{
		DesktopDirs: desktop.SearchDirs(r.getenv, home, cfg.Dirs...),
		PathEnv:     r.getenv("PATH"),
		Input:       in,
	}
	store, err := mode.Load(ctx, kind, src, logger)
	if err != nil {
		return err
	}

	m := mode.New(kind, store, logger)
	res, err := r.pick(m, app.Options{
		Prompt: cfg.Prompt,
		Query:  cfg.Query,
		Theme:  theme,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	if !res.Confirmed {
		logger.Info("picker cancelled")
		return nil
	}
	return r.launch(logger, out, res)
}

func pickInteractive(m *mode.Mode, opts app.Options) (app.Result, error) {
	a, err := app.NewApplication(m, opts)
	if err != nil {
		return app.Result{}, fmt.Errorf("start terminal: %w", err)
	}
	res := a.Run()
	// The terminal has to be restored before anything is printed or spawned.
	if err := a.Close(); err != nil {
		return app.Result{}, err
	}
	return res, nil
}

func launchResult(logger *slog.Logger, stdout io.Writer, res app.Result) error {
	l := launch.New(logger)
	l.Stdout = stdout
	return l.Launch(res.Item)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// PrintError writes err to w in red.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintf(w, "rpick: %v\n", err)
}
