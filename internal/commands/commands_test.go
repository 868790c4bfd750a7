package commands

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/rpick/internal/app"
	"github.com/kk-code-lab/rpick/internal/candidate"
	"github.com/kk-code-lab/rpick/internal/launch"
	"github.com/kk-code-lab/rpick/internal/mode"
)

// scriptedPick searches for query and confirms the focused row.
func scriptedPick(query string, seen *app.Options) pickFunc {
	return func(m *mode.Mode, opts app.Options) (app.Result, error) {
		if seen != nil {
			*seen = opts
		}
		m.Filled()
		if query != "" {
			m.Search(query)
		}
		item, ok := m.Confirm()
		return app.Result{Item: item, Confirmed: ok}, nil
	}
}

func cancelPick(*mode.Mode, app.Options) (app.Result, error) {
	return app.Result{}, nil
}

func newTestRoot(t *testing.T, pick pickFunc, env map[string]string) *runner {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &runner{
		v: viper.New(),
		getenv: func(key string) string {
			return env[key]
		},
		pick:   pick,
		launch: launchResult,
	}
}

func execute(t *testing.T, r *runner, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRoot(r)
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEchoModePrintsConfirmedLine(t *testing.T) {
	r := newTestRoot(t, scriptedPick("bet", nil), nil)

	out, err := execute(t, r, "alpha\nbeta\ngamma\n", "--mode", "echo")
	require.NoError(t, err)
	assert.Equal(t, "beta\n", out)
}

func TestEchoModeWithoutQueryPrintsFirstLine(t *testing.T) {
	r := newTestRoot(t, scriptedPick("", nil), nil)

	out, err := execute(t, r, "one\ntwo\n", "-m", "echo")
	require.NoError(t, err)
	assert.Equal(t, "one\n", out)
}

func TestCancelDoesNothing(t *testing.T) {
	r := newTestRoot(t, cancelPick, nil)
	launched := false
	r.launch = func(*slog.Logger, io.Writer, app.Result) error {
		launched = true
		return nil
	}

	out, err := execute(t, r, "one\n", "-m", "echo")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, launched)
}

func TestUnknownModeFails(t *testing.T) {
	r := newTestRoot(t, cancelPick, nil)

	_, err := execute(t, r, "", "--mode", "windows")
	assert.ErrorIs(t, err, mode.ErrUnknownMode)
}

func TestBadThemeColorFails(t *testing.T) {
	r := newTestRoot(t, cancelPick, nil)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  match_fg: notacolor\n"), 0o644))

	_, err := execute(t, r, "", "--config", path, "-m", "echo")
	assert.Error(t, err)
}

func TestConfigFileSuppliesPromptAndQuery(t *testing.T) {
	var seen app.Options
	r := newTestRoot(t, scriptedPick("", &seen), nil)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"pick: \"\nquery: be\n"), 0o644))

	_, err := execute(t, r, "alpha\nbeta\n", "--config", path, "-m", "echo")
	require.NoError(t, err)
	assert.Equal(t, "pick: ", seen.Prompt)
	assert.Equal(t, "be", seen.Query)
	assert.NotNil(t, seen.Logger)
}

func TestAppsModeScansExtraDirs(t *testing.T) {
	dir := t.TempDir()
	entry := "[Desktop Entry]\nType=Application\nName=Firefox\nExec=firefox %u\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "firefox.desktop"), []byte(entry), 0o644))

	var picked candidate.Item
	r := newTestRoot(t, scriptedPick("fire", nil), map[string]string{
		"XDG_DATA_HOME": t.TempDir(),
		"XDG_DATA_DIRS": t.TempDir(),
	})
	r.launch = func(_ *slog.Logger, _ io.Writer, res app.Result) error {
		picked = res.Item
		return nil
	}

	_, err := execute(t, r, "", "--dirs", dir)
	require.NoError(t, err)
	assert.Equal(t, "Firefox", picked.Name)
	assert.Equal(t, candidate.KindApplication, picked.Kind)
}

func TestLaunchErrorIsReturned(t *testing.T) {
	r := newTestRoot(t, scriptedPick("", nil), nil)
	want := &launch.Error{Command: "x", Message: "Failed to launch application", Err: errors.New("boom")}
	r.launch = func(*slog.Logger, io.Writer, app.Result) error { return want }

	_, err := execute(t, r, "x\n", "-m", "echo")
	var launchErr *launch.Error
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "x", launchErr.Command)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New("nope"))
	assert.Contains(t, buf.String(), "rpick: nope")
}

func TestVersionShort(t *testing.T) {
	r := newTestRoot(t, cancelPick, nil)

	out, err := execute(t, r, "", "version", "-s")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
