package launch

import (
	"bytes"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/rpick/internal/candidate"
)

func recordingLauncher(fail error) (*Launcher, *[]*exec.Cmd) {
	var started []*exec.Cmd
	l := New(nil)
	l.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return fail
	}
	return l, &started
}

func TestLaunchApplicationStripsFieldCodes(t *testing.T) {
	l, started := recordingLauncher(nil)

	err := l.Launch(candidate.Item{Name: "Firefox", Exec: "firefox %u --new", Kind: candidate.KindApplication})
	require.NoError(t, err)

	require.Len(t, *started, 1)
	assert.Equal(t, []string{"sh", "-c", "firefox --new"}, (*started)[0].Args)
}

func TestLaunchExecutable(t *testing.T) {
	l, started := recordingLauncher(nil)

	require.NoError(t, l.Launch(candidate.Item{Name: "htop", Exec: "/usr/bin/htop", Kind: candidate.KindExecutable}))
	require.Len(t, *started, 1)
	assert.Equal(t, []string{"/usr/bin/htop"}, (*started)[0].Args)
}

func TestLaunchLinePrints(t *testing.T) {
	l, started := recordingLauncher(nil)
	var out bytes.Buffer
	l.Stdout = &out

	require.NoError(t, l.Launch(candidate.Item{Name: "hello", Exec: "hello", Kind: candidate.KindLine}))
	assert.Equal(t, "hello\n", out.String())
	assert.Empty(t, *started)
}

func TestLaunchFailure(t *testing.T) {
	cause := errors.New("exec: not found")
	l, _ := recordingLauncher(cause)

	err := l.Launch(candidate.Item{Name: "Broken", Exec: "broken %F", Kind: candidate.KindApplication})

	var launchErr *Error
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "broken %F", launchErr.Command)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to launch application\n  Command: broken %F\n  Cause: exec: not found", err.Error())
}

func TestLaunchUnknownKind(t *testing.T) {
	l, _ := recordingLauncher(nil)
	err := l.Launch(candidate.Item{Kind: candidate.Kind(9)})

	var launchErr *Error
	assert.ErrorAs(t, err, &launchErr)
}

func TestStartDetachedMissingBinary(t *testing.T) {
	err := startDetached(exec.Command("/nonexistent/rpick-test-binary"))
	assert.Error(t, err)
}
