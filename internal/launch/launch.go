// Package launch carries out the action attached to a confirmed candidate.
package launch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/kk-code-lab/rpick/internal/candidate"
	"github.com/kk-code-lab/rpick/internal/source/desktop"
)

// Error reports a candidate whose action could not be started.
type Error struct {
	Command string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s\n  Command: %s\n  Cause: %v", e.Message, e.Command, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Launcher runs candidate actions. The zero value is not usable; call New.
type Launcher struct {
	// Stdout receives echoed lines.
	Stdout io.Writer
	Shell  string
	logger *slog.Logger
	start  func(*exec.Cmd) error
}

// New returns a launcher that writes to os.Stdout and spawns through
// /bin/sh.
func New(logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Launcher{
		Stdout: os.Stdout,
		Shell:  "sh",
		logger: logger,
		start:  startDetached,
	}
}

// Launch performs item's action. Spawned processes are detached and not
// waited for. Failures are returned as *Error and never retried.
func (l *Launcher) Launch(item candidate.Item) error {
	switch item.Kind {
	case candidate.KindApplication:
		command := desktop.StripFieldCodes(item.Exec)
		cmd := exec.Command(l.Shell, "-c", command)
		if err := l.start(cmd); err != nil {
			return &Error{Command: item.Exec, Message: "Failed to launch application", Err: err}
		}
		l.logger.Info("launched application", "name", item.Name, "command", command, "pid", pid(cmd))
		return nil

	case candidate.KindExecutable:
		cmd := exec.Command(item.Exec)
		if err := l.start(cmd); err != nil {
			return &Error{Command: item.Exec, Message: "Failed to run executable", Err: err}
		}
		l.logger.Info("started executable", "path", item.Exec, "pid", pid(cmd))
		return nil

	case candidate.KindLine:
		if _, err := fmt.Fprintln(l.Stdout, item.Exec); err != nil {
			return &Error{Command: item.Exec, Message: "Failed to write selection", Err: err}
		}
		return nil

	default:
		return &Error{Command: item.Exec, Message: "Unsupported candidate", Err: fmt.Errorf("kind %v", item.Kind)}
	}
}

func pid(cmd *exec.Cmd) int {
	if cmd.Process == nil {
		return 0
	}
	return cmd.Process.Pid
}

func startDetached(cmd *exec.Cmd) error {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
