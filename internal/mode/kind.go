package mode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseKind for names outside the closed set.
var ErrUnknownMode = errors.New("unknown mode")

// Kind selects what the picker lists and what confirming does.
type Kind int

const (
	// Apps lists desktop applications.
	Apps Kind = iota
	// Run lists executables on PATH.
	Run
	// Echo lists lines read from stdin and prints the chosen one.
	Echo
)

var kindNames = [...]string{
	Apps: "apps",
	Run:  "run",
	Echo: "echo",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every mode name in declaration order.
func Kinds() []string {
	return append([]string(nil), kindNames[:]...)
}

// ParseKind resolves a mode name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w %q (want one of %s)", ErrUnknownMode, name, strings.Join(kindNames[:], ", "))
}

// DefaultPrompt is shown before the query when no prompt is configured.
func (k Kind) DefaultPrompt() string {
	switch k {
	case Run:
		return "run> "
	case Echo:
		return "> "
	default:
		return "apps> "
	}
}
