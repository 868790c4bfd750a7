// Package desktop loads launchable applications from freedesktop
// .desktop descriptors.
package desktop

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/kk-code-lab/rpick/internal/candidate"
)

const entrySection = "Desktop Entry"

// ErrSkipped marks descriptors that parse but must not be listed.
var ErrSkipped = errors.New("desktop entry skipped")

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	PreserveSurroundedQuote: true,
	IgnoreContinuation:      true,
	SkipUnrecognizableLines: true,
	KeyValueDelimiters:      "=",
}

// Parse turns one descriptor into an application item. source is recorded
// on the item and used in error messages. Entries that are hidden, not
// applications or lack Name/Exec fail with ErrSkipped.
func Parse(data []byte, source string) (candidate.Item, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return candidate.Item{}, fmt.Errorf("parse %s: %w", source, err)
	}
	sec, err := f.GetSection(entrySection)
	if err != nil {
		return candidate.Item{}, fmt.Errorf("%s: no [%s] group: %w", source, entrySection, ErrSkipped)
	}

	if t := sec.Key("Type").String(); t != "Application" {
		return candidate.Item{}, fmt.Errorf("%s: type %q: %w", source, t, ErrSkipped)
	}
	if sec.Key("NoDisplay").MustBool(false) || sec.Key("Hidden").MustBool(false) {
		return candidate.Item{}, fmt.Errorf("%s: hidden: %w", source, ErrSkipped)
	}

	name := strings.TrimSpace(sec.Key("Name").String())
	exec := strings.TrimSpace(sec.Key("Exec").String())
	if name == "" || exec == "" {
		return candidate.Item{}, fmt.Errorf("%s: missing Name or Exec: %w", source, ErrSkipped)
	}

	desc := strings.TrimSpace(sec.Key("Comment").String())
	if desc == "" {
		desc = strings.TrimSpace(sec.Key("GenericName").String())
	}

	return candidate.Item{
		Name:        name,
		Description: desc,
		Exec:        exec,
		Kind:        candidate.KindApplication,
		Source:      source,
	}, nil
}

var fieldCodes = strings.NewReplacer(
	"%%", "%",
	"%f", "", "%F", "",
	"%u", "", "%U", "",
	"%d", "", "%D", "",
	"%n", "", "%N", "",
	"%i", "", "%c", "", "%k", "",
	"%v", "", "%m", "",
)

// StripFieldCodes removes Exec field codes and collapses the whitespace
// they leave behind.
func StripFieldCodes(exec string) string {
	return strings.Join(strings.Fields(fieldCodes.Replace(exec)), " ")
}
