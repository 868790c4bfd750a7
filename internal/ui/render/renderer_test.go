package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rpick/internal/candidate"
	"github.com/kk-code-lab/rpick/internal/mode"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil, GetColorTheme())

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{
			name:   "fits without truncation",
			text:   "Firefox",
			width:  20,
			expect: "Firefox",
		},
		{
			name:   "adds ellipsis when needed",
			text:   "verylongname",
			width:  6,
			expect: "veryl…",
		},
		{
			name:   "only ellipsis when width too small",
			text:   "example",
			width:  1,
			expect: "…",
		},
		{
			name:   "multi-byte characters respected",
			text:   "你好世界",
			width:  5,
			expect: "你好…",
		},
		{
			name:   "returns empty when width is zero",
			text:   "anything",
			width:  0,
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestMeasureTextWidth(t *testing.T) {
	r := NewRenderer(nil, GetColorTheme())

	if got := r.measureTextWidth("abc"); got != 3 {
		t.Fatalf("expected ASCII width 3, got %d", got)
	}

	if got := r.measureTextWidth("你好"); got != 4 {
		t.Fatalf("expected wide rune width 4, got %d", got)
	}
}

func TestHighlightSpans(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  []highlightSpan
	}{
		{"substring", "fox", "Firefox", []highlightSpan{{4, 7}}},
		{"case insensitive", "FIRE", "Firefox", []highlightSpan{{0, 4}}},
		{"subsequence", "ffx", "Firefox", []highlightSpan{{0, 1}, {4, 5}, {6, 7}}},
		{"empty query", "", "Firefox", nil},
		{"multibyte", "\u00e9", "Caf\u00e9", []highlightSpan{{3, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := highlightSpans(tt.query, tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestFormatCounts(t *testing.T) {
	if got := formatCounts(12, 3456, 80); got != "12/3456" {
		t.Errorf("expected 12/3456, got %q", got)
	}
	if got := formatCounts(12, 3456, 20); got != "12/3.5k" {
		t.Errorf("expected 12/3.5k, got %q", got)
	}
	if got := formatCompactNumber(2_000_000); got != "2M" {
		t.Errorf("expected 2M, got %q", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	theme, err := GetColorTheme().ApplyOverrides(map[string]string{
		"selection_bg": "#112233",
		"match_fg":     "Red",
		"footer_bg":    "default",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if theme.SelectionBg != tcell.NewHexColor(0x112233) {
		t.Errorf("selection_bg not applied: %v", theme.SelectionBg)
	}
	if theme.MatchFg != tcell.ColorRed {
		t.Errorf("match_fg not applied: %v", theme.MatchFg)
	}

	if _, err := GetColorTheme().ApplyOverrides(map[string]string{"nope": "red"}); err == nil {
		t.Errorf("expected unknown key error")
	}
	if _, err := GetColorTheme().ApplyOverrides(map[string]string{"match_fg": "notacolor"}); err == nil {
		t.Errorf("expected invalid color error")
	}
}

func newScreenState(t *testing.T, w, h int, names ...string) (tcell.SimulationScreen, *statepkg.AppState) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	items := make([]candidate.Item, len(names))
	for i, n := range names {
		items[i] = candidate.Item{Name: n, Exec: n, Kind: candidate.KindLine}
	}
	m := mode.New(mode.Echo, candidate.NewStore(items), nil)
	return screen, statepkg.NewAppState(m, "> ", w, h)
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		cell := cells[y*w+x]
		if len(cell.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(cell.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestRenderLayout(t *testing.T) {
	screen, state := newScreenState(t, 30, 5, "alpha", "beta", "gamma", "delta")
	state.Query = "al"
	r := NewRenderer(screen, GetColorTheme())

	r.Render(state)

	if got := rowText(screen, 0); got != "> al" {
		t.Errorf("prompt row = %q", got)
	}
	if got := rowText(screen, 1); got != " alpha" {
		t.Errorf("row 1 = %q", got)
	}
	if got := rowText(screen, 3); got != " gamma" {
		t.Errorf("row 3 = %q", got)
	}
	status := rowText(screen, 4)
	if !strings.HasPrefix(status, " 4/4") || !strings.HasSuffix(status, "echo") {
		t.Errorf("status row = %q", status)
	}

	cx, cy, visible := screen.GetCursor()
	if !visible || cx != 4 || cy != 0 {
		t.Errorf("cursor at (%d,%d) visible=%v", cx, cy, visible)
	}
}

func TestRenderFocusedRowUsesSelectionStyle(t *testing.T) {
	screen, state := newScreenState(t, 20, 5, "alpha", "beta")
	theme := GetColorTheme()
	r := NewRenderer(screen, theme)

	r.Render(state)

	cells, w, _ := screen.GetContents()
	_, bg, _ := cells[1*w+1].Style.Decompose()
	if bg != theme.SelectionBg {
		t.Errorf("focused row bg = %v, want %v", bg, theme.SelectionBg)
	}
	_, bg, _ = cells[2*w+1].Style.Decompose()
	if bg == theme.SelectionBg {
		t.Errorf("unfocused row should not use selection bg")
	}
}

func TestDrawAfterSearchClearsStaleRows(t *testing.T) {
	screen, state := newScreenState(t, 20, 6, "alpha", "beta", "gamma")
	r := NewRenderer(screen, GetColorTheme())
	r.Render(state)

	state.Query = "gamma"
	state.Mode.Search(state.Query)
	r.Draw(state)

	if got := rowText(screen, 1); got != " gamma" {
		t.Errorf("row 1 = %q", got)
	}
	if got := rowText(screen, 2); got != "" {
		t.Errorf("row 2 should be blank, got %q", got)
	}
	if status := rowText(screen, 5); !strings.HasPrefix(status, " 1/3") {
		t.Errorf("status row = %q", status)
	}
}

func TestRenderSanitizesCandidateText(t *testing.T) {
	screen, state := newScreenState(t, 20, 4, "bad\x1b[31mname")
	r := NewRenderer(screen, GetColorTheme())
	r.Render(state)

	if got := rowText(screen, 1); got != " bad?[31mname" {
		t.Errorf("row 1 = %q", got)
	}
}
