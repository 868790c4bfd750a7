package render

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	"github.com/kk-code-lab/rpick/internal/textutil"
	"github.com/kk-code-lab/rpick/internal/ui/listview"
)

// Screen layout: prompt on row 0, candidates from row 1, status on the
// last row.
const listStartY = 1

// descriptionGap separates a candidate name from its description.
const descriptionGap = 2

// Renderer handles all UI rendering
type Renderer struct {
	screen         tcell.Screen
	theme          ColorTheme
	runeWidthCache [128]int // ASCII cache (0-127), width+1
	runeWidthWide  map[rune]int
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, theme ColorTheme) *Renderer {
	return &Renderer{
		screen:        screen,
		theme:         theme,
		runeWidthWide: make(map[rune]int),
	}
}

// Render repaints the whole screen.
func (r *Renderer) Render(state *statepkg.AppState) {
	state.View.Invalidate()
	r.Draw(state)
}

// Draw repaints the prompt, the status line and whichever list rows the
// view reports dirty.
func (r *Renderer) Draw(state *statepkg.AppState) {
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.drawPrompt(state, w)

	positions, full := state.View.TakeDirty()
	rows := state.View.Visible()
	listHeight := state.ListHeight()
	if full {
		for i := 0; i < listHeight; i++ {
			y := listStartY + i
			if i < len(rows) {
				r.drawRow(state, rows[i], y, w)
				continue
			}
			r.fillRow(0, y, w, r.baseStyle())
		}
	} else {
		offset := state.View.Offset()
		for _, pos := range positions {
			i := pos - offset
			if i < 0 || i >= listHeight {
				continue
			}
			y := listStartY + i
			if i < len(rows) {
				r.drawRow(state, rows[i], y, w)
			} else {
				r.fillRow(0, y, w, r.baseStyle())
			}
		}
	}

	if h > 1 {
		r.drawStatusLine(state, w, h)
	}
	r.screen.Show()
}

func (r *Renderer) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
}

// drawPrompt renders "prompt query" and places the cursor after the query.
func (r *Renderer) drawPrompt(state *statepkg.AppState, w int) {
	base := r.baseStyle()
	promptStyle := base.Foreground(r.theme.PromptFg).Bold(true)
	queryStyle := base.Foreground(r.theme.QueryFg)

	x := r.drawStyledStringClipped(0, 0, w, textutil.SanitizeTerminalText(state.Prompt), promptStyle)
	query := textutil.SanitizeTerminalText(state.Query)
	if avail := w - x - 1; r.measureTextWidth(query) > avail && avail > 0 {
		query = tailToWidth(r, query, avail)
	}
	x = r.drawStyledStringClipped(x, 0, w, query, queryStyle)
	r.fillRow(x, 0, w, base)

	if x < w {
		r.screen.ShowCursor(x, 0)
	} else {
		r.screen.HideCursor()
	}
}

// tailToWidth keeps the end of text so the cursor side stays visible.
func tailToWidth(r *Renderer, text string, maxWidth int) string {
	runes := []rune(text)
	width := 0
	start := len(runes)
	for start > 0 {
		rw := r.cachedRuneWidth(runes[start-1])
		if width+rw > maxWidth {
			break
		}
		width += rw
		start--
	}
	return string(runes[start:])
}

func (r *Renderer) drawRow(state *statepkg.AppState, row listview.Row, y, w int) {
	item := state.Item(row.Index)

	rowStyle := r.baseStyle()
	descStyle := rowStyle.Foreground(r.theme.DescriptionFg)
	if row.Focused {
		rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		descStyle = rowStyle
	}
	matchStyle := rowStyle.Foreground(r.theme.MatchFg).Bold(true)

	name := textutil.SanitizeTerminalText(item.Name)
	maxName := w - 1
	if r.measureTextWidth(name) > maxName {
		name = r.truncateTextToWidth(name, maxName)
	}

	x := r.drawStyledRune(0, y, w, ' ', rowStyle)
	x = r.drawHighlightedText(x, y, w, name, highlightSpans(state.Query, name), rowStyle, matchStyle)

	if item.Description != "" && x+descriptionGap < w {
		desc := textutil.SanitizeTerminalText(item.Description)
		x = r.drawStyledStringClipped(x, y, w, "  ", rowStyle)
		desc = r.truncateTextToWidth(desc, w-x)
		x = r.drawStyledStringClipped(x, y, w, desc, descStyle)
	}
	r.fillRow(x, y, w, rowStyle)
}

// drawStatusLine renders "matched/total" on the left and the mode name on
// the right.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	y := h - 1

	left := " " + formatCounts(state.Matched(), state.Total(), w)
	right := state.Mode.Kind().String() + " "

	x := r.drawStyledStringClipped(0, y, w, left, style)
	rightX := w - r.measureTextWidth(right)
	if rightX > x+1 {
		r.fillRow(x, y, rightX, style)
		x = r.drawStyledStringClipped(rightX, y, w, right, style)
	}
	r.fillRow(x, y, w, style)
}
