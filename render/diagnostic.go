package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// RenderDiagnostic shows a full-screen error with a key prompt
// Used when the screen works but a session could not be built
func (r *TerminalRenderer) RenderDiagnostic(title, msg string) {
	r.screen.Clear()
	style := tcell.StyleDefault.Background(RgbBackground)

	lines := wrap(msg, max(r.width-4, 10))
	y := (r.height - len(lines) - 4) / 2
	if y < 0 {
		y = 0
	}

	r.drawCentered(y, title, style.Foreground(RgbError).Bold(true))
	for i, line := range lines {
		r.drawCentered(y+2+i, line, style.Foreground(RgbStatusBar))
	}
	r.drawCentered(y+3+len(lines), "press any key", style.Foreground(RgbDim))

	r.screen.Show()
}

// wrap splits s on word boundaries into lines no wider than width
func wrap(s string, width int) []string {
	var lines []string
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		if b.Len() > 0 && b.Len()+1+len(word) > width {
			lines = append(lines, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}
