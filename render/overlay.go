package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/status"
)

const (
	overlayNameWidth  = 28
	overlayValueWidth = 14
)

// RenderOverlay draws the metrics panel on top of whatever is on screen
// Call between a Render* call's drawing and the next frame; it shows the screen itself
func (r *TerminalRenderer) RenderOverlay(metrics []status.Metric) {
	w := overlayNameWidth + overlayValueWidth + 4
	h := len(metrics) + 3
	if w > r.width {
		w = r.width
	}
	if h > r.height {
		h = r.height
	}
	x0 := (r.width - w) / 2
	y0 := (r.height - h) / 2

	border := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbHeader)
	body := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusBar)

	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			ch := ' '
			style := body
			switch {
			case y == y0 || y == y0+h-1:
				ch, style = '─', border
			case x == x0 || x == x0+w-1:
				ch, style = '│', border
			}
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
	r.drawText(x0+2, y0, " DIAGNOSTICS ", border.Bold(true))

	for i, m := range metrics {
		y := y0 + 1 + i
		if y >= y0+h-1 {
			break
		}
		r.drawText(x0+2, y, truncate(m.Name, overlayNameWidth), body.Foreground(RgbDim))
		r.drawText(x0+2+overlayNameWidth, y, truncate(m.Value, overlayValueWidth), body)
	}

	r.screen.Show()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
