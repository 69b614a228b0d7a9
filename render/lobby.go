package render

import (
	"github.com/gdamore/tcell/v2"
)

// LobbyRow is one line of the lobby list
// Header rows are section titles and cannot be selected
type LobbyRow struct {
	Header   bool
	Text     string
	Detail   string
	Saved    bool
	Reminder bool
}

// LobbyView is the lobby screen state
type LobbyView struct {
	Title    string
	Rows     []LobbyRow
	Selected int // Index into Rows
	Status   string
	Muted    bool
}

const lobbyHelp = " ↑/↓ select  s save  r remind  enter race  m mute  q quit "

// RenderLobby draws the match and news list with a scrolling selection
func (r *TerminalRenderer) RenderLobby(lv LobbyView) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)

	// Title bar
	r.fillRow(0, defaultStyle.Background(RgbLapBg))
	title := lv.Title
	if lv.Muted {
		title += " [MUTE]"
	}
	r.drawText(1, 0, title, defaultStyle.Background(RgbLapBg).Foreground(RgbStatusText).Bold(true))

	// List area between title and the two footer rows
	top := 2
	visible := r.height - top - 2
	if visible < 1 {
		r.screen.Show()
		return
	}

	offset := scrollOffset(lv.Selected, len(lv.Rows), visible)
	for i := 0; i < visible && offset+i < len(lv.Rows); i++ {
		idx := offset + i
		r.drawLobbyRow(top+i, lv.Rows[idx], idx == lv.Selected, defaultStyle)
	}

	if lv.Status != "" {
		r.drawText(1, r.height-2, lv.Status, defaultStyle.Foreground(RgbDim))
	}
	r.fillRow(r.height-1, defaultStyle.Background(RgbStatusBar))
	r.drawText(0, r.height-1, lobbyHelp, defaultStyle.Background(RgbStatusBar).Foreground(RgbBackground))

	r.screen.Show()
}

func (r *TerminalRenderer) drawLobbyRow(y int, row LobbyRow, selected bool, defaultStyle tcell.Style) {
	if row.Header {
		r.drawText(1, y, row.Text, defaultStyle.Foreground(RgbHeader).Bold(true))
		return
	}

	style := defaultStyle.Foreground(RgbStatusBar)
	if selected {
		style = style.Background(RgbSelection)
		r.fillRow(y, style)
	}

	x := 1
	if row.Saved {
		r.screen.SetContent(x, y, '★', nil, style.Foreground(RgbMarkSaved))
	}
	x++
	if row.Reminder {
		r.screen.SetContent(x, y, '⏰', nil, style.Foreground(RgbMarkReminder))
	}
	x += 2

	x = r.drawText(x, y, row.Text, style)
	if row.Detail != "" {
		r.drawText(x+2, y, row.Detail, style.Foreground(RgbDim))
	}
}

func (r *TerminalRenderer) fillRow(y int, style tcell.Style) {
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// scrollOffset keeps the selection inside a window of visible rows
func scrollOffset(selected, total, visible int) int {
	if total <= visible || selected < visible/2 {
		return 0
	}
	offset := selected - visible/2
	if offset > total-visible {
		offset = total - visible
	}
	return offset
}
