package modes

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/content"
	"github.com/lixenwraith/vi-racer/render"
	"github.com/lixenwraith/vi-racer/saved"
)

const lobbyTitle = "VI-RACER"

// lobbyEntry is one list line; headers carry no id
type lobbyEntry struct {
	header bool
	kind   saved.Kind
	id     string
	title  string
	date   string
	detail string
	meta   map[string]string
}

// Lobby is the match and news list with save and reminder toggles
type Lobby struct {
	feed  FeedSource
	store SavedStore
	log   zerolog.Logger

	generation int64
	entries    []lobbyEntry
	selected   int
	status     string
}

// NewLobby creates a lobby over feed; store may be nil, which disables saving
func NewLobby(feed FeedSource, store SavedStore, log zerolog.Logger) *Lobby {
	l := &Lobby{
		feed:       feed,
		store:      store,
		log:        log,
		generation: -1,
	}
	l.sync()
	return l
}

// Enter asks the feed for fresh content
func (l *Lobby) Enter() {
	l.feed.Refresh()
}

// sync rebuilds the entry list when the feed generation changed
func (l *Lobby) sync() {
	f := l.feed.Current()
	if f == nil || f.Generation == l.generation {
		return
	}
	l.generation = f.Generation

	var prevID string
	if e, ok := l.current(); ok {
		prevID = e.id
	}

	entries := make([]lobbyEntry, 0, len(f.Matches)+len(f.News)+2)
	entries = append(entries, lobbyEntry{header: true, title: "UPCOMING MATCHES"})
	for _, m := range f.Matches {
		entries = append(entries, lobbyEntry{
			kind:   saved.KindMatch,
			id:     m.ID,
			title:  m.Title(),
			date:   m.Date + " - " + m.Time,
			detail: fmt.Sprintf("%s %s · %s", m.Date, m.Time, m.Venue),
			meta:   map[string]string{"venue": m.Venue, "competition": m.Competition},
		})
	}
	entries = append(entries, lobbyEntry{header: true, title: "LATEST NEWS"})
	for _, n := range f.News {
		entries = append(entries, lobbyEntry{
			kind:   saved.KindArticle,
			id:     n.ID,
			title:  n.Title,
			date:   n.Date,
			detail: n.Date + " · " + n.Category,
			meta:   map[string]string{"category": n.Category, "excerpt": n.Excerpt},
		})
	}
	l.entries = entries

	// Keep the cursor on the same record across refreshes
	l.selected = -1
	for i, e := range entries {
		if !e.header && e.id == prevID && prevID != "" {
			l.selected = i
			break
		}
	}
	if l.selected < 0 {
		l.selected = l.firstSelectable()
	}
}

func (l *Lobby) firstSelectable() int {
	for i, e := range l.entries {
		if !e.header {
			return i
		}
	}
	return 0
}

func (l *Lobby) current() (lobbyEntry, bool) {
	if l.selected < 0 || l.selected >= len(l.entries) || l.entries[l.selected].header {
		return lobbyEntry{}, false
	}
	return l.entries[l.selected], true
}

// Move steps the selection by delta, skipping headers and stopping at the ends
func (l *Lobby) Move(delta int) {
	l.sync()
	if delta == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	for n := delta * step; n > 0; n-- {
		next := l.selected + step
		for next >= 0 && next < len(l.entries) && l.entries[next].header {
			next += step
		}
		if next < 0 || next >= len(l.entries) {
			return
		}
		l.selected = next
	}
}

// Selected returns the selected record id and kind
func (l *Lobby) Selected() (string, saved.Kind, bool) {
	e, ok := l.current()
	return e.id, e.kind, ok
}

// ToggleSave saves or unsaves the selected record
func (l *Lobby) ToggleSave(ctx context.Context) {
	e, ok := l.current()
	if !ok || l.store == nil {
		return
	}

	has, err := l.store.Has(ctx, e.id)
	if err != nil {
		l.fail("check saved", err)
		return
	}
	if has {
		if err := l.store.Remove(ctx, e.id); err != nil && !errors.Is(err, saved.ErrNotFound) {
			l.fail("remove saved", err)
			return
		}
		l.status = "Removed: " + e.title
		return
	}

	if _, err := l.store.Save(ctx, saved.NewItem(e.id, e.kind, e.title, e.date, e.meta)); err != nil {
		l.fail("save", err)
		return
	}
	l.status = "Saved: " + e.title
}

// ToggleReminder flips the kickoff reminder on the selected match
func (l *Lobby) ToggleReminder(ctx context.Context) {
	e, ok := l.current()
	if !ok || l.store == nil {
		return
	}
	if e.kind != saved.KindMatch {
		l.status = "Reminders are for matches only"
		return
	}

	on, err := l.store.ToggleReminder(ctx, e.id)
	if err != nil {
		l.fail("toggle reminder", err)
		return
	}
	if on {
		l.status = "Reminder set: " + e.title
	} else {
		l.status = "Reminder removed: " + e.title
	}
}

// SetStatus replaces the status line
func (l *Lobby) SetStatus(s string) { l.status = s }

func (l *Lobby) fail(op string, err error) {
	l.log.Error().Err(err).Str("op", op).Msg("Saved store failed")
	l.status = "Could not " + op
}

// View builds the render state, marking saved records and reminders from the store
func (l *Lobby) View(ctx context.Context, muted bool) render.LobbyView {
	l.sync()

	rows := make([]render.LobbyRow, len(l.entries))
	for i, e := range l.entries {
		row := render.LobbyRow{Header: e.header, Text: e.title, Detail: e.detail}
		if !e.header && l.store != nil {
			row.Saved = l.lookup(ctx, l.store.Has, e.id)
			if e.kind == saved.KindMatch {
				row.Reminder = l.lookup(ctx, l.store.HasReminder, e.id)
			}
		}
		rows[i] = row
	}

	return render.LobbyView{
		Title:    lobbyTitle,
		Rows:     rows,
		Selected: l.selected,
		Status:   l.status,
		Muted:    muted,
	}
}

func (l *Lobby) lookup(ctx context.Context, fn func(context.Context, string) (bool, error), id string) bool {
	ok, err := fn(ctx, id)
	if err != nil {
		l.log.Warn().Err(err).Str("id", id).Msg("Saved lookup failed")
		return false
	}
	return ok
}

var _ FeedSource = (*content.Service)(nil)
var _ SavedStore = (*saved.Store)(nil)
