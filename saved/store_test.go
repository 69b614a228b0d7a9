package saved

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryDSN, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenDefaultsToSqlite(t *testing.T) {
	s, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "sqlite", s.Driver())
}

func TestOpenPostgresFallsBack(t *testing.T) {
	// Nothing listens on port 1
	s, err := Open("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "sqlite", s.Driver())
}

func TestSaveDedupes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := NewItem("abc123", KindMatch, "Arsenal vs Chelsea", "Nov 20, 2025 - 17:30", map[string]string{"venue": "Emirates"})
	created, err := s.Save(ctx, item)
	require.NoError(t, err)
	assert.True(t, created)

	item.Title = "different title"
	created, err = s.Save(ctx, item)
	require.NoError(t, err)
	assert.False(t, created, "second save of same id must not create")

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Arsenal vs Chelsea", items[0].Title)
	assert.Equal(t, "Emirates", items[0].MetaValue("venue"))
	assert.Equal(t, KindMatch, items[0].Kind)
}

func TestSaveRejectsEmptyID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Save(context.Background(), Item{Title: "x"})
	assert.Error(t, err)
}

func TestGetHasRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Save(ctx, NewItem("n1", KindArticle, "Big Win", "Nov 1, 2025", nil))
	require.NoError(t, err)

	has, err := s.Has(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, has)

	got, err := s.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "Big Win", got.Title)
	assert.Empty(t, got.MetaValue("venue"))

	require.NoError(t, s.Remove(ctx, "n1"))
	has, err = s.Has(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, has)

	assert.ErrorIs(t, s.Remove(ctx, "n1"), ErrNotFound)
}

func TestListOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, NewItem(id, KindArticle, id, "", nil))
		require.NoError(t, err)
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestToggleReminder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	on, err := s.ToggleReminder(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, on)

	has, err := s.HasReminder(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, has)

	_, err = s.ToggleReminder(ctx, "m2")
	require.NoError(t, err)
	ids, err := s.Reminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, ids)

	on, err = s.ToggleReminder(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, on)

	has, err = s.HasReminder(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStoresAreIsolated(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	ctx := context.Background()

	_, err := a.Save(ctx, NewItem("x", KindArticle, "x", "", nil))
	require.NoError(t, err)

	has, err := b.Has(ctx, "x")
	require.NoError(t, err)
	assert.False(t, has)
}
