package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStableIDs(t *testing.T) {
	assert.Equal(t, "SfadHIwV9uq3", MatchID("Manchester United", "Liverpool", "Nov 10, 2025"))
	assert.Equal(t, "0jCPIWIXPIhh", NewsID("Team Captain Signs New Contract Extension"))
	assert.Len(t, NewsID(""), IDLength)

	// Same home team must not collide
	assert.NotEqual(t,
		MatchID("Manchester United", "Liverpool", "Nov 10, 2025"),
		MatchID("Manchester United", "Bayern Munich", "Nov 15, 2025"))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Arsenal", "Arsenal"},
		{"ansi", "\x1b[31mRed\x1b[0m Devils", "Red Devils"},
		{"control", "Bad\x07Bell", "BadBell"},
		{"whitespace", "  Man \t\n City ", "Man City"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.in))
		})
	}

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, sanitize(string(long)), MaxTextLength)
}

func TestStaticProvider(t *testing.T) {
	matches, err := Static{}.Matches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "Manchester United vs Liverpool", matches[0].Title())
	assert.Equal(t, MatchID("Manchester United", "Liverpool", "Nov 10, 2025"), matches[0].ID)

	news, err := Static{}.News(context.Background())
	require.NoError(t, err)
	require.Len(t, news, 3)
	assert.NotEmpty(t, news[0].ID)

	// Callers get copies
	matches[0].HomeTeam = "changed"
	again, _ := Static{}.Matches(context.Background())
	assert.Equal(t, "Manchester United", again[0].HomeTeam)
}

const footballPayload = `{"matches":[
 {"utcDate":"2026-03-01T15:00:00Z","venue":"Home Park","homeTeam":{"name":"Home FC"},"awayTeam":{"name":"Away FC"},"competition":{"name":"Cup"}},
 {"utcDate":"bad","homeTeam":{"name":""},"awayTeam":{"name":"Other"},"competition":{}}
]}`

func TestHTTPMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Auth-Token"))
		w.Write([]byte(footballPayload))
	}))
	defer server.Close()

	h := NewHTTP(HTTPConfig{FootballAPIKey: "secret", FootballURL: server.URL, Location: time.UTC}, nil, zerolog.Nop())
	matches, err := h.Matches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, Match{
		ID:          MatchID("Home FC", "Away FC", "Mar 1, 2026"),
		HomeTeam:    "Home FC",
		AwayTeam:    "Away FC",
		Date:        "Mar 1, 2026",
		Time:        "15:00",
		Venue:       "Home Park",
		Competition: "Cup",
	}, matches[0])

	assert.Equal(t, "TBD", matches[1].HomeTeam)
	assert.Equal(t, "TBD", matches[1].Date)
	assert.Equal(t, "Premier League", matches[1].Competition)
}

func TestHTTPMatchesLimit(t *testing.T) {
	payload := `{"matches":[`
	for i := 0; i < 15; i++ {
		if i > 0 {
			payload += ","
		}
		payload += `{"homeTeam":{"name":"A"},"awayTeam":{"name":"B"}}`
	}
	payload += `]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	h := NewHTTP(HTTPConfig{FootballAPIKey: "k", FootballURL: server.URL}, nil, zerolog.Nop())
	matches, err := h.Matches(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, MaxMatches)
}

func TestHTTPNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "newskey", r.Header.Get("Authorization"))
		assert.Equal(t, "Manchester United", r.URL.Query().Get("q"))
		assert.Equal(t, "6", r.URL.Query().Get("pageSize"))
		w.Write([]byte(`{"articles":[
			{"title":"Big Win","description":"","content":"Full story","publishedAt":"2026-02-10T09:00:00Z","source":{"name":"Daily"}},
			{"title":"","source":{}}
		]}`))
	}))
	defer server.Close()

	h := NewHTTP(HTTPConfig{NewsAPIKey: "newskey", NewsURL: server.URL, Location: time.UTC}, nil, zerolog.Nop())
	news, err := h.News(context.Background())
	require.NoError(t, err)
	require.Len(t, news, 2)

	assert.Equal(t, "Big Win", news[0].Title)
	assert.Equal(t, "Full story", news[0].Excerpt)
	assert.Equal(t, "Feb 10, 2026", news[0].Date)
	assert.Equal(t, "Daily", news[0].Category)
	assert.Equal(t, NewsID("Big Win"), news[0].ID)

	assert.Equal(t, "No title", news[1].Title)
	assert.Equal(t, "News", news[1].Category)
}

func TestHTTPFallsBackOnError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("{not json")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			h := NewHTTP(HTTPConfig{
				FootballAPIKey: "k", FootballURL: server.URL,
				NewsAPIKey: "k", NewsURL: server.URL,
			}, nil, zerolog.Nop())

			matches, err := h.Matches(context.Background())
			require.NoError(t, err)
			want, _ := Static{}.Matches(context.Background())
			assert.Equal(t, want, matches)

			news, err := h.News(context.Background())
			require.NoError(t, err)
			assert.Len(t, news, 3)
		})
	}
}

func TestHTTPWithoutKeysSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	h := NewHTTP(HTTPConfig{FootballURL: server.URL, NewsURL: server.URL}, nil, zerolog.Nop())
	_, err := h.Matches(context.Background())
	require.NoError(t, err)
	_, err = h.News(context.Background())
	require.NoError(t, err)
	assert.Zero(t, hits.Load())
}

// failingProvider errors on every call
type failingProvider struct{}

func (failingProvider) Matches(context.Context) ([]Match, error) { return nil, errors.New("down") }
func (failingProvider) News(context.Context) ([]News, error) { return nil, errors.New("down") }

func TestServiceKeepsPreviousOnError(t *testing.T) {
	s := NewService(failingProvider{}, time.Second, zerolog.Nop())
	defer s.Stop()

	initial := s.Current()
	require.Len(t, initial.Matches, 3)
	assert.Zero(t, initial.Generation)

	feed := s.RefreshSync()
	assert.Equal(t, int64(1), feed.Generation)
	assert.Equal(t, initial.Matches, feed.Matches)
}

func TestServiceBackgroundRefresh(t *testing.T) {
	s := NewService(Static{}, time.Second, zerolog.Nop())

	s.Refresh()
	require.Eventually(t, func() bool {
		return s.Current().Generation >= 1
	}, 2*time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()

	// Refresh after stop is ignored
	gen := s.Current().Generation
	s.Refresh()
	assert.Equal(t, gen, s.Current().Generation)
}
