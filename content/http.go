package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultFootballURL = "https://api.football-data.org/v4/competitions/PL/matches?status=SCHEDULED"
	DefaultNewsURL     = "https://newsapi.org/v2/everything"
	DefaultNewsQuery   = "Manchester United"
	DefaultTimeout     = 5 * time.Second
	newsPageSize       = 6
)

// HTTPConfig configures the live providers
// An empty key disables that feed and serves the fallback directly
type HTTPConfig struct {
	FootballAPIKey string
	NewsAPIKey     string
	FootballURL    string
	NewsURL        string
	NewsQuery      string
	Timeout        time.Duration
	Location       *time.Location // Kickoff display zone, defaults to time.Local
}

// HTTP fetches live fixtures from football-data.org and headlines from newsapi.org
// Any failure logs and returns the fallback list, so callers never see a fetch error
type HTTP struct {
	cfg        HTTPConfig
	httpClient *http.Client
	fallback   Provider
	log        zerolog.Logger
}

// NewHTTP creates a live provider; a nil fallback uses Static
func NewHTTP(cfg HTTPConfig, fallback Provider, log zerolog.Logger) *HTTP {
	if cfg.FootballURL == "" {
		cfg.FootballURL = DefaultFootballURL
	}
	if cfg.NewsURL == "" {
		cfg.NewsURL = DefaultNewsURL
	}
	if cfg.NewsQuery == "" {
		cfg.NewsQuery = DefaultNewsQuery
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if fallback == nil {
		fallback = Static{}
	}
	return &HTTP{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		fallback:   fallback,
		log:        log,
	}
}

type footballResponse struct {
	Matches []struct {
		UTCDate  string `json:"utcDate"`
		Venue    string `json:"venue"`
		HomeTeam struct {
			Name string `json:"name"`
		} `json:"homeTeam"`
		AwayTeam struct {
			Name string `json:"name"`
		} `json:"awayTeam"`
		Competition struct {
			Name string `json:"name"`
		} `json:"competition"`
	} `json:"matches"`
}

type newsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Matches returns up to MaxMatches scheduled fixtures
func (h *HTTP) Matches(ctx context.Context) ([]Match, error) {
	if h.cfg.FootballAPIKey == "" {
		return h.fallback.Matches(ctx)
	}

	var resp footballResponse
	if err := h.getJSON(ctx, h.cfg.FootballURL, "X-Auth-Token", h.cfg.FootballAPIKey, &resp); err != nil {
		h.log.Warn().Err(err).Msg("Match fetch failed, using fallback")
		return h.fallback.Matches(ctx)
	}

	n := min(len(resp.Matches), MaxMatches)
	out := make([]Match, 0, n)
	for _, m := range resp.Matches[:n] {
		date, kickoff := "TBD", "TBD"
		if t, err := time.Parse(time.RFC3339, m.UTCDate); err == nil {
			t = t.In(h.cfg.Location)
			date = t.Format("Jan 2, 2006")
			kickoff = t.Format("15:04")
		}
		match := Match{
			HomeTeam:    orDefault(sanitize(m.HomeTeam.Name), "TBD"),
			AwayTeam:    orDefault(sanitize(m.AwayTeam.Name), "TBD"),
			Date:        date,
			Time:        kickoff,
			Venue:       sanitize(m.Venue),
			Competition: orDefault(sanitize(m.Competition.Name), "Premier League"),
		}
		match.ID = MatchID(match.HomeTeam, match.AwayTeam, match.Date)
		out = append(out, match)
	}

	h.log.Info().Int("count", len(out)).Msg("Fetched live matches")
	return out, nil
}

// News returns the latest headlines for the configured query
func (h *HTTP) News(ctx context.Context) ([]News, error) {
	if h.cfg.NewsAPIKey == "" {
		return h.fallback.News(ctx)
	}

	q := url.Values{}
	q.Set("q", h.cfg.NewsQuery)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", fmt.Sprint(newsPageSize))
	endpoint := h.cfg.NewsURL
	if strings.Contains(endpoint, "?") {
		endpoint += "&" + q.Encode()
	} else {
		endpoint += "?" + q.Encode()
	}

	var resp newsResponse
	if err := h.getJSON(ctx, endpoint, "Authorization", h.cfg.NewsAPIKey, &resp); err != nil {
		h.log.Warn().Err(err).Msg("News fetch failed, using fallback")
		return h.fallback.News(ctx)
	}

	out := make([]News, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		date := "TBD"
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			date = t.In(h.cfg.Location).Format("Jan 2, 2006")
		}
		excerpt := a.Description
		if excerpt == "" {
			excerpt = a.Content
		}
		n := News{
			Title:    orDefault(sanitize(a.Title), "No title"),
			Excerpt:  sanitize(excerpt),
			Image:    a.URLToImage,
			Date:     date,
			Category: orDefault(sanitize(a.Source.Name), "News"),
		}
		n.ID = NewsID(n.Title)
		out = append(out, n)
	}

	h.log.Info().Int("count", len(out)).Msg("Fetched live news")
	return out, nil
}

func (h *HTTP) getJSON(ctx context.Context, endpoint, header, key string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(header, key)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
