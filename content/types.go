package content

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"unicode"
)

const (
	// IDLength is the length of match and news ids
	IDLength = 12

	// MaxTextLength truncates fetched strings so lobby rows stay on one line
	MaxTextLength = 80

	// MaxMatches caps the fetched fixture list
	MaxMatches = 10
)

// Match is an upcoming fixture shown in the lobby
type Match struct {
	ID          string
	HomeTeam    string
	AwayTeam    string
	Date        string // Display date, e.g. "Nov 10, 2025"
	Time        string // Display kickoff, e.g. "20:00"
	Venue       string
	Competition string
}

// Title is the lobby label
func (m Match) Title() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}

// News is a headline shown in the lobby
type News struct {
	ID       string
	Title    string
	Excerpt  string
	Image    string
	Date     string
	Category string
}

// Provider returns fixtures and headlines
type Provider interface {
	Matches(ctx context.Context) ([]Match, error)
	News(ctx context.Context) ([]News, error)
}

// MatchID derives the stable id of a fixture from its teams and date
func MatchID(home, away, date string) string {
	return stableID(home + "-" + away + "-" + date)
}

// NewsID derives the stable id of a headline from its title
func NewsID(title string) string {
	return stableID(title)
}

// stableID is the first IDLength characters of the URL-safe base64 SHA-256 digest
func stableID(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.URLEncoding.EncodeToString(sum[:])[:IDLength]
}

// sanitize strips control characters and ANSI sequences from remote text and truncates it
func sanitize(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		if inEscape {
			// CSI sequences end with a letter
			if unicode.IsLetter(r) {
				inEscape = false
			}
			continue
		}
		switch {
		case r == '\x1b':
			inEscape = true
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}

	out := strings.Join(strings.Fields(b.String()), " ")
	if runes := []rune(out); len(runes) > MaxTextLength {
		out = string(runes[:MaxTextLength])
	}
	return out
}
