package content

import "context"

// staticMatches is the bundled fixture list used offline
var staticMatches = []Match{
	{HomeTeam: "Manchester United", AwayTeam: "Liverpool", Date: "Nov 10, 2025", Time: "20:00", Venue: "Old Trafford", Competition: "Premier League"},
	{HomeTeam: "Manchester United", AwayTeam: "Bayern Munich", Date: "Nov 15, 2025", Time: "21:00", Venue: "Allianz Arena", Competition: "Champions League"},
	{HomeTeam: "Arsenal", AwayTeam: "Manchester United", Date: "Nov 20, 2025", Time: "17:30", Venue: "Emirates Stadium", Competition: "Premier League"},
}

// staticNews is the bundled headline list used offline
var staticNews = []News{
	{Title: "Team Captain Signs New Contract Extension", Excerpt: "Our beloved captain commits his future to the club with a new 3-year deal", Image: "/news1.jpg", Date: "Nov 5, 2025", Category: "Club News"},
	{Title: "Youth Academy Star Makes First Team Debut", Excerpt: "Rising talent impresses in their first senior appearance", Image: "/news2.jpg", Date: "Nov 4, 2025", Category: "Academy"},
	{Title: "Historic Victory in Champions League", Excerpt: "Team secures crucial away win in dramatic fashion", Image: "/news3.jpg", Date: "Nov 1, 2025", Category: "Match Report"},
}

// Static serves the bundled lists; it never fails
type Static struct{}

// Matches returns a copy of the bundled fixtures with ids filled in
func (Static) Matches(context.Context) ([]Match, error) {
	out := make([]Match, len(staticMatches))
	for i, m := range staticMatches {
		m.ID = MatchID(m.HomeTeam, m.AwayTeam, m.Date)
		out[i] = m
	}
	return out, nil
}

// News returns a copy of the bundled headlines with ids filled in
func (Static) News(context.Context) ([]News, error) {
	out := make([]News, len(staticNews))
	for i, n := range staticNews {
		n.ID = NewsID(n.Title)
		out[i] = n
	}
	return out, nil
}
