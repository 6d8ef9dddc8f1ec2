package schedule

import "interleague_schedule/internal/league"

// Header is the first row of the matchup table.
var Header = []string{"Date", "Day", "Home", "Away", "Host League", "Type"}

// MatchupRecord is one game in the long-format table.
type MatchupRecord struct {
	Date       string
	Day        string
	Home       string
	Away       string
	HostLeague string
	Type       league.MatchupType
}

// Fields returns the record in Header order.
func (r MatchupRecord) Fields() []string {
	return []string{r.Date, r.Day, r.Home, r.Away, r.HostLeague, string(r.Type)}
}
