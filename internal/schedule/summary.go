package schedule

import "interleague_schedule/internal/league"

// Summary counts what a transformation saw and produced.
type Summary struct {
	Rows         int
	Matchups     int
	Byes         int
	EmptyCells   int
	SkippedRows  int
	SkippedCells int
	ByLeague     map[string]int
	ByType       map[league.MatchupType]int
}

func newSummary() Summary {
	return Summary{
		ByLeague: make(map[string]int),
		ByType:   make(map[league.MatchupType]int),
	}
}

func (s *Summary) add(r MatchupRecord) {
	s.Matchups++
	s.ByLeague[r.HostLeague]++
	s.ByType[r.Type]++
}
