// Package league maps team identifiers to their host league and classifies
// matchups between two teams.
package league

import (
	"errors"
	"fmt"
	"strings"
)

// MatchupType classifies a game between a home and an away team.
type MatchupType string

const (
	Divisional  MatchupType = "Divisional"
	Interleague MatchupType = "Interleague"
)

// codeLength is the number of leading characters of a team identifier that
// name its league.
const codeLength = 2

// ErrUnrecognizedLeagueCode is matched by every lookup failure.
var ErrUnrecognizedLeagueCode = errors.New("unrecognized league code")

// UnrecognizedLeagueCodeError reports a team whose prefix is not a known league code.
type UnrecognizedLeagueCodeError struct {
	Team string
	Code string
}

func (e *UnrecognizedLeagueCodeError) Error() string {
	return fmt.Sprintf("%v %q for team %q", ErrUnrecognizedLeagueCode, e.Code, e.Team)
}

func (e *UnrecognizedLeagueCodeError) Is(target error) bool {
	return target == ErrUnrecognizedLeagueCode
}

var leagues = map[string]string{
	"ba": "Ballard",
	"ma": "Magnolia",
	"nc": "North Central",
	"ne": "Northeast",
	"nw": "Northwest",
	"qa": "Queen Anne",
	"ru": "RUG",
	"sl": "Shoreline",
}

// Codes returns the known league codes and their names. The returned map is a
// copy and may be modified by the caller.
func Codes() map[string]string {
	out := make(map[string]string, len(leagues))
	for code, name := range leagues {
		out[code] = name
	}
	return out
}

// HostLeague returns the league name for a team identifier. The two-letter
// prefix is compared case-insensitively.
func HostLeague(team string) (string, error) {
	code := strings.ToLower(prefix(team))
	name, ok := leagues[code]
	if !ok {
		return "", &UnrecognizedLeagueCodeError{Team: team, Code: code}
	}
	return name, nil
}

// Classify reports whether home and away share a league prefix. Unlike
// HostLeague the comparison is case-sensitive, so "ba1" vs "BA2" is
// Interleague.
func Classify(home, away string) MatchupType {
	if prefix(home) == prefix(away) {
		return Divisional
	}
	return Interleague
}

// prefix returns the first two characters of s, or all of s when it is shorter.
func prefix(s string) string {
	n := 0
	for i := range s {
		if n == codeLength {
			return s[:i]
		}
		n++
	}
	return s
}
