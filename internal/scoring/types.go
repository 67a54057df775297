package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// GameMode selects how hole results are aggregated into a leaderboard score.
type GameMode string

const (
	GameModeStroke     GameMode = "stroke"
	GameModeStableford GameMode = "stableford"
	GameModeMatch      GameMode = "match"
	GameModeSkins      GameMode = "skins"
)

// TeamMode selects whether players compete individually or as better-ball pairs.
type TeamMode string

const (
	TeamModeSingles TeamMode = "singles"
	TeamModePairs   TeamMode = "pairs"
)

// HandicapPolicy controls how a handicap index converts to a course handicap.
type HandicapPolicy string

const (
	HandicapFull         HandicapPolicy = "full"
	HandicapNinetyFive   HandicapPolicy = "95percent"
	HandicapDifferential HandicapPolicy = "differential"
)

// HolesMode selects which part of the course a game is played over.
type HolesMode string

const (
	HolesAll18  HolesMode = "all18"
	HolesFront9 HolesMode = "front9"
	HolesBack9  HolesMode = "back9"
)

// HoleResult is a recorded result on one hole: a positive stroke count, or
// NoReturn for a hole the player picked up on or never played.
type HoleResult int

// NoReturn marks a hole with no returned score ("NR" on the card).
const NoReturn HoleResult = -1

// Recorded reports whether the result is an actual stroke count.
func (r HoleResult) Recorded() bool {
	return r > 0
}

// MarshalJSON writes stroke counts as numbers and NoReturn as the string "NR".
func (r HoleResult) MarshalJSON() ([]byte, error) {
	if !r.Recorded() {
		return []byte(`"NR"`), nil
	}
	return json.Marshal(int(r))
}

// UnmarshalJSON accepts a positive number or the string "NR". Anything else
// coerces to NoReturn rather than failing, matching the engine's
// parse-or-default treatment of malformed input.
func (r *HoleResult) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*r = NoReturn
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil || n <= 0 {
		*r = NoReturn
		return nil
	}
	*r = HoleResult(n)
	return nil
}

// String renders the result the way it appears on a scorecard.
func (r HoleResult) String() string {
	if !r.Recorded() {
		return "NR"
	}
	return fmt.Sprintf("%d", int(r))
}

// Hole is one hole of the course configuration.
type Hole struct {
	Number      int `json:"number"`
	Par         int `json:"par"`
	StrokeIndex int `json:"strokeIndex"`
}

// HoleConfig is the ordered set of holes a game is played over. For front9 or
// back9 games the caller passes the relevant subset.
type HoleConfig []Hole

// TotalPar sums par over the configured holes.
func (c HoleConfig) TotalPar() int {
	total := 0
	for _, h := range c {
		total += h.Par
	}
	return total
}

// PlayerRound is one player's state in a game as the engine sees it: identity,
// handicap configuration, and the sparse hole -> result map. The engine never
// mutates a PlayerRound.
type PlayerRound struct {
	PlayerID       uuid.UUID
	Name           string
	CourseHandicap int
	// TeeGroup is a positive group number for pairs play; NoTeeGroup means the
	// player has not been drawn into a group.
	TeeGroup int
	Scores   map[int]HoleResult
}

// NoTeeGroup is the sentinel for players outside any tee group.
const NoTeeGroup = 0

// Entry is one row of a computed leaderboard. It references the underlying
// player(s) and carries only derived values; entries are never persisted.
type Entry struct {
	Name      string      `json:"name"`
	PlayerIDs []uuid.UUID `json:"playerIds"`
	TeeGroup  int         `json:"teeGroup,omitempty"`
	Score     int         `json:"score"`
	Thru      int         `json:"thru"`
}
