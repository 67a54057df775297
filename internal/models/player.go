package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

// ScoreCard is the sparse hole -> result map, stored as a JSON object whose
// keys are hole numbers and whose values are stroke counts or "NR".
type ScoreCard map[int]scoring.HoleResult

// MarshalJSON writes hole numbers as object keys.
func (s ScoreCard) MarshalJSON() ([]byte, error) {
	out := make(map[string]scoring.HoleResult, len(s))
	for hole, result := range s {
		out[strconv.Itoa(hole)] = result
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads hole-number keys, dropping any key that is not a
// number. Values coerce per scoring.HoleResult.
func (s *ScoreCard) UnmarshalJSON(data []byte) error {
	var raw map[string]scoring.HoleResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	card := make(ScoreCard, len(raw))
	for key, result := range raw {
		hole, err := strconv.Atoi(key)
		if err != nil || hole < 1 {
			continue
		}
		card[hole] = result
	}
	*s = card
	return nil
}

// Value implements driver.Valuer for ScoreCard
func (s ScoreCard) Value() (driver.Value, error) {
	return s.MarshalJSON()
}

// Scan implements sql.Scanner for ScoreCard
func (s *ScoreCard) Scan(value interface{}) error {
	if value == nil {
		*s = ScoreCard{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into ScoreCard", value)
	}

	return s.UnmarshalJSON(bytes)
}

// Player is one player's record in a game. It is created on join, mutated as
// results come in, and never deleted; an abandoned game just leaves it stale.
type Player struct {
	ID             uuid.UUID `json:"id" db:"id"`
	GameID         uuid.UUID `json:"game_id" db:"game_id"`
	Name           string    `json:"player_name" db:"name"`
	HandicapIndex  *float64  `json:"handicap_index" db:"handicap_index"`
	CourseHandicap int       `json:"course_handicap" db:"course_handicap"`
	TeeGroup       *int      `json:"tee_group" db:"tee_group"`
	IsGuest        bool      `json:"is_guest" db:"is_guest"`
	Scores         ScoreCard `json:"scores" db:"scores"`
	LastActiveAt   time.Time `json:"last_active_at" db:"last_active_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Round converts the record into the engine's immutable per-call input.
func (p *Player) Round() scoring.PlayerRound {
	group := scoring.NoTeeGroup
	if p.TeeGroup != nil {
		group = *p.TeeGroup
	}
	scores := make(map[int]scoring.HoleResult, len(p.Scores))
	for hole, result := range p.Scores {
		scores[hole] = result
	}
	return scoring.PlayerRound{
		PlayerID:       p.ID,
		Name:           p.Name,
		CourseHandicap: p.CourseHandicap,
		TeeGroup:       group,
		Scores:         scores,
	}
}
