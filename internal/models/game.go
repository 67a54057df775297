package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

// HoleValues is one integer per hole (pars or stroke indexes), stored as a
// JSON array in postgres.
type HoleValues []int

// Value implements driver.Valuer for HoleValues
func (v HoleValues) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// Scan implements sql.Scanner for HoleValues
func (v *HoleValues) Scan(value interface{}) error {
	if value == nil {
		*v = HoleValues{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into HoleValues", value)
	}

	return json.Unmarshal(bytes, v)
}

// Game is the settings record for one shared game: the course card, the
// rating figures, and the scoring configuration. Players join it by Code.
type Game struct {
	ID             uuid.UUID              `json:"id" db:"id"`
	Code           string                 `json:"code" db:"code"`
	CourseName     string                 `json:"course_name" db:"course_name"`
	Slope          float64                `json:"slope" db:"slope"`
	Rating         float64                `json:"rating" db:"rating"`
	TotalPar       int                    `json:"total_par" db:"total_par"`
	Pars           HoleValues             `json:"pars" db:"pars"`
	StrokeIndex    HoleValues             `json:"stroke_index" db:"stroke_index"`
	GameMode       scoring.GameMode       `json:"game_mode" db:"game_mode"`
	TeamMode       scoring.TeamMode       `json:"team_mode" db:"team_mode"`
	HandicapPolicy scoring.HandicapPolicy `json:"handicap_policy" db:"handicap_policy"`
	HolesMode      scoring.HolesMode      `json:"holes_mode" db:"holes_mode"`
	HostKeyHash    string                 `json:"-" db:"host_key_hash"`
	CreatedAt      time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at" db:"updated_at"`
}

// HoleConfig builds the engine's course configuration from the stored card,
// restricted to the holes the game is played over.
func (g *Game) HoleConfig() scoring.HoleConfig {
	n := len(g.Pars)
	if len(g.StrokeIndex) < n {
		n = len(g.StrokeIndex)
	}

	cfg := make(scoring.HoleConfig, 0, n)
	for i := 0; i < n; i++ {
		cfg = append(cfg, scoring.Hole{
			Number:      i + 1,
			Par:         g.Pars[i],
			StrokeIndex: g.StrokeIndex[i],
		})
	}

	switch g.HolesMode {
	case scoring.HolesFront9:
		if len(cfg) > 9 {
			cfg = cfg[:9]
		}
	case scoring.HolesBack9:
		if len(cfg) > 9 {
			cfg = cfg[9:]
		}
	}
	return cfg
}

// ValidateCard checks the course card invariants: 18 pars and a stroke index
// that is a permutation of 1..18.
func (g *Game) ValidateCard() error {
	if len(g.Pars) != 18 {
		return fmt.Errorf("expected 18 pars, got %d", len(g.Pars))
	}
	if len(g.StrokeIndex) != 18 {
		return fmt.Errorf("expected 18 stroke indexes, got %d", len(g.StrokeIndex))
	}
	seen := make(map[int]bool, 18)
	for _, si := range g.StrokeIndex {
		if si < 1 || si > 18 || seen[si] {
			return fmt.Errorf("stroke index must be a permutation of 1..18")
		}
		seen[si] = true
	}
	for i, par := range g.Pars {
		if par < 1 {
			return fmt.Errorf("hole %d has invalid par %d", i+1, par)
		}
	}
	return nil
}
