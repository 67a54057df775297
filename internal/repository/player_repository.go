package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mkelwood/fairway-api/internal/models"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

// playerRepository implements PlayerRepository
type playerRepository struct {
	db dbExecutor
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db dbExecutor) PlayerRepository {
	return &playerRepository{db: db}
}

const playerColumns = `
	id, game_id, name, handicap_index, course_handicap, tee_group, is_guest,
	scores, last_active_at, created_at, updated_at
`

type playerScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row playerScanner, player *models.Player) error {
	var index sql.NullFloat64
	var group sql.NullInt64

	err := row.Scan(
		&player.ID, &player.GameID, &player.Name, &index,
		&player.CourseHandicap, &group, &player.IsGuest, &player.Scores,
		&player.LastActiveAt, &player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if index.Valid {
		v := index.Float64
		player.HandicapIndex = &v
	} else {
		player.HandicapIndex = nil
	}
	if group.Valid {
		g := int(group.Int64)
		player.TeeGroup = &g
	} else {
		player.TeeGroup = nil
	}
	return nil
}

// GetByID retrieves a player by ID
func (r *playerRepository) GetByID(id uuid.UUID) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player := &models.Player{}
	if err := scanPlayer(r.db.QueryRow(query, id), player); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// GetByGame retrieves a game's full roster, ordered by join time so the
// leaderboard's stable sort sees a deterministic input order.
func (r *playerRepository) GetByGame(gameID uuid.UUID) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE game_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var player models.Player
		if err := scanPlayer(rows, &player); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// Upsert inserts the player or, when the name is already taken in the game,
// merges onto the existing record: identity fields refresh, recorded scores
// and the tee group stay. The (game_id, lower(name)) unique index is what
// makes join-by-name idempotent.
func (r *playerRepository) Upsert(player *models.Player) error {
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	if player.Scores == nil {
		player.Scores = models.ScoreCard{}
	}

	now := time.Now()
	player.LastActiveAt = now

	query := `
		INSERT INTO players (
			id, game_id, name, handicap_index, course_handicap, tee_group,
			is_guest, scores, last_active_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9, $9)
		ON CONFLICT (game_id, lower(name)) DO UPDATE SET
			handicap_index = EXCLUDED.handicap_index,
			course_handicap = EXCLUDED.course_handicap,
			is_guest = EXCLUDED.is_guest,
			last_active_at = EXCLUDED.last_active_at,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + playerColumns + `
	`

	err := scanPlayer(r.db.QueryRow(query,
		player.ID, player.GameID, player.Name, player.HandicapIndex,
		player.CourseHandicap, player.TeeGroup, player.IsGuest, player.Scores,
		now,
	), player)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

// UpdateScore overwrites a single hole cell in the score map and bumps
// last_active_at. The jsonb_set write is what gives last-writer-wins per
// (player, hole) without touching the rest of the card.
func (r *playerRepository) UpdateScore(playerID uuid.UUID, hole int, result scoring.HoleResult) error {
	value, err := result.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	query := `
		UPDATE players SET
			scores = jsonb_set(COALESCE(scores, '{}'::jsonb), $2, $3::jsonb),
			last_active_at = $4, updated_at = $4
		WHERE id = $1
	`

	res, err := r.db.Exec(query,
		playerID, pq.Array([]string{strconv.Itoa(hole)}), string(value), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("player: %w", ErrNotFound)
	}
	return nil
}

// UpdateCourseHandicap rewrites the derived course handicap, leaving recorded
// hole results untouched.
func (r *playerRepository) UpdateCourseHandicap(playerID uuid.UUID, courseHandicap int) error {
	query := `UPDATE players SET course_handicap = $2, updated_at = $3 WHERE id = $1`

	res, err := r.db.Exec(query, playerID, courseHandicap, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update course handicap: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("player: %w", ErrNotFound)
	}
	return nil
}

// UpdateTeeGroup assigns or clears a player's tee group.
func (r *playerRepository) UpdateTeeGroup(playerID uuid.UUID, teeGroup *int) error {
	query := `UPDATE players SET tee_group = $2, updated_at = $3 WHERE id = $1`

	var group sql.NullInt64
	if teeGroup != nil {
		group = sql.NullInt64{Int64: int64(*teeGroup), Valid: true}
	}

	res, err := r.db.Exec(query, playerID, group, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update tee group: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("player: %w", ErrNotFound)
	}
	return nil
}
