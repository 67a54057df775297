package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/models"
)

// gameRepository implements GameRepository
type gameRepository struct {
	db dbExecutor
}

// NewGameRepository creates a new game repository
func NewGameRepository(db dbExecutor) GameRepository {
	return &gameRepository{db: db}
}

const gameColumns = `
	id, code, course_name, slope, rating, total_par, pars, stroke_index,
	game_mode, team_mode, handicap_policy, holes_mode, host_key_hash,
	created_at, updated_at
`

func scanGame(row *sql.Row) (*models.Game, error) {
	game := &models.Game{}
	err := row.Scan(
		&game.ID, &game.Code, &game.CourseName, &game.Slope, &game.Rating,
		&game.TotalPar, &game.Pars, &game.StrokeIndex,
		&game.GameMode, &game.TeamMode, &game.HandicapPolicy, &game.HolesMode,
		&game.HostKeyHash, &game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("game: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// GetByID retrieves a game by ID
func (r *gameRepository) GetByID(id uuid.UUID) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	return scanGame(r.db.QueryRow(query, id))
}

// GetByCode retrieves a game by its join code
func (r *gameRepository) GetByCode(code string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE code = $1`
	return scanGame(r.db.QueryRow(query, code))
}

// CodeExists reports whether a join code is already taken
func (r *gameRepository) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM games WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return exists, nil
}

// Create creates a new game
func (r *gameRepository) Create(game *models.Game) error {
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}

	now := time.Now()
	game.CreatedAt = now
	game.UpdatedAt = now

	query := `
		INSERT INTO games (
			id, code, course_name, slope, rating, total_par, pars, stroke_index,
			game_mode, team_mode, handicap_policy, holes_mode, host_key_hash,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(query,
		game.ID, game.Code, game.CourseName, game.Slope, game.Rating,
		game.TotalPar, game.Pars, game.StrokeIndex,
		game.GameMode, game.TeamMode, game.HandicapPolicy, game.HolesMode,
		game.HostKeyHash, game.CreatedAt, game.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// Update updates the settings of an existing game. The join code and creation
// time never change.
func (r *gameRepository) Update(game *models.Game) error {
	game.UpdatedAt = time.Now()

	query := `
		UPDATE games SET
			course_name = $2, slope = $3, rating = $4, total_par = $5,
			pars = $6, stroke_index = $7, game_mode = $8, team_mode = $9,
			handicap_policy = $10, holes_mode = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		game.ID, game.CourseName, game.Slope, game.Rating, game.TotalPar,
		game.Pars, game.StrokeIndex, game.GameMode, game.TeamMode,
		game.HandicapPolicy, game.HolesMode, game.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("game: %w", ErrNotFound)
	}

	return nil
}
