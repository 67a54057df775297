package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/models"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

// ErrNotFound is returned when a lookup misses. Callers test with errors.Is;
// an unknown join code is a miss, not a fault.
var ErrNotFound = errors.New("not found")

// GameRepository defines the interface for game settings data access
type GameRepository interface {
	Create(game *models.Game) error
	GetByID(id uuid.UUID) (*models.Game, error)
	GetByCode(code string) (*models.Game, error)
	Update(game *models.Game) error
	CodeExists(code string) (bool, error)
}

// PlayerRepository defines the interface for player record data access
type PlayerRepository interface {
	GetByID(id uuid.UUID) (*models.Player, error)
	GetByGame(gameID uuid.UUID) ([]models.Player, error)

	// Upsert inserts the player, or when a player with the same name already
	// exists in the game, merges onto that record instead. The passed player
	// is updated in place with the stored row.
	Upsert(player *models.Player) error

	// UpdateScore overwrites one (player, hole) cell. Last write wins; there
	// is no conflict detection on score entry.
	UpdateScore(playerID uuid.UUID, hole int, result scoring.HoleResult) error

	UpdateCourseHandicap(playerID uuid.UUID, courseHandicap int) error
	UpdateTeeGroup(playerID uuid.UUID, teeGroup *int) error
}

// TransactionManager defines the interface for database transaction
// management. The bulk operations (settings update, tee-sheet reshuffle) run
// through it so a half-migrated roster is never visible.
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Game   GameRepository
	Player PlayerRepository
	Tx     TransactionManager
}
