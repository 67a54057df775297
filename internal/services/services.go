package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/models"
	"github.com/mkelwood/fairway-api/internal/repository"
	"github.com/mkelwood/fairway-api/internal/scoring"
	"github.com/mkelwood/fairway-api/pkg/config"
)

// Services contains all application services
type Services struct {
	Game  GameService
	Score ScoreService
}

// GameService defines the interface for game lifecycle business logic
type GameService interface {
	// CreateGame validates the course card, generates a join code, and stores
	// the settings record with the hashed host key.
	CreateGame(game *models.Game, hostKey string) (*models.Game, error)

	GetGameByCode(code string) (*models.Game, error)
	GetPlayers(code string) ([]models.Player, error)

	// JoinGame resolves the code and upserts the player by name: joining
	// again with a name already in the game merges onto the existing record
	// instead of creating a duplicate.
	JoinGame(code, playerName, handicapIndex string, isGuest bool) (*models.Player, *models.Game, error)

	// ClaimHost verifies the host key against the stored hash.
	ClaimHost(code, hostKey string) (*models.Game, error)

	// UpdateSettings applies new course/handicap settings and recomputes
	// every player's course handicap in one transaction. Recorded hole
	// results are never touched.
	UpdateSettings(gameID uuid.UUID, updated *models.Game) (*models.Game, []models.Player, error)

	// ReshuffleGroups draws a new tee sheet with the given seed and applies
	// the whole assignment atomically.
	ReshuffleGroups(gameID uuid.UUID, groupSize int, seed int64) ([]models.Player, error)
}

// ScoreService defines the interface for score entry and leaderboards
type ScoreService interface {
	// RecordScore writes one (player, hole) result. raw is the scorecard
	// cell as entered: a stroke count or "NR". Last write wins.
	RecordScore(gameID, playerID uuid.UUID, hole int, raw string) (*models.Player, error)

	// Leaderboard recomputes the board from current player state. Nothing is
	// persisted; two calls with unchanged data return identical boards.
	Leaderboard(code string) (*Leaderboard, error)
}

// Leaderboard is the computed board plus the configuration it was computed
// under.
type Leaderboard struct {
	GameCode string           `json:"game_code"`
	GameMode scoring.GameMode `json:"game_mode"`
	TeamMode scoring.TeamMode `json:"team_mode"`
	Entries  []scoring.Entry  `json:"entries"`
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config) *Services {
	repos := repository.NewRepositories(db)

	return &Services{
		Game:  newGameService(repos),
		Score: newScoreService(repos),
	}
}
