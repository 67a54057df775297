package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/mkelwood/fairway-api/internal/errors"
	"github.com/mkelwood/fairway-api/internal/logger"
	"github.com/mkelwood/fairway-api/internal/models"
	"github.com/mkelwood/fairway-api/internal/repository"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

// scoreServiceImpl implements ScoreService
type scoreServiceImpl struct {
	repos  *repository.Repositories
	logger logger.Logger
}

// newScoreService creates a new score service implementation
func newScoreService(repos *repository.Repositories) ScoreService {
	return &scoreServiceImpl{
		repos:  repos,
		logger: logger.NewSimpleLogger(),
	}
}

// RecordScore writes one hole cell for a player. Concurrent writes to the
// same cell resolve last-writer-wins; writes to different cells never
// conflict.
func (s *scoreServiceImpl) RecordScore(gameID, playerID uuid.UUID, hole int, raw string) (*models.Player, error) {
	if hole < 1 || hole > 18 {
		return nil, apperrors.InvalidInput("hole must be between 1 and 18", nil).WithOperation("RecordScore")
	}

	result, err := parseResult(raw)
	if err != nil {
		return nil, apperrors.InvalidInput("score must be a positive stroke count or NR", err).WithOperation("RecordScore")
	}

	player, err := s.repos.Player.GetByID(playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("player not found", err).WithOperation("RecordScore")
		}
		return nil, apperrors.DatabaseError("failed to get player", err).WithOperation("RecordScore")
	}
	if player.GameID != gameID {
		return nil, apperrors.Forbidden("player does not belong to this game", nil).WithOperation("RecordScore")
	}

	if err := s.repos.Player.UpdateScore(playerID, hole, result); err != nil {
		s.logger.Error("Failed to record score", err, "player_id", playerID, "hole", hole)
		return nil, apperrors.DatabaseError("failed to record score", err).WithOperation("RecordScore")
	}

	player, err = s.repos.Player.GetByID(playerID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to reload player", err).WithOperation("RecordScore")
	}
	return player, nil
}

// Leaderboard recomputes the board from the current roster.
func (s *scoreServiceImpl) Leaderboard(code string) (*Leaderboard, error) {
	game, err := s.repos.Game.GetByCode(normalizeCode(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("game not found", err).WithOperation("Leaderboard")
		}
		return nil, apperrors.DatabaseError("failed to get game", err).WithOperation("Leaderboard")
	}

	players, err := s.repos.Player.GetByGame(game.ID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list players", err).WithOperation("Leaderboard")
	}

	rounds := make([]scoring.PlayerRound, len(players))
	for i := range players {
		rounds[i] = players[i].Round()
	}

	entries := scoring.ComputeLeaderboard(rounds, game.HoleConfig(), game.GameMode, game.TeamMode)
	return &Leaderboard{
		GameCode: game.Code,
		GameMode: game.GameMode,
		TeamMode: game.TeamMode,
		Entries:  entries,
	}, nil
}

// parseResult reads a scorecard cell as entered: "NR" (any case) for no
// return, otherwise a positive stroke count.
func parseResult(raw string) (scoring.HoleResult, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "NR") {
		return scoring.NoReturn, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return scoring.NoReturn, err
	}
	if n < 1 {
		return scoring.NoReturn, errors.New("stroke count must be positive")
	}
	return scoring.HoleResult(n), nil
}
