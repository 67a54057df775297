package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/auth"
	apperrors "github.com/mkelwood/fairway-api/internal/errors"
	"github.com/mkelwood/fairway-api/internal/logger"
	"github.com/mkelwood/fairway-api/internal/models"
	"github.com/mkelwood/fairway-api/internal/repository"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

// Join codes avoid characters that read ambiguously when shouted across a
// tee box (0/O, 1/I/L).
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// gameServiceImpl implements GameService
type gameServiceImpl struct {
	repos  *repository.Repositories
	logger logger.Logger
}

// newGameService creates a new game service implementation
func newGameService(repos *repository.Repositories) GameService {
	return &gameServiceImpl{
		repos:  repos,
		logger: logger.NewSimpleLogger(),
	}
}

// CreateGame validates the card, generates a unique join code, and stores the
// settings record.
func (s *gameServiceImpl) CreateGame(game *models.Game, hostKey string) (*models.Game, error) {
	if err := game.ValidateCard(); err != nil {
		return nil, apperrors.ValidationError("invalid course card", err).WithOperation("CreateGame")
	}
	if hostKey == "" {
		return nil, apperrors.InvalidInput("host key is required", nil).WithOperation("CreateGame")
	}

	applySettingDefaults(game)

	hash, err := auth.HashHostKey(hostKey)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash host key", err).WithOperation("CreateGame")
	}
	game.HostKeyHash = hash

	code, err := s.generateCode()
	if err != nil {
		return nil, apperrors.InternalError("failed to generate join code", err).WithOperation("CreateGame")
	}
	game.Code = code

	if err := s.repos.Game.Create(game); err != nil {
		s.logger.Error("Failed to create game", err)
		return nil, apperrors.DatabaseError("failed to create game", err).WithOperation("CreateGame")
	}

	s.logger.Info("Game created", "code", game.Code, "course", game.CourseName)
	return game, nil
}

// GetGameByCode resolves a join code to the settings record
func (s *gameServiceImpl) GetGameByCode(code string) (*models.Game, error) {
	game, err := s.repos.Game.GetByCode(normalizeCode(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("game not found", err).WithOperation("GetGameByCode")
		}
		return nil, apperrors.DatabaseError("failed to get game", err).WithOperation("GetGameByCode")
	}
	return game, nil
}

// GetPlayers returns a game's roster ordered by join time
func (s *gameServiceImpl) GetPlayers(code string) ([]models.Player, error) {
	game, err := s.GetGameByCode(code)
	if err != nil {
		return nil, err
	}

	players, err := s.repos.Player.GetByGame(game.ID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list players", err).WithOperation("GetPlayers")
	}
	return players, nil
}

// JoinGame upserts the player by (game, name). The handicap index arrives as
// entered on the form; malformed input means "no handicap" rather than an
// error.
func (s *gameServiceImpl) JoinGame(code, playerName, handicapIndex string, isGuest bool) (*models.Player, *models.Game, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, nil, apperrors.InvalidInput("player name is required", nil).WithOperation("JoinGame")
	}

	game, err := s.GetGameByCode(code)
	if err != nil {
		return nil, nil, err
	}

	index := scoring.FloatOrNil(handicapIndex)
	player := &models.Player{
		GameID:         game.ID,
		Name:           playerName,
		HandicapIndex:  index,
		CourseHandicap: scoring.CourseHandicap(index, game.Slope, game.Rating, game.TotalPar, game.HolesMode, game.HandicapPolicy),
		IsGuest:        isGuest,
	}

	if err := s.repos.Player.Upsert(player); err != nil {
		s.logger.Error("Failed to upsert player", err, "code", game.Code, "player", playerName)
		return nil, nil, apperrors.DatabaseError("failed to join game", err).WithOperation("JoinGame")
	}

	// A differential game plays off the low handicap, so a new or changed
	// player can shift the whole roster.
	if game.HandicapPolicy == scoring.HandicapDifferential {
		err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
			return recomputeHandicaps(repos, game)
		})
		if err != nil {
			return nil, nil, apperrors.DatabaseError("failed to recompute handicaps", err).WithOperation("JoinGame")
		}
		player, err = s.repos.Player.GetByID(player.ID)
		if err != nil {
			return nil, nil, apperrors.DatabaseError("failed to reload player", err).WithOperation("JoinGame")
		}
	}

	s.logger.Info("Player joined", "code", game.Code, "player", player.Name)
	return player, game, nil
}

// ClaimHost verifies the host key for a game
func (s *gameServiceImpl) ClaimHost(code, hostKey string) (*models.Game, error) {
	game, err := s.GetGameByCode(code)
	if err != nil {
		return nil, err
	}
	if !auth.CheckHostKey(hostKey, game.HostKeyHash) {
		return nil, apperrors.Forbidden("host key does not match", nil).WithOperation("ClaimHost")
	}
	return game, nil
}

// UpdateSettings applies new settings and recomputes every player's course
// handicap in a single transaction: either the whole roster reflects the new
// settings or none of it does.
func (s *gameServiceImpl) UpdateSettings(gameID uuid.UUID, updated *models.Game) (*models.Game, []models.Player, error) {
	if err := updated.ValidateCard(); err != nil {
		return nil, nil, apperrors.ValidationError("invalid course card", err).WithOperation("UpdateSettings")
	}

	var game *models.Game
	var players []models.Player
	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		current, err := repos.Game.GetByID(gameID)
		if err != nil {
			return err
		}

		current.CourseName = updated.CourseName
		current.Slope = updated.Slope
		current.Rating = updated.Rating
		current.TotalPar = updated.TotalPar
		current.Pars = updated.Pars
		current.StrokeIndex = updated.StrokeIndex
		current.GameMode = updated.GameMode
		current.TeamMode = updated.TeamMode
		current.HandicapPolicy = updated.HandicapPolicy
		current.HolesMode = updated.HolesMode
		applySettingDefaults(current)

		if err := repos.Game.Update(current); err != nil {
			return err
		}
		if err := recomputeHandicaps(repos, current); err != nil {
			return err
		}

		players, err = repos.Player.GetByGame(current.ID)
		if err != nil {
			return err
		}
		game = current
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NotFound("game not found", err).WithOperation("UpdateSettings")
		}
		s.logger.Error("Settings update failed", err, "game_id", gameID)
		return nil, nil, apperrors.DatabaseError("failed to update settings", err).WithOperation("UpdateSettings")
	}

	s.logger.Info("Settings updated", "code", game.Code)
	return game, players, nil
}

// ReshuffleGroups draws a new tee sheet and applies it atomically. The seed
// makes the draw reproducible; a retry after a failed batch lands on the same
// assignment.
func (s *gameServiceImpl) ReshuffleGroups(gameID uuid.UUID, groupSize int, seed int64) ([]models.Player, error) {
	var players []models.Player
	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		roster, err := repos.Player.GetByGame(gameID)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, len(roster))
		for i := range roster {
			ids[i] = roster[i].ID
		}

		for groupIdx, group := range scoring.AssignTeeGroups(ids, groupSize, seed) {
			groupNum := groupIdx + 1
			for _, id := range group {
				if err := repos.Player.UpdateTeeGroup(id, &groupNum); err != nil {
					return err
				}
			}
		}

		players, err = repos.Player.GetByGame(gameID)
		return err
	})
	if err != nil {
		s.logger.Error("Reshuffle failed", err, "game_id", gameID)
		return nil, apperrors.DatabaseError("failed to reshuffle groups", err).WithOperation("ReshuffleGroups")
	}

	s.logger.Info("Tee sheet reshuffled", "game_id", gameID, "seed", seed)
	return players, nil
}

// recomputeHandicaps rewrites every player's course handicap from their
// stored handicap index under the game's current settings. Hole results are
// left untouched.
func recomputeHandicaps(repos *repository.Repositories, game *models.Game) error {
	players, err := repos.Player.GetByGame(game.ID)
	if err != nil {
		return err
	}

	handicaps := make([]int, len(players))
	for i := range players {
		handicaps[i] = scoring.CourseHandicap(
			players[i].HandicapIndex, game.Slope, game.Rating, game.TotalPar,
			game.HolesMode, game.HandicapPolicy,
		)
	}
	if game.HandicapPolicy == scoring.HandicapDifferential {
		handicaps = scoring.ApplyDifferential(handicaps)
	}

	for i := range players {
		if players[i].CourseHandicap == handicaps[i] {
			continue
		}
		if err := repos.Player.UpdateCourseHandicap(players[i].ID, handicaps[i]); err != nil {
			return err
		}
	}
	return nil
}

// applySettingDefaults substitutes the documented defaults for missing
// numeric settings and enum values.
func applySettingDefaults(game *models.Game) {
	if game.Slope <= 0 {
		game.Slope = scoring.DefaultSlope
	}
	if game.Rating <= 0 {
		game.Rating = scoring.DefaultRating
	}
	if game.TotalPar <= 0 {
		game.TotalPar = scoring.DefaultTotalPar
	}
	if game.GameMode == "" {
		game.GameMode = scoring.GameModeStroke
	}
	if game.TeamMode == "" {
		game.TeamMode = scoring.TeamModeSingles
	}
	if game.HandicapPolicy == "" {
		game.HandicapPolicy = scoring.HandicapFull
	}
	if game.HolesMode == "" {
		game.HolesMode = scoring.HolesAll18
	}
}

// generateCode draws random join codes until one is free.
func (s *gameServiceImpl) generateCode() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		exists, err := s.repos.Game.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find a free join code")
}

func randomCode() (string, error) {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
