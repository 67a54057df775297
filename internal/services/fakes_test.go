package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/models"
	"github.com/mkelwood/fairway-api/internal/repository"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

// In-memory repositories for service tests. They mirror the postgres
// semantics the services rely on: name-insensitive upsert, join-order
// listings, and per-cell score writes.

type fakeGameRepo struct {
	games map[uuid.UUID]*models.Game
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[uuid.UUID]*models.Game)}
}

func (f *fakeGameRepo) Create(game *models.Game) error {
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	game.CreatedAt = time.Now()
	game.UpdatedAt = game.CreatedAt
	stored := *game
	f.games[game.ID] = &stored
	return nil
}

func (f *fakeGameRepo) GetByID(id uuid.UUID) (*models.Game, error) {
	game, ok := f.games[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *game
	return &out, nil
}

func (f *fakeGameRepo) GetByCode(code string) (*models.Game, error) {
	for _, game := range f.games {
		if game.Code == code {
			out := *game
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeGameRepo) Update(game *models.Game) error {
	stored, ok := f.games[game.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := *game
	updated.Code = stored.Code
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	f.games[game.ID] = &updated
	return nil
}

func (f *fakeGameRepo) CodeExists(code string) (bool, error) {
	_, err := f.GetByCode(code)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type fakePlayerRepo struct {
	players map[uuid.UUID]*models.Player
	order   []uuid.UUID
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[uuid.UUID]*models.Player)}
}

func (f *fakePlayerRepo) GetByID(id uuid.UUID) (*models.Player, error) {
	player, ok := f.players[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *player
	return &out, nil
}

func (f *fakePlayerRepo) GetByGame(gameID uuid.UUID) ([]models.Player, error) {
	var out []models.Player
	for _, id := range f.order {
		if p := f.players[id]; p.GameID == gameID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlayerRepo) Upsert(player *models.Player) error {
	for _, id := range f.order {
		existing := f.players[id]
		if existing.GameID == player.GameID && strings.EqualFold(existing.Name, player.Name) {
			existing.HandicapIndex = player.HandicapIndex
			existing.CourseHandicap = player.CourseHandicap
			existing.IsGuest = player.IsGuest
			existing.LastActiveAt = time.Now()
			*player = *existing
			return nil
		}
	}
	player.ID = uuid.New()
	player.Scores = models.ScoreCard{}
	player.CreatedAt = time.Now()
	stored := *player
	f.players[player.ID] = &stored
	f.order = append(f.order, player.ID)
	return nil
}

func (f *fakePlayerRepo) UpdateScore(playerID uuid.UUID, hole int, result scoring.HoleResult) error {
	player, ok := f.players[playerID]
	if !ok {
		return repository.ErrNotFound
	}
	if player.Scores == nil {
		player.Scores = models.ScoreCard{}
	}
	player.Scores[hole] = result
	return nil
}

func (f *fakePlayerRepo) UpdateCourseHandicap(playerID uuid.UUID, courseHandicap int) error {
	player, ok := f.players[playerID]
	if !ok {
		return repository.ErrNotFound
	}
	player.CourseHandicap = courseHandicap
	return nil
}

func (f *fakePlayerRepo) UpdateTeeGroup(playerID uuid.UUID, teeGroup *int) error {
	player, ok := f.players[playerID]
	if !ok {
		return repository.ErrNotFound
	}
	player.TeeGroup = teeGroup
	return nil
}

type fakeTxManager struct {
	repos *repository.Repositories
}

func (f *fakeTxManager) WithTransaction(fn func(repos *repository.Repositories) error) error {
	return fn(f.repos)
}

func newFakeRepos() *repository.Repositories {
	repos := &repository.Repositories{
		Game:   newFakeGameRepo(),
		Player: newFakePlayerRepo(),
	}
	repos.Tx = &fakeTxManager{repos: repos}
	return repos
}

// standardCard fills a valid 18-hole card on a game.
func standardCard(game *models.Game) *models.Game {
	game.Pars = make(models.HoleValues, 18)
	game.StrokeIndex = make(models.HoleValues, 18)
	for i := 0; i < 18; i++ {
		game.Pars[i] = 4
		game.StrokeIndex[i] = i + 1
	}
	return game
}
