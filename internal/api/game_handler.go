package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/auth"
	"github.com/mkelwood/fairway-api/internal/models"
	"github.com/mkelwood/fairway-api/internal/scoring"
	"github.com/mkelwood/fairway-api/internal/services"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	gameService services.GameService
	tokens      *auth.JWTService
}

// NewGameHandler creates a new game handler with service injection
func NewGameHandler(gameService services.GameService, tokens *auth.JWTService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		tokens:      tokens,
	}
}

// gameSettingsPayload is the settings record as the client sends it. The
// numeric fields arrive as form text and coerce with documented defaults
// (slope 113, rating 72, par 72) instead of failing on a typo.
type gameSettingsPayload struct {
	CourseName     string `json:"course_name"`
	Slope          string `json:"slope"`
	Rating         string `json:"rating"`
	TotalPar       string `json:"total_par"`
	Pars           []int  `json:"pars"`
	StrokeIndex    []int  `json:"stroke_index"`
	GameMode       string `json:"game_mode"`
	TeamMode       string `json:"team_mode"`
	HandicapPolicy string `json:"handicap_policy"`
	HolesMode      string `json:"holes_mode"`
}

func (p *gameSettingsPayload) toGame() *models.Game {
	return &models.Game{
		CourseName:     p.CourseName,
		Slope:          scoring.FloatOrDefault(p.Slope, scoring.DefaultSlope),
		Rating:         scoring.FloatOrDefault(p.Rating, scoring.DefaultRating),
		TotalPar:       scoring.IntOrDefault(p.TotalPar, scoring.DefaultTotalPar),
		Pars:           models.HoleValues(p.Pars),
		StrokeIndex:    models.HoleValues(p.StrokeIndex),
		GameMode:       gameMode(p.GameMode),
		TeamMode:       teamMode(p.TeamMode),
		HandicapPolicy: handicapPolicy(p.HandicapPolicy),
		HolesMode:      holesMode(p.HolesMode),
	}
}

// Unknown enum values coerce to the empty value, which the service replaces
// with the default; settings follow the same never-hard-fail rule as numbers.

func gameMode(s string) scoring.GameMode {
	switch scoring.GameMode(s) {
	case scoring.GameModeStroke, scoring.GameModeStableford, scoring.GameModeMatch, scoring.GameModeSkins:
		return scoring.GameMode(s)
	}
	return ""
}

func teamMode(s string) scoring.TeamMode {
	switch scoring.TeamMode(s) {
	case scoring.TeamModeSingles, scoring.TeamModePairs:
		return scoring.TeamMode(s)
	}
	return ""
}

func handicapPolicy(s string) scoring.HandicapPolicy {
	switch scoring.HandicapPolicy(s) {
	case scoring.HandicapFull, scoring.HandicapNinetyFive, scoring.HandicapDifferential:
		return scoring.HandicapPolicy(s)
	}
	return ""
}

func holesMode(s string) scoring.HolesMode {
	switch scoring.HolesMode(s) {
	case scoring.HolesAll18, scoring.HolesFront9, scoring.HolesBack9:
		return scoring.HolesMode(s)
	}
	return ""
}

// CreateGame creates a game and returns it with a host session token
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req struct {
		gameSettingsPayload
		HostKey string `json:"host_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game format: " + err.Error()})
		return
	}

	game, err := h.gameService.CreateGame(req.toGame(), req.HostKey)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(auth.Claims{
		GameID: game.ID,
		Role:   auth.RoleHost,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue host token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game":       game,
		"host_token": token,
		"expires_at": expiresAt,
	})
}

// JoinGame joins (or rejoins) a game by code and returns a player token
func (h *GameHandler) JoinGame(c *gin.Context) {
	var req struct {
		Code          string `json:"code"`
		PlayerName    string `json:"player_name"`
		HandicapIndex string `json:"handicap_index"`
		IsGuest       bool   `json:"is_guest"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid join format: " + err.Error()})
		return
	}

	player, game, err := h.gameService.JoinGame(req.Code, req.PlayerName, req.HandicapIndex, req.IsGuest)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(auth.Claims{
		GameID:   game.ID,
		PlayerID: player.ID,
		Role:     auth.RolePlayer,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue player token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game":       game,
		"player":     player,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// ClaimHost exchanges the host key for a host session token
func (h *GameHandler) ClaimHost(c *gin.Context) {
	var req struct {
		Code    string `json:"code"`
		HostKey string `json:"host_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format: " + err.Error()})
		return
	}

	game, err := h.gameService.ClaimHost(req.Code, req.HostKey)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(auth.Claims{
		GameID: game.ID,
		Role:   auth.RoleHost,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue host token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game":       game,
		"host_token": token,
		"expires_at": expiresAt,
	})
}

// GetGame returns the settings record for a join code
func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.gameService.GetGameByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game})
}

// GetPlayers returns the roster for a join code
func (h *GameHandler) GetPlayers(c *gin.Context) {
	players, err := h.gameService.GetPlayers(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"players":   players,
		"timestamp": time.Now(),
	})
}

// UpdateSettings applies new settings and recomputes all course handicaps
// (host only; the token must belong to this game)
func (h *GameHandler) UpdateSettings(c *gin.Context) {
	game, ok := h.sessionGame(c)
	if !ok {
		return
	}

	var req gameSettingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings format: " + err.Error()})
		return
	}

	updated, players, err := h.gameService.UpdateSettings(game.ID, req.toGame())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Settings updated",
		"game":    updated,
		"players": players,
	})
}

// ReshuffleGroups draws a new tee sheet for the game (host only)
func (h *GameHandler) ReshuffleGroups(c *gin.Context) {
	game, ok := h.sessionGame(c)
	if !ok {
		return
	}

	var req struct {
		GroupSize int    `json:"group_size"`
		Seed      *int64 `json:"seed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format: " + err.Error()})
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	players, err := h.gameService.ReshuffleGroups(game.ID, req.GroupSize, seed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tee sheet reshuffled",
		"seed":    seed,
		"players": players,
	})
}

// sessionGame resolves the :code param and checks it against the session's
// game claim, so a token from one game cannot act on another.
func (h *GameHandler) sessionGame(c *gin.Context) (*models.Game, bool) {
	game, err := h.gameService.GetGameByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	claimed, exists := c.Get(auth.GameIDKey)
	if !exists || claimed.(uuid.UUID) != game.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this game"})
		return nil, false
	}
	return game, true
}
