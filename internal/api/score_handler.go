package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/auth"
	"github.com/mkelwood/fairway-api/internal/services"
)

// ScoreHandler handles score entry and leaderboard endpoints
type ScoreHandler struct {
	scoreService services.ScoreService
	gameService  services.GameService
}

// NewScoreHandler creates a new score handler with service injection
func NewScoreHandler(scoreService services.ScoreService, gameService services.GameService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
		gameService:  gameService,
	}
}

// RecordScore writes one hole result for the session's player. The score
// field is the cell as entered: a stroke count or "NR".
func (h *ScoreHandler) RecordScore(c *gin.Context) {
	game, err := h.gameService.GetGameByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	claimedGame, exists := c.Get(auth.GameIDKey)
	if !exists || claimedGame.(uuid.UUID) != game.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this game"})
		return
	}

	playerID, exists := c.Get(auth.PlayerIDKey)
	if !exists || playerID.(uuid.UUID) == uuid.Nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "A player session is required to enter scores"})
		return
	}

	var req struct {
		Hole  int    `json:"hole"`
		Score string `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score format: " + err.Error()})
		return
	}

	player, err := h.scoreService.RecordScore(game.ID, playerID.(uuid.UUID), req.Hole, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Score recorded",
		"player":  player,
	})
}

// GetLeaderboard returns the board recomputed from current player state
func (h *ScoreHandler) GetLeaderboard(c *gin.Context) {
	board, err := h.scoreService.Leaderboard(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": board,
		"timestamp":   time.Now(),
	})
}
