package api

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/mkelwood/fairway-api/internal/auth"
	"github.com/mkelwood/fairway-api/internal/services"
	"github.com/mkelwood/fairway-api/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config) error {
	svcs := services.NewServices(db, cfg)

	tokens := auth.NewJWTService(cfg.JWTSecret)
	gameHandler := NewGameHandler(svcs.Game, tokens)
	scoreHandler := NewScoreHandler(svcs.Score, svcs.Game)
	healthHandler := NewHealthHandler(db)

	r.GET("/health", healthHandler.GetHealth)

	// Public routes: creating, joining, and reading a game need no session.
	public := r.Group("/api/v1")
	{
		public.POST("/games", gameHandler.CreateGame)
		public.POST("/join", gameHandler.JoinGame)
		public.POST("/host", gameHandler.ClaimHost)
		public.GET("/games/:code", gameHandler.GetGame)
		public.GET("/games/:code/players", gameHandler.GetPlayers)
		public.GET("/games/:code/leaderboard", scoreHandler.GetLeaderboard)
	}

	// Protected routes: score entry needs a player session.
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	{
		protected.PUT("/games/:code/scores", scoreHandler.RecordScore)
	}

	// Host routes: the privileged settings update and the tee-sheet draw.
	host := r.Group("/api/v1")
	host.Use(auth.JWTMiddleware(cfg.JWTSecret))
	host.Use(auth.RequireHost())
	{
		host.PUT("/games/:code/settings", gameHandler.UpdateSettings)
		host.POST("/games/:code/reshuffle", gameHandler.ReshuffleGroups)
	}

	return nil
}
