// Package web exposes the HTTP API over the domain services.
package web

import (
	"net/http"

	"matchbook/config"
	"matchbook/database"
	"matchbook/domain/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the services the HTTP handlers dispatch into.
type Server struct {
	engine     *gin.Engine
	db         *database.DB
	identity   interfaces.IdentityService
	voting     interfaces.VotingService
	betting    interfaces.BettingService
	rounds     interfaces.RoundService
	settlement interfaces.SettlementService
	users      interfaces.UserRepository
	records    interfaces.MatchRecordRepository
}

// NewServer wires the routes and returns a ready-to-serve server.
func NewServer(
	db *database.DB,
	identity interfaces.IdentityService,
	voting interfaces.VotingService,
	betting interfaces.BettingService,
	rounds interfaces.RoundService,
	settlement interfaces.SettlementService,
	users interfaces.UserRepository,
	records interfaces.MatchRecordRepository,
) *Server {
	cfg := config.Get()
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	s := &Server{
		engine:     engine,
		db:         db,
		identity:   identity,
		voting:     voting,
		betting:    betting,
		rounds:     rounds,
		settlement: settlement,
		users:      users,
		records:    records,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
		auth.POST("/logout", requireAuth(s.identity), s.handleLogout)
	}

	// Public reads
	api.GET("/leaderboard", s.handleLeaderboard)
	api.GET("/roster", s.handleRoster)
	api.GET("/round", s.handleRound)
	api.GET("/votes/tally", s.handleTally)

	authed := api.Group("", requireAuth(s.identity))
	{
		authed.GET("/profile", s.handleProfile)
		authed.POST("/votes", s.handleSubmitVote)
		authed.POST("/bets", s.handlePlaceBet)
		authed.GET("/bets", s.handleMyBets)
		authed.GET("/history", s.handleHistory)
	}

	admin := api.Group("/admin", requireAuth(s.identity), requireAdmin())
	{
		admin.POST("/round/open", s.handleOpenBetting)
		admin.POST("/round/close", s.handleCloseBetting)
		admin.POST("/match/start", s.handleStartMatch)
		admin.POST("/match/end", s.handleEndMatch)
	}
}

// Handler exposes the engine for the HTTP server and for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
