package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/strait-command/api/internal/auth"
	"github.com/strait-command/api/internal/config"
	"github.com/strait-command/api/internal/handler"
	"github.com/strait-command/api/internal/logger"
	"github.com/strait-command/api/internal/middleware"
	"github.com/strait-command/api/internal/repository/postgres"
	redisrepo "github.com/strait-command/api/internal/repository/redis"
	"github.com/strait-command/api/internal/service"
)

func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}
	log.Info().Str("databaseURL", cfg.DatabaseURL).Msg("Config loaded")

	// Database
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()

	// Redis
	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	defer redisClient.Close()

	// Repos
	campaignRepo := postgres.NewCampaignRepo(db)

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	campaignSvc := service.NewCampaignService(campaignRepo, redisClient, wsHub, cfg.GameConfig())

	// Handlers
	authHandler := handler.NewAuthHandler(jwtMgr)
	campaignHandler := handler.NewCampaignHandler(campaignSvc, wsHub)
	wsHandler := handler.NewWSHandler(wsHub, jwtMgr)

	// Router
	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth (public)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/refresh", authHandler.Refresh)

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("POST /campaigns", campaignHandler.CreateCampaign)
	api.HandleFunc("GET /campaigns", campaignHandler.ListCampaigns)
	api.HandleFunc("GET /campaigns/{id}", campaignHandler.GetCampaign)
	api.HandleFunc("GET /campaigns/{id}/state", campaignHandler.GetState)
	api.HandleFunc("GET /campaigns/{id}/events", campaignHandler.GetEvents)
	api.HandleFunc("GET /campaigns/{id}/losses", campaignHandler.GetLosses)
	api.HandleFunc("POST /campaigns/{id}/orders/move", campaignHandler.Move)
	api.HandleFunc("POST /campaigns/{id}/orders/attack", campaignHandler.Attack)
	api.HandleFunc("POST /campaigns/{id}/orders/bombard", campaignHandler.Bombard)
	api.HandleFunc("POST /campaigns/{id}/orders/resupply", campaignHandler.Resupply)
	api.HandleFunc("POST /campaigns/{id}/orders/repair", campaignHandler.Repair)
	api.HandleFunc("POST /campaigns/{id}/orders/entrench", campaignHandler.Entrench)
	api.HandleFunc("POST /campaigns/{id}/orders/road", campaignHandler.RoadAction)
	api.HandleFunc("POST /campaigns/{id}/advance", campaignHandler.AdvancePhase)
	api.HandleFunc("POST /campaigns/{id}/end-turn", campaignHandler.EndTurn)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.CORS("*"), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
