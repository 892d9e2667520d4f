package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"matchbook/config"
	"matchbook/database"
	"matchbook/domain/services"
	"matchbook/metrics"
	"matchbook/repository"
	"matchbook/web"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	userRepo := repository.NewUserRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	betRepo := repository.NewBetRepository(db)
	recordRepo := repository.NewMatchRecordRepository(db)
	roundRepo := repository.NewRoundRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	identity := services.NewIdentityService(userRepo, tokenRepo)
	voting := services.NewVotingService(userRepo, voteRepo)
	betting := services.NewBettingService(userRepo, betRepo, roundRepo)
	rounds := services.NewRoundService(userRepo, roundRepo)
	settlement := services.NewSettlementService(userRepo, voteRepo, betRepo, recordRepo, roundRepo)

	// Expired revoked tokens are garbage; sweep them hourly
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		purged, err := tokenRepo.PurgeExpired(context.Background())
		if err != nil {
			log.WithError(err).Warn("Token purge failed")
			return
		}
		if purged > 0 {
			log.WithField("purged", purged).Info("Removed expired revoked tokens")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule token purge: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Seed the round-state gauge from the persisted state
	if round, err := rounds.State(ctx); err == nil {
		metrics.SetRoundState(string(round.State))
	}

	server := web.NewServer(db, identity, voting, betting, rounds, settlement, userRepo, recordRepo)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":        cfg.ListenAddr,
			"environment": cfg.Environment,
		}).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown was not clean")
	}

	return nil
}
