package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appService "petagenda/internal/application/service"
	"petagenda/internal/infrastructure/database/sqlite"
	appLogger "petagenda/internal/pkg/logger"

	"gorm.io/gorm"
)

func gracefulShutdown(apiServer *http.Server, schedulerService appService.SchedulerService, db *gorm.DB, log appLogger.Logger, done chan<- struct{}) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first so no notification fires mid-shutdown.
	schedulerService.Stop()
	log.Info("Scheduler stopped.")

	// The server has 5 seconds to finish the request it is currently handling.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err)
	}

	if err := sqlite.CloseDB(db); err != nil {
		log.Error("Error closing database", err)
	} else {
		log.Info("Database connection closed.")
	}

	close(done)
}
