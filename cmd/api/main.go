package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	// Application Layer
	appService "petagenda/internal/application/service"

	// Infrastructure Layer
	"petagenda/internal/config"
	"petagenda/internal/infrastructure/database/sqlite"
	lineClient "petagenda/internal/infrastructure/line"
	"petagenda/internal/infrastructure/notification"
	"petagenda/internal/infrastructure/scheduler"

	// Interfaces Layer
	"petagenda/internal/interfaces/api/handler"
	"petagenda/internal/interfaces/api/router"

	// Packages
	appLogger "petagenda/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "petagenda",
		Short:         "Pet care reminders with scheduled notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(dumpCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the notification scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// NewDB migrates on open.
			db, err := sqlite.NewDB(cfg.DBPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer sqlite.CloseDB(db)
			fmt.Fprintf(cmd.OutOrStdout(), "schema of %s is up to date\n", cfg.DBPath)
			return nil
		},
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <key>",
		Short: "Print a stored collection (pets, reminders, vaccinations, userProfile, friends)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := sqlite.NewDB(cfg.DBPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer sqlite.CloseDB(db)

			value, found, err := sqlite.NewCollectionStore(db).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no collection stored under %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func runServer(cfg *config.Config) error {
	// --- Initialization ---
	appLog := appLogger.New(cfg.LogLevel)
	appLog.Info("Logger initialized.")

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	now := func() time.Time { return time.Now().In(loc) }

	// --- Infrastructure ---
	db, err := sqlite.NewDB(cfg.DBPath, cfg.LogLevel)
	if err != nil {
		appLog.Error("Failed to open database", err)
		return err
	}
	store := sqlite.NewCollectionStore(db)
	appLog.Info("Database and collection store initialized.")

	var deliverer notification.Deliverer = notification.NewLogDeliverer(appLog)
	var line *lineClient.Client
	if cfg.LineEnabled() {
		line, err = lineClient.NewClient(cfg.LineChannelSecret, cfg.LineChannelToken, cfg.LineRecipientID, appLog)
		if err != nil {
			appLog.Error("Failed to create LINE client", err)
			return err
		}
		deliverer = line
	} else {
		appLog.Warn("LINE is not configured, fired notifications will only be logged")
	}

	cronScheduler := scheduler.NewScheduler(loc, appLog)
	port := notification.NewPort(cronScheduler, deliverer, cfg.NotificationsEnabled, appLog)
	// Process-wide display settings are applied once, before anything is scheduled.
	if err := port.Configure(notification.DisplayConfig{
		ChannelName: cfg.NotificationChannel,
		ShowAlert:   true,
		PlaySound:   true,
	}); err != nil {
		return err
	}

	// --- Application Services ---
	reminderSvc := appService.NewReminderService(store, port, now, appLog)
	vaccineSvc := appService.NewVaccineService(store, port, now, appLog)
	petSvc := appService.NewPetService(store, reminderSvc, vaccineSvc, appLog)
	profileSvc := appService.NewProfileService(store, appLog)
	statsSvc := appService.NewStatisticsService(store, now)
	schedulerSvc := appService.NewSchedulerService(reminderSvc, vaccineSvc, port, appLog)
	appLog.Info("Application services initialized.")

	// --- Initialize Schedules ---
	if err := schedulerSvc.InitializeSchedules(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to initialize schedules on startup", err)
	}

	// --- API Handlers ---
	routerCfg := &router.Config{
		PetHandler:      handler.NewPetHandler(petSvc, appLog),
		ReminderHandler: handler.NewReminderHandler(reminderSvc, appLog),
		VaccineHandler:  handler.NewVaccineHandler(vaccineSvc, appLog),
		ProfileHandler:  handler.NewProfileHandler(profileSvc, statsSvc, appLog),
		Logger:          appLog,
	}
	if line != nil {
		routerCfg.LineHandler = handler.NewLineHandler(line, reminderSvc, vaccineSvc, now, appLog)
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan struct{})
	go gracefulShutdown(apiServer, schedulerSvc, db, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("HTTP server ListenAndServe error", err)
		return err
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
	return nil
}
