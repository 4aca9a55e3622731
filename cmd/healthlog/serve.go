package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appService "healthlog/internal/application/service"
	lineClient "healthlog/internal/infrastructure/line"
	"healthlog/internal/infrastructure/notification"
	"healthlog/internal/infrastructure/scheduler"
	"healthlog/internal/interfaces/api/handler"
	"healthlog/internal/interfaces/api/router"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()
			return serve(cmd.Context(), rt)
		},
	}
}

func serve(parent context.Context, rt *runtime) error {
	cfg, appLog := rt.cfg, rt.log
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Infrastructure ---
	cronScheduler := scheduler.NewScheduler(appLog)
	var (
		notifier appService.Notifier
		line     *lineClient.Client
	)
	if cfg.LineEnabled() {
		line, err = lineClient.NewClient(lineClient.Config{
			ChannelSecret:      cfg.ChannelSecret,
			ChannelAccessToken: cfg.ChannelAccessToken,
			Recipient:          cfg.NotifyUserID,
			BaseURL:            cfg.AppBaseURL,
			PostbackForKey:     handler.PostbackForNotificationKey,
		}, appLog)
		if err != nil {
			cronScheduler.Stop()
			return err
		}
		notifier = line
	} else {
		appLog.Warn("LINE credentials not set, notifications are written to the log only")
		notifier = notification.NewLogNotifier(appLog)
	}

	// --- Application Services ---
	reminderScheduler := appService.NewReminderScheduler(cronScheduler, rt.store.Reminders, nil, loc, appLog, rt.metrics)
	receiver := appService.NewReminderReceiver(reminderScheduler, rt.store, notifier, nil, loc, appLog, rt.metrics)
	reminderSvc := appService.NewReminderService(rt.store.Reminders, rt.store.MedicationSets, reminderScheduler, appLog)
	setSvc := appService.NewMedicationSetService(rt.store, reminderScheduler, notifier, nil, appLog)
	backupSvc := appService.NewBackupService(rt.store, nil, appLog, rt.metrics)
	journal := appService.NewJournal(rt.store, nil, appLog)
	appLog.Info("Application services initialized.")

	cronScheduler.SetWakeupHandler(func(ctx context.Context, reminderID uint) {
		if err := receiver.HandleReminderFired(ctx, reminderID); err != nil {
			appLog.Error(fmt.Sprintf("Reminder %d failed", reminderID), err)
		}
	})

	// --- Initialize Schedules ---
	if err := receiver.HandleBoot(parent); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to initialize schedules on startup", err)
	}

	// --- Router ---
	routerCfg := &router.Config{
		Journal:              journal,
		MedicationSetHandler: handler.NewMedicationSetHandler(setSvc, reminderSvc, appLog),
		BackupHandler:        handler.NewBackupHandler(backupSvc, appLog),
		Gatherer:             rt.registry,
		Logger:               appLog,
	}
	if line != nil {
		routerCfg.LineHandler = handler.NewLineHandler(line, setSvc, appLog)
	}

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.NewRouter(routerCfg),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		cronScheduler.Stop()
		if err != nil {
			appLog.Error("HTTP server ListenAndServe error", err)
		}
		return err
	case <-ctx.Done():
	}

	appLog.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// Stop the scheduler first; it waits for a reminder that is being handled.
	cronScheduler.Stop()

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", err)
	}
	appLog.Info("Graceful shutdown complete.")
	return nil
}
