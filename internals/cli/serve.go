package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	database "library_backend/internals/databases"
	"library_backend/internals/features/library/loans/scheduler"
)

var flagAutoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.ConnectDB(cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)
		if err := database.TunePool(db, cfg.Database); err != nil {
			return err
		}
		if flagAutoMigrate {
			if err := database.Migrate(db); err != nil {
				return err
			}
		}
		database.WarmUp(db)

		app, services := NewApp(db, cfg)

		// scheduler after the DB is ready
		scheduler.StartReminderScanScheduler(ctx, services.Loans, cfg.Library.ReminderScanInterval)

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.Server.Addr()).Msg("[SERVER] listening")
			errCh <- app.Listen(cfg.Server.Addr())
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("[SERVER] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&flagAutoMigrate, "migrate", false, "Run schema migrations before serving")
}
