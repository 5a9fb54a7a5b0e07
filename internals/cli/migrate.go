package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	database "library_backend/internals/databases"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.ConnectDB(cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info().Msg("[MIGRATE] schema up to date")
		return nil
	},
}
