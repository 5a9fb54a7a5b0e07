package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	database "library_backend/internals/databases"
	"library_backend/internals/seeds"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog and reader accounts",
	Long: `seed inserts genres, authors, books and reader accounts from the
catalog embedded in the binary. Existing rows are left untouched, so the
command can be re-run safely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.ConnectDB(cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		res, err := seeds.RunAllSeeds(cmd.Context(), db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d genres, %d authors, %d books, %d readers\n",
			res.Genres, res.Authors, res.Books, res.Readers)
		return nil
	},
}
