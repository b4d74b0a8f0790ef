package main

import (
	"fmt"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/minutemind/internal/infrastructure/database"
	"github.com/johnquangdev/minutemind/pkg/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the SQL migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (defaults to DB_MIGRATIONS_DIR)")

	root.AddCommand(newDirectionCommand("up", "Apply pending migrations", migrate.Up, &dir))
	root.AddCommand(newDirectionCommand("down", "Roll back applied migrations", migrate.Down, &dir))
	return root
}

func newDirectionCommand(use, short string, direction migrate.MigrationDirection, dir *string) *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if *dir == "" {
				*dir = cfg.Database.MigrationsDir
			}

			db, err := database.NewPostgresDB(cfg)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			log.Printf("🔄 Running %s migrations from %s...", use, *dir)
			n, err := database.Migrate(db, *dir, direction, max)
			if err != nil {
				return err
			}

			log.Printf("✅ Successfully applied %d migration(s)!", n)
			return nil
		},
	}

	defaultMax := 0
	if direction == migrate.Down {
		defaultMax = 1
	}
	cmd.Flags().IntVar(&max, "max", defaultMax, "maximum number of migrations to run (0 = all)")
	return cmd
}
