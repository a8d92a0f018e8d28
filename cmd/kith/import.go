package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/migrate"
	"github.com/unowned-ai/kith/pkg/store"
)

var importForceFlag bool

var importCmd = &cobra.Command{
	Use:   "import <legacy.json>",
	Short: "Import a network exported by the previous version",
	Long: `Read a JSON export from the previous version of the app and store it as
this database's network. People, labels, contact details, relationships with
their full interaction history and circles are carried over under new ids.

Records that cannot be imported (for example an interaction without a location)
are skipped and listed. The database must not already hold a network unless
--force is given, in which case it is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbConn, path, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if _, err := store.Load(ctx, dbConn); err == nil && !importForceFlag {
			return fmt.Errorf("%s already holds a network; use --force to replace it", path)
		} else if err != nil && !errors.Is(err, store.ErrNoNetwork) {
			return err
		}

		n, stats, err := migrate.ImportFile(args[0], logger)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", args[0], err)
		}
		if err := store.Save(ctx, dbConn, n); err != nil {
			return fmt.Errorf("failed to save imported network: %w", err)
		}

		fmt.Printf("Imported network for %s into %s\n", n.Owner.Name, path)
		fmt.Printf("People:               %d\n", stats.People)
		fmt.Printf("Relationships:        %d\n", stats.Relationships)
		fmt.Printf("Interactions:         %d\n", stats.Interactions)
		fmt.Printf("Circles:              %d\n", stats.Circles)
		fmt.Printf("Labels:               %d\n", stats.Labels)
		fmt.Printf("Custom contact types: %d\n", stats.CustomContactTypes)
		if len(stats.Skipped) > 0 {
			fmt.Printf("\nSkipped %d record(s):\n", len(stats.Skipped))
			for _, s := range stats.Skipped {
				fmt.Printf("  - %s\n", s)
			}
		}
		return nil
	},
}

func initImportCmd() {
	importCmd.Flags().BoolVar(&importForceFlag, "force", false, "Replace a network already in the database")
}
