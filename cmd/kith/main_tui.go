//go:build tui

package main

import (
	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/tui"
	"github.com/unowned-ai/kith/pkg/utils"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show terminal UI",
	Long: `Browse people, their history and details in an interactive terminal UI.
The view reloads when another kith process (such as the MCP server) writes to
the database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		path, err := utils.ResolveAndEnsureDBPath(cfg.DB.Path)
		if err != nil {
			return err
		}
		return tui.ShowTUI(sess, path, logger)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
