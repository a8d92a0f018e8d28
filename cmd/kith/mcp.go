package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the kith MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes your network
(people, contacts, labels, circles, interactions, reminders and stats) as MCP
tools via STDIO, so an AI assistant can look people up and log interactions.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\kith\kith.db
- macOS: ~/Library/Application Support/kith/kith.db
- Linux: ~/.local/share/kith/kith.db

Example:
  kith mcp
  kith mcp --db kith.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		srv := mcp.NewKithMCPServer(sess, logger)
		defer srv.Close()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Kith MCP server started for %s. (WAL: %t, Sync: %s)\n", sess.Network().Owner.Name, cfg.DB.WAL, cfg.DB.Sync)
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
