package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	kith "github.com/unowned-ai/kith/pkg"
	"github.com/unowned-ai/kith/pkg/config"
	pkgdb "github.com/unowned-ai/kith/pkg/db"
	"github.com/unowned-ai/kith/pkg/logging"
	"github.com/unowned-ai/kith/pkg/session"
	"github.com/unowned-ai/kith/pkg/store"
	"github.com/unowned-ai/kith/pkg/utils"
)

var (
	dbPath     string
	walMode    bool
	syncMode   string
	configPath string
	verbose    bool

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:     "kith",
	Short:   "A local-first personal relationship network.",
	Long:    `Keep track of the people you know, how you know them and when you last talked.`,
	Version: fmt.Sprintf("v%s", kith.Version),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		// Flags win over the config file and the environment.
		if cmd.Flags().Changed("db") {
			loaded.DB.Path = dbPath
		}
		if cmd.Flags().Changed("wal") {
			loaded.DB.WAL = walMode
		}
		if cmd.Flags().Changed("sync") {
			loaded.DB.Sync = strings.ToUpper(syncMode)
		}
		if verbose {
			loaded.Log.Level = "debug"
		}
		cfg = loaded

		l, err := logging.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for kith.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(kith completion bash)

  Bash (persist):
    $ kith completion bash > /etc/bash_completion.d/kith

  Zsh:
    $ kith completion zsh > "${fpath[1]}/_kith"

  Fish:
    $ kith completion fish | source
    $ kith completion fish > ~/.config/fish/completions/kith.fish

  PowerShell:
    PS> kith completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	PersistentPreRunE:     func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the version number of kith",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(kith.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the kith database",
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the database schema to the latest version",
	Long: `Connects to the SQLite database (--db, KITH_DB, the config file or the
system default) and applies any schema migrations needed by this version of kith.
A missing database is created with the latest schema.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, path, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()
		fmt.Printf("Database at %s is at schema version %d.\n", path, pkgdb.TargetSchemaVersion)
		return nil
	},
}

var initNetworkCmd = &cobra.Command{
	Use:   "init <your name>",
	Short: "Create a new network owned by you",
	Long: `Create the network in an empty database. You become the owner and the
network's own Person, labelled "me". The default relationship labels are seeded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		dbConn, path, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		sess, err := session.Init(cmd.Context(), dbConn, args[0], email, logger)
		if errors.Is(err, session.ErrAlreadyInitialized) {
			return fmt.Errorf("%w (database: %s)", err, path)
		}
		if err != nil {
			return fmt.Errorf("failed to create network: %w", err)
		}
		n := sess.Network()
		fmt.Printf("Created network for %s in %s\n", n.Owner.Name, path)
		return nil
	},
}

// openDB resolves the configured database path, opens it and brings the
// schema up to date.
func openDB() (*sql.DB, string, error) {
	path, err := utils.ResolveAndEnsureDBPath(cfg.DB.Path)
	if err != nil {
		return nil, "", err
	}
	dbConn, err := pkgdb.OpenDBConnection(path, cfg.DB.WAL, cfg.DB.Sync)
	if err != nil {
		return nil, "", err
	}
	if err := pkgdb.UpgradeDB(dbConn, path, pkgdb.TargetSchemaVersion, logger); err != nil {
		dbConn.Close()
		return nil, "", err
	}
	return dbConn, path, nil
}

// openSession opens the database and loads the network held in it. The
// caller closes the returned database.
func openSession(ctx context.Context) (*session.Session, *sql.DB, error) {
	dbConn, path, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	sess, err := session.Open(ctx, dbConn, logger)
	if errors.Is(err, store.ErrNoNetwork) {
		dbConn.Close()
		return nil, nil, fmt.Errorf("no network in %s; run 'kith init <your name>' first", path)
	}
	if err != nil {
		dbConn.Close()
		return nil, nil, err
	}
	return sess, dbConn, nil
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (uses KITH_DB, the config file or a system-specific default if not provided)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", true, "Enable SQLite WAL (Write-Ahead Logging) mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "NORMAL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default <user config dir>/kith/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	initNetworkCmd.Flags().String("email", "", "Your email address")

	dbCmd.AddCommand(dbUpgradeCmd)

	initPeopleCmd()
	initContactsCmd()
	initLabelsCmd()
	initRelationshipCmd()
	initCirclesCmd()
	initLogCmd()
	initQueryCmds()
	initAILogCmd()
	initImportCmd()

	rootCmd.AddCommand(
		completionCmd, versionCmd, dbCmd, initNetworkCmd,
		peopleCmd, contactsCmd, labelsCmd, relationshipCmd, circlesCmd,
		logCmd, aiLogCmd, historyCmd, rangeCmd, remindersCmd, staleCmd, statsCmd,
		importCmd, mcpCmd,
	)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
