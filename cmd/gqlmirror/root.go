// Package main provides the gqlmirror CLI.
package main

import (
	"database/sql"

	"github.com/spf13/cobra"

	gconfig "github.com/localmirror/gqlmirror/internal/config"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// loadedConfig is populated by PersistentPreRunE so all subcommands can use
// it without re-resolving the config directory.
var loadedConfig *gconfig.Config

// db is the global database connection, opened lazily by commands that need
// one via openDB.
var db *sql.DB

var rootCmd = &cobra.Command{
	Use:   "gqlmirror",
	Short: "gqlmirror maintains a local relational mirror of a GraphQL object graph",
	Long: `gqlmirror decomposes a declared GraphQL schema into a versioned
relational layout and keeps a SQLite database aligned with it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := gconfig.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		cfg, err := gconfig.Load(configDir, flagDataDir)
		if err != nil {
			return err
		}

		loadedConfig = cfg
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config directory, e.g. ~/.config/gqlmirror)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.gqlmirror-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(inspectCmd)
}
