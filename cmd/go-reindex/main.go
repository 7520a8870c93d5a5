// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-reindex regenerates the machine-maintained sections of a
// campaign vault's index documents.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

// logger is built in PersistentPreRunE from the --debug flag.
var logger = zap.NewNop()

func main() {
	rootCmd := &cobra.Command{
		Use:   "go-reindex",
		Short: "Regenerate scoped index sections in a campaign vault",
		Long: "go-reindex finds documents marked generatedIndex, recomputes the regions between their " +
			"sentinel comments from the campaign notes in scope, and writes the result back in place.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Config file: working directory first, then the vault root.
			viper.AddConfigPath(viper.GetString("vault"))
			viper.ReadInConfig() // Ignore error; config file is optional.

			config := zap.NewProductionConfig()
			if viper.GetBool("debug") {
				config = zap.NewDevelopmentConfig()
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	// Global flags.
	rootCmd.PersistentFlags().String("vault", ".", "Vault root directory")
	rootCmd.PersistentFlags().String("index-db", "", "SQLite entity index path (default in memory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("commit", false, "Commit regenerated files when the vault is in a git repository")
	rootCmd.PersistentFlags().Bool("dirty-commit", true, "With --commit, save manual edits to index files in a separate commit first")

	// Bind flags to viper.
	viper.BindPFlag("vault", rootCmd.PersistentFlags().Lookup("vault"))
	viper.BindPFlag("index-db", rootCmd.PersistentFlags().Lookup("index-db"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("commit", rootCmd.PersistentFlags().Lookup("commit"))
	viper.BindPFlag("dirty-commit", rootCmd.PersistentFlags().Lookup("dirty-commit"))

	// Env vars: GO_REINDEX_VAULT, GO_REINDEX_INDEX_DB, etc.
	viper.SetEnvPrefix("GO_REINDEX")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	viper.SetConfigName(".go-reindex")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-reindex version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("go-reindex %s\n", version)
		},
	}
}
