// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-reindex/internal/watch"
	"github.com/petar-djukic/go-reindex/pkg/reindex"
)

var envKeyReplacer = strings.NewReplacer("-", "_", ".", "_")

// newRunCmd creates the "run" command.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Regenerate every generated index document once",
		RunE:  runReindex,
	}
	cmd.Flags().Bool("dry-run", false, "Show what would change without writing")
	viper.BindPFlag("dry-run", cmd.Flags().Lookup("dry-run"))
	return cmd
}

// config assembles the library config from flags, env, and the config file.
func config() reindex.Config {
	return reindex.Config{
		VaultDir:    viper.GetString("vault"),
		IndexDB:     viper.GetString("index-db"),
		DryRun:      viper.GetBool("dry-run"),
		Commit:      viper.GetBool("commit"),
		DirtyCommit: viper.GetBool("dirty-commit"),
		Icons:       iconOverrides(),
		Logger:      logger,
	}
}

// iconOverrides flattens the nested "icons" config section into the
// "type.npc" style keys the library expects.
func iconOverrides() map[string]string {
	out := make(map[string]string)
	for _, key := range viper.AllKeys() {
		if rest, ok := strings.CutPrefix(key, "icons."); ok {
			out[rest] = viper.GetString(key)
		}
	}
	return out
}

func runReindex(cmd *cobra.Command, args []string) error {
	r, err := reindex.New(config())
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer r.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := r.Run(ctx)
	printResult(cmd.OutOrStdout(), result)
	return err
}

// printResult writes a colored per-file summary.
func printResult(w io.Writer, result *reindex.Result) {
	if result == nil {
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if len(result.Files) == 0 {
		fmt.Fprintln(w, gray("No generated index files found."))
		return
	}
	for _, f := range result.Files {
		mark, state := gray("="), gray("unchanged")
		if f.Changed {
			mark, state = green("✓"), green("regenerated")
		}
		fmt.Fprintf(w, "%s %s %s %s\n", mark, f.Path, state, gray("["+f.Pattern+"]"))
		for _, t := range f.Skipped {
			fmt.Fprintf(w, "  %s unknown tag connection type %q left as written\n", yellow("!"), t)
		}
		if f.Diff != "" {
			fmt.Fprint(w, f.Diff)
		}
	}

	changed := len(result.Changed())
	fmt.Fprintf(w, "\n%s %d of %d files changed, %d entities, %d scope patterns\n",
		cyan("Summary:"), changed, len(result.Files), result.Entities, result.Groups)
	if result.Committed {
		fmt.Fprintln(w, green("Committed regenerated files."))
	}
}

// newWatchCmd creates the "watch" command.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever vault documents change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config()
			cfg.DryRun = false
			r, err := reindex.New(cfg)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			defer r.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			run := func(ctx context.Context) ([]string, error) {
				result, err := r.Run(ctx)
				printResult(cmd.OutOrStdout(), result)
				if result == nil {
					return nil, err
				}
				return result.Changed(), err
			}
			if _, err := run(ctx); err != nil {
				return err
			}

			debounce, _ := cmd.Flags().GetDuration("debounce")
			w, err := watch.New(cfg.VaultDir, debounce, run, logger)
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period after the last change before regenerating")
	return cmd
}

// newUndoCmd creates the "undo" command.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last go-reindex commit",
		Long:  "Undo performs a soft reset of the last commit if go-reindex made it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reindex.Undo(viper.GetString("vault")); err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully reverted last go-reindex commit.")
			return nil
		},
	}
}
