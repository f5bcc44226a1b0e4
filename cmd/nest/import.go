package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Veraticus/nest-egg/internal/cli"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/ofx"
	"github.com/spf13/cobra"
)

func goalsImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <name> <files...>",
		Short: "Apply OFX/QFX statement lines to a goal",
		Long: `Apply the lines of one or more OFX or QFX statements to a goal.

Credits are added to the goal and debits withdrawn from it. Zero-amount lines
are skipped, and a line that appears in more than one of the given files is
applied once.`,
		Example: `  nest goals import "New car" ~/Downloads/savings_*.qfx
  nest goals import Vacation march.ofx --dry-run`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args[1:])
			if err != nil {
				return err
			}

			contributions, err := readStatements(cmd.Context(), files)
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				goal, err := a.manager.Goal(args[0])
				if err != nil {
					return err
				}
				if len(contributions) == 0 {
					writeln(a.out, cli.FormatWarning("No statement lines to import"))
					return nil
				}

				added, withdrawn := ofx.Totals(contributions)
				if dryRun {
					for _, c := range contributions {
						writef(a.out, "%s  %-40s %s\n", cli.FormatDate(c.Date), c.Description,
							a.money.Signed(model.Transaction{Type: c.Type, Amount: c.Amount}))
					}
					writef(a.out, "\nWould add %s and withdraw %s across %d lines (dry run)\n",
						a.money.Format(added), a.money.Format(withdrawn), len(contributions))
					return nil
				}

				bar := cli.NewImportBar(cmd.ErrOrStderr(), len(contributions), "Importing into "+goal.Name)
				for _, c := range contributions {
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := applyContribution(ctx, a, goal.Name, c); err != nil {
						return fmt.Errorf("statement line %s: %w", c.FiTID, err)
					}
					if err := bar.Add(1); err != nil {
						slog.Debug("Failed to update progress bar", "error", err)
					}
				}

				goal, err = a.manager.Goal(goal.Name)
				if err != nil {
					return err
				}
				writeln(a.out, cli.FormatSuccess(fmt.Sprintf("Imported %d lines: +%s / -%s",
					len(contributions), a.money.Format(added), a.money.Format(withdrawn))))
				writeln(a.out, cli.FormatGoalLine(a.money, goal))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the import without saving")
	return cmd
}

func applyContribution(ctx context.Context, a *app, goal string, c ofx.Contribution) error {
	if c.Type == model.TransactionWithdraw {
		_, err := a.manager.WithdrawFromGoal(ctx, goal, c.Amount)
		return err
	}
	_, err := a.manager.AddToGoal(ctx, goal, c.Amount)
	return err
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err != nil {
			slog.Warn("No files found matching pattern", "pattern", pattern)
			continue
		}
		files = append(files, pattern)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

// readStatements parses every file, drops lines already seen in an earlier
// file (keyed by account and FITID) and returns the rest oldest first.
func readStatements(ctx context.Context, files []string) ([]ofx.Contribution, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	parser := ofx.NewParser()
	seen := make(map[string]bool)
	var all []ofx.Contribution

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		contributions, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}

		kept := 0
		for _, c := range contributions {
			key := c.Account + "/" + c.FiTID
			if c.FiTID != "" && seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, c)
			kept++
		}

		slog.Info("Processed file",
			"file", filepath.Base(path),
			"lines_found", len(contributions),
			"added", kept,
			"duplicates", len(contributions)-kept)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})
	return all, nil
}
