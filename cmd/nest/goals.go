package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/nest-egg/internal/cli"
	"github.com/Veraticus/nest-egg/internal/ledger"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/projection"
	"github.com/spf13/cobra"
)

const goalBarWidth = 30

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"goal"},
		Short:   "Create and track savings goals",
	}

	cmd.AddCommand(goalsCreateCmd())
	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsWithdrawCmd())
	cmd.AddCommand(goalsDeleteCmd())
	cmd.AddCommand(goalsHistoryCmd())
	cmd.AddCommand(goalsBadgesCmd())
	cmd.AddCommand(goalsImportCmd())
	return cmd
}

func goalsCreateCmd() *cobra.Command {
	var (
		flags  projectionFlags
		amount string
	)

	cmd := &cobra.Command{
		Use:     "create <name>",
		Short:   "Project a target and start tracking it as a goal",
		Example: `  nest goals create "New car" --amount 15000 --date 2028-03-01 --return 4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.parse()
			if err != nil {
				return err
			}
			target, err := projection.ParseAmount("target amount", amount)
			if err != nil {
				return err
			}

			return withApp(cmd, func(_ context.Context, a *app) error {
				calc := projection.NewCalculator(a.cfg.RiskBands(), a.clock)
				plan, err := calc.RequiredContribution(projection.TargetParams{
					TargetAmount:        target,
					Date:                p.date,
					AnnualReturnPercent: p.ret,
					Risk:                p.risk,
					Interest:            p.interest,
				})
				if err != nil {
					return err
				}

				goal, err := a.manager.TrackPlan(args[0], target, plan)
				if err != nil {
					return err
				}

				writeln(a.out, cli.FormatSuccess(fmt.Sprintf("Tracking %q", goal.Name)))
				writef(a.out, "Save %s per month (%s) for %s.\n",
					a.money.Format(goal.MonthlyNeeded), a.money.Band(plan.Band), plan.TimeLeft)
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&amount, "amount", "", "target amount")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				goals := a.manager.Goals()
				if len(goals) == 0 {
					writeln(a.out, cli.FormatInfo("No goals yet. Create one with `nest goals create`."))
					return nil
				}

				bar := cli.NewGoalBar(goalBarWidth)
				for _, g := range goals {
					writeln(a.out, cli.FormatGoalLine(a.money, g))
					writeln(a.out, "   "+cli.RenderProgress(bar, g.Progress()))
				}
				return nil
			})
		},
	}
}

func goalsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <name> <amount>",
		Short:   "Add money to a goal",
		Example: `  nest goals add "New car" 250`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := projection.ParseAmount("amount", args[1])
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				goal, err := a.manager.AddToGoal(ctx, args[0], amount)
				if err != nil {
					return err
				}
				writeln(a.out, cli.FormatSuccess(fmt.Sprintf("Added %s to %s", a.money.Format(amount), goal.Name)))
				writeln(a.out, cli.FormatGoalLine(a.money, goal))
				return nil
			})
		},
	}
}

func goalsWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "withdraw <name> <amount>",
		Short:   "Take money out of a goal",
		Long:    "Take money out of a goal. Withdrawing more than the balance empties the goal.",
		Example: `  nest goals withdraw "New car" 100`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := projection.ParseAmount("amount", args[1])
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				before, err := a.manager.Goal(args[0])
				if err != nil {
					return err
				}
				goal, err := a.manager.WithdrawFromGoal(ctx, args[0], amount)
				if err != nil {
					return err
				}

				if amount.GreaterThan(before.Saved) {
					writeln(a.out, cli.FormatWarning(fmt.Sprintf("Only %s was saved; the balance is now zero", a.money.Format(before.Saved))))
				}
				writeln(a.out, cli.FormatSuccess(fmt.Sprintf("Withdrew %s from %s", a.money.Format(amount), goal.Name)))
				writeln(a.out, cli.FormatGoalLine(a.money, goal))
				return nil
			})
		},
	}
}

func goalsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal and its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				goal, err := a.manager.Goal(args[0])
				if err != nil {
					return err
				}

				if !yes {
					confirmer := cli.NewConfirmer(cmd.InOrStdin(), a.out)
					prompt := fmt.Sprintf("Delete %q and its %s saved?", goal.Name, a.money.Format(goal.Saved))
					ok, err := confirmer.Confirm(ctx, prompt)
					if err != nil {
						return err
					}
					if !ok {
						writeln(a.out, cli.FormatInfo("Nothing deleted"))
						return nil
					}
				}

				if err := a.manager.DeleteGoal(goal.Name); err != nil {
					return err
				}
				writeln(a.out, cli.FormatSuccess(fmt.Sprintf("Deleted %q", goal.Name)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func goalsHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <name>",
		Short: "Show a goal's transactions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				goal, err := a.manager.Goal(args[0])
				if err != nil {
					return err
				}
				txs, err := a.manager.Transactions(goal.Name)
				if err != nil {
					return err
				}

				writeln(a.out, cli.FormatTitle(goal.Name+" history"))
				if len(txs) == 0 {
					writeln(a.out, cli.SubtleStyle.Render("No transactions yet."))
					return nil
				}
				for _, tx := range ledger.NewestFirst(txs) {
					writef(a.out, "%s  %s\n", cli.FormatDate(tx.Date), a.money.Signed(tx))
				}

				added, withdrawn, err := a.manager.Totals(goal.Name)
				if err != nil {
					return err
				}
				writef(a.out, "\nAdded %s · Withdrawn %s · Balance %s\n",
					a.money.Format(added), a.money.Format(withdrawn), a.money.Format(goal.Saved))
				return nil
			})
		},
	}
}

func goalsBadgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges <name>",
		Short: "Show the badges a goal has earned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				goal, err := a.manager.Goal(args[0])
				if err != nil {
					return err
				}
				earned, err := a.manager.EarnedBadges(goal.Name)
				if err != nil {
					return err
				}

				have := model.NewBadgeSet()
				for _, b := range earned {
					have.Add(b.ID)
				}

				writeln(a.out, cli.FormatTitle(fmt.Sprintf("%s badges (%s saved)", goal.Name, cli.FormatPercent(goal.Progress()))))
				for _, b := range model.DefaultBadges {
					if have.Has(b.ID) {
						writef(a.out, "%s %s\n", cli.BadgeIcon, cli.BoldStyle.Render(b.Title))
						continue
					}
					writef(a.out, "%s %s\n", cli.SubtleStyle.Render("🔒"),
						cli.SubtleStyle.Render(fmt.Sprintf("%s at %s", b.Title, cli.FormatPercent(b.Threshold))))
				}
				return nil
			})
		},
	}
}
