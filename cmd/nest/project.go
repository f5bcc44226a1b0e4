package main

import (
	"time"

	"github.com/Veraticus/nest-egg/internal/cli"
	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/projection"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project savings without tracking anything",
		Long: `Run a one-off projection.

  target        how much to save each month to reach an amount by a date
  contribution  what a monthly deposit grows to by a date
  retirement    what savings and deposits grow to by retirement age`,
	}

	cmd.AddCommand(projectTargetCmd())
	cmd.AddCommand(projectContributionCmd())
	cmd.AddCommand(projectRetirementCmd())
	return cmd
}

// projectionFlags are shared by the target and contribution projections.
type projectionFlags struct {
	date     string
	ret      string
	risk     string
	interest string
}

func (f *projectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.ret, "return", "0", "expected annual return in percent")
	cmd.Flags().StringVar(&f.risk, "risk", string(model.RiskModerate), "risk tolerance (conservative, moderate, high)")
	cmd.Flags().StringVar(&f.interest, "interest", string(model.InterestCompound), "interest type (compound, simple)")
	_ = cmd.MarkFlagRequired("date")
}

type parsedProjection struct {
	date     time.Time
	risk     model.RiskTolerance
	interest model.InterestType
	ret      decimal.Decimal
}

func (f *projectionFlags) parse() (parsedProjection, error) {
	date, err := parseDate("target date", f.date)
	if err != nil {
		return parsedProjection{}, err
	}
	ret, err := projection.ParsePercent("annual return", f.ret)
	if err != nil {
		return parsedProjection{}, err
	}
	risk, err := model.ParseRiskTolerance(f.risk)
	if err != nil {
		return parsedProjection{}, common.NewValidationError("risk tolerance", err.Error())
	}
	interest, err := model.ParseInterestType(f.interest)
	if err != nil {
		return parsedProjection{}, common.NewValidationError("interest type", err.Error())
	}
	return parsedProjection{date: date, ret: ret, risk: risk, interest: interest}, nil
}

func projectTargetCmd() *cobra.Command {
	var (
		flags  projectionFlags
		amount string
	)

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Monthly deposit needed to reach an amount by a date",
		Example: `  nest project target --amount 12000 --date 2027-06-30
  nest project target --amount 50000 --date 2030-01-01 --return 6 --risk high`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, money, err := projector()
			if err != nil {
				return err
			}
			p, err := flags.parse()
			if err != nil {
				return err
			}
			target, err := projection.ParseAmount("target amount", amount)
			if err != nil {
				return err
			}

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

			out := cmd.OutOrStdout()
			writeln(out, cli.FormatTitle("Target projection"))
			writef(out, "Save %s per month to reach %s by %s.\n",
				cli.BoldStyle.Render(money.Format(plan.MonthlyNeeded)), money.Format(target), cli.FormatDate(plan.Date))
			writef(out, "Range (%s): %s\n", plan.Risk, money.Band(plan.Band))
			writef(out, "Time left: %s (%d monthly deposits)\n", plan.TimeLeft, plan.Months)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&amount, "amount", "", "target amount")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func projectContributionCmd() *cobra.Command {
	var (
		flags   projectionFlags
		monthly string
	)

	cmd := &cobra.Command{
		Use:     "contribution",
		Short:   "Balance reached by depositing a fixed amount every month",
		Example: `  nest project contribution --monthly 300 --date 2028-12-31 --return 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, money, err := projector()
			if err != nil {
				return err
			}
			p, err := flags.parse()
			if err != nil {
				return err
			}
			deposit, err := projection.ParseAmount("monthly contribution", monthly)
			if err != nil {
				return err
			}

			plan, err := calc.ProjectedBalance(projection.ContributionParams{
				MonthlyContribution: deposit,
				Date:                p.date,
				AnnualReturnPercent: p.ret,
				Risk:                p.risk,
				Interest:            p.interest,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writeln(out, cli.FormatTitle("Contribution projection"))
			writef(out, "Depositing %s per month grows to %s by %s.\n",
				money.Format(deposit), cli.BoldStyle.Render(money.Format(plan.FinalAmount)), cli.FormatDate(plan.Date))
			writef(out, "Range (%s): %s\n", plan.Risk, money.Band(plan.Band))
			writef(out, "Time left: %s (%d monthly deposits)\n", plan.TimeLeft, plan.Months)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&monthly, "monthly", "", "monthly contribution")
	_ = cmd.MarkFlagRequired("monthly")
	return cmd
}

func projectRetirementCmd() *cobra.Command {
	var (
		age, retireAge       int
		savings, monthly, ret string
	)

	cmd := &cobra.Command{
		Use:     "retirement",
		Short:   "Balance at retirement from current savings and monthly deposits",
		Example: `  nest project retirement --age 35 --retire-age 65 --savings 20000 --monthly 500 --return 6`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, money, err := projector()
			if err != nil {
				return err
			}
			current, err := projection.ParseAmount("current savings", savings)
			if err != nil {
				return err
			}
			deposit, err := projection.ParseAmount("monthly contribution", monthly)
			if err != nil {
				return err
			}
			annual, err := projection.ParsePercent("annual return", ret)
			if err != nil {
				return err
			}

			plan, err := projection.Retirement(projection.RetirementParams{
				CurrentAge:          age,
				RetireAge:           retireAge,
				CurrentSavings:      current,
				MonthlyContribution: deposit,
				AnnualReturnPercent: annual,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writeln(out, cli.FormatTitle("Retirement projection"))
			writef(out, "At %d you would have %s after %d months.\n",
				retireAge, cli.BoldStyle.Render(money.Format(plan.FutureValue)), plan.Months)
			writef(out, "  from current savings: %s\n", money.Format(plan.FromSavings))
			writef(out, "  from monthly deposits: %s\n", money.Format(plan.FromContributions))
			return nil
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, "current age")
	cmd.Flags().IntVar(&retireAge, "retire-age", 65, "retirement age")
	cmd.Flags().StringVar(&savings, "savings", "0", "current savings")
	cmd.Flags().StringVar(&monthly, "monthly", "0", "monthly contribution")
	cmd.Flags().StringVar(&ret, "return", "0", "expected annual return in percent")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}
