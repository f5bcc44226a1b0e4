package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/nest-egg/internal/cli"
	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/config"
	"github.com/Veraticus/nest-egg/internal/projection"
	"github.com/Veraticus/nest-egg/internal/service"
	"github.com/Veraticus/nest-egg/internal/storage"
	"github.com/Veraticus/nest-egg/internal/tracker"
	"github.com/spf13/cobra"
)

// app bundles what every goal command needs.
type app struct {
	cfg     *config.Config
	clock   service.Clock
	store   service.GoalStore
	manager *tracker.Manager
	out     io.Writer
	money   cli.Money
}

// withApp opens the configured store, loads every goal and runs fn. Pending
// writes are drained and the store closed afterwards, even when fn fails.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.NewStore(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	out := cmd.OutOrStdout()
	clock := service.SystemClock{}
	manager := tracker.NewManager(store,
		tracker.WithClock(clock),
		tracker.WithNotifier(cli.NewBadgeNotifier(out)),
		tracker.WithPersistTimeout(cfg.Storage.Timeout),
	)

	a := &app{
		cfg:     cfg,
		clock:   clock,
		store:   store,
		manager: manager,
		money:   cli.Money{Symbol: cfg.Currency.Symbol},
		out:     out,
	}
	defer func() {
		err = errors.Join(err, a.close())
	}()

	if err := manager.Load(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

// close drains the persistence queue on a fresh context so that an
// interrupted command still writes what it already changed.
func (a *app) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*a.cfg.Storage.Timeout)
	defer cancel()

	var errs []error
	if err := a.manager.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.manager.PersistError(); err != nil {
		errs = append(errs, common.NewUserError("some changes could not be saved", err))
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}
	return errors.Join(errs...)
}

// projector loads the configuration for the stateless projection commands.
func projector() (*projection.Calculator, cli.Money, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cli.Money{}, err
	}
	return projection.NewCalculator(cfg.RiskBands(), service.SystemClock{}), cli.Money{Symbol: cfg.Currency.Symbol}, nil
}

// parseDate reads a YYYY-MM-DD date as local midnight.
func parseDate(field, s string) (time.Time, error) {
	d, err := time.ParseInLocation(cli.DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, common.NewValidationError(field, fmt.Sprintf("%q is not a date (want %s)", s, cli.DateLayout))
	}
	return d, nil
}

func writeln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func writef(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...)
}
