package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/nest-egg/internal/model"
)

// BadgeNotifier prints a celebration line when a goal earns a badge.
type BadgeNotifier struct {
	writer io.Writer
}

// NewBadgeNotifier creates a notifier writing to w.
func NewBadgeNotifier(w io.Writer) *BadgeNotifier {
	return &BadgeNotifier{writer: w}
}

// BadgeEarned implements service.Notifier.
func (n *BadgeNotifier) BadgeEarned(_ context.Context, goal model.Goal, badge model.Badge) {
	msg := fmt.Sprintf("%s %s unlocked for %s (%s saved)",
		BadgeIcon,
		BoldStyle.Render(badge.Title),
		goal.Name,
		FormatPercent(badge.Threshold))

	if _, err := fmt.Fprintln(n.writer, SuccessStyle.Render(msg)); err != nil {
		slog.Warn("Failed to write badge notification", "error", err)
	}
}
