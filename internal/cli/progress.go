package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// NewGoalBar returns a static progress bar for goal completion.
func NewGoalBar(width int) progress.Model {
	return progress.New(
		progress.WithGradient(string(InfoColor), string(PrimaryColor)),
		progress.WithWidth(width),
	)
}

// RenderProgress draws ratio as a bar, clamped to [0, 1].
func RenderProgress(bar progress.Model, ratio decimal.Decimal) string {
	f, _ := ratio.Float64()
	switch {
	case f < 0:
		f = 0
	case f > 1:
		f = 1
	}
	return bar.ViewAs(f)
}

// NewImportBar creates the progress bar shown while applying statement lines.
func NewImportBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
