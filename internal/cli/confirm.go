package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrInputTerminated is returned when input ends before an answer is given.
var ErrInputTerminated = errors.New("input terminated")

// Confirmer asks yes/no questions on a terminal.
type Confirmer struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewConfirmer creates a confirmer reading answers from reader.
func NewConfirmer(reader io.Reader, writer io.Writer) *Confirmer {
	return &Confirmer{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Confirm asks prompt until the user answers yes or no. An empty answer is no.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		if _, err := fmt.Fprintf(c.writer, "%s", FormatPrompt(prompt+" [y/N]")); err != nil {
			return false, fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := c.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, ErrInputTerminated
			}
			return false, err
		}

		switch strings.ToLower(input) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}

		if _, err := fmt.Fprintln(c.writer, FormatError("Please answer y or n.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}
