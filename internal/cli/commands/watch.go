package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dshills/wysiwyg/internal/watch"
)

// rerunOnChange calls run whenever one of paths changes, until ctx is
// done. Errors from run are reported and watching continues.
func rerunOnChange(ctx context.Context, stderr io.Writer, logger *slog.Logger, paths []string, run func() error) error {
	_, _ = fmt.Fprintf(stderr, "Watching %d file(s); press Ctrl-C to stop\n", len(paths))
	err := watch.Run(ctx, paths, func(ev watch.Event) {
		logger.Info("change detected", slog.String("path", ev.Path), slog.String("op", ev.Op.String()))
		if err := run(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}, watch.WithLogger(logger))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
