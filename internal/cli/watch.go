package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/decoplan/internal/log"
)

func init() {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-plan a YAML file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchPlan(ctx, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	RootCmd.AddCommand(cmd)
}

// watchPlan renders path once, then again after each write until ctx ends.
// Plan errors are reported on errOut and do not stop the watch.
func watchPlan(ctx context.Context, path string, out, errOut io.Writer) error {
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	replan := func() {
		if err := planFile(out, path); err != nil {
			log.Warnw("replan failed", "path", path, "error", err)
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}
	replan()

	changed := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}

				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changed:
				log.Debugf("%s changed", path)
				replan()
			}
		}
	})

	return g.Wait()
}
