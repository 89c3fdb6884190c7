package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/internal/presentation/tui"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// RunWatch previews a document file and re-evaluates it on every save.
// Bursts of writes are collapsed by the session's debounce window.
func RunWatch(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	out := opts.out()
	logger := createLogger(cfg.Debug)

	if opts.Path == "" || opts.Path == "-" {
		return errors.New("watch needs a document file")
	}
	doc, err := readDocument(opts.Path, nil)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		tui.PrintBanner(out, vitrine.Version)
	}

	displays := []ports.Display{
		tui.NewDisplay(out, tui.WithClearScreen(tui.IsTerminal(out) && !cfg.Debug)),
	}
	pub, closePub, err := createPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePub()
	if pub != nil {
		displays = append(displays, pub)
	}

	engine, err := createEngine(opts, logger,
		vitrine.WithDocument(doc),
		vitrine.WithDisplays(displays...),
	)
	if err != nil {
		return err
	}

	logger.Info("Starting Watcher", "path", opts.Path, "debounce", cfg.Debounce)
	if !opts.Quiet {
		printSystemMessage(out, "Watching '%s' (debounce %s).", opts.Path, cfg.Debounce)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		return WatchFile(gctx, opts.Path, doc, engine.Session.Edit, logger)
	})
	err = g.Wait()

	if !opts.Quiet {
		printSystemMessage(out, "Watcher stopped.")
	}
	return err
}

// WatchFile calls edit with the content of path every time it changes on
// disk, until ctx is done. initial is the content already known to the caller;
// identical consecutive contents are not sent again.
func WatchFile(ctx context.Context, path, initial string, edit func(string) error, logger *slog.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often save by renaming a temp file over
	// the original, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	last := initial
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				raw, err := os.ReadFile(abs)
				if err != nil {
					logger.Debug("Document not readable yet", "path", abs, "err", err)
					continue
				}
				content := string(raw)
				if content == last {
					continue
				}
				last = content
				logger.Debug("Document changed", "path", abs, "op", event.Op.String(), "bytes", len(content))
				if err := edit(content); err != nil {
					return err
				}
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				logger.Info("Document removed, waiting for it to reappear", "path", abs)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		}
	}
}
