package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/indentree/internal/config"
	"github.com/dshills/indentree/internal/config/watcher"
)

func newWatchCmd(c *cli) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch files...",
		Short: "Re-indent files whenever they or the configuration change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.watch(cmd, args, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet period before a change is handled")
	return cmd
}

func (c *cli) watch(cmd *cobra.Command, paths []string, debounce time.Duration) error {
	opts := fmtOptions{write: true}
	reformat := func(path string) {
		if _, err := c.fmtFile(cmd, path, opts); err != nil {
			c.logger.Warn("reindent failed", "path", path, "error", err)
		}
	}
	reformatAll := func() {
		for _, p := range paths {
			reformat(p)
		}
	}

	files, err := watcher.New(watcher.WithDebounce(debounce), watcher.WithLogger(c.logger))
	if err != nil {
		return err
	}
	defer files.Stop()

	for _, p := range paths {
		if err := files.Watch(p); err != nil {
			return err
		}
	}
	files.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		reformat(ev.Path)
	})

	if c.cfg.Path != "" {
		reloader, err := watcher.NewReloader(c.cfg.Path, c.loadOpts,
			watcher.WithDebounce(debounce), watcher.WithLogger(c.logger))
		if err != nil {
			return err
		}
		defer reloader.Close()

		reloader.OnReload(func(cfg *config.Config) {
			if err := c.svc.Reconfigure(cfg); err != nil {
				c.logger.Warn("keeping previous indenter", "error", err)
				return
			}
			reformatAll()
		})
	}

	reformatAll()
	files.Start()
	c.logger.Info("watching", "files", len(paths), "config", c.cfg.Path)

	<-cmd.Context().Done()
	return nil
}
