package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dshills/indentree/internal/config"
	"github.com/dshills/indentree/internal/formatter"
	"github.com/dshills/indentree/internal/logging"
)

// errWouldChange reports that --check found a file needing indentation.
var errWouldChange = errors.New("files would be reindented")

// cli holds state shared by every subcommand.
type cli struct {
	configPath string
	width      int
	logLevel   string

	loadOpts []config.Option
	cfg      *config.Config
	logger   *slog.Logger
	svc      *formatter.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "indenter",
		Short: "Re-indent brace-delimited source code",
		Long: `indenter re-indents Java-like source text line by line with a fixed
decision tree of lexical rules: comments, braces, statements, case labels
and else branches. It never parses the code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "configuration file (default: indenter.toml or indenter.yaml in the working directory)")
	root.PersistentFlags().IntVar(&c.width, "width", 2, "spaces per indent level")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newFmtCmd(c),
		newLineCmd(c),
		newTreeCmd(c),
		newWatchCmd(c),
		newScriptCmd(c),
		newVersionCmd(),
	)
	return root
}

// loadOptions turns explicitly set flags into configuration overrides.
func (c *cli) loadOptions(cmd *cobra.Command) []config.Option {
	var opts []config.Option
	if cmd.Flags().Changed("width") {
		opts = append(opts, config.WithOverride("indent.width", c.width))
	}
	if cmd.Flags().Changed("log-level") {
		opts = append(opts, config.WithOverride("log.level", c.logLevel))
	}
	return opts
}

func (c *cli) setup(cmd *cobra.Command) error {
	if c.configPath == "" {
		c.configPath = config.Discover(nil, ".")
	}

	c.loadOpts = c.loadOptions(cmd)
	cfg, err := config.LoadContext(cmd.Context(), c.configPath, c.loadOpts...)
	if err != nil {
		return err
	}
	c.cfg = cfg

	opts := cfg.Logging()
	opts.Writer = cmd.ErrOrStderr()
	c.logger = logging.Setup(opts)
	if cfg.Path != "" {
		c.logger.Debug("configuration loaded", "path", cfg.Path)
	}
	if len(cfg.UnknownSections) > 0 {
		c.logger.Warn("ignoring unknown configuration sections", "path", cfg.Path, "sections", cfg.UnknownSections)
	}

	c.svc, err = formatter.New(cfg, formatter.WithLogger(c.logger))
	return err
}
