package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type fmtOptions struct {
	write bool
	list  bool
	check bool
}

func newFmtCmd(c *cli) *cobra.Command {
	var opts fmtOptions

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Re-indent files, or standard input when no files are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.fmtStdin(cmd)
			}
			return c.fmtFiles(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to each file")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list files whose indentation would change")
	cmd.Flags().BoolVar(&opts.check, "check", false, "exit with status 1 if any file would change")
	return cmd
}

func (c *cli) fmtStdin(cmd *cobra.Command) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	out, _ := c.svc.Format(string(data))
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func (c *cli) fmtFiles(cmd *cobra.Command, paths []string, opts fmtOptions) error {
	changedAny := false
	for _, path := range paths {
		changed, err := c.fmtFile(cmd, path, opts)
		if err != nil {
			return err
		}
		changedAny = changedAny || changed
	}
	if opts.check && changedAny {
		return errWouldChange
	}
	return nil
}

// fmtFile formats one file and reports whether its text changed.
func (c *cli) fmtFile(cmd *cobra.Command, path string, opts fmtOptions) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	in := string(data)
	out, stats := c.svc.Format(in)
	changed := out != in

	c.logger.Debug("formatted file", "path", path, "changed", stats.Changed, "skipped", stats.Skipped)

	if changed && opts.write {
		if err := writeFile(path, out); err != nil {
			return false, err
		}
	}
	switch {
	case opts.list || opts.check:
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	case !opts.write:
		if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// writeFile replaces path's contents, keeping its permissions.
func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}
