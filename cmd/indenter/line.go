package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/indentree/internal/engine/document"
	"github.com/dshills/indentree/internal/indent"
)

func newLineCmd(c *cli) *cobra.Command {
	var (
		line  int
		enter bool
	)

	cmd := &cobra.Command{
		Use:   "line",
		Short: "Re-indent a single line of standard input",
		Long: `Reads a document from standard input, re-indents one line of it and
writes the whole document to standard output. With --enter the line is
treated as freshly created by the Enter key, which continues and may
close block comments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := document.NewFromReader(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			reason := indent.ReasonOther
			if enter {
				reason = indent.ReasonEnterKeyPress
			}

			res, err := c.svc.IndentLine(doc, line-1, reason)
			if err != nil {
				return err
			}
			c.logger.Info("indented line",
				"line", line,
				"action", res.Action,
				"comment", res.TookCommentBranch,
				"changed", res.EditApplied,
			)

			_, err = io.WriteString(cmd.OutOrStdout(), doc.Text())
			return err
		},
	}

	cmd.Flags().IntVarP(&line, "line", "n", 1, "1-based line to indent")
	cmd.Flags().BoolVar(&enter, "enter", false, "indent as if Enter had just created the line")
	return cmd
}
