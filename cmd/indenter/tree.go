package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/indentree/internal/indent"
)

func newTreeCmd(c *cli) *cobra.Command {
	var actions bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the decision tree for the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := c.svc.Root()
			if actions {
				for _, name := range indent.Actions(root) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(indent.Describe(root)); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&actions, "actions", false, "list the distinct actions instead of the tree")
	return cmd
}
