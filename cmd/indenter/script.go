package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/indentree/internal/plugin/lua"
)

func newScriptCmd(c *cli) *cobra.Command {
	var allowRead, allowWrite bool

	cmd := &cobra.Command{
		Use:   "script file.lua",
		Short: "Run a Lua script with the indent module loaded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []lua.StateOption{lua.WithLogger(c.logger)}
			if allowRead {
				opts = append(opts, lua.WithCapabilities(lua.CapabilityFileRead))
			}
			if allowWrite {
				opts = append(opts, lua.WithCapabilities(lua.CapabilityFileWrite))
			}
			return lua.RunScript(cmd.Context(), c.svc, args[0], opts...)
		},
	}

	cmd.Flags().BoolVar(&allowRead, "allow-read", false, "let the script read files")
	cmd.Flags().BoolVar(&allowWrite, "allow-write", false, "let the script write files")
	return cmd
}
