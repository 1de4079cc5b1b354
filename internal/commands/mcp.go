package commands

import (
	"github.com/spf13/cobra"

	"github.com/moasq/lk/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:    "mcp",
	Short:  "Run the MCP server over stdio",
	Long:   "Starts an MCP server over stdio exposing the scripts under the current directory as list_functions and run_function tools.",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return mcpserver.Run(cmd.Context(), mcpserver.Options{
			Root:    ".",
			Ignore:  a.ignoreList(),
			Logger:  a.logger,
			Version: Version,
		})
	},
}
