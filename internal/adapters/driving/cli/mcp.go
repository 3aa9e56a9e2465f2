package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/papersum/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can trigger
summarisation and read the paper catalogue.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  papersum mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  papersum mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "papersum": {
        "command": "/path/to/papersum",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	rt, err := openRuntime(cmd.Context(), RuntimeOptions{})
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	server, err := mcp.NewServer(&mcp.Ports{
		Summarise: rt.Summarise,
		Papers:    rt.Papers,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		// Stdout is the protocol channel only in stdio mode.
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
