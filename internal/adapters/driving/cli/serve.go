package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/papersum/internal/adapters/driving/mcp"
	"github.com/custodia-labs/papersum/internal/adapters/driving/rest"
	"github.com/custodia-labs/papersum/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP trigger server",
	Long: `Serves the summarisation endpoints over HTTP:

  GET  /                  landing page
  GET  /health            liveness probe
  GET  /summarize_all     summarise every pending paper
  POST /summarize_single  summarise one paper (form field paper_id)
  /mcp                    MCP streamable endpoint (unless --no-mcp)

Prompt templates under the prompts directory are reloaded when edited.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Listen port (default from settings)")
	serveCmd.Flags().Bool("no-mcp", false, "Do not mount the MCP endpoint")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	noMCP, err := cmd.Flags().GetBool("no-mcp")
	if err != nil {
		return fmt.Errorf("getting no-mcp flag: %w", err)
	}
	if port == 0 {
		port, err = configuredPort()
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := openRuntime(ctx, RuntimeOptions{})
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	opts := []rest.Option{rest.WithVersion(version)}
	if !noMCP {
		mcpServer, err := mcp.NewServer(&mcp.Ports{Summarise: rt.Summarise, Papers: rt.Papers})
		if err != nil {
			return err
		}
		opts = append(opts, rest.WithMCPHandler(mcpServer.Handler()))
	}

	server, err := rest.NewServer(rt.Summarise, opts...)
	if err != nil {
		return err
	}

	if rt.Watch != nil {
		go func() {
			if err := rt.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Prompt hot-reload stopped: %v", err)
			}
		}()
	}

	addr := fmt.Sprintf(":%d", port)
	cmd.Printf("Listening on http://localhost%s\n", addr)
	return server.Run(ctx, addr)
}

func configuredPort() (int, error) {
	if settingsService == nil {
		return 0, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return 0, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Server.Port, nil
}
