package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an AI assistant can build a
page. The server holds one editing session for its lifetime and exposes
every builder command as a tool, plus these resources:

  pagecraft://document           the page, selection, viewport and history
  pagecraft://templates          the component palette
  pagecraft://site               site branding
  pagecraft://components/{id}    a single component

By default the server communicates over stdio using JSON-RPC. Use --port
to serve HTTP instead; HTTP clients are rate limited.

Examples:
  # Stdio mode (default, for desktop assistants)
  pagecraft mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  pagecraft mcp serve --port 8080 --rate 10

Assistant configuration:
  {
    "mcpServers": {
      "pagecraft": {
        "command": "/path/to/pagecraft",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Float64("rate", mcp.DefaultRateLimit.RequestsPerSecond, "HTTP requests per second (0 = unlimited)")
	mcpServeCmd.Flags().Int("burst", mcp.DefaultRateLimit.BurstSize, "HTTP request burst size")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// buildMCPServer opens a new session and wraps it in an MCP server.
func buildMCPServer() (*mcp.Server, error) {
	templates, err := requireTemplates()
	if err != nil {
		return nil, err
	}
	builder, err := requireBuilder(nil)
	if err != nil {
		return nil, err
	}

	return mcp.NewServer(&mcp.Ports{
		Builder:   builder,
		Templates: templates,
		Site:      services.Site,
	})
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	rps, err := cmd.Flags().GetFloat64("rate")
	if err != nil {
		return fmt.Errorf("getting rate flag: %w", err)
	}
	burst, err := cmd.Flags().GetInt("burst")
	if err != nil {
		return fmt.Errorf("getting burst flag: %w", err)
	}

	server, err := buildMCPServer()
	if err != nil {
		return err
	}

	if port > 0 {
		server.WithRateLimit(mcp.RateLimitConfig{RequestsPerSecond: rps, BurstSize: burst})
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
