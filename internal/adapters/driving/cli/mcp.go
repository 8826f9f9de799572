package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/adapters/driving/mcp"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

var mcpDBPath string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query
7shifts. The server exposes read-only tools for companies, locations,
users, shifts, time punches and daily sales and labor, plus the local
sync history as a resource.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  7shifts mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  7shifts mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "7shifts": {
        "command": "/path/to/7shifts",
        "args": ["mcp", "serve"],
        "env": {"ACCESS_TOKEN_7SHIFTS": "..."}
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpDBPath, "db", "", "sync database for the sync history resource (default from config)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Workforce: workforceService,
		Location:  dateLocation(),
	}

	if openSync != nil {
		path := mcpDBPath
		if path == "" {
			if settings, err := syncSettings(); err == nil {
				path = settings.Database.Path
			}
		}
		session, err := openSync(path, false)
		if err != nil {
			logger.Warn("sync history unavailable: %v", err)
		} else {
			defer closeSession(session) //nolint:errcheck
			ports.Sync = session.Orchestrator
		}
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
