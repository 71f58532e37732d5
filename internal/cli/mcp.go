package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumescan/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants score resumes, extract resume text, suggest job
titles and browse your analysis history.

Add to your MCP client configuration:

{
  "mcpServers": {
    "resumescan": {
      "command": "/path/to/resumescan",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	// Check if MCP is enabled
	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	a, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	db, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	server := mcp.New(a, newLoader(cfg), db, version)

	// Handle interrupt
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
