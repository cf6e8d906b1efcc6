package cli

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/julianstephens/riji/internal/constants"
	"github.com/julianstephens/riji/internal/logger"
	"github.com/julianstephens/riji/internal/mcptools"
)

type McpCmd struct{}

// newMCPServer builds the server with every journal tool registered
func newMCPServer(ctx *Context) *server.MCPServer {
	s := server.NewMCPServer(
		constants.AppName,
		constants.Version,
		server.WithToolCapabilities(true),
	)
	mcptools.Register(s, mcptools.NewJournal(ctx.Journal))
	return s
}

// Run serves the journal over stdio until the client disconnects. Nothing
// else may write to stdout meanwhile.
func (c *McpCmd) Run(ctx *Context) error {
	if err := ctx.LoadForWrite(); err != nil {
		return err
	}
	logger.Info("Starting MCP server", "journal", ctx.Store.GetConfigPath(), "entries", ctx.Journal.Len())
	return server.ServeStdio(newMCPServer(ctx))
}
