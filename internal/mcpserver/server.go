// Package mcpserver exposes lk's script discovery and function runner to
// MCP clients over stdio.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configures the tools.
type Options struct {
	// Root is the directory searched when a call does not name one.
	Root string
	// Ignore lists directory names skipped during discovery.
	Ignore []string
	Logger *slog.Logger
	// Version is reported to clients.
	Version string
}

// NewServer builds the MCP server with lk's tools registered.
func NewServer(opts Options) *mcp.Server {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	h := &handlers{opts: opts}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "lk",
			Version: opts.Version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_functions",
		Description: "List the executable scripts under a directory and the shell functions each one defines, with their comments. Functions whose names start with an underscore are private and not listed.",
	}, h.listFunctions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_function",
		Description: "Run one function from a script found by list_functions and return its combined output and exit status. Example: run_function(script: \"release.sh\", function: \"build\", args: \"--target 'linux amd64'\")",
	}, h.runFunction)

	return server
}

// Run serves the tools over stdio until the client disconnects or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	return NewServer(opts).Run(ctx, &mcp.StdioTransport{})
}
