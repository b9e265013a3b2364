// Package server exposes the browser actions and the DOM extraction core
// over the Model Context Protocol. Each tool is an independent operation
// with a JSON-schema-described input; results are either content items
// (text and/or base64 image) or an error payload with a human-readable
// message.
package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pagehand/pagehand/pkg/browser"
	"github.com/pagehand/pagehand/pkg/config"
	"github.com/pagehand/pagehand/pkg/logging"
)

// Server wires the browser manager, screenshot store and extraction core
// into one MCP server.
type Server struct {
	cfg     config.Config
	manager *browser.Manager
	shots   *browser.ScreenshotStore
	log     *logging.Logger
}

// New creates a server around an existing browser manager.
func New(cfg config.Config, manager *browser.Manager, log *logging.Logger) *Server {
	return &Server{
		cfg:     cfg,
		manager: manager,
		shots:   browser.NewScreenshotStore(),
		log:     log,
	}
}

// Build assembles the MCP server with all tools and resources registered.
func (s *Server) Build(version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "pagehand",
		Version: version,
	}, nil)

	s.registerTools(srv)
	s.registerResources(srv)
	return srv
}

// Run serves MCP over stdio until the context is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context, version string) error {
	srv := s.Build(version)
	s.log.Infof("serving MCP over stdio (version %s)", version)
	return srv.Run(ctx, &mcp.StdioTransport{})
}

// errorResult turns a failure into a failed-call payload. Action failures
// never crash the host process.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// textResult wraps a single text content item.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
