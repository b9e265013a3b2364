package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Resource URI schemes. Screenshot resources are addressed by the fixed
// scheme prefix plus the stored name.
const (
	consoleLogURI    = "console://logs"
	screenshotScheme = "screenshot://"
)

// registerResources exposes the running console log and stored screenshots
// as readable resources.
func (s *Server) registerResources(srv *mcp.Server) {
	srv.AddResource(&mcp.Resource{
		URI:         consoleLogURI,
		Name:        "Browser console log",
		Description: "Console messages emitted by the automated page, oldest first.",
		MIMEType:    "text/plain",
	}, s.readConsoleLog)

	srv.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: screenshotScheme + "{name}",
		Name:        "Stored screenshot",
		Description: "PNG screenshot previously captured with browser_screenshot, by name.",
		MIMEType:    "image/png",
	}, s.readScreenshot)
}

func (s *Server) readConsoleLog(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      consoleLogURI,
			MIMEType: "text/plain",
			Text:     s.manager.Console().Text(),
		}},
	}, nil
}

func (s *Server) readScreenshot(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	name := strings.TrimPrefix(uri, screenshotScheme)
	if name == "" || name == uri {
		return nil, fmt.Errorf("invalid screenshot URI: %q", uri)
	}

	data, err := s.shots.Get(name)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "image/png",
			Blob:     data,
		}},
	}, nil
}
