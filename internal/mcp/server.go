package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vijay-prabhu/resumescan/internal/analyzer"
	"github.com/vijay-prabhu/resumescan/internal/database"
	"github.com/vijay-prabhu/resumescan/internal/document"
)

// Server exposes resume analysis as MCP tools over stdio
type Server struct {
	analyzer *analyzer.Analyzer
	loader   *document.Loader
	db       *database.DB // nil when history is disabled
	server   *mcpsdk.Server
}

// New creates a new MCP server. db may be nil.
func New(a *analyzer.Analyzer, loader *document.Loader, db *database.DB, version string) *Server {
	s := &Server{
		analyzer: a,
		loader:   loader,
		db:       db,
		server: mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    "resumescan",
			Version: version,
		}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Run serves requests on stdin/stdout until the client disconnects or ctx ends
func (s *Server) Run(ctx context.Context) error {
	slog.Info("mcp server starting", "transport", "stdio", "history", s.db != nil)
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	readOnly := &mcpsdk.ToolAnnotations{ReadOnlyHint: true}

	mcpsdk.AddTool(s.server, &mcpsdk.Tool{
		Name:        toolAnalyze,
		Description: "Score a resume against a job description. Returns a 0-100 match score, missing keywords grouped into technical, analytical and soft skills, formatting feedback, recommendations and a plain text report.",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, in AnalyzeInput) (*mcpsdk.CallToolResult, *AnalyzeOutput, error) {
		out, err := s.analyzeResume(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})

	mcpsdk.AddTool(s.server, &mcpsdk.Tool{
		Name:        toolExtract,
		Description: "Extract the plain text of a resume document exactly as an applicant tracking system would read it.",
		Annotations: readOnly,
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, in ExtractInput) (*mcpsdk.CallToolResult, *ExtractOutput, error) {
		out, err := s.extractResumeText(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})

	mcpsdk.AddTool(s.server, &mcpsdk.Tool{
		Name:        toolTitles,
		Description: "Suggest job titles that fit the keywords found in a resume.",
		Annotations: readOnly,
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, in TitlesInput) (*mcpsdk.CallToolResult, *TitlesOutput, error) {
		out, err := s.suggestJobTitles(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})

	mcpsdk.AddTool(s.server, &mcpsdk.Tool{
		Name:        toolList,
		Description: "List previous analyses, newest first.",
		Annotations: readOnly,
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, in ListInput) (*mcpsdk.CallToolResult, *ListOutput, error) {
		out, err := s.listAnalyses(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func (s *Server) registerResources() {
	s.server.AddResource(&mcpsdk.Resource{
		URI:         summaryURI,
		Name:        "Analysis History Summary",
		Description: "Aggregate scores and the keywords most often missing across saved analyses",
		MIMEType:    "text/plain",
	}, func(ctx context.Context, _ *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
		text, err := s.historySummary(ctx)
		if err != nil {
			return nil, err
		}
		return &mcpsdk.ReadResourceResult{
			Contents: []*mcpsdk.ResourceContents{{
				URI:      summaryURI,
				MIMEType: "text/plain",
				Text:     text,
			}},
		}, nil
	})
}
