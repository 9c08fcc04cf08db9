// Package server exposes the parsed workspace model over MCP so editor
// tooling can scan and query it without running Bazel.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dvolkhin/bazelproj/internal/buildfile"
	"github.com/dvolkhin/bazelproj/internal/config"
	"github.com/dvolkhin/bazelproj/internal/project"
	"github.com/dvolkhin/bazelproj/internal/render"
	"github.com/dvolkhin/bazelproj/internal/workspace"
)

// Server wraps the MCP server and connects it to the workspace engine.
type Server struct {
	mcp *mcp.Server
	eng *workspace.Engine
	cfg *config.Config
}

// New creates a new MCP server wired to the given engine.
func New(eng *workspace.Engine, cfg *config.Config) (*Server, error) {
	s := &Server{
		eng: eng,
		cfg: cfg,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "bazelproj",
		Version: "0.1.0",
	}, nil)

	s.mcp = mcpServer
	s.registerResources()
	s.registerTools()

	return s, nil
}

// Run starts the MCP server on the stdio transport.
func (s *Server) Run(ctx context.Context) error {
	log.Println("[server] starting MCP server on stdio transport")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// registerResources adds MCP resources for the workspace model.
func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         "bazel://workspace/summary",
		Name:        "Workspace Summary",
		Description: "Markdown overview of the scanned workspace: packages, targets, schemes, and diagnostics",
		MIMEType:    "text/markdown",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		snap := s.eng.Snapshot()
		if snap == nil {
			return nil, fmt.Errorf("no scan available (run scan_workspace first)")
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, Text: render.Summary(snap), MIMEType: "text/markdown"},
			},
		}, nil
	})

	s.mcp.AddResource(&mcp.Resource{
		URI:         "bazel://workspace/model",
		Name:        "Workspace Model",
		Description: "The full parsed workspace snapshot as JSON",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		snap := s.eng.Snapshot()
		if snap == nil {
			return nil, fmt.Errorf("no scan available (run scan_workspace first)")
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling snapshot: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, Text: string(data), MIMEType: "application/json"},
			},
		}, nil
	})
}

// scanWorkspaceArgs are the arguments for the scan_workspace tool.
type scanWorkspaceArgs struct {
	Root string `json:"root,omitempty" jsonschema:"Workspace root to scan. Defaults to the configured workspace."`
}

// listTargetsArgs are the arguments for the list_targets tool.
type listTargetsArgs struct {
	Kind      string `json:"kind,omitempty" jsonschema:"Filter by target kind: library, test, or binary"`
	Name      string `json:"name,omitempty" jsonschema:"Filter by name using substring match"`
	TestsOnly bool   `json:"tests_only,omitempty" jsonschema:"Return only test targets"`
}

// parseBuildFileArgs are the arguments for the parse_build_file tool.
type parseBuildFileArgs struct {
	Text string `json:"text" jsonschema:"required,Full contents of one BUILD file"`
	Path string `json:"path,omitempty" jsonschema:"Filesystem path of the file, used only for label derivation"`
}

// targetDepsArgs are the arguments for the target_deps tool.
type targetDepsArgs struct {
	Label    string `json:"label" jsonschema:"required,Fully-qualified build label, e.g. //Packages/Feed:Feed"`
	Reverse  bool   `json:"reverse,omitempty" jsonschema:"Return transitive dependents instead of direct dependencies"`
	MaxDepth int    `json:"max_depth,omitempty" jsonschema:"Depth limit for reverse traversal (default 10)"`
}

// registerTools adds MCP tools for scanning and querying the model.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "scan_workspace",
		Description: "Scan a Bazel workspace: discover BUILD files, parse them into targets, schemes, and configurations, and report diagnostics.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args scanWorkspaceArgs) (*mcp.CallToolResult, any, error) {
		snap, err := s.eng.Scan(ctx, args.Root)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil, nil
		}

		summary := fmt.Sprintf(
			"Scan finished.\n\n"+
				"- Workspace: %s\n"+
				"- BUILD files: %d\n"+
				"- Targets: %d (+%d test targets)\n"+
				"- Schemes: %d\n"+
				"- Diagnostics: %d\n"+
				"- Cache: %d hits / %d misses\n"+
				"- Duration: %s\n\n"+
				"Use the bazel://workspace/summary resource for the full overview.",
			snap.Meta.Workspace,
			snap.Meta.BuildFiles,
			snap.Meta.Targets,
			snap.Meta.TestTargets,
			snap.Meta.Schemes,
			len(snap.Diagnostics),
			snap.Meta.CacheHits,
			snap.Meta.CacheMisses,
			snap.Meta.Duration,
		)

		return textResult(summary), nil, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_targets",
		Description: "List targets from the last workspace scan, filtered by kind, name substring, or test-only.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listTargetsArgs) (*mcp.CallToolResult, any, error) {
		index := s.eng.Index()
		if index.TargetCount() == 0 {
			return errorResult("No targets available. Run scan_workspace first."), nil, nil
		}

		results := index.Query(project.TargetKind(args.Kind), args.Name, args.TestsOnly)

		truncated := false
		if len(results) > 200 {
			results = results[:200]
			truncated = true
		}

		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to marshal results: %v", err)), nil, nil
		}

		text := string(data)
		if truncated {
			text += fmt.Sprintf("\n\n... (showing 200 of %d targets, refine your query)", index.TargetCount())
		}
		return textResult(text), nil, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_schemes",
		Description: "List Xcode schemes extracted from the last workspace scan.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		schemes := s.eng.Index().Schemes()
		if len(schemes) == 0 {
			return errorResult("No schemes available. Run scan_workspace first."), nil, nil
		}
		data, err := json.MarshalIndent(schemes, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to marshal schemes: %v", err)), nil, nil
		}
		return textResult(string(data)), nil, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "parse_build_file",
		Description: "Parse the given BUILD file text into targets, schemes, and configurations without touching the workspace or the cache.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args parseBuildFileArgs) (*mcp.CallToolResult, any, error) {
		result := buildfile.Parse(args.Text, args.Path)
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to marshal result: %v", err)), nil, nil
		}
		return textResult(string(data)), nil, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "target_deps",
		Description: "Show a target's direct dependencies, or everything that transitively depends on it.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args targetDepsArgs) (*mcp.CallToolResult, any, error) {
		if args.Label == "" {
			return errorResult("label is required"), nil, nil
		}
		graph := s.eng.Graph()
		if graph.NodeCount() == 0 {
			return errorResult("No targets available. Run scan_workspace first."), nil, nil
		}
		if _, ok := graph.Node(args.Label); !ok {
			return errorResult(fmt.Sprintf("No target with label %q", args.Label)), nil, nil
		}

		var labels []string
		if args.Reverse {
			labels = graph.Dependents(args.Label, args.MaxDepth)
		} else {
			labels = graph.DependenciesOf(args.Label)
		}

		data, err := json.MarshalIndent(labels, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to marshal labels: %v", err)), nil, nil
		}
		return textResult(string(data)), nil, nil
	})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
