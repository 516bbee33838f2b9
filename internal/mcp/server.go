// Package mcp exposes the humor engine over MCP for introspection and
// manual triggering: list rules, read recent outcomes and the dedup
// window, fire a delivery.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Phazzie/tabbymctabface/internal/humor"
	"github.com/Phazzie/tabbymctabface/internal/rules"
	"github.com/Phazzie/tabbymctabface/internal/tabs"
)

// NewServer builds the MCP server over the orchestrator and registry.
func NewServer(orc *humor.Orchestrator, registry *rules.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		"tabby-humor",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("List the registered easter-egg rules in evaluation order, with tier and priority."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		type ruleView struct {
			ID       string `json:"id"`
			Type     string `json:"type"`
			Tier     string `json:"tier"`
			Priority int    `json:"priority"`
		}
		var out []ruleView
		for _, r := range registry.All() {
			out = append(out, ruleView{ID: r.ID, Type: r.Type, Tier: string(r.Tier), Priority: r.Priority()})
		}
		return jsonResult(out)
	})

	s.AddTool(mcp.NewTool("recent_outcomes",
		mcp.WithDescription("Show recent delivery outcomes, newest last."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum outcomes to return. Default: 10"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		limit := 10
		if n, ok := args["limit"].(float64); ok && n > 0 {
			limit = int(n)
		}
		return jsonResult(orc.Recent(limit))
	})

	s.AddTool(mcp.NewTool("dedup_history",
		mcp.WithDescription("Show the recently-delivered quip window and the current cooldown."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]any{
			"history":          orc.History(),
			"cooldown_seconds": orc.Cooldown().Seconds(),
		})
	})

	s.AddTool(mcp.NewTool("deliver",
		mcp.WithDescription("Fire a manual humor trigger and return its outcome."),
		mcp.WithString("kind",
			mcp.Description("Trigger kind: tab_opened, tab_closed, chance_close, group_created, group_removed, milestone, ambient. Default: ambient"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		kind := tabs.EventAmbient
		if k, ok := args["kind"].(string); ok && k != "" {
			kind = tabs.EventKind(k)
		}
		out := orc.Deliver(ctx, tabs.Event{Kind: kind, At: time.Now()})
		return jsonResult(out)
	})

	return s
}

// Serve runs the server over stdio until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
