// Package tools exposes queries over one aggregated bundle as MCP tools.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pfrederiksen/edison-soccer/internal/aggregator"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

// Server identity reported to MCP clients
const (
	ServerName    = "edison-soccer"
	ServerVersion = "0.1.0"
)

var errNoCurrentStats = errors.New("current season stats were not scraped")

type PlayerStatsArgs struct {
	Name string `json:"name" jsonschema:"Player name, case-insensitive (e.g. Ben Okafor)"`
}

type TopScorersArgs struct {
	Limit int    `json:"limit,omitempty" jsonschema:"How many players to return, 1-100 (default 5)"`
	By    string `json:"by,omitempty" jsonschema:"Ranking column: goals, assists or points (default goals)"`
}

type OpponentInfoArgs struct {
	Opponent string `json:"opponent" jsonschema:"Opponent name or part of it (e.g. Metuchen)"`
}

type TeamSummaryArgs struct{}

// Tools answers tool calls from one report
type Tools struct {
	report *aggregator.Report
}

// New creates the tool set over a report
func New(report *aggregator.Report) *Tools {
	return &Tools{report: report}
}

// NewServer creates an MCP server with every tool registered
func NewServer(report *aggregator.Report) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	New(report).Register(server)
	return server
}

// Serve runs the server over stdio until the client disconnects or ctx ends
func Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// Register adds the tools to an MCP server
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_player_stats",
		Description: "Returns a player's current season line from the field player or goalkeeper table",
	}, t.PlayerStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_top_scorers",
		Description: "Ranks current season field players by goals, assists or points, highest first",
	}, t.TopScorers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_opponent_info",
		Description: "Lists this season's fixtures against an opponent with the head-to-head record",
	}, t.OpponentInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team_summary",
		Description: "Returns team totals, record, top scorer, best goalkeeper and the year-over-year comparison",
	}, t.TeamSummary)
}

// PlayerStats handles get_player_stats
func (t *Tools) PlayerStats(ctx context.Context, req *mcp.CallToolRequest, args PlayerStatsArgs) (*mcp.CallToolResult, any, error) {
	stats := t.report.Bundle.CurrentStats
	if stats == nil {
		return toolError(errNoCurrentStats), nil, nil
	}
	if args.Name == "" {
		return toolError(errors.New("name is required")), nil, nil
	}

	lookup := team.FindPlayer(stats, args.Name)
	if !lookup.Found() {
		return toolError(fmt.Errorf("no player named %q in %s", args.Name, stats.Season)), nil, nil
	}

	out := map[string]any{
		"season": stats.Season,
		"name":   args.Name,
	}
	if lookup.Field != nil {
		out["field"] = lookup.Field
	}
	if lookup.Goalie != nil {
		out["goalie"] = lookup.Goalie
		out["saves_per_game"] = team.SavesPerGame(*lookup.Goalie)
	}
	return toolJSON(out), nil, nil
}

// TopScorers handles get_top_scorers
func (t *Tools) TopScorers(ctx context.Context, req *mcp.CallToolRequest, args TopScorersArgs) (*mcp.CallToolResult, any, error) {
	by, err := team.ParseStatKey(args.By)
	if err != nil {
		return toolError(err), nil, nil
	}
	stats := t.report.Bundle.CurrentStats
	if stats == nil {
		return toolError(errNoCurrentStats), nil, nil
	}

	limit := args.Limit
	if limit == 0 {
		limit = team.DefaultTopScorers
	}
	if limit < 1 || limit > team.MaxTopScorers {
		return toolError(fmt.Errorf("invalid limit %d (use 1-%d)", args.Limit, team.MaxTopScorers)), nil, nil
	}

	return toolJSON(map[string]any{
		"season":  stats.Season,
		"by":      by,
		"players": team.TopScorers(stats.FieldPlayers, limit, by),
	}), nil, nil
}

// OpponentInfo handles get_opponent_info
func (t *Tools) OpponentInfo(ctx context.Context, req *mcp.CallToolRequest, args OpponentInfoArgs) (*mcp.CallToolResult, any, error) {
	if args.Opponent == "" {
		return toolError(errors.New("opponent is required")), nil, nil
	}

	games := team.OpponentGames(t.report.Bundle.Fixtures.Games, args.Opponent)
	wins, losses, ties := team.Record(games)

	return toolJSON(map[string]any{
		"opponent": args.Opponent,
		"games":    games,
		"wins":     wins,
		"losses":   losses,
		"ties":     ties,
	}), nil, nil
}

// TeamSummary handles get_team_summary
func (t *Tools) TeamSummary(ctx context.Context, req *mcp.CallToolRequest, args TeamSummaryArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(map[string]any{
		"summary":  team.Summarize(t.report.Bundle),
		"sections": t.report.Sections,
	}), nil, nil
}

func toolJSON(v any) *mcp.CallToolResult {
	b, _ := json.MarshalIndent(v, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
