package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetSettingsTool(srv, svc)
	registerListSessionsTool(srv, svc)
	registerReadSessionTool(srv, svc)
	registerSaveSessionTool(srv, svc)
	registerReportTool(srv, svc)
}

func registerGetSettingsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_settings",
		mcp.WithDescription("Return the writer's name, theme and editor preferences."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Settings()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListSessionsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_sessions",
		mcp.WithDescription("List journal sessions, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of sessions to return. Zero returns all."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Limit int `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		sessions, err := svc.ListSessions(ctx, args.Limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"sessions": sessions,
			"count":    len(sessions),
		})
	})
}

func registerReadSessionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"read_session",
		mcp.WithDescription("Read one session as plain text."),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Session filename; the .html extension may be left off."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filename, err := request.RequireString("filename")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ReadSession(filename)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSaveSessionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_session",
		mcp.WithDescription("Write plain text to a session. Without a filename a new session is named after the current time."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to store, one paragraph per line."),
		),
		mcp.WithString("filename",
			mcp.Description("Existing or new session filename."),
		),
		mcp.WithBoolean("append",
			mcp.Description("Add the text after the session's existing content instead of replacing it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text     string `json:"text"`
			Filename string `json:"filename"`
			Append   bool   `json:"append"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.SaveSession(ctx, args.Filename, args.Text, args.Append)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"report",
		mcp.WithDescription("Summarize recent sessions grouped by day with word counts."),
		mcp.WithNumber("days",
			mcp.Description("How many days back to include. Defaults to 7."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Days int `json:"days"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		result, err := svc.Report(ctx, args.Days)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
