package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSessionsResource(srv, svc)
	registerSessionTemplate(srv, svc)
}

func registerSessionsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"kammi://sessions",
		"Sessions",
		mcp.WithResourceDescription("Every journal session, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sessions, err := svc.ListSessions(ctx, 0)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"sessions": sessions,
			"count":    len(sessions),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSessionTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"kammi://sessions/{filename}",
		"Session",
		mcp.WithTemplateDescription("The plain text of one session."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		filename := templateArg(request.Params.Arguments, "filename")
		if filename == "" {
			return nil, fmt.Errorf("session filename is required")
		}

		dto, err := svc.ReadSession(filename)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"session": dto})
	})
}

// templateArg reads a URI template variable, which the server may hand over
// as a string or as a list of path segments.
func templateArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			s, _ := v[0].(string)
			return s
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
