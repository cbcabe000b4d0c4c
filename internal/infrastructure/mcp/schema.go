package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/felixgeelhaar/mcp-go"
)

// SchemaVersion is the current MCP tool schema version (semver).
const SchemaVersion = "1.0.0"

// DeprecatedField records a field or tool that has been deprecated.
type DeprecatedField struct {
	Tool      string `json:"tool"`
	Field     string `json:"field"`
	Since     string `json:"since"`
	RemovedIn string `json:"removed_in"`
	Migration string `json:"migration"`
}

func deprecatedFields() []DeprecatedField {
	return []DeprecatedField{}
}

type schemaResponse struct {
	SchemaVersion string            `json:"schema_version"`
	ServerVersion string            `json:"server_version"`
	Tools         []string          `json:"tools"`
	Deprecated    []DeprecatedField `json:"deprecated"`
}

func (s *Server) registerSchemaResource() {
	s.mcpServer.Resource("agenthub://schema").
		Name("agenthub://schema").
		Description("MCP tool schema version, tool names and deprecation info").
		MimeType("application/json").
		Handler(func(_ context.Context, _ string, _ map[string]string) (*mcplib.ResourceContent, error) {
			tools := s.mcpServer.Tools()
			names := make([]string, 0, len(tools))
			for _, t := range tools {
				names = append(names, t.Name)
			}
			data, err := json.Marshal(schemaResponse{
				SchemaVersion: SchemaVersion,
				ServerVersion: Version,
				Tools:         names,
				Deprecated:    deprecatedFields(),
			})
			if err != nil {
				return nil, err
			}
			return jsonContent("agenthub://schema", data), nil
		})
}

// registerPlanResource exposes the plan panel state as JSON. Reading it
// without a plan yields {"plan": null}.
func (s *Server) registerPlanResource() {
	s.mcpServer.Resource("agenthub://plan").
		Name("agenthub://plan").
		Description("The current agent plan with task completion").
		MimeType("application/json").
		Handler(func(_ context.Context, _ string, _ map[string]string) (*mcplib.ResourceContent, error) {
			var body any = map[string]any{"plan": nil}
			if view, ok := s.session.PlanView(); ok {
				body = view
			}
			data, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			return jsonContent("agenthub://plan", data), nil
		})
}

func jsonContent(uri string, data []byte) *mcplib.ResourceContent {
	return &mcplib.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}
}
