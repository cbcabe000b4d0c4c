package mcp

import (
	"encoding/json"
	"strings"

	mcplib "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/schema"
)

// OpenAPISpec is the subset of OpenAPI 3.0 the tool document needs.
type OpenAPISpec struct {
	OpenAPI    string              `json:"openapi"`
	Info       OpenAPIInfo         `json:"info"`
	Servers    []OpenAPIServer     `json:"servers,omitempty"`
	Tags       []Tag               `json:"tags,omitempty"`
	Paths      map[string]PathItem `json:"paths"`
	Components Components          `json:"components"`
}

type OpenAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type OpenAPIServer struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PathItem struct {
	Post *Operation `json:"post,omitempty"`
}

type Operation struct {
	OperationID string              `json:"operationId"`
	Summary     string              `json:"summary,omitempty"`
	Tags        []string            `json:"tags"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type MediaType struct {
	Schema any `json:"schema"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type Components struct {
	Schemas map[string]any `json:"schemas"`
}

// toolTags groups tools by name prefix. The first matching prefix wins.
var toolTags = []struct {
	prefix string
	tag    Tag
}{
	{"chat_", Tag{Name: "chat", Description: "Conversation with the planning assistant"}},
	{"plan_", Tag{Name: "plan", Description: "Plan panel: progress, task completion and objective"}},
	{"platform_", Tag{Name: "platform", Description: "Read-only views of the agent platform"}},
	{"", Tag{Name: "commands", Description: "Slash command catalog"}},
}

func tagFor(tool string) string {
	for _, t := range toolTags {
		if strings.HasPrefix(tool, t.prefix) {
			return t.tag.Name
		}
	}
	return "commands"
}

const errorSchemaRef = "#/components/schemas/ToolError"

// OpenAPI returns the OpenAPI 3.0 JSON document for this server. baseURL
// may be empty.
func (s *Server) OpenAPI(baseURL string) ([]byte, error) {
	return GenerateOpenAPI(s.mcpServer, baseURL)
}

// GenerateOpenAPI maps each registered tool to POST /tools/{name}. A
// non-empty baseURL is listed as the document's server.
func GenerateOpenAPI(srv *mcplib.Server, baseURL string) ([]byte, error) {
	tools := srv.Tools()
	errorBody := map[string]MediaType{
		"application/json": {Schema: map[string]any{"$ref": errorSchemaRef}},
	}

	paths := make(map[string]PathItem, len(tools))
	for _, t := range tools {
		op := Operation{
			OperationID: t.Name,
			Summary:     t.Description,
			Tags:        []string{tagFor(t.Name)},
			Responses: map[string]Response{
				"200": {
					Description: "Tool result as JSON text",
					Content: map[string]MediaType{
						"application/json": {Schema: map[string]any{"type": "object"}},
					},
				},
				"400": {Description: "The tool rejected the arguments", Content: errorBody},
				"409": {Description: "The assistant is still composing a reply", Content: errorBody},
			},
		}
		if hasProperties(t.InputSchema) {
			op.RequestBody = &RequestBody{
				Required: true,
				Content: map[string]MediaType{
					"application/json": {Schema: t.InputSchema},
				},
			}
		}
		paths["/tools/"+t.Name] = PathItem{Post: &op}
	}

	doc := OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: OpenAPIInfo{
			Title:       "Agent Hub MCP API",
			Description: "Generated from the Agent Hub MCP tool registrations.",
			Version:     SchemaVersion,
		},
		Paths: paths,
		Components: Components{Schemas: map[string]any{
			"ToolError": map[string]any{
				"type":     "object",
				"required": []string{"message"},
				"properties": map[string]any{
					"message": map[string]any{"type": "string"},
				},
			},
		}},
	}
	for _, t := range toolTags {
		doc.Tags = append(doc.Tags, t.tag)
	}
	if baseURL != "" {
		doc.Servers = []OpenAPIServer{{URL: baseURL, Description: "Agent Hub MCP over HTTP"}}
	}

	return json.MarshalIndent(doc, "", "  ")
}

// hasProperties reports whether a JSON Schema declares at least one
// property. Tools registered through the builder carry a *schema.Schema;
// hand-written schemas arrive as maps.
func hasProperties(s any) bool {
	switch v := s.(type) {
	case *schema.Schema:
		return v != nil && len(v.Properties) > 0
	case map[string]any:
		props, ok := v["properties"].(map[string]any)
		return ok && len(props) > 0
	default:
		return false
	}
}
