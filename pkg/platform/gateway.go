package platform

import (
	"context"
	"maps"
	"slices"
	"strings"
)

// ToolSpec describes a tool to publish.
type ToolSpec struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        ToolType          `json:"type"`
	Scopes      []string          `json:"scopes"`
	Config      map[string]string `json:"config"`
}

// Gateway publishes tools to agents over MCP.
type Gateway struct{ c *Client }

// PublishTool registers a tool and assigns its gateway endpoint.
func (g *Gateway) PublishTool(ctx context.Context, spec ToolSpec) (Response[GatewayTool], error) {
	if strings.TrimSpace(spec.Name) == "" {
		return Response[GatewayTool]{}, invalid("tool name is required")
	}
	if spec.Type == "" {
		spec.Type = ToolOpenAPI
	}
	return invoke(ctx, g.c, "gateway.publish_tool", func() (GatewayTool, error) {
		return g.register(GatewayTool{
			ID:          g.c.newID("tool"),
			Name:        spec.Name,
			Description: spec.Description,
			Type:        spec.Type,
			MCPEndpoint: "gateway://" + slug(spec.Name) + "/v1",
			Scopes:      nonNil(spec.Scopes),
			Config:      cloneConfig(spec.Config),
			Status:      StatusPublished,
			CreatedAt:   g.c.now(),
		}), nil
	})
}

// ImportOpenAPI validates an OpenAPI document (JSON or YAML) and publishes
// it as a tool named after its info title.
func (g *Gateway) ImportOpenAPI(ctx context.Context, doc string, config map[string]string) (Response[GatewayTool], error) {
	parsed, err := parseOpenAPI(doc)
	if err != nil {
		return Response[GatewayTool]{Errors: []string{err.Error()}}, err
	}
	return invoke(ctx, g.c, "gateway.import_openapi", func() (GatewayTool, error) {
		description := parsed.Description
		if description == "" {
			description = "Tool imported from OpenAPI specification"
		}
		return g.register(GatewayTool{
			ID:          g.c.newID("tool-openapi"),
			Name:        parsed.Title,
			Description: description,
			Type:        ToolOpenAPI,
			MCPEndpoint: "gateway://" + slug(parsed.Title) + "/v1",
			Scopes:      []string{"read", "write"},
			Config:      cloneConfig(config),
			Status:      StatusPublished,
			CreatedAt:   g.c.now(),
		}), nil
	})
}

// ConfigureScopes replaces the scopes of a published tool.
func (g *Gateway) ConfigureScopes(ctx context.Context, toolID string, scopes []string) (Response[bool], error) {
	g.c.mu.RLock()
	found := slices.ContainsFunc(g.c.tools, func(t GatewayTool) bool { return t.ID == toolID })
	g.c.mu.RUnlock()
	if !found {
		return Response[bool]{}, &NotFoundError{Kind: "tool", ID: toolID}
	}
	return invoke(ctx, g.c, "gateway.configure_scopes", func() (bool, error) {
		g.c.mu.Lock()
		defer g.c.mu.Unlock()
		for i := range g.c.tools {
			if g.c.tools[i].ID == toolID {
				g.c.tools[i].Scopes = nonNil(scopes)
			}
		}
		return true, nil
	})
}

// ListTools returns every published tool.
func (g *Gateway) ListTools(ctx context.Context) (Response[[]GatewayTool], error) {
	return invoke(ctx, g.c, "gateway.list_tools", func() ([]GatewayTool, error) {
		g.c.mu.RLock()
		defer g.c.mu.RUnlock()
		return slices.Clone(g.c.tools), nil
	})
}

func (g *Gateway) register(t GatewayTool) GatewayTool {
	g.c.mu.Lock()
	g.c.tools = append(g.c.tools, t)
	g.c.mu.Unlock()
	return t
}

func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

func cloneConfig(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}
