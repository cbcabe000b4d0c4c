package platform

import (
	"context"
	"slices"
)

// AgentSpec describes an agent to create.
type AgentSpec struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Framework   Framework `json:"framework"`
	Model       string    `json:"model"`
	Tools       []ToolRef `json:"tools,omitempty"`
	MemoryID    string    `json:"memory_id,omitempty"`
}

// Agents manages agent definitions.
type Agents struct{ c *Client }

// Create registers a draft agent with an initial 1.0.0 version.
func (a *Agents) Create(ctx context.Context, spec AgentSpec) (Response[Agent], error) {
	switch spec.Framework {
	case FrameworkLangGraph, FrameworkCrewAI, FrameworkStrands, FrameworkCustom:
	case "":
		spec.Framework = FrameworkLangGraph
	default:
		return Response[Agent]{}, invalid("unknown framework %q", spec.Framework)
	}

	return invoke(ctx, a.c, "agents.create", func() (Agent, error) {
		now := a.c.now()
		id := a.c.newID("agent")
		agent := Agent{
			ID:          id,
			Name:        spec.Name,
			Description: spec.Description,
			Framework:   spec.Framework,
			Model:       spec.Model,
			Tools:       slices.Clone(spec.Tools),
			MemoryID:    spec.MemoryID,
			RAGIndexIDs: []string{},
			Policies:    Policies{MaxTokens: 4000},
			Versions: []AgentVersion{{
				ID:        a.c.newID("v"),
				AgentID:   id,
				Semver:    "1.0.0",
				Status:    StatusDraft,
				CreatedAt: now,
			}},
			Status:    StatusDraft,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if agent.Name == "" {
			agent.Name = "New Agent"
		}
		if agent.Model == "" {
			agent.Model = "anthropic.claude-3-5"
		}
		if agent.Tools == nil {
			agent.Tools = []ToolRef{}
		}

		a.c.mu.Lock()
		a.c.agents = append(a.c.agents, agent)
		a.c.mu.Unlock()
		return agent, nil
	})
}

// List returns every registered agent.
func (a *Agents) List(ctx context.Context) (Response[[]Agent], error) {
	return invoke(ctx, a.c, "agents.list", func() ([]Agent, error) {
		a.c.mu.RLock()
		defer a.c.mu.RUnlock()
		return slices.Clone(a.c.agents), nil
	})
}
