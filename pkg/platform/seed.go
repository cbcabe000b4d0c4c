package platform

import "time"

const (
	seedAgentID  = "agent-001"
	seedMemoryID = "mem-001"
	runtimeHost  = "https://runtime.agentcore.aws/"
	runtimeARN   = "arn:aws:agentcore:us-east-1:123456789012:runtime/"
)

func (c *Client) seed() {
	now := c.now()
	deployed := now

	c.agents = []Agent{{
		ID:          seedAgentID,
		Name:        "Agente Cobrança",
		Description: "Agente especializado em processos de cobrança e relacionamento com cliente",
		Framework:   FrameworkLangGraph,
		Model:       "anthropic.claude-3-5",
		Tools: []ToolRef{
			{ID: "crm-openapi", MCPEndpoint: "gateway://crm/v1", Scopes: []string{"read:clients", "write:notes"}},
			{ID: "slack-notify", MCPEndpoint: "gateway://slack/postMessage", Scopes: []string{"chat:write"}},
		},
		MemoryID:    seedMemoryID,
		RAGIndexIDs: []string{"idx-001"},
		Policies:    Policies{PIIMasking: true, MaxTokens: 4000},
		Versions: []AgentVersion{{
			ID:          "v-001",
			AgentID:     seedAgentID,
			Semver:      "1.0.0",
			Status:      StatusDeployed,
			RuntimeARN:  runtimeARN + seedAgentID,
			EndpointURL: runtimeHost + seedAgentID,
			CreatedAt:   now,
			DeployedAt:  &deployed,
		}},
		Status:    StatusDeployed,
		CreatedAt: now,
		UpdatedAt: now,
	}}

	c.tools = []GatewayTool{
		{
			ID:          "tool-001",
			Name:        "CRM API",
			Description: "Customer relationship management system integration",
			Type:        ToolOpenAPI,
			MCPEndpoint: "gateway://crm/v1",
			Scopes:      []string{"read:clients", "write:notes"},
			Config:      map[string]string{"base_url": "https://api.crm.com"},
			Status:      StatusPublished,
			CreatedAt:   now,
		},
		{
			ID:          "tool-002",
			Name:        "Slack Notifier",
			Description: "Send notifications to Slack channels",
			Type:        ToolSaaS,
			MCPEndpoint: "gateway://slack/postMessage",
			Scopes:      []string{"chat:write"},
			Config:      map[string]string{"webhook": "https://hooks.slack.com/..."},
			Status:      StatusPublished,
			CreatedAt:   now,
		},
	}

	c.memories = []MemoryResource{{
		ID:               seedMemoryID,
		Name:             "Cobrança Memory",
		Strategies:       []string{"shortTerm", "longTerm"},
		Retention:        RetentionPolicy{Days: 30, AutoSummary: true},
		Status:           StatusActive,
		AssociatedAgents: []string{seedAgentID},
		CreatedAt:        now,
	}}
}

func seedObservation(agentID string, now time.Time) Observation {
	done := now
	return Observation{
		ID:        "obs-001",
		AgentID:   agentID,
		SessionID: "session-001",
		UserID:    "user-123",
		Steps: []ObservationStep{
			{
				ID:         "step-001",
				Type:       StepLLMCall,
				Name:       "Process user query",
				Input:      map[string]any{"query": "Como posso ajudar com cobrança?"},
				Output:     map[string]any{"response": "Vou verificar seu status de cobrança..."},
				Tokens:     150,
				DurationMS: 1200,
				Model:      "anthropic.claude-3-5",
				Timestamp:  now,
			},
			{
				ID:         "step-002",
				Type:       StepToolCall,
				Name:       "CRM Lookup",
				Input:      map[string]any{"client_id": "client-123"},
				Output:     map[string]any{"status": "active", "balance": 250.00},
				DurationMS: 800,
				Timestamp:  now,
			},
		},
		Metrics:     Metrics{TotalTokens: 150, DurationMS: 2000, Cost: 0.005, LatencyMS: 1200},
		Score:       &Score{Value: 4.5, Feedback: "Helpful response"},
		Status:      StatusCompleted,
		CreatedAt:   now,
		CompletedAt: &done,
	}
}
