package platform

import "time"

// Response wraps every platform result.
type Response[T any] struct {
	Data    T        `json:"data"`
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Framework is the orchestration framework an agent is built on.
type Framework string

const (
	FrameworkLangGraph Framework = "langgraph"
	FrameworkCrewAI    Framework = "crewai"
	FrameworkStrands   Framework = "strands"
	FrameworkCustom    Framework = "custom"
)

// Status values shared by agents, versions and deployments.
const (
	StatusDraft     = "draft"
	StatusDeployed  = "deployed"
	StatusRunning   = "running"
	StatusPublished = "published"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusIndexing  = "indexing"
)

// ToolRef binds an agent to a published gateway tool.
type ToolRef struct {
	ID          string   `json:"id"`
	MCPEndpoint string   `json:"mcp_endpoint"`
	Scopes      []string `json:"scopes"`
}

// Policies limits what an agent may do at runtime.
type Policies struct {
	PIIMasking bool `json:"pii_masking,omitempty"`
	MaxTokens  int  `json:"max_tokens,omitempty"`
	TimeoutSec int  `json:"timeout,omitempty"`
}

// AgentVersion is an immutable snapshot of an agent definition.
type AgentVersion struct {
	ID          string     `json:"id"`
	AgentID     string     `json:"agent_id"`
	Semver      string     `json:"semver"`
	Status      string     `json:"status"`
	RuntimeARN  string     `json:"runtime_arn,omitempty"`
	EndpointURL string     `json:"endpoint_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DeployedAt  *time.Time `json:"deployed_at,omitempty"`
}

// Agent is a conversational agent registered on the platform.
type Agent struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Framework   Framework      `json:"framework"`
	Model       string         `json:"model"`
	Tools       []ToolRef      `json:"tools"`
	MemoryID    string         `json:"memory_id,omitempty"`
	RAGIndexIDs []string       `json:"rag_index_ids"`
	Policies    Policies       `json:"policies"`
	Versions    []AgentVersion `json:"versions"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ToolType is how a gateway tool is backed.
type ToolType string

const (
	ToolOpenAPI ToolType = "openapi"
	ToolLambda  ToolType = "lambda"
	ToolSaaS    ToolType = "saas"
)

// GatewayTool is a tool exposed to agents through the MCP gateway.
type GatewayTool struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        ToolType          `json:"type"`
	MCPEndpoint string            `json:"mcp_endpoint"`
	Scopes      []string          `json:"scopes"`
	Config      map[string]string `json:"config"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// RetentionPolicy controls how long memory is kept.
type RetentionPolicy struct {
	Days        int  `json:"days"`
	AutoSummary bool `json:"auto_summary"`
}

// MemoryResource is a memory store agents can attach to.
type MemoryResource struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Strategies       []string        `json:"strategies"`
	Retention        RetentionPolicy `json:"retention_policy"`
	Status           string          `json:"status"`
	AssociatedAgents []string        `json:"associated_agents"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Environment is a deployment target.
type Environment string

const (
	EnvSandbox    Environment = "sandbox"
	EnvStaging    Environment = "staging"
	EnvProduction Environment = "production"
)

// Deployment is a running agent version.
type Deployment struct {
	ID             string      `json:"id"`
	AgentVersionID string      `json:"agent_version_id"`
	Status         string      `json:"status"`
	Environment    Environment `json:"environment"`
	EndpointURL    string      `json:"endpoint_url,omitempty"`
	RuntimeARN     string      `json:"runtime_arn,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	DeployedAt     *time.Time  `json:"deployed_at,omitempty"`
}

// Invocation is the result of calling a deployed agent.
type Invocation struct {
	SessionID string            `json:"session_id"`
	Response  string            `json:"response"`
	Output    map[string]string `json:"output"`
}

// StepType classifies a trajectory step.
type StepType string

const (
	StepLLMCall      StepType = "llm_call"
	StepToolCall     StepType = "tool_call"
	StepMemoryAccess StepType = "memory_access"
	StepRAGRetrieval StepType = "rag_retrieval"
)

// ObservationStep is one step in an agent trajectory.
type ObservationStep struct {
	ID         string         `json:"id"`
	Type       StepType       `json:"type"`
	Name       string         `json:"name"`
	Input      map[string]any `json:"input"`
	Output     map[string]any `json:"output"`
	Tokens     int            `json:"tokens,omitempty"`
	DurationMS int            `json:"duration_ms"`
	Model      string         `json:"model,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Metrics summarise an observed session.
type Metrics struct {
	TotalTokens int     `json:"total_tokens"`
	DurationMS  int     `json:"duration_ms"`
	Cost        float64 `json:"cost"`
	LatencyMS   int     `json:"latency_ms"`
}

// Score is human feedback on an observation.
type Score struct {
	Value    float64 `json:"value"`
	Feedback string  `json:"feedback,omitempty"`
}

// Observation is the recorded trajectory of one agent session.
type Observation struct {
	ID          string            `json:"id"`
	AgentID     string            `json:"agent_id"`
	SessionID   string            `json:"session_id"`
	UserID      string            `json:"user_id,omitempty"`
	Steps       []ObservationStep `json:"steps"`
	Metrics     Metrics           `json:"metrics"`
	Score       *Score            `json:"score,omitempty"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

// RAGIndex is a vector index built from a data source.
type RAGIndex struct {
	ID             string    `json:"id"`
	DataSource     string    `json:"data_source"`
	EmbeddingModel string    `json:"embedding_model"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
