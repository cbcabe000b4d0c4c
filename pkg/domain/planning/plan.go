package planning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
)

// MemoryStrategy names how an agent retains conversational context.
type MemoryStrategy string

const (
	MemoryShortTerm MemoryStrategy = "shortTerm"
	MemoryLongTerm  MemoryStrategy = "longTerm"
	MemorySummary   MemoryStrategy = "summary"
)

// IdentityKind is the inbound authentication mechanism proposed for an agent.
type IdentityKind string

const (
	IdentityIAM    IdentityKind = "iam"
	IdentityOAuth2 IdentityKind = "oauth2"
)

// AgentPlan is the structured proposal attached to an assistant reply.
// It is a value object: never mutate a plan in place, derive a new one.
type AgentPlan struct {
	Objective      string          `json:"objective" yaml:"objective"`
	Tasks          []string        `json:"tasks" yaml:"tasks"`
	SuggestedTools []string        `json:"suggested_tools" yaml:"suggested_tools"`
	Memory         *MemoryConfig   `json:"memory_config,omitempty" yaml:"memory_config,omitempty"`
	RAG            *RAGConfig      `json:"rag_config,omitempty" yaml:"rag_config,omitempty"`
	Identity       *IdentityConfig `json:"identity_config,omitempty" yaml:"identity_config,omitempty"`
	Deploy         *DeployConfig   `json:"deploy_config,omitempty" yaml:"deploy_config,omitempty"`
}

// MemoryConfig describes the memory resource the agent should get.
type MemoryConfig struct {
	Strategies    []MemoryStrategy `json:"strategies" yaml:"strategies"`
	RetentionDays int              `json:"retention" yaml:"retention"`
}

// RAGConfig describes the retrieval sources for the agent.
type RAGConfig struct {
	DataSources    []string `json:"data_sources" yaml:"data_sources"`
	EmbeddingModel string   `json:"embedding_model" yaml:"embedding_model"`
}

// IdentityConfig describes inbound auth and outbound consents.
type IdentityConfig struct {
	Inbound  IdentityKind `json:"inbound" yaml:"inbound"`
	Outbound []string     `json:"outbound" yaml:"outbound"`
}

// DeployConfig describes the target runtime environment.
type DeployConfig struct {
	Environment string `json:"environment" yaml:"environment"`
	MinReplicas int    `json:"min_replicas" yaml:"min_replicas"`
	MaxReplicas int    `json:"max_replicas" yaml:"max_replicas"`
}

// TaskCount returns the number of tasks in the plan.
func (p AgentPlan) TaskCount() int {
	return len(p.Tasks)
}

// WithObjective returns a copy of the plan with a different objective.
func (p AgentPlan) WithObjective(objective string) AgentPlan {
	out := p.Clone()
	out.Objective = objective
	return out
}

// Clone returns a deep copy so callers never share backing arrays.
func (p AgentPlan) Clone() AgentPlan {
	out := AgentPlan{
		Objective:      p.Objective,
		Tasks:          slices.Clone(p.Tasks),
		SuggestedTools: slices.Clone(p.SuggestedTools),
	}
	if p.Memory != nil {
		out.Memory = &MemoryConfig{
			Strategies:    slices.Clone(p.Memory.Strategies),
			RetentionDays: p.Memory.RetentionDays,
		}
	}
	if p.RAG != nil {
		out.RAG = &RAGConfig{
			DataSources:    slices.Clone(p.RAG.DataSources),
			EmbeddingModel: p.RAG.EmbeddingModel,
		}
	}
	if p.Identity != nil {
		out.Identity = &IdentityConfig{
			Inbound:  p.Identity.Inbound,
			Outbound: slices.Clone(p.Identity.Outbound),
		}
	}
	if p.Deploy != nil {
		d := *p.Deploy
		out.Deploy = &d
	}
	return out
}

// Hash returns a deterministic hash of the whole plan. Suggested tools
// are hashed in sorted order since they have set semantics.
func (p AgentPlan) Hash() string {
	c := p.Clone()
	slices.Sort(c.SuggestedTools)
	// Every field is a string, int or slice of those, so encoding never fails.
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
