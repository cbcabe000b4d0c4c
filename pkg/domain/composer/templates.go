package composer

import (
	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

const billingText = `Perfeito! Vou ajudar você a criar um agente de cobrança.

Baseado na sua descrição, vou sugerir:
- **Framework**: LangGraph (para fluxos complexos)
- **Modelo**: Anthropic Claude 3.5 (para conversas naturais)
- **Ferramentas**: CRM API + Slack para notificações
- **Memória**: 30 dias com resumos automáticos
- **RAG**: Políticas de crédito da empresa

Quer que eu configure isso automaticamente?`

const newAgentText = "Vamos criar um novo agente! Me diga qual tipo de agente você quer criar e qual problema ele deve resolver."

const toolText = `Posso ajudar você a conectar ferramentas via Gateway MCP!

As opções disponíveis são:
- **OpenAPI**: Importar especificação OpenAPI existente
- **Lambda**: Conectar função AWS Lambda
- **SaaS**: Integrar serviços como Slack, GitHub, Salesforce

Que tipo de ferramenta você quer conectar?`

const helpText = `Entendi! Como posso ajudar você com o AgentCore?

Algumas coisas que posso fazer:
- 🤖 Criar agentes com diferentes frameworks
- 🔧 Conectar ferramentas via Gateway
- 📚 Configurar RAG com seus dados
- 💭 Setup de memória curta/longa
- 🚀 Deploy e monitoramento

Use comandos como /novo_agente, /adicionar_ferramenta, ou simplesmente me descreva o que você quer criar!`

var (
	billingSuggestions = []string{
		"Sim, configure automaticamente",
		"Quero personalizar as configurações",
		"Adicionar mais ferramentas",
		"Ver exemplo de conversa",
	}
	newAgentSuggestions = []string{
		"Quero um agente de cobrança",
		"Agente de suporte ao cliente",
		"Agente de vendas",
	}
	toolSuggestions = []string{
		"Importar especificação OpenAPI",
		"Conectar função Lambda",
		"Integrar Slack",
	}
	helpSuggestions = []string{
		"/novo_agente",
		"/adicionar_ferramenta",
		"Criar agente de cobrança",
	}
)

const (
	billingObjective     = "Criar agente de cobrança com integração CRM"
	billingRetentionDays = 30
	billingEmbedding     = "amazon.titan-embed-text-v1"
)

func billingPlan() planning.AgentPlan {
	return planning.AgentPlan{
		Objective: billingObjective,
		Tasks: []string{
			"Configurar framework LangGraph",
			"Integrar CRM via Gateway",
			"Configurar memória de 30 dias",
			"Indexar políticas de crédito",
			"Setup notificações Slack",
		},
		SuggestedTools: []string{"CRM API", "Slack Webhook"},
		Memory: &planning.MemoryConfig{
			Strategies: []planning.MemoryStrategy{
				planning.MemoryShortTerm,
				planning.MemoryLongTerm,
				planning.MemorySummary,
			},
			RetentionDays: billingRetentionDays,
		},
		RAG: &planning.RAGConfig{
			DataSources:    []string{"S3: Políticas de Crédito"},
			EmbeddingModel: billingEmbedding,
		},
	}
}

func billingActions() []chat.Action {
	return []chat.Action{
		{
			ID:    "act-create-agent",
			Label: "Gerar Agente",
			Type:  chat.ActionCreateAgent,
			Payload: map[string]string{
				"name":      "Agente Cobrança",
				"framework": "langgraph",
				"model":     "anthropic.claude-3-5",
			},
		},
		{
			ID:    "act-setup-memory",
			Label: "Configurar Memória",
			Type:  chat.ActionSetupMemory,
			Payload: map[string]string{
				"name":           "Cobrança Memory",
				"retention_days": "30",
			},
		},
		{
			ID:    "act-setup-rag",
			Label: "Configurar RAG",
			Type:  chat.ActionSetupRAG,
			Payload: map[string]string{
				"data_source":     "S3: Políticas de Crédito",
				"embedding_model": billingEmbedding,
			},
		},
	}
}
