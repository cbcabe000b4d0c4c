package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

// FindAction returns the newest action with id offered in the conversation.
func (s *Session) FindAction(id string) (chat.Action, error) {
	msgs := s.store.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if a, ok := msgs[i].Action(id); ok {
			return a, nil
		}
	}
	return chat.Action{}, fmt.Errorf("%w: %s", ErrActionNotFound, id)
}

// ExecuteAction runs an action offered by the assistant against the
// platform and records the outcome as a system message. It blocks for
// the platform's latency.
func (s *Session) ExecuteAction(ctx context.Context, id string) (chat.Message, error) {
	action, err := s.FindAction(id)
	if err != nil {
		return chat.Message{}, err
	}
	if s.platform == nil {
		return chat.Message{}, ErrPlatformUnavailable
	}

	s.logger.Info("executing action", "action", action.ID, "type", string(action.Type))
	text, err := s.dispatch(ctx, action)
	if err != nil {
		msg := s.AppendSystem(ctx, fmt.Sprintf("❌ %s falhou: %v", action.Label, err))
		s.publish(ctx, events.TypeActionExecuted, map[string]any{"action": action.ID, "success": false})
		return msg, fmt.Errorf("action %s: %w", action.ID, err)
	}

	msg := s.AppendSystem(ctx, "✅ "+text)
	s.publish(ctx, events.TypeActionExecuted, map[string]any{"action": action.ID, "success": true})
	return msg, nil
}

func (s *Session) dispatch(ctx context.Context, a chat.Action) (string, error) {
	p := a.Payload
	switch a.Type {
	case chat.ActionCreateAgent:
		res, err := s.platform.Agents.Create(ctx, platform.AgentSpec{
			Name:      p["name"],
			Framework: platform.Framework(p["framework"]),
			Model:     p["model"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Agente criado: %s (%s)", res.Data.Name, res.Data.ID), nil

	case chat.ActionSetupMemory:
		spec := platform.MemorySpec{Name: p["name"]}
		if plan, ok := s.store.Plan(); ok && plan.Memory != nil {
			for _, st := range plan.Memory.Strategies {
				spec.Strategies = append(spec.Strategies, string(st))
			}
			spec.RetentionDays = plan.Memory.RetentionDays
		}
		if v := p["retention_days"]; v != "" {
			days, err := strconv.Atoi(v)
			if err != nil {
				return "", fmt.Errorf("retention_days: %w", err)
			}
			spec.RetentionDays = days
		}
		res, err := s.platform.Memory.Create(ctx, spec)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Memória configurada: %s, retenção de %d dias (%s)", res.Data.Name, res.Data.Retention.Days, res.Data.ID), nil

	case chat.ActionSetupRAG:
		res, err := s.platform.RAG.Index(ctx, p["data_source"], p["embedding_model"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Indexação iniciada: %s com %s (%s)", res.Data.DataSource, res.Data.EmbeddingModel, res.Data.ID), nil

	case chat.ActionAddTool:
		res, err := s.platform.Gateway.PublishTool(ctx, platform.ToolSpec{
			Name:        p["name"],
			Description: p["description"],
			Type:        platform.ToolType(p["type"]),
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Ferramenta publicada: %s em %s", res.Data.Name, res.Data.MCPEndpoint), nil

	case chat.ActionDeploy:
		res, err := s.platform.Runtime.Deploy(ctx, p["agent_version_id"], platform.Environment(p["environment"]))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Deploy em %s: %s", res.Data.Environment, res.Data.EndpointURL), nil

	case chat.ActionTest:
		res, err := s.platform.Runtime.Invoke(ctx, s.id, p)
		if err != nil {
			return "", err
		}
		return res.Data.Response, nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAction, a.Type)
	}
}
