package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/agenthub/pkg/application"
	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/commands"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

type SendArgs struct {
	Content string `json:"content" jsonschema:"description=The message text"`
	Wait    bool   `json:"wait,omitempty" jsonschema:"description=Block until the assistant reply is committed"`
}

type SuggestionArgs struct {
	Suggestion string `json:"suggestion" jsonschema:"description=The suggestion text as offered"`
	Wait       bool   `json:"wait,omitempty" jsonschema:"description=Block until the assistant reply is committed"`
}

type ToggleTaskArgs struct {
	Index int `json:"index" jsonschema:"description=Zero-based index of the task in the plan"`
}

type ObjectiveArgs struct {
	Objective string `json:"objective" jsonschema:"description=The new plan objective"`
}

type ActionArgs struct {
	ActionID string `json:"action_id" jsonschema:"description=ID of an action offered by an assistant reply"`
}

type CommandsArgs struct {
	Prefix string `json:"prefix,omitempty" jsonschema:"description=Filter commands by prefix, with or without the leading slash"`
}

// SendResult is returned by chat_send and chat_suggestion. Reply is nil
// when the caller did not wait or the wait timed out.
type SendResult struct {
	Message chat.Message  `json:"message"`
	Reply   *chat.Message `json:"reply,omitempty"`
}

type MessagesResult struct {
	SessionID string         `json:"session_id"`
	Messages  []chat.Message `json:"messages"`
	Composing bool           `json:"composing"`
}

type ToggleResult struct {
	Index     int     `json:"index"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
}

type ProgressResult struct {
	Progress float64 `json:"progress"`
	Percent  int     `json:"percent"`
	Done     int     `json:"done"`
	Total    int     `json:"total"`
}

func (s *Server) handleSend(ctx context.Context, args SendArgs) (*SendResult, error) {
	return s.send(ctx, args.Content, args.Wait)
}

func (s *Server) handleSuggestion(ctx context.Context, args SuggestionArgs) (*SendResult, error) {
	return s.send(ctx, args.Suggestion, args.Wait)
}

func (s *Server) send(ctx context.Context, text string, wait bool) (*SendResult, error) {
	pending, err := s.session.Send(ctx, text)
	if err != nil {
		return nil, s.friendly("chat_send", err)
	}
	res := &SendResult{Message: pending.User}
	if !wait {
		return res, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.waitTimeout)
	defer cancel()
	reply, err := pending.Wait(waitCtx)
	if err != nil {
		s.logger.Debug("reply not ready before timeout", "message_id", pending.User.ID.String())
		return res, nil
	}
	res.Reply = &reply
	return res, nil
}

func (s *Server) handleMessages(_ context.Context, _ struct{}) (*MessagesResult, error) {
	return &MessagesResult{
		SessionID: s.session.ID(),
		Messages:  s.session.Messages(),
		Composing: s.session.Composing(),
	}, nil
}

func (s *Server) handleClear(ctx context.Context, _ struct{}) (string, error) {
	s.session.Clear(ctx)
	return "Conversation cleared.", nil
}

func (s *Server) handlePlan(_ context.Context, _ struct{}) (*application.PlanView, error) {
	view, ok := s.session.PlanView()
	if !ok {
		return nil, mcpErr("No plan yet. Describe the agent you want with chat_send first.")
	}
	return &view, nil
}

func (s *Server) handleToggleTask(ctx context.Context, args ToggleTaskArgs) (*ToggleResult, error) {
	res, err := s.session.ToggleTask(ctx, args.Index)
	if err != nil {
		return nil, s.friendly("plan_toggle_task", err)
	}
	return &ToggleResult{Index: res.Index, Completed: res.Completed, Progress: res.Progress}, nil
}

func (s *Server) handleProgress(_ context.Context, _ struct{}) (*ProgressResult, error) {
	view, ok := s.session.PlanView()
	if !ok {
		return nil, mcpErr("No plan yet. Describe the agent you want with chat_send first.")
	}
	return &ProgressResult{
		Progress: view.Progress,
		Percent:  view.Percent,
		Done:     len(view.Completed),
		Total:    view.Plan.TaskCount(),
	}, nil
}

func (s *Server) handleUpdateObjective(ctx context.Context, args ObjectiveArgs) (*planning.AgentPlan, error) {
	plan, err := s.session.UpdateObjective(ctx, args.Objective)
	if err != nil {
		return nil, s.friendly("plan_update_objective", err)
	}
	return &plan, nil
}

func (s *Server) handleExecuteAction(ctx context.Context, args ActionArgs) (*chat.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.waitTimeout+time.Second)
	defer cancel()
	msg, err := s.session.ExecuteAction(ctx, args.ActionID)
	if err != nil {
		return nil, s.friendly("chat_execute_action", err)
	}
	return &msg, nil
}

func (s *Server) handleListCommands(_ context.Context, args CommandsArgs) ([]commands.Command, error) {
	if args.Prefix == "" {
		return commands.All(), nil
	}
	return commands.Filter(args.Prefix), nil
}

func (s *Server) handleListAgents(ctx context.Context, _ struct{}) ([]platform.Agent, error) {
	client := s.session.Platform()
	if client == nil {
		return nil, mcpErr("The platform is not configured for this session.")
	}
	res, err := client.Agents.List(ctx)
	if err != nil {
		return nil, s.friendly("platform_list_agents", err)
	}
	return res.Data, nil
}

func (s *Server) handleListTools(ctx context.Context, _ struct{}) ([]platform.GatewayTool, error) {
	client := s.session.Platform()
	if client == nil {
		return nil, mcpErr("The platform is not configured for this session.")
	}
	res, err := client.Gateway.ListTools(ctx)
	if err != nil {
		return nil, s.friendly("platform_list_tools", err)
	}
	return res.Data, nil
}

// friendly logs err and maps it to a message an MCP client can act on.
func (s *Server) friendly(tool string, err error) error {
	s.logger.Warn("mcp tool failed", "tool", tool, "error", err)
	switch {
	case errors.Is(err, application.ErrComposing):
		return mcpErr("The assistant is still composing a reply. Try again in a moment.")
	case errors.Is(err, application.ErrEmptyMessage):
		return mcpErr("Message must not be empty.")
	case errors.Is(err, application.ErrNoPlan):
		return mcpErr("No plan yet. Describe the agent you want with chat_send first.")
	case errors.Is(err, planning.ErrInvalidTaskIndex):
		return mcpErr("Task index is out of range for the current plan.")
	case errors.Is(err, planning.ErrEmptyObjective):
		return mcpErr("Objective must not be empty.")
	case errors.Is(err, application.ErrActionNotFound):
		return mcpErr("No action with that ID was offered in this conversation.")
	case errors.Is(err, application.ErrPlatformUnavailable):
		return mcpErr("The platform is not configured for this session.")
	default:
		return mcpErr("The request could not be completed. Check the server log for details.")
	}
}
