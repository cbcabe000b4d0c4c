package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/agenthub/pkg/application"
)

// DefaultWaitTimeout bounds how long chat_send blocks for the assistant reply.
const DefaultWaitTimeout = 10 * time.Second

type Server struct {
	mcpServer   *mcp.Server
	session     *application.Session
	logger      *slog.Logger
	waitTimeout time.Duration
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr returns a user-friendly error for MCP clients. Internal details
// stay in the server log.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

// Option tunes a Server.
type Option func(*Server)

// WithLogger sets the logger used for tool failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWaitTimeout bounds chat_send calls that wait for the reply.
func WithWaitTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.waitTimeout = d
		}
	}
}

// NewServer exposes the chat session to MCP clients.
func NewServer(session *application.Session, opts ...Option) (*Server, error) {
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}

	info := mcp.ServerInfo{
		Name:    "agenthub",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Agent Hub MCP Server"),
			mcp.WithDescription("Agent Hub turns a conversation about an AI agent into a structured build plan."),
			mcp.WithWebsiteURL("https://github.com/felixgeelhaar/agenthub"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Send messages with chat_send, read the proposed plan with chat_plan, and track it with plan_toggle_task."),
		),
		session:     session,
		logger:      slog.Default(),
		waitTimeout: DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerApps()
	s.registerSchemaResource()
	s.registerPlanResource()
	return s, nil
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("chat_send").
		Description("Send a user message and optionally wait for the assistant reply").
		Handler(s.handleSend)

	s.mcpServer.Tool("chat_suggestion").
		Description("Send one of the suggestions offered by the last reply").
		Handler(s.handleSuggestion)

	s.mcpServer.Tool("chat_messages").
		Description("List the conversation in order").
		Handler(s.handleMessages)

	s.mcpServer.Tool("chat_clear").
		Description("Clear the conversation and the current plan").
		Handler(s.handleClear)

	s.mcpServer.Tool("chat_plan").
		Description("Return the plan shown in the plan panel with task completion").
		UIResource("ui://agenthub/plan").
		Handler(s.handlePlan)

	s.mcpServer.Tool("plan_toggle_task").
		Description("Mark a plan task as done or pending").
		UIResource("ui://agenthub/plan").
		Handler(s.handleToggleTask)

	s.mcpServer.Tool("plan_progress").
		Description("Return the completed share of the current plan").
		Handler(s.handleProgress)

	s.mcpServer.Tool("plan_update_objective").
		Description("Replace the objective of the current plan").
		Handler(s.handleUpdateObjective)

	s.mcpServer.Tool("chat_execute_action").
		Description("Run a one-click action offered by an assistant reply").
		Handler(s.handleExecuteAction)

	s.mcpServer.Tool("list_commands").
		Description("List slash commands, optionally filtered by prefix").
		Handler(s.handleListCommands)

	s.mcpServer.Tool("platform_list_agents").
		Description("List agents registered on the platform").
		Handler(s.handleListAgents)

	s.mcpServer.Tool("platform_list_tools").
		Description("List tools published on the gateway").
		Handler(s.handleListTools)
}

func (s *Server) Start() error {
	return s.ServeStdio(context.Background())
}

// Serve runs the named transport: stdio, http or ws.
func (s *Server) Serve(ctx context.Context, transport, addr string) error {
	switch transport {
	case "", "stdio":
		return s.ServeStdio(ctx)
	case "http":
		return s.ServeHTTP(ctx, addr)
	case "ws", "websocket":
		return s.ServeWebSocket(ctx, addr)
	default:
		return fmt.Errorf("unknown mcp transport %q", transport)
	}
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}
