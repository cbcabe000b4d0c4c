package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/composer"
	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
	"github.com/felixgeelhaar/agenthub/pkg/domain/intent"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

// DefaultResponseDelay is the pause before the assistant replies.
const DefaultResponseDelay = 1500 * time.Millisecond

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithResponseDelay sets the pause between a user message and the reply.
func WithResponseDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.SetResponseDelay(d) }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBus publishes session events to b instead of a private bus.
func WithBus(b *events.Bus) SessionOption {
	return func(s *Session) {
		if b != nil {
			s.bus = b
		}
	}
}

// WithPlatform enables chat actions against the given platform client.
func WithPlatform(p *platform.Client) SessionOption {
	return func(s *Session) { s.platform = p }
}

// WithClock sets the time source for message timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session is one conversation: its messages, the current plan and the
// plan panel state. All methods are safe for concurrent use.
type Session struct {
	id       string
	store    *chat.Store
	bus      *events.Bus
	platform *platform.Client
	logger   *slog.Logger
	now      func() time.Time
	delay    atomic.Int64

	// mu orders Send, reply commits and plan panel changes. Readers of
	// the message list go straight to the store.
	mu        sync.Mutex
	composing *composingMachine
	tracker   *planning.Tracker
}

// NewSession creates an empty conversation.
func NewSession(opts ...SessionOption) (*Session, error) {
	fsm, err := newComposingMachine()
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:        uuid.NewString(),
		bus:       events.NewBus(),
		logger:    slog.Default(),
		now:       time.Now,
		composing: fsm,
	}
	s.delay.Store(int64(DefaultResponseDelay))
	for _, opt := range opts {
		opt(s)
	}
	s.store = chat.NewStoreWithClock(s.now)
	s.logger = s.logger.With("session_id", s.id)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Bus returns the bus session events are published on.
func (s *Session) Bus() *events.Bus { return s.bus }

// Platform returns the configured platform client, or nil.
func (s *Session) Platform() *platform.Client { return s.platform }

// SetResponseDelay changes the reply delay for subsequent sends.
func (s *Session) SetResponseDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.delay.Store(int64(d))
}

// ResponseDelay returns the current reply delay.
func (s *Session) ResponseDelay() time.Duration {
	return time.Duration(s.delay.Load())
}

// Send appends text as a user message and starts composing the reply.
// Only one reply is composed at a time; a second Send before the first
// reply lands returns ErrComposing. The reply is committed even if ctx is
// cancelled.
func (s *Session) Send(ctx context.Context, text string) (*Pending, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if !s.composing.fire(eventSend) {
		s.mu.Unlock()
		return nil, ErrComposing
	}
	user := s.store.Append(chat.NewMessage(chat.RoleUser, text))
	pending := newPending(user)
	s.mu.Unlock()

	s.logger.Debug("message received", "message_id", user.ID.String())
	s.publish(ctx, events.TypeMessageAppended, messageData(user))
	s.publish(ctx, events.TypeComposing, map[string]any{"composing": true})

	go s.reply(context.WithoutCancel(ctx), text, pending)
	return pending, nil
}

// SendSuggestion sends a suggestion chip as if the user had typed it.
func (s *Session) SendSuggestion(ctx context.Context, suggestion string) (*Pending, error) {
	return s.Send(ctx, suggestion)
}

// Ask sends text and waits for the reply.
func (s *Session) Ask(ctx context.Context, text string) (chat.Message, error) {
	p, err := s.Send(ctx, text)
	if err != nil {
		return chat.Message{}, err
	}
	return p.Wait(ctx)
}

func (s *Session) reply(ctx context.Context, text string, pending *Pending) {
	start := time.Now()
	if d := s.ResponseDelay(); d > 0 {
		timer := time.NewTimer(d)
		<-timer.C
	}

	kind := intent.Classify(text)
	r := composer.Compose(kind)

	s.mu.Lock()
	msg := s.store.Commit(r.Message(), r.Plan)
	if r.Plan != nil {
		s.mountLocked(*r.Plan)
	}
	s.composing.fire(eventReply)
	s.mu.Unlock()

	s.logger.Info("reply composed",
		"message_id", msg.ID.String(),
		"intent", kind.String(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	s.publish(ctx, events.TypeMessageAppended, messageData(msg))
	if r.Plan != nil {
		s.publish(ctx, events.TypePlanReplaced, planData(*r.Plan))
	}
	s.publish(ctx, events.TypeComposing, map[string]any{"composing": false})
	pending.resolve(msg)
}

// mountLocked replaces the plan panel state for a newly installed plan.
func (s *Session) mountLocked(plan planning.AgentPlan) {
	t, err := planning.NewTracker(plan)
	if err != nil {
		s.logger.Error("failed to mount plan", "error", err)
		s.tracker = nil
		return
	}
	s.tracker = t
}

// Snapshot returns the conversation and its plan from a single read, so
// the plan always belongs to a listed message.
func (s *Session) Snapshot() ([]chat.Message, *planning.AgentPlan) {
	return s.store.Snapshot()
}

// Composing reports whether a reply is being prepared.
func (s *Session) Composing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composing.current() == StateComposing
}

// Messages returns the conversation in order.
func (s *Session) Messages() []chat.Message {
	return s.store.Messages()
}

// Message returns the message with id.
func (s *Session) Message(id chat.MessageID) (chat.Message, bool) {
	return s.store.Get(id)
}

// Plan returns the current plan.
func (s *Session) Plan() (planning.AgentPlan, bool) {
	return s.store.Plan()
}

// Clear empties the conversation and the plan. A reply that is still
// being composed lands in the cleared conversation.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	s.store.Clear()
	s.tracker = nil
	s.mu.Unlock()

	s.logger.Info("chat cleared")
	s.publish(ctx, events.TypeChatCleared, nil)
}

// AppendSystem records a system notice in the conversation.
func (s *Session) AppendSystem(ctx context.Context, text string) chat.Message {
	msg := s.store.Append(chat.NewMessage(chat.RoleSystem, text))
	s.publish(ctx, events.TypeMessageAppended, messageData(msg))
	return msg
}

func (s *Session) publish(ctx context.Context, eventType string, data map[string]any) {
	if err := s.bus.Publish(ctx, events.New(eventType, s.id, data)); err != nil {
		s.logger.Warn("event handler failed", "type", eventType, "error", err)
	}
}

func planData(p planning.AgentPlan) map[string]any {
	return map[string]any{"objective": p.Objective, "tasks": len(p.Tasks), "hash": p.Hash()}
}

func messageData(m chat.Message) map[string]any {
	return map[string]any{
		"message_id": m.ID.String(),
		"role":       string(m.Role),
		"has_plan":   m.HasPlan(),
	}
}

// String describes the session for logs and debugging.
func (s *Session) String() string {
	return fmt.Sprintf("session %s (%d messages)", s.id, s.store.Len())
}
