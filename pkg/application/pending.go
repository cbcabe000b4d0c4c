package application

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
)

// Pending is the in-flight assistant reply to one Send. The reply is
// committed whether or not anyone waits for it.
type Pending struct {
	// User is the stored user message that started the cycle.
	User chat.Message

	done  chan struct{}
	once  sync.Once
	reply chat.Message
}

func newPending(user chat.Message) *Pending {
	return &Pending{User: user, done: make(chan struct{})}
}

func (p *Pending) resolve(reply chat.Message) {
	p.once.Do(func() {
		p.reply = reply
		close(p.done)
	})
}

// Done is closed once the reply is visible in the session.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the reply is committed or ctx ends. Giving up on the
// wait does not stop the reply.
func (p *Pending) Wait(ctx context.Context) (chat.Message, error) {
	select {
	case <-p.done:
		return p.reply, nil
	case <-ctx.Done():
		return chat.Message{}, ctx.Err()
	}
}

// Reply returns the committed reply, if any yet.
func (p *Pending) Reply() (chat.Message, bool) {
	select {
	case <-p.done:
		return p.reply, true
	default:
		return chat.Message{}, false
	}
}
