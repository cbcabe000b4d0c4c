// Package composer turns a classified intent into the assistant's reply.
// Output depends only on the intent: no randomness, no clock.
package composer

import (
	"slices"

	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/intent"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

// Reply is everything the assistant says in response to one message.
type Reply struct {
	Intent      intent.Intent
	Text        string
	Suggestions []string
	Plan        *planning.AgentPlan
	Actions     []chat.Action
}

// Message converts the reply into an unsaved assistant message whose
// metadata references the plan.
func (r Reply) Message() chat.Message {
	msg := chat.NewMessage(chat.RoleAssistant, r.Text)
	msg.Metadata = chat.Metadata{
		Suggestions: slices.Clone(r.Suggestions),
		Actions:     slices.Clone(r.Actions),
	}
	if r.Plan != nil {
		p := r.Plan.Clone()
		msg.Metadata.Plan = &p
	}
	return msg
}

// Compose builds the reply for i. Values outside the declared intents get
// the help reply, so Compose is total like intent.Classify.
func Compose(i intent.Intent) Reply {
	switch i {
	case intent.BillingAgent:
		plan := billingPlan()
		return Reply{
			Intent:      i,
			Text:        billingText,
			Suggestions: slices.Clone(billingSuggestions),
			Plan:        &plan,
			Actions:     billingActions(),
		}
	case intent.NewAgentCommand:
		return Reply{
			Intent:      i,
			Text:        newAgentText,
			Suggestions: slices.Clone(newAgentSuggestions),
		}
	case intent.ToolConnection:
		return Reply{
			Intent:      i,
			Text:        toolText,
			Suggestions: slices.Clone(toolSuggestions),
		}
	default:
		return Reply{
			Intent:      intent.FallbackHelp,
			Text:        helpText,
			Suggestions: slices.Clone(helpSuggestions),
		}
	}
}

// Respond classifies text and composes the reply in one step.
func Respond(text string) Reply {
	return Compose(intent.Classify(text))
}
