// Package intent maps raw chat input to a fixed set of reply categories.
package intent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Intent is the category a user message is classified into.
type Intent int

const (
	// FallbackHelp is the zero value so an unset Intent still composes a reply.
	FallbackHelp Intent = iota
	BillingAgent
	NewAgentCommand
	ToolConnection
)

var names = map[Intent]string{
	FallbackHelp:    "fallback_help",
	BillingAgent:    "billing_agent",
	NewAgentCommand: "new_agent_command",
	ToolConnection:  "tool_connection",
}

// rule matches when every group has at least one term contained in the text.
type rule struct {
	intent Intent
	groups [][]string
}

func (r rule) matches(text string) bool {
	for _, group := range r.groups {
		if !containsAny(text, group) {
			return false
		}
	}
	return true
}

// rules are evaluated in order; the first match wins. FallbackHelp has no
// rule of its own: it is what Classify returns when none of these match.
var rules = []rule{
	{intent: BillingAgent, groups: [][]string{{"agente"}, {"cobrança", "cobranca"}}},
	{intent: NewAgentCommand, groups: [][]string{{"/novo_agente"}}},
	{intent: ToolConnection, groups: [][]string{{"ferramenta", "tool"}}},
}

// Classify returns the intent for text. It never fails: unmatched input,
// including the empty string, is FallbackHelp.
func Classify(text string) Intent {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lowered) {
			return r.intent
		}
	}
	return FallbackHelp
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// All returns every intent in evaluation order, fallback last.
func All() []Intent {
	return []Intent{BillingAgent, NewAgentCommand, ToolConnection, FallbackHelp}
}

// IsValid returns true if i is one of the declared intents.
func (i Intent) IsValid() bool {
	_, ok := names[i]
	return ok
}

func (i Intent) String() string {
	if name, ok := names[i]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

// ParseIntent parses the String form of an intent.
func ParseIntent(s string) (Intent, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return FallbackHelp, fmt.Errorf("invalid intent: %s", s)
}

// MarshalJSON implements json.Marshaler interface.
func (i Intent) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (i *Intent) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseIntent(str)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
