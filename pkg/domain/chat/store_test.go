package chat_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

func fixedClock() func() time.Time {
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	var n int
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestStore_AppendPreservesOrderAndIDs(t *testing.T) {
	s := chat.NewStoreWithClock(fixedClock())

	const n = 25
	for i := 0; i < n; i++ {
		s.Append(chat.NewMessage(chat.RoleUser, fmt.Sprintf("m%d", i)))
	}

	msgs := s.Messages()
	if len(msgs) != n {
		t.Fatalf("expected %d messages, got %d", n, len(msgs))
	}
	for i, m := range msgs {
		if m.Content != fmt.Sprintf("m%d", i) {
			t.Fatalf("message %d out of order: %q", i, m.Content)
		}
		if i > 0 {
			if m.ID <= msgs[i-1].ID {
				t.Fatalf("ids not increasing at %d: %d <= %d", i, m.ID, msgs[i-1].ID)
			}
			if m.CreatedAt.Before(msgs[i-1].CreatedAt) {
				t.Fatalf("timestamps not chronological at %d", i)
			}
		}
	}
}

func TestStore_AppendReturnsStoredCopy(t *testing.T) {
	s := chat.NewStore()
	msg := chat.NewMessage(chat.RoleAssistant, "hi")
	msg.Metadata.Suggestions = []string{"a", "b"}

	stored := s.Append(msg)
	if stored.ID == 0 || stored.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp assigned: %#v", stored)
	}

	msg.Metadata.Suggestions[0] = "mutated"
	stored.Metadata.Suggestions[1] = "mutated"

	got, ok := s.Get(stored.ID)
	if !ok {
		t.Fatal("message not found")
	}
	if got.Metadata.Suggestions[0] != "a" || got.Metadata.Suggestions[1] != "b" {
		t.Fatalf("stored message was mutated through a caller copy: %v", got.Metadata.Suggestions)
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := chat.NewStore()
	s.Append(chat.NewMessage(chat.RoleUser, "x"))
	s.SetPlan(planning.AgentPlan{Objective: "o", Tasks: []string{"t"}})

	s.Clear()
	msgs1, plan1 := s.Snapshot()
	s.Clear()
	msgs2, plan2 := s.Snapshot()

	if len(msgs1) != 0 || len(msgs2) != 0 || plan1 != nil || plan2 != nil {
		t.Fatalf("expected empty state after clears: %v %v %v %v", msgs1, plan1, msgs2, plan2)
	}
	if s.Len() != 0 {
		t.Fatalf("expected Len 0, got %d", s.Len())
	}
}

func TestStore_IDsNotReusedAfterClear(t *testing.T) {
	s := chat.NewStore()
	first := s.Append(chat.NewMessage(chat.RoleUser, "a"))
	s.Clear()
	second := s.Append(chat.NewMessage(chat.RoleUser, "b"))
	if second.ID <= first.ID {
		t.Fatalf("expected id after clear to exceed %d, got %d", first.ID, second.ID)
	}
}

func TestStore_SetPlanReplacesWholesale(t *testing.T) {
	s := chat.NewStore()
	if _, ok := s.Plan(); ok {
		t.Fatal("expected no plan initially")
	}

	s.SetPlan(planning.AgentPlan{Objective: "first", Tasks: []string{"a", "b"}, SuggestedTools: []string{"x"}})
	s.SetPlan(planning.AgentPlan{Objective: "second", Tasks: []string{"c"}})

	p, ok := s.Plan()
	if !ok {
		t.Fatal("expected plan")
	}
	if p.Objective != "second" || len(p.Tasks) != 1 || len(p.SuggestedTools) != 0 {
		t.Fatalf("plan not replaced wholesale: %#v", p)
	}

	p.Tasks[0] = "mutated"
	again, _ := s.Plan()
	if again.Tasks[0] != "c" {
		t.Fatal("plan returned by Plan() aliases store state")
	}
}

func TestStore_CommitAttachesPlanWithMessage(t *testing.T) {
	s := chat.NewStore()
	plan := planning.AgentPlan{Objective: "o", Tasks: []string{"a"}}
	msg := chat.NewMessage(chat.RoleAssistant, "reply")
	msg.Metadata.Plan = &plan

	stored := s.Commit(msg, &plan)
	if !stored.HasPlan() {
		t.Fatal("expected committed message to reference its plan")
	}
	msgs, current := s.Snapshot()
	if len(msgs) != 1 || current == nil || current.Objective != "o" {
		t.Fatalf("unexpected snapshot: %v %v", msgs, current)
	}

	noPlan := s.Commit(chat.NewMessage(chat.RoleAssistant, "plain"), nil)
	if noPlan.HasPlan() {
		t.Fatal("did not expect plan on plain reply")
	}
	if p, ok := s.Plan(); !ok || p.Objective != "o" {
		t.Fatal("commit without plan must keep the current plan")
	}
}

func TestStore_ConcurrentAppendsKeepTotalOrder(t *testing.T) {
	s := chat.NewStore()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Append(chat.NewMessage(chat.RoleUser, fmt.Sprintf("%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	msgs := s.Messages()
	if len(msgs) != 400 {
		t.Fatalf("expected 400 messages, got %d", len(msgs))
	}
	seen := make(map[chat.MessageID]bool)
	for i, m := range msgs {
		if seen[m.ID] {
			t.Fatalf("duplicate id %s", m.ID)
		}
		seen[m.ID] = true
		if i > 0 && m.ID != msgs[i-1].ID+1 {
			t.Fatalf("gap or reorder at %d: %s after %s", i, m.ID, msgs[i-1].ID)
		}
	}
}

func TestMessageID_Text(t *testing.T) {
	data, err := json.Marshal(chat.MessageID(7))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"msg-7"` {
		t.Fatalf("unexpected json: %s", data)
	}

	var id chat.MessageID
	if err := json.Unmarshal([]byte(`"msg-12"`), &id); err != nil || id != 12 {
		t.Fatalf("unmarshal: %v %d", err, id)
	}
	if _, err := chat.ParseMessageID("12"); err != nil {
		t.Fatalf("bare number should parse: %v", err)
	}
	for _, bad := range []string{"", "msg-", "msg-0", "abc"} {
		if _, err := chat.ParseMessageID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range []chat.Role{chat.RoleUser, chat.RoleAssistant, chat.RoleSystem} {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if chat.Role("agent").IsValid() {
		t.Error("agent should not be a valid role")
	}
}

func TestMessage_JSONOmitsEmptyMetadata(t *testing.T) {
	m := chat.NewMessage(chat.RoleUser, "oi")
	m.Metadata.Suggestions = []string{}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "metadata") {
		t.Errorf("empty metadata should be omitted: %s", data)
	}

	m.Metadata.Suggestions = []string{"Sim"}
	data, _ = json.Marshal(m)
	if !strings.Contains(string(data), `"suggestions":["Sim"]`) {
		t.Errorf("metadata missing: %s", data)
	}
}
