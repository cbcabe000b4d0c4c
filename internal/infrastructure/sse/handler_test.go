package sse_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/sse"
	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
)

func TestHandler_StreamsFilteredEvents(t *testing.T) {
	bus := events.NewBus()
	srv := httptest.NewServer(sse.NewHandler(bus))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types="+events.TypePlanReplaced, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	deadline := time.Now().Add(2 * time.Second)
	for bus.HandlerCount(events.TypePlanReplaced) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	_ = bus.Publish(ctx, events.New(events.TypeChatCleared, "s1", nil))
	_ = bus.Publish(ctx, events.New(events.TypePlanReplaced, "s1", map[string]any{"tasks": 5}))

	reader := bufio.NewReader(resp.Body)
	var lines []string
	for len(lines) < 3 {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if lines[1] != "event: "+events.TypePlanReplaced {
		t.Fatalf("expected plan event first, got %v", lines)
	}
	if !strings.Contains(lines[2], `"tasks":5`) {
		t.Fatalf("expected payload, got %s", lines[2])
	}
}

func TestHandler_UnsubscribesOnDisconnect(t *testing.T) {
	bus := events.NewBus()
	srv := httptest.NewServer(sse.NewHandler(bus))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if bus.HandlerCount(events.TypeChatCleared) != 1 {
		t.Fatalf("expected one subscriber")
	}
	cancel()
	resp.Body.Close()

	deadline := time.Now().Add(2 * time.Second)
	for bus.HandlerCount(events.TypeChatCleared) != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := bus.HandlerCount(events.TypeChatCleared); n != 0 {
		t.Fatalf("expected subscriber to be removed, got %d", n)
	}
}
