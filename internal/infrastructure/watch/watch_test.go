package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { count.Add(1) })
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	if !d.Pending() {
		t.Fatal("expected a pending callback")
	}

	time.Sleep(150 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Errorf("expected 1 callback, got %d", got)
	}
	if d.Pending() {
		t.Error("callback should no longer be pending")
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { count.Add(1) })

	d.Trigger()
	d.Stop()
	time.Sleep(100 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("expected no callback after stop, got %d", got)
	}
}

func TestPatternFilter(t *testing.T) {
	f := NewPatternFilter([]string{"agenthub.yaml"}, nil)

	tests := []struct {
		path  string
		match bool
	}{
		{"/etc/agenthub/agenthub.yaml", true},
		{"agenthub.yaml", true},
		{"other.yaml", false},
		{".agenthub.yaml.swp", false},
		{"agenthub.yaml~", false},
	}
	for _, tt := range tests {
		if got := f.Matches(tt.path); got != tt.match {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.match)
		}
	}

	if !NewPatternFilter(nil, []string{}).Matches("anything") {
		t.Error("empty filter should match everything")
	}
}

func TestFileWatcher_ReportsWritesToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "agenthub.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(target, []byte("a: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var hits atomic.Int32
	var lastPath atomic.Value
	w, err := NewFileWatcher([]string{target}, 30*time.Millisecond, func(e ChangeEvent) {
		hits.Add(1)
		lastPath.Store(e.Path)
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(other, []byte("ignored"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if hits.Load() != 0 {
		t.Fatal("changes to other files must be ignored")
	}

	if err := os.WriteFile(target, []byte("a: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hits.Load() == 0 {
		t.Fatal("expected a change notification")
	}
	abs, _ := filepath.Abs(target)
	if got, _ := lastPath.Load().(string); got != abs {
		t.Fatalf("expected %s, got %s", abs, got)
	}
}

func TestNewFileWatcher_RequiresFiles(t *testing.T) {
	if _, err := NewFileWatcher(nil, 0, nil); err == nil {
		t.Fatal("expected error for empty file list")
	}
}
