package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when NewFileWatcher gets a zero window.
const DefaultDebounce = 300 * time.Millisecond

// ChangeType is the kind of filesystem change observed.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeWrite  ChangeType = "write"
	ChangeRemove ChangeType = "remove"
	ChangeRename ChangeType = "rename"
)

// ChangeEvent is the last change seen in a debounce window.
type ChangeEvent struct {
	Path       string
	ChangeType ChangeType
}

// FileWatcher watches individual files. It watches their parent directories
// so that editors which save by rename-and-replace are still picked up.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	filter   *PatternFilter
	debounce time.Duration
	onChange func(ChangeEvent)

	mu   sync.Mutex
	last ChangeEvent
}

// NewFileWatcher watches files and calls onChange after each burst of
// changes to any of them.
func NewFileWatcher(files []string, debounce time.Duration, onChange func(ChangeEvent)) (*FileWatcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	include := make([]string, 0, len(files))
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		include = append(include, abs)
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return &FileWatcher{
		watcher:  w,
		filter:   NewPatternFilter(include, nil),
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run delivers change notifications until ctx is cancelled.
func (w *FileWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	debouncer := NewDebouncer(w.debounce, func() {
		w.mu.Lock()
		ev := w.last
		w.mu.Unlock()
		if w.onChange != nil {
			w.onChange(ev)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			changeType := opToChangeType(event.Op)
			if changeType == "" {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.filter.Matches(abs) {
				continue
			}

			w.mu.Lock()
			w.last = ChangeEvent{Path: abs, ChangeType: changeType}
			w.mu.Unlock()
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func opToChangeType(op fsnotify.Op) ChangeType {
	switch {
	case op.Has(fsnotify.Create):
		return ChangeCreate
	case op.Has(fsnotify.Write):
		return ChangeWrite
	case op.Has(fsnotify.Remove):
		return ChangeRemove
	case op.Has(fsnotify.Rename):
		return ChangeRename
	default:
		return ""
	}
}
