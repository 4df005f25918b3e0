package theme

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/celerix-dev/flowclient/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// FileSource follows a file holding the word "dark" or "light". The parent
// directory is watched so editors that replace the file on save are seen.
// A missing or unreadable file leaves the last known value in place.
type FileSource struct {
	*Broadcaster

	path    string
	watcher *fsnotify.Watcher
	log     logging.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewFileSource(path string, log logging.Logger) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve scheme file: %w", err)
	}

	log = log.With("component", "scheme", "source", "file", "path", abs)

	dark, err := readScheme(abs)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn(context.Background(), "unreadable scheme file, assuming light", "error", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &FileSource{
		Broadcaster: NewBroadcaster(dark),
		path:        abs,
		watcher:     w,
		log:         log,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// readScheme parses the file content. Anything but dark or light is an
// error.
func readScheme(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	switch v := strings.ToLower(strings.TrimSpace(string(data))); v {
	case "dark":
		return true, nil
	case "light":
		return false, nil
	default:
		return false, fmt.Errorf("unknown color scheme %q", v)
	}
}

// Start begins watching. It is non-blocking and a no-op when running.
func (s *FileSource) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go s.run(ctx)
}

func (s *FileSource) run(ctx context.Context) {
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(ctx, event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Error(ctx, "scheme watcher error", "error", err)
		}
	}
}

func (s *FileSource) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != s.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	dark, err := readScheme(s.path)
	if err != nil {
		s.log.Debug(ctx, "ignoring scheme file change", "error", err)
		return
	}
	if s.Set(dark) {
		s.log.Debug(ctx, "color scheme changed", "dark", dark)
	}
}

// Stop ends watching and releases the watcher. It must be called once
// whether or not Start was.
func (s *FileSource) Stop() {
	s.mu.Lock()
	running := s.running
	s.running = false
	s.mu.Unlock()

	if running {
		close(s.stopCh)
		<-s.doneCh
	}
	if err := s.watcher.Close(); err != nil {
		s.log.Error(context.Background(), "error closing scheme watcher", "error", err)
	}
}
