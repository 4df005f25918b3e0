package theme

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/celerix-dev/flowclient/internal/logging"
	"github.com/charmbracelet/lipgloss"
)

// EnvColorScheme overrides terminal detection when set to "dark" or "light".
const EnvColorScheme = "FLOW_COLOR_SCHEME"

var (
	getenv            = os.Getenv
	hasDarkBackground = lipgloss.HasDarkBackground
)

// DetectDark reports whether the terminal has a dark background. It checks
// FLOW_COLOR_SCHEME, then COLORFGBG, then asks the terminal through lipgloss.
func DetectDark() bool {
	switch strings.ToLower(strings.TrimSpace(getenv(EnvColorScheme))) {
	case "dark":
		return true
	case "light":
		return false
	}

	if dark, ok := parseColorFGBG(getenv("COLORFGBG")); ok {
		return dark
	}

	return hasDarkBackground()
}

// parseColorFGBG reads the background index from "fg;bg" (or "fg;x;bg").
// ANSI 0-6 and 8 are dark backgrounds.
func parseColorFGBG(v string) (dark bool, ok bool) {
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || len(parts) < 2 {
		return false, false
	}
	return (bg >= 0 && bg <= 6) || bg == 8, true
}

// TerminalSource polls a detector and publishes changes.
type TerminalSource struct {
	*Broadcaster

	detect   func() bool
	interval time.Duration
	log      logging.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewTerminalSource uses DetectDark when detect is nil.
func NewTerminalSource(interval time.Duration, detect func() bool, log logging.Logger) *TerminalSource {
	if detect == nil {
		detect = DetectDark
	}
	return &TerminalSource{
		Broadcaster: NewBroadcaster(detect()),
		detect:      detect,
		interval:    interval,
		log:         log.With("component", "scheme", "source", "terminal"),
	}
}

// Start begins polling. It is a no-op when already running.
func (s *TerminalSource) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.run(ctx, s.stopCh, s.doneCh)
}

func (s *TerminalSource) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			dark := s.detect()
			if s.Set(dark) {
				s.log.Debug(ctx, "color scheme changed", "dark", dark)
			}
		}
	}
}

// Stop ends polling and waits for the poller to exit.
func (s *TerminalSource) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stop)
	<-done
}
