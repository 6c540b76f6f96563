// Package spinner shows progress on the terminal while a report is generated.
// Output degrades to plain lines when the writer is not a terminal.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"

	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

// Frames is a set of animation frames.
type Frames []string

// Built-in frame sets.
var (
	// Braille is the default animation.
	Braille = Frames{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	// Line uses ASCII only, for terminals without braille glyphs.
	Line = Frames{"|", "/", "-", "\\"}
)

// Config holds spinner options.
type Config struct {
	// Frames is the animation. Defaults to Braille.
	Frames Frames

	// Message is shown next to the animation.
	Message string

	// Interval between frames. Defaults to 80ms.
	Interval time.Duration

	// Writer receives the output. Defaults to os.Stderr.
	Writer io.Writer

	// IsTTY overrides terminal detection on Writer.
	IsTTY *bool
}

// Spinner animates a single status line.
type Spinner struct {
	mu sync.Mutex

	cfg     Config
	tty     bool
	active  bool
	started time.Time
	frame   int
	width   int

	stop chan struct{}
	done chan struct{}
}

// New returns a spinner on stderr.
func New(message string) *Spinner {
	return NewWithConfig(Config{Message: message})
}

// NewWithConfig returns a spinner with cfg, filling in defaults.
func NewWithConfig(cfg Config) *Spinner {
	if len(cfg.Frames) == 0 {
		cfg.Frames = Braille
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 80 * time.Millisecond
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	tty := false
	if f, ok := cfg.Writer.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	if cfg.IsTTY != nil {
		tty = *cfg.IsTTY
	}
	return &Spinner{cfg: cfg, tty: tty}
}

// Start begins the animation. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.started = time.Now()
	s.frame = 0

	if !s.tty {
		fmt.Fprintf(s.cfg.Writer, "%s...\n", s.cfg.Message)
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	fmt.Fprint(s.cfg.Writer, hideCursor)
	go s.loop(s.stop, s.done)
}

func (s *Spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.draw()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.draw()
		}
	}
}

func (s *Spinner) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	line := fmt.Sprintf("%s %s %s", s.cfg.Frames[s.frame%len(s.cfg.Frames)], s.cfg.Message, elapsed(time.Since(s.started)))
	s.frame++
	s.erase()
	fmt.Fprint(s.cfg.Writer, line)
	s.width = len([]rune(line))
}

// erase blanks the current line. Caller holds mu.
func (s *Spinner) erase() {
	if s.width > 0 {
		fmt.Fprint(s.cfg.Writer, "\r"+strings.Repeat(" ", s.width)+"\r")
		s.width = 0
	}
}

// Update changes the message shown next to the animation.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Message = message
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.halt()
}

// Success stops the spinner with a check mark.
func (s *Spinner) Success(message string) { s.finish("✓", colorGreen, message) }

// Warn stops the spinner with a warning mark.
func (s *Spinner) Warn(message string) { s.finish("!", colorYellow, message) }

// Fail stops the spinner with a cross.
func (s *Spinner) Fail(message string) { s.finish("✗", colorRed, message) }

func (s *Spinner) finish(symbol, color, message string) {
	took := s.halt()

	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		message = s.cfg.Message
	}
	suffix := ""
	if took > 0 {
		suffix = " " + elapsed(took)
	}
	if s.tty {
		fmt.Fprintf(s.cfg.Writer, "%s%s%s %s%s\n", color, symbol, colorReset, message, suffix)
		return
	}
	fmt.Fprintf(s.cfg.Writer, "%s %s%s\n", symbol, message, suffix)
}

// halt stops the animation goroutine and returns how long the spinner ran.
func (s *Spinner) halt() time.Duration {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return 0
	}
	s.active = false
	took := time.Since(s.started)
	stop, done := s.stop, s.done
	s.mu.Unlock()

	if !s.tty {
		return took
	}
	close(stop)
	<-done

	s.mu.Lock()
	s.erase()
	fmt.Fprint(s.cfg.Writer, showCursor)
	s.mu.Unlock()
	return took
}

// elapsed formats d as "(1.2s)" or "(1m 30s)".
func elapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}
