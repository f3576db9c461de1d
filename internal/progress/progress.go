// Package progress shows a spinner on a terminal while a command waits.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Indicator displays a status message while a long-running operation runs.
type Indicator struct {
	writer      io.Writer
	message     string
	startTime   time.Time
	mu          sync.Mutex
	showSpinner bool
	spinnerIdx  int
	stopChan    chan struct{}
	done        chan struct{}
	startOnce   sync.Once
	stopOnce    sync.Once // Ensures Stop() is only called once
	isCI        bool
}

// Config holds configuration for progress indicator
type Config struct {
	Writer      io.Writer
	Message     string
	ShowSpinner bool
	IsCI        bool // Set to true in CI/CD environments to disable fancy output
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewIndicator creates a new progress indicator
func NewIndicator(cfg Config) *Indicator {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}

	// Auto-detect CI environment
	if !cfg.IsCI {
		cfg.IsCI = os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
	}

	return &Indicator{
		writer:      cfg.Writer,
		message:     cfg.Message,
		startTime:   time.Now(),
		showSpinner: cfg.ShowSpinner && !cfg.IsCI,
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
		isCI:        cfg.IsCI,
	}
}

// Start begins the display. Without a spinner the message is printed once.
func (p *Indicator) Start() {
	p.startOnce.Do(func() {
		if !p.showSpinner {
			if p.message != "" {
				fmt.Fprintf(p.writer, "%s...\n", p.message)
			}
			close(p.done)
			return
		}
		go p.spinnerLoop()
	})
}

// Stop stops the indicator and waits for the spinner to finish drawing.
func (p *Indicator) Stop() {
	p.Start()
	p.stopOnce.Do(func() {
		close(p.stopChan)
		<-p.done
		if p.showSpinner {
			// Clear spinner line
			fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", len([]rune(p.line()))+2))
		}
	})
}

// Elapsed returns the time since the indicator was created.
func (p *Indicator) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// spinnerLoop runs the spinner animation
func (p *Indicator) spinnerLoop() {
	defer close(p.done)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	p.render()
	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.spinnerIdx = (p.spinnerIdx + 1) % len(spinnerFrames)
			p.mu.Unlock()
			p.render()
		}
	}
}

func (p *Indicator) render() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.writer, "\r%s", p.line())
}

func (p *Indicator) line() string {
	return fmt.Sprintf("%s %s %s", spinnerFrames[p.spinnerIdx], p.message, formatDuration(time.Since(p.startTime)))
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	d = d.Round(time.Second)
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
