package progress

import (
	"fmt"
	"io"
	"time"
)

const defaultInterval = 100 * time.Millisecond

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Tracker draws a single status line for a scan. It renders inline from
// Increment, so it never runs in the background. A nil *Tracker is valid
// and discards everything.
type Tracker struct {
	w         io.Writer
	message   string
	current   int
	frame     int
	startTime time.Time
	lastDraw  time.Time
	interval  time.Duration
	now       func() time.Time
}

func NewProgress(w io.Writer, message string) *Tracker {
	if w == nil {
		return nil
	}
	return &Tracker{
		w:         w,
		message:   message,
		startTime: time.Now(),
		interval:  defaultInterval,
		now:       time.Now,
	}
}

// SetInterval changes the minimum delay between redraws.
func (p *Tracker) SetInterval(d time.Duration) {
	if p == nil {
		return
	}
	p.interval = d
}

func (p *Tracker) Increment() {
	if p == nil {
		return
	}
	p.current++

	now := p.now()
	if now.Sub(p.lastDraw) < p.interval {
		return
	}
	p.lastDraw = now
	fmt.Fprintf(p.w, "\r%s %s [%d files]  ", spinner[p.frame%len(spinner)], p.message, p.current)
	p.frame++
}

func (p *Tracker) Current() int {
	if p == nil {
		return 0
	}
	return p.current
}

func (p *Tracker) Finish() {
	if p == nil {
		return
	}
	elapsed := p.now().Sub(p.startTime)
	fmt.Fprintf(p.w, "\r✓ %s (%d files, %s)          \n",
		p.message, p.current, elapsed.Round(time.Millisecond))
}

// Abort ends the status line after a failed scan so later output starts on
// a fresh line.
func (p *Tracker) Abort() {
	if p == nil {
		return
	}
	fmt.Fprintf(p.w, "\r✗ %s (%d files)          \n", p.message, p.current)
}
