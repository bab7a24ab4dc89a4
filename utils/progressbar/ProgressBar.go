// Package progressbar implements functionality of printing a progress
// bar to a terminal
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar prints the progress of a fixed number of iterations. The
// bar is redrawn in place on every call to Display.
//
// ProgressBar does not use concurrency and must be managed by a single
// goroutine.
type ProgressBar struct {
	out       io.Writer
	width     int
	max       int
	current   int
	startTime time.Time
}

// New returns a new ProgressBar that is width characters wide, reaches
// 100% after max calls to Increment, and prints to out
func New(out io.Writer, width, max int) *ProgressBar {
	if max < 1 {
		max = 1
	}
	return &ProgressBar{
		out:       out,
		width:     width,
		max:       max,
		startTime: time.Now(),
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.current < p.max {
		p.current++
	}
}

// Fraction returns the fraction of iterations performed so far
func (p *ProgressBar) Fraction() float64 {
	return float64(p.current) / float64(p.max)
}

// String returns the bar as it would currently be displayed
func (p *ProgressBar) String() string {
	var bar strings.Builder
	bar.WriteString("|")

	filled := int(p.Fraction() * float64(p.width))
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))

	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]", p.Fraction()*100,
		time.Since(p.startTime).Truncate(time.Second))
	return bar.String()
}

// Display redraws the progress bar over the current line
func (p *ProgressBar) Display() {
	fmt.Fprintf(p.out, "\r\033[K%v", p)
}

// Close finishes the progress bar by moving to the next line
func (p *ProgressBar) Close() {
	fmt.Fprintln(p.out)
}
