package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
)

// SpinnerProgressReporter shows a spinner while requests are in flight and
// prints messages in color
type SpinnerProgressReporter struct {
	spinner        *spinner.Spinner
	out            io.Writer
	currentStage   string
	stageStartTime time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter writing to stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.currentStage {
		r.currentStage = event.Stage
		r.stageStartTime = time.Now()
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Elapsed returns the time spent in the current stage
func (r *SpinnerProgressReporter) Elapsed() time.Duration {
	if r.stageStartTime.IsZero() {
		return 0
	}
	return time.Since(r.stageStartTime).Round(time.Millisecond)
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

// printPaused stops the spinner while message is written
func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	wasActive := false
	if r.spinner.Active() {
		wasActive = true
		r.spinner.Stop()
	}

	fmt.Fprintln(r.out, c.Sprint(message))

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
