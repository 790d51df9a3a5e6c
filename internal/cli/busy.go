package cli

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/schollz/progressbar/v3"
)

const busyTickInterval = 100 * time.Millisecond

// BusyIndicator shows an indeterminate spinner while an analysis is in flight.
type BusyIndicator struct {
	writer      io.Writer
	bar         *progressbar.ProgressBar
	stop        chan struct{}
	done        chan struct{}
	description string
	mu          sync.Mutex
}

// NewBusyIndicator creates a spinner that writes to w (stderr when nil).
func NewBusyIndicator(w io.Writer, description string) *BusyIndicator {
	if w == nil {
		w = os.Stderr
	}
	return &BusyIndicator{
		writer:      w,
		description: description,
	}
}

// Start shows the spinner. Calling Start while running is a no-op.
func (b *BusyIndicator) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar != nil {
		return
	}

	b.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(b.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][bold]"+b.description+"[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	b.stop = make(chan struct{})
	b.done = make(chan struct{})

	go b.spin(b.bar, b.stop, b.done)
}

func (b *BusyIndicator) spin(bar *progressbar.ProgressBar, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(busyTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := bar.Add(1); err != nil {
				slog.Debug("Failed to update busy indicator", "error", err)
			}
		}
	}
}

// Stop hides the spinner. Calling Stop when not running is a no-op.
func (b *BusyIndicator) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		return
	}

	close(b.stop)
	<-b.done

	if err := b.bar.Finish(); err != nil {
		slog.Debug("Failed to finish busy indicator", "error", err)
	}
	b.bar = nil
}

// Running reports whether the spinner is shown.
func (b *BusyIndicator) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bar != nil
}

// Listener returns a session listener that shows the spinner exactly while a
// request is in flight.
func (b *BusyIndicator) Listener() analysis.Listener {
	return func(snap analysis.Snapshot) {
		if snap.Status == analysis.StatusInFlight {
			b.Start()
			return
		}
		b.Stop()
	}
}
