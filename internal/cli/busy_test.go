package cli

import (
	"testing"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/stretchr/testify/assert"
)

func TestBusyIndicatorStartStop(t *testing.T) {
	output := &syncBuffer{}
	busy := NewBusyIndicator(output, "Analyzing...")

	assert.False(t, busy.Running())
	busy.Stop()

	busy.Start()
	busy.Start()
	assert.True(t, busy.Running())

	busy.Stop()
	assert.False(t, busy.Running())
	busy.Stop()
}

func TestBusyIndicatorListener(t *testing.T) {
	busy := NewBusyIndicator(&syncBuffer{}, "Analyzing...")
	listen := busy.Listener()

	listen(analysis.Snapshot{Status: analysis.StatusValidating})
	assert.False(t, busy.Running())

	listen(analysis.Snapshot{Status: analysis.StatusInFlight})
	assert.True(t, busy.Running())

	listen(analysis.Snapshot{Status: analysis.StatusSucceeded})
	assert.False(t, busy.Running())

	listen(analysis.Snapshot{Status: analysis.StatusInFlight})
	listen(analysis.Snapshot{Status: analysis.StatusFailed})
	assert.False(t, busy.Running())
}
