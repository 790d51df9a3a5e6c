package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestHandleInterrupts(t *testing.T) {
	tests := []struct {
		name        string
		expected    []string
		notExpected []string
		inFlight    bool
	}{
		{
			name:     "while in flight",
			inFlight: true,
			expected: []string{
				"Analysis interrupted!",
				"The request was cancelled",
				"Run the command again",
			},
		},
		{
			name:        "while idle",
			expected:    []string{"Analysis interrupted!", "Run the command again"},
			notExpected: []string{"The request was cancelled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := &syncBuffer{}
			handler := NewInterruptHandler(output)
			handler.SetInFlight(tt.inFlight)

			ctx := handler.HandleInterrupts(context.Background())

			select {
			case <-ctx.Done():
				t.Fatal("context should not be canceled initially")
			default:
			}

			handler.signals <- os.Interrupt

			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
				t.Fatal("context was not canceled after interrupt")
			}

			require.Eventually(t, handler.WasInterrupted, time.Second, 10*time.Millisecond)
			for _, want := range tt.expected {
				assert.Contains(t, output.String(), want)
			}
			for _, unwanted := range tt.notExpected {
				assert.NotContains(t, output.String(), unwanted)
			}
		})
	}
}

func TestHandleInterruptsParentCanceled(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)
	cancel()

	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestInterruptMessageShownOnce(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)
	_ = handler.HandleInterrupts(context.Background())

	handler.signals <- os.Interrupt
	require.Eventually(t, handler.WasInterrupted, time.Second, 10*time.Millisecond)

	handler.mu.Lock()
	if !handler.interrupted {
		handler.showInterruptMessage()
	}
	handler.mu.Unlock()

	assert.Equal(t, 1, strings.Count(output.String(), "Analysis interrupted!"))
}
