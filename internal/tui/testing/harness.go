package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives a Bubble Tea model without a terminal and records what it
// produced.
type Harness struct {
	Model    tea.Model
	Output   string
	Commands []tea.Cmd
	Messages []tea.Msg
}

// NewHarness wraps a model.
func NewHarness(model tea.Model) *Harness {
	h := &Harness{Model: model}
	h.Output = model.View()
	return h
}

// Send delivers one message and re-renders.
func (h *Harness) Send(msg tea.Msg) tea.Cmd {
	h.Messages = append(h.Messages, msg)

	model, cmd := h.Model.Update(msg)
	h.Model = model
	if cmd != nil {
		h.Commands = append(h.Commands, cmd)
	}
	h.Output = model.View()
	return cmd
}

// Type sends each rune of text as a key press.
func (h *Harness) Type(text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends a key of the given type.
func (h *Harness) Press(keyType tea.KeyType) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: keyType})
}

// Resize sends a window size message.
func (h *Harness) Resize(width, height int) {
	h.Send(tea.WindowSizeMsg{Width: width, Height: height})
}

// Plain returns the last view without styling.
func (h *Harness) Plain() string {
	return StripANSI(h.Output)
}

// Collect runs cmd and returns the messages it produces, flattening batches.
// Messages for which keep returns false are dropped without running anything
// they might schedule. A nil keep keeps everything.
func Collect(cmd tea.Cmd, keep func(tea.Msg) bool) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, Collect(c, keep)...)
		}
		return msgs
	}

	if msg == nil || (keep != nil && !keep(msg)) {
		return nil
	}
	return []tea.Msg{msg}
}
