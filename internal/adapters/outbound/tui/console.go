package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Console implements domain.LogSink, rendering each text with a style.
// Writes are serialized so parallel transforms never interleave.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	style lipgloss.Style
}

// NewConsole creates an unstyled console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, style: lipgloss.NewStyle()}
}

// NewErrorConsole creates a console that renders text in red.
func NewErrorConsole(w io.Writer) *Console {
	return &Console{w: w, style: lipgloss.NewStyle().Foreground(danger)}
}

func (c *Console) Log(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, c.style.Render(text))
}
