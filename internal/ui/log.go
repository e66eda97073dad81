package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// LogPresenter writes one line per snapshot to a writer. It is the
// fallback when no terminal is available and the presenter used by the
// application tests.
type LogPresenter struct {
	mu      sync.Mutex
	w       io.Writer
	visible bool
}

// NewLogPresenter creates a presenter writing to w.
func NewLogPresenter(w io.Writer) *LogPresenter {
	return &LogPresenter{w: w}
}

func (p *LogPresenter) Show(s Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = true

	var b strings.Builder
	b.WriteString("menu:")
	if len(s.Items) == 0 {
		b.WriteString(" (empty)")
	}
	for i, it := range s.Items {
		marker := " "
		if i == s.Selection {
			marker = ">"
		}
		fmt.Fprintf(&b, " %s%d:%s", marker, it.Slot, it.Title)
	}
	if s.ClipboardOccupied {
		b.WriteString(" [cut pending]")
	}
	if s.Inhibited {
		b.WriteString(" [inhibited]")
	}
	if s.Status != "" {
		fmt.Fprintf(&b, " (%s)", s.Status)
	}

	_, err := fmt.Fprintln(p.w, b.String())
	return err
}

func (p *LogPresenter) Hide() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.visible {
		return nil
	}
	p.visible = false
	_, err := fmt.Fprintln(p.w, "menu: hidden")
	return err
}

func (p *LogPresenter) Close() error { return nil }
