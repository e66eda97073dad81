package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal renders the menu as a bordered list on a tcell screen.
type Terminal struct {
	mu      sync.Mutex
	screen  tcell.Screen
	visible bool
	closed  bool
}

// NewTerminal creates a terminal presenter on a fresh tcell screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen)
}

// NewTerminalWithScreen wraps an existing screen. Tests pass a
// tcell simulation screen here.
func NewTerminalWithScreen(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Show(s Snapshot) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.visible = true

	t.screen.Clear()
	width, height := t.screen.Size()

	base := tcell.StyleDefault
	selected := base.Reverse(true)
	dim := base.Dim(true)

	title := " grapnel "
	if s.Inhibited {
		title = " grapnel [inhibited] "
	}
	drawText(t.screen, 0, 0, width, base.Bold(true), title)

	y := 1
	if len(s.Items) == 0 {
		drawText(t.screen, 2, y, width-2, dim, "(no pinned windows)")
		y++
	}
	for i, it := range s.Items {
		if y >= height-1 {
			break
		}
		style := base
		prefix := "  "
		if i == s.Selection {
			style = selected
			prefix = "> "
		}
		drawText(t.screen, 0, y, width, style, fmt.Sprintf("%s%d  %s", prefix, it.Slot, it.Title))
		y++
	}

	if s.ClipboardOccupied && y < height {
		drawText(t.screen, 0, y, width, dim, "  [cut pending: p paste below, P paste above]")
		y++
	}
	if s.Status != "" && y < height {
		drawText(t.screen, 0, y, width, dim.Italic(true), "  "+s.Status)
	}

	t.screen.Show()
	return nil
}

func (t *Terminal) Hide() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || !t.visible {
		return nil
	}
	t.visible = false
	t.screen.Clear()
	t.screen.Show()
	return nil
}

func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	return nil
}

// drawText writes a string left to right, clipped to maxWidth.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
