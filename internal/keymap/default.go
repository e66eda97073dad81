package keymap

import (
	"fmt"

	"github.com/mkelly/grapnel/internal/key"
)

// DefaultLeader is the modifier set held for every global binding.
const DefaultLeader = key.ModCtrlLeft | key.ModAltLeft

// DefaultGlobal returns the global table. Every binding is a single key
// struck while the leader modifiers are held.
func DefaultGlobal() *Keymap {
	k := New("global").WithLeader(DefaultLeader)

	k.AddBinding(Binding{Keys: "H", Action: "menu.toggle", Description: "Open or close the window menu"})
	k.AddBinding(Binding{Keys: "A", Action: "window.add", Description: "Pin the foreground window"})
	k.AddBinding(Binding{Keys: "M", Action: "window.next", Description: "Focus the next pinned window"})
	k.AddBinding(Binding{Keys: "N", Action: "window.prev", Description: "Focus the previous pinned window"})
	k.AddBinding(Binding{Keys: "S", Action: "inhibit.toggle", Description: "Suspend or resume global hotkeys"})

	// Home-row slot jumps, left hand on jkl; and right hand on uiop.
	for i, keyName := range []string{"J", "K", "L", "Semicolon", "U", "I", "O", "P"} {
		k.AddBinding(Binding{
			Keys:        keyName,
			Action:      fmt.Sprintf("window.focus%d", i+1),
			Description: fmt.Sprintf("Focus pinned window %d", i+1),
		})
	}

	return k
}

// DefaultMenu returns the menu table, active only while the menu is
// open. No leader applies; the menu owns the keyboard.
func DefaultMenu() *Keymap {
	k := New("menu")

	k.AddBinding(Binding{Keys: "Q", Action: "menu.quit", Description: "Close the menu"})
	k.AddBinding(Binding{Keys: "Escape", Action: "menu.quit", Description: "Close the menu"})
	k.AddBinding(Binding{Keys: "Enter", Action: "menu.confirm", Description: "Focus the selected window"})
	k.AddBinding(Binding{Keys: "Space", Action: "menu.confirm", Description: "Focus the selected window"})

	k.AddBinding(Binding{Keys: "J", Action: "menu.down", Description: "Move selection down"})
	k.AddBinding(Binding{Keys: "Down", Action: "menu.down", Description: "Move selection down"})
	k.AddBinding(Binding{Keys: "K", Action: "menu.up", Description: "Move selection up"})
	k.AddBinding(Binding{Keys: "Up", Action: "menu.up", Description: "Move selection up"})

	k.AddBinding(Binding{Keys: "Alt+J", Action: "menu.swapDown", Description: "Swap selected entry downward"})
	k.AddBinding(Binding{Keys: "Alt+Down", Action: "menu.swapDown", Description: "Swap selected entry downward"})
	k.AddBinding(Binding{Keys: "Alt+K", Action: "menu.swapUp", Description: "Swap selected entry upward"})
	k.AddBinding(Binding{Keys: "Alt+Up", Action: "menu.swapUp", Description: "Swap selected entry upward"})

	k.AddBinding(Binding{Keys: "Backspace", Action: "menu.cut", Description: "Cut the selected entry"})
	k.AddBinding(Binding{Keys: "Shift+D", Action: "menu.cut", Description: "Cut the selected entry"})
	k.AddBinding(Binding{Keys: "P", Action: "menu.pasteDown", Description: "Paste below the selection"})
	k.AddBinding(Binding{Keys: "Shift+P", Action: "menu.pasteUp", Description: "Paste above the selection"})

	return k
}

// DefaultSet parses both default tables. The defaults are fixed, so a
// parse failure is a programming error.
func DefaultSet() *Set {
	s, err := NewSet(DefaultGlobal(), DefaultMenu())
	if err != nil {
		panic(fmt.Sprintf("keymap: default tables invalid: %v", err))
	}
	return s
}
