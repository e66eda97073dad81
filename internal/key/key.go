package key

import (
	"fmt"
	"strings"
)

// Key represents a physical keyboard key.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Letter keys
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digit keys (top row)
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Punctuation keys
	KeySemicolon
	KeyComma
	KeyPeriod
	KeySlash
	KeyApostrophe
	KeyMinus
	KeyEquals

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Modifier keys. Left and right variants are distinct physical keys;
	// chord matching works on the physical set.
	KeyCtrlLeft
	KeyCtrlRight
	KeyAltLeft
	KeyAltRight
	KeyShiftLeft
	KeyShiftRight
	KeyMetaLeft
	KeyMetaRight
)

// keyNames maps keys to their canonical names.
var keyNames = map[Key]string{
	KeyNone:       "None",
	KeyA:          "A",
	KeyB:          "B",
	KeyC:          "C",
	KeyD:          "D",
	KeyE:          "E",
	KeyF:          "F",
	KeyG:          "G",
	KeyH:          "H",
	KeyI:          "I",
	KeyJ:          "J",
	KeyK:          "K",
	KeyL:          "L",
	KeyM:          "M",
	KeyN:          "N",
	KeyO:          "O",
	KeyP:          "P",
	KeyQ:          "Q",
	KeyR:          "R",
	KeyS:          "S",
	KeyT:          "T",
	KeyU:          "U",
	KeyV:          "V",
	KeyW:          "W",
	KeyX:          "X",
	KeyY:          "Y",
	KeyZ:          "Z",
	Key0:          "0",
	Key1:          "1",
	Key2:          "2",
	Key3:          "3",
	Key4:          "4",
	Key5:          "5",
	Key6:          "6",
	Key7:          "7",
	Key8:          "8",
	Key9:          "9",
	KeySemicolon:  "Semicolon",
	KeyComma:      "Comma",
	KeyPeriod:     "Period",
	KeySlash:      "Slash",
	KeyApostrophe: "Apostrophe",
	KeyMinus:      "Minus",
	KeyEquals:     "Equals",
	KeyEscape:     "Escape",
	KeyEnter:      "Enter",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyDelete:     "Delete",
	KeyInsert:     "Insert",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeySpace:      "Space",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyF9:         "F9",
	KeyF10:        "F10",
	KeyF11:        "F11",
	KeyF12:        "F12",
	KeyCtrlLeft:   "Ctrl",
	KeyCtrlRight:  "RCtrl",
	KeyAltLeft:    "Alt",
	KeyAltRight:   "RAlt",
	KeyShiftLeft:  "Shift",
	KeyShiftRight: "RShift",
	KeyMetaLeft:   "Meta",
	KeyMetaRight:  "RMeta",
}

// keyNameMap maps lowercase key names and aliases to Key values.
var keyNameMap = map[string]Key{
	"semicolon": KeySemicolon,
	";":         KeySemicolon,
	"comma":     KeyComma,
	",":         KeyComma,
	"period":    KeyPeriod,
	".":         KeyPeriod,
	"slash":     KeySlash,
	"/":         KeySlash,
	"apostrophe": KeyApostrophe,
	"'":          KeyApostrophe,
	"minus":      KeyMinus,
	"-":          KeyMinus,
	"equals":     KeyEquals,
	"=":          KeyEquals,
	"escape":     KeyEscape,
	"esc":        KeyEscape,
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"tab":        KeyTab,
	"backspace":  KeyBackspace,
	"bs":         KeyBackspace,
	"delete":     KeyDelete,
	"del":        KeyDelete,
	"insert":     KeyInsert,
	"ins":        KeyInsert,
	"home":       KeyHome,
	"end":        KeyEnd,
	"pageup":     KeyPageUp,
	"pgup":       KeyPageUp,
	"pagedown":   KeyPageDown,
	"pgdn":       KeyPageDown,
	"space":      KeySpace,
	"up":         KeyUp,
	"down":       KeyDown,
	"left":       KeyLeft,
	"right":      KeyRight,
	"ctrl":       KeyCtrlLeft,
	"control":    KeyCtrlLeft,
	"lctrl":      KeyCtrlLeft,
	"rctrl":      KeyCtrlRight,
	"alt":        KeyAltLeft,
	"lalt":       KeyAltLeft,
	"ralt":       KeyAltRight,
	"shift":      KeyShiftLeft,
	"lshift":     KeyShiftLeft,
	"rshift":     KeyShiftRight,
	"meta":       KeyMetaLeft,
	"win":        KeyMetaLeft,
	"super":      KeyMetaLeft,
	"rmeta":      KeyMetaRight,
}

func init() {
	// Letters, digits, and function keys resolve by their canonical name.
	for k := KeyA; k <= KeyZ; k++ {
		keyNameMap[strings.ToLower(keyNames[k])] = k
	}
	for k := Key0; k <= Key9; k++ {
		keyNameMap[keyNames[k]] = k
	}
	for k := KeyF1; k <= KeyF12; k++ {
		keyNameMap[strings.ToLower(keyNames[k])] = k
	}
}

// String returns the canonical name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// IsModifier returns true if this is a modifier key.
func (k Key) IsModifier() bool {
	return k >= KeyCtrlLeft && k <= KeyMetaRight
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsLetter returns true if this is a letter key.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit returns true if this is a digit key.
func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

// FromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func FromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}
