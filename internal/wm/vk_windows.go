//go:build windows

package wm

import "github.com/mkelly/grapnel/internal/key"

// virtualKeyMap maps Win32 virtual-key codes to physical keys.
var virtualKeyMap = map[uint32]key.Key{
	0x08: key.KeyBackspace,
	0x09: key.KeyTab,
	0x0D: key.KeyEnter,
	0x1B: key.KeyEscape,
	0x20: key.KeySpace,
	0x21: key.KeyPageUp,
	0x22: key.KeyPageDown,
	0x23: key.KeyEnd,
	0x24: key.KeyHome,
	0x25: key.KeyLeft,
	0x26: key.KeyUp,
	0x27: key.KeyRight,
	0x28: key.KeyDown,
	0x2D: key.KeyInsert,
	0x2E: key.KeyDelete,

	// VK_OEM punctuation (US layout positions)
	0xBA: key.KeySemicolon,
	0xBB: key.KeyEquals,
	0xBC: key.KeyComma,
	0xBD: key.KeyMinus,
	0xBE: key.KeyPeriod,
	0xBF: key.KeySlash,
	0xDE: key.KeyApostrophe,

	// Modifier keys, left and right distinct
	0xA0: key.KeyShiftLeft,
	0xA1: key.KeyShiftRight,
	0xA2: key.KeyCtrlLeft,
	0xA3: key.KeyCtrlRight,
	0xA4: key.KeyAltLeft,
	0xA5: key.KeyAltRight,
	0x5B: key.KeyMetaLeft,
	0x5C: key.KeyMetaRight,
}

// keyFromVirtualKey translates a Win32 virtual-key code. Returns
// key.KeyNone for keys the system does not track.
func keyFromVirtualKey(vk uint32) key.Key {
	switch {
	case vk >= 'A' && vk <= 'Z':
		return key.KeyA + key.Key(vk-'A')
	case vk >= '0' && vk <= '9':
		return key.Key0 + key.Key(vk-'0')
	case vk >= 0x70 && vk <= 0x7B: // VK_F1..VK_F12
		return key.KeyF1 + key.Key(vk-0x70)
	}
	return virtualKeyMap[vk]
}
