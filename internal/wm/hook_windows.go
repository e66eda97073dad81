//go:build windows

package wm

import (
	"errors"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mkelly/grapnel/internal/hotkey"
	"github.com/mkelly/grapnel/internal/key"
)

var (
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLL = 13

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
	wmQuit       = 0x0012
)

// kbdllHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdllHookStruct struct {
	VkCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// msg mirrors the Win32 MSG structure.
type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// keyboardHook implements hotkey.Hook with a WH_KEYBOARD_LL hook. The
// hook callback runs on a dedicated locked OS thread that pumps a Win32
// message loop; Windows silently removes low-level hooks whose callbacks
// exceed the system timeout, so the handler must return fast.
type keyboardHook struct {
	mu       sync.Mutex
	handler  func(key.RawEvent)
	hook     uintptr
	threadID uintptr
	done     chan struct{}
	// Held so the syscall callback is not garbage collected.
	callbackRef uintptr
}

// NewHook returns the Win32 low-level keyboard hook collaborator.
func NewHook() hotkey.Hook {
	return &keyboardHook{}
}

func (h *keyboardHook) Install(handler func(key.RawEvent)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hook != 0 {
		return &hotkey.InstallError{Err: errors.New("hook already installed")}
	}

	h.handler = handler
	h.done = make(chan struct{})
	installed := make(chan error, 1)

	go h.pump(installed)

	if err := <-installed; err != nil {
		h.handler = nil
		return &hotkey.InstallError{Err: err}
	}
	return nil
}

// pump installs the hook and runs the message loop on one locked thread.
// Low-level hooks only fire while the installing thread pumps messages.
func (h *keyboardHook) pump(installed chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	tid, _, _ := procGetCurrentThreadId.Call()
	h.threadID = tid

	cb := func(nCode, wParam, lParam uintptr) uintptr {
		if nCode == 0 {
			h.onKey(wParam, lParam)
		}
		r, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
		return r
	}
	h.callbackRef = windows.NewCallback(cb)

	hook, _, callErr := procSetWindowsHookExW.Call(whKeyboardLL, h.callbackRef, 0, 0)
	if hook == 0 {
		installed <- callErr
		return
	}
	h.hook = hook
	installed <- nil

	var m msg
	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		// 0 is WM_QUIT, ^0 is an error; both end the pump.
		if r == 0 || r == ^uintptr(0) {
			return
		}
	}
}

// onKey translates one hook notification and hands it to the handler.
// Runs inside the OS time budget.
func (h *keyboardHook) onKey(wParam, lParam uintptr) {
	handler := h.handler
	if handler == nil {
		return
	}

	info := (*kbdllHookStruct)(unsafe.Pointer(lParam))
	k := keyFromVirtualKey(info.VkCode)
	if k == key.KeyNone {
		return
	}

	var dir key.Direction
	switch wParam {
	case wmKeyDown, wmSysKeyDown:
		dir = key.DirDown
	case wmKeyUp, wmSysKeyUp:
		dir = key.DirUp
	default:
		return
	}

	handler(key.RawEvent{Key: k, Direction: dir, Time: time.Now()})
}

func (h *keyboardHook) Uninstall() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hook == 0 {
		return nil
	}

	procUnhookWindowsHookEx.Call(h.hook)
	procPostThreadMessageW.Call(h.threadID, wmQuit, 0, 0)
	<-h.done

	h.hook = 0
	h.threadID = 0
	h.handler = nil
	return nil
}
