//go:build windows

package wm

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procBringWindowToTop         = user32.NewProc("BringWindowToTop")
	procSetActiveWindow          = user32.NewProc("SetActiveWindow")
	procIsWindow                 = user32.NewProc("IsWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")

	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")
)

// windowsAPI implements WindowAPI on the Win32 user32 surface.
type windowsAPI struct{}

// NewWindowAPI returns the Win32 window collaborator.
func NewWindowAPI() WindowAPI {
	return &windowsAPI{}
}

func (w *windowsAPI) Foreground() (Handle, string, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return 0, "", ErrNoForeground
	}
	h := Handle(hwnd)
	title, err := w.TitleOf(h)
	if err != nil {
		return 0, "", err
	}
	return h, title, nil
}

func (w *windowsAPI) IsValid(h Handle) bool {
	r, _, _ := procIsWindow.Call(uintptr(h))
	return r != 0
}

func (w *windowsAPI) TitleOf(h Handle) (string, error) {
	if !w.IsValid(h) {
		return "", ErrInvalidHandle
	}

	length, _, _ := procGetWindowTextLengthW.Call(uintptr(h))
	if length == 0 {
		return "", nil
	}

	buf := make([]uint16, length+1)
	n, _, _ := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return "", nil
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// SetForeground raises the window. Windows refuses SetForegroundWindow
// from a background process unless the caller attaches its input state
// to the thread owning the current foreground window first.
func (w *windowsAPI) SetForeground(h Handle) error {
	if !w.IsValid(h) {
		return ErrInvalidHandle
	}

	attached, foreignThread := attachToForegroundThread()

	procSetForegroundWindow.Call(uintptr(h))
	procBringWindowToTop.Call(uintptr(h))
	procSetActiveWindow.Call(uintptr(h))

	if attached {
		detachFromForegroundThread(foreignThread)
	}

	// The window can die between the validity check and the raise.
	if !w.IsValid(h) {
		return ErrInvalidHandle
	}
	return nil
}

// attachToForegroundThread attaches this thread's input state to the
// thread owning the foreground window. Returns whether an attach was
// made and the foreign thread id for the matching detach.
func attachToForegroundThread() (bool, uintptr) {
	fg, _, _ := procGetForegroundWindow.Call()
	if fg == 0 {
		return false, 0
	}

	foreignThread, _, _ := procGetWindowThreadProcessId.Call(fg, 0)
	if foreignThread == 0 {
		return false, 0
	}

	currentThread, _, _ := procGetCurrentThreadId.Call()
	if currentThread == foreignThread {
		return false, 0
	}

	r, _, _ := procAttachThreadInput.Call(currentThread, foreignThread, 1)
	if r == 0 {
		return false, 0
	}
	return true, foreignThread
}

func detachFromForegroundThread(foreignThread uintptr) {
	currentThread, _, _ := procGetCurrentThreadId.Call()
	if currentThread != foreignThread {
		procAttachThreadInput.Call(currentThread, foreignThread, 0)
	}
}
