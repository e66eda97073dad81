// Package wmtest provides in-memory fakes of the OS collaborators for
// tests.
package wmtest

import (
	"sync"

	"github.com/mkelly/grapnel/internal/hotkey"
	"github.com/mkelly/grapnel/internal/key"
	"github.com/mkelly/grapnel/internal/wm"
)

// FakeWindowAPI is an in-memory WindowAPI. Windows exist while their
// handle is registered; Invalidate simulates the OS closing a window
// behind the registry's back.
type FakeWindowAPI struct {
	mu         sync.Mutex
	titles     map[wm.Handle]string
	foreground wm.Handle

	// Focused records every successful SetForeground call in order.
	Focused []wm.Handle
}

// NewFakeWindowAPI creates an empty fake.
func NewFakeWindowAPI() *FakeWindowAPI {
	return &FakeWindowAPI{titles: make(map[wm.Handle]string)}
}

// AddWindow registers a live window.
func (f *FakeWindowAPI) AddWindow(h wm.Handle, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles[h] = title
}

// Invalidate simulates the window being closed by the OS.
func (f *FakeWindowAPI) Invalidate(h wm.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.titles, h)
	if f.foreground == h {
		f.foreground = 0
	}
}

// SetForegroundWindow marks which window the fake reports as foreground.
func (f *FakeWindowAPI) SetForegroundWindow(h wm.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.foreground = h
}

func (f *FakeWindowAPI) Foreground() (wm.Handle, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.foreground == 0 {
		return 0, "", wm.ErrNoForeground
	}
	return f.foreground, f.titles[f.foreground], nil
}

func (f *FakeWindowAPI) SetForeground(h wm.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.titles[h]; !ok {
		return wm.ErrInvalidHandle
	}
	f.foreground = h
	f.Focused = append(f.Focused, h)
	return nil
}

func (f *FakeWindowAPI) TitleOf(h wm.Handle) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	title, ok := f.titles[h]
	if !ok {
		return "", wm.ErrInvalidHandle
	}
	return title, nil
}

func (f *FakeWindowAPI) IsValid(h wm.Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.titles[h]
	return ok
}

// FakeHook is an in-memory hotkey.Hook that lets tests inject raw key
// events into the installed handler.
type FakeHook struct {
	mu        sync.Mutex
	handler   func(key.RawEvent)
	installed bool

	// InstallErr, when set, is returned by Install.
	InstallErr error

	// Uninstalled counts Uninstall calls.
	Uninstalled int
}

// NewFakeHook creates an uninstalled fake hook.
func NewFakeHook() *FakeHook {
	return &FakeHook{}
}

func (f *FakeHook) Install(handler func(key.RawEvent)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InstallErr != nil {
		return &hotkey.InstallError{Err: f.InstallErr}
	}
	f.handler = handler
	f.installed = true
	return nil
}

func (f *FakeHook) Uninstall() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installed = false
	f.handler = nil
	f.Uninstalled++
	return nil
}

// Installed reports whether the hook is currently installed.
func (f *FakeHook) Installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installed
}

// Emit delivers a raw event to the installed handler, as the OS would.
func (f *FakeHook) Emit(ev key.RawEvent) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(ev)
	}
}

// Press emits down transitions for each key in order.
func (f *FakeHook) Press(keys ...key.Key) {
	for _, k := range keys {
		f.Emit(key.NewRawEvent(k, key.DirDown))
	}
}

// Release emits up transitions for each key in order.
func (f *FakeHook) Release(keys ...key.Key) {
	for _, k := range keys {
		f.Emit(key.NewRawEvent(k, key.DirUp))
	}
}

// Tap presses and releases the given chord keys.
func (f *FakeHook) Tap(c key.Chord) {
	keys := c.Keys()
	f.Press(keys...)
	for i := len(keys) - 1; i >= 0; i-- {
		f.Release(keys[i])
	}
}
