package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mkelly/grapnel/internal/config"
	"github.com/mkelly/grapnel/internal/dispatch"
	"github.com/mkelly/grapnel/internal/key"
	"github.com/mkelly/grapnel/internal/ui"
	"github.com/mkelly/grapnel/internal/wm"
	"github.com/mkelly/grapnel/internal/wm/wmtest"
)

// harness bundles an application wired to fakes with its running loop.
type harness struct {
	app     *Application
	hook    *wmtest.FakeHook
	windows *wmtest.FakeWindowAPI
	runErr  chan error
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	h := &harness{
		hook:    wmtest.NewFakeHook(),
		windows: wmtest.NewFakeWindowAPI(),
		runErr:  make(chan error, 1),
	}

	a, err := New(Options{
		Config:  cfg,
		Hook:    h.hook,
		Windows: h.windows,
		Logger:  NullLogger,
		Tick:    time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.app = a

	go func() { h.runErr <- a.Run() }()
	waitFor(t, "hook install", h.hook.Installed)

	t.Cleanup(func() {
		a.Shutdown()
		select {
		case <-h.runErr:
		default:
		}
	})
	return h
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func tap(h *harness, spec string) {
	h.hook.Tap(key.MustParseChord(spec))
}

func TestPinAndFocusSlot(t *testing.T) {
	h := newHarness(t, nil)
	h.windows.AddWindow(100, "editor")
	h.windows.AddWindow(200, "browser")

	h.windows.SetForegroundWindow(100)
	tap(h, "Ctrl+Alt+A")
	waitFor(t, "first pin", func() bool { return h.app.Registry().Len() == 1 })

	h.windows.SetForegroundWindow(200)
	tap(h, "Ctrl+Alt+A")
	waitFor(t, "second pin", func() bool { return h.app.Registry().Len() == 2 })

	// Slot jump back to the first window.
	tap(h, "Ctrl+Alt+J")
	waitFor(t, "slot focus", func() bool {
		fg, _, _ := h.windows.Foreground()
		return fg == wm.Handle(100)
	})
}

func TestDuplicatePinIsIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.windows.AddWindow(100, "editor")
	h.windows.SetForegroundWindow(100)

	tap(h, "Ctrl+Alt+A")
	waitFor(t, "pin", func() bool { return h.app.Registry().Len() == 1 })
	tap(h, "Ctrl+Alt+A")

	// Cycle a few ticks; the count must not grow.
	time.Sleep(20 * time.Millisecond)
	if n := h.app.Registry().Len(); n != 1 {
		t.Fatalf("Len() = %d after duplicate pin, want 1", n)
	}
}

func TestMenuMutesGlobalTable(t *testing.T) {
	h := newHarness(t, nil)
	h.windows.AddWindow(100, "editor")
	h.windows.SetForegroundWindow(100)

	tap(h, "Ctrl+Alt+H")
	waitFor(t, "menu open", h.app.Menu().IsOpen)

	// Global pin chord is inert while the menu is open.
	tap(h, "Ctrl+Alt+A")
	time.Sleep(20 * time.Millisecond)
	if h.app.Registry().Len() != 0 {
		t.Fatal("global binding fired while menu open")
	}

	tap(h, "Q")
	waitFor(t, "menu close", func() bool { return !h.app.Menu().IsOpen() })

	tap(h, "Ctrl+Alt+A")
	waitFor(t, "pin after close", func() bool { return h.app.Registry().Len() == 1 })
}

func TestToggleChordClosesMenu(t *testing.T) {
	h := newHarness(t, nil)

	tap(h, "Ctrl+Alt+H")
	waitFor(t, "menu open", h.app.Menu().IsOpen)

	// The same chord that opened the menu closes it again.
	tap(h, "Ctrl+Alt+H")
	waitFor(t, "menu close", func() bool { return !h.app.Menu().IsOpen() })
}

func TestInhibitRoundTrip(t *testing.T) {
	h := newHarness(t, nil)
	h.windows.AddWindow(100, "editor")
	h.windows.SetForegroundWindow(100)

	tap(h, "Ctrl+Alt+S")
	waitFor(t, "inhibit on", h.app.Dispatcher().Inhibited)

	tap(h, "Ctrl+Alt+A")
	time.Sleep(20 * time.Millisecond)
	if h.app.Registry().Len() != 0 {
		t.Fatal("pin fired while inhibited")
	}

	tap(h, "Ctrl+Alt+S")
	waitFor(t, "inhibit off", func() bool { return !h.app.Dispatcher().Inhibited() })

	tap(h, "Ctrl+Alt+A")
	waitFor(t, "pin after resume", func() bool { return h.app.Registry().Len() == 1 })
}

func TestQuitActionStopsRun(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Bindings.Global = map[string]string{"Q": dispatch.ActionAppQuit}
	})

	tap(h, "Ctrl+Alt+Q")

	select {
	case err := <-h.runErr:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after quit action")
	}
	if h.hook.Uninstalled == 0 {
		t.Error("hook not uninstalled on quit")
	}
}

func TestShutdownStopsRunAndUninstalls(t *testing.T) {
	h := newHarness(t, nil)

	h.app.Shutdown()
	select {
	case err := <-h.runErr:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Shutdown")
	}
	if h.hook.Uninstalled != 1 {
		t.Errorf("Uninstalled = %d, want 1", h.hook.Uninstalled)
	}

	// Idempotent.
	h.app.Shutdown()
}

func TestRunTwice(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.app.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestRunAfterStop(t *testing.T) {
	h := newHarness(t, nil)

	h.app.Shutdown()
	select {
	case err := <-h.runErr:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Shutdown")
	}

	// An application is single-use; a second Run must refuse, not
	// tear down twice.
	if err := h.app.Run(); !errors.Is(err, ErrStopped) {
		t.Fatalf("Run() after stop error = %v, want ErrStopped", err)
	}
}

func TestInstallFailure(t *testing.T) {
	hook := wmtest.NewFakeHook()
	hook.InstallErr = errors.New("no permission")

	a, err := New(Options{
		Hook:    hook,
		Windows: wmtest.NewFakeWindowAPI(),
		Logger:  NullLogger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := a.Run(); err == nil {
		t.Fatal("Run() succeeded with failing hook")
	}
	a.Shutdown()
}

func TestBadConfigFailsNew(t *testing.T) {
	cfg := config.Default()
	cfg.Bindings.Global = map[string]string{"Hyper+Q": "window.add"}

	_, err := New(Options{
		Config:  cfg,
		Hook:    wmtest.NewFakeHook(),
		Windows: wmtest.NewFakeWindowAPI(),
		Logger:  NullLogger,
	})
	if !errors.Is(err, ErrInitialization) {
		t.Fatalf("New() error = %v, want ErrInitialization", err)
	}
}

func TestScriptActionsRegistered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	src := `
		grapnel.action("custom.hello", function() end)
		grapnel.action("window.add", function() end)
	`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	a, err := New(Options{
		Hook:       wmtest.NewFakeHook(),
		Windows:    wmtest.NewFakeWindowAPI(),
		Logger:     NullLogger,
		ScriptPath: path,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !a.Dispatcher().Registered("custom.hello") {
		t.Error("script action not registered")
	}
	// Built-ins are not shadowed; window.add still pins.
	if !a.Dispatcher().Registered(dispatch.ActionWindowAdd) {
		t.Error("built-in lost after script load")
	}
}

func TestBadScriptFailsNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.lua")
	if err := os.WriteFile(path, []byte(`grapnel.action(`), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	_, err := New(Options{
		Hook:       wmtest.NewFakeHook(),
		Windows:    wmtest.NewFakeWindowAPI(),
		Logger:     NullLogger,
		ScriptPath: path,
	})
	if err == nil {
		t.Fatal("New() accepted a broken script")
	}
}

func TestLiveRebind(t *testing.T) {
	h := newHarness(t, nil)
	h.windows.AddWindow(100, "editor")
	h.windows.SetForegroundWindow(100)

	next := config.Default()
	next.Bindings.Global = map[string]string{
		"G": dispatch.ActionWindowAdd,
		"A": "",
	}
	h.app.queueReload(next)

	// The new chord pins once the loop has rebound.
	waitFor(t, "rebind", func() bool {
		tap(h, "Ctrl+Alt+G")
		return h.app.Registry().Len() == 1
	})

	// The unbound default is gone.
	tap(h, "Ctrl+Alt+A")
	time.Sleep(20 * time.Millisecond)
	if h.app.Registry().Len() != 1 {
		t.Fatal("removed binding still fires")
	}
}

// recordingPresenter keeps the last snapshot for assertions.
type recordingPresenter struct {
	mu   sync.Mutex
	last ui.Snapshot
}

func (p *recordingPresenter) Show(s ui.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = s
	return nil
}

func (p *recordingPresenter) Hide() error  { return nil }
func (p *recordingPresenter) Close() error { return nil }

func (p *recordingPresenter) status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last.Status
}

func TestMenuErrorReachesPresenter(t *testing.T) {
	pres := &recordingPresenter{}
	hook := wmtest.NewFakeHook()

	a, err := New(Options{
		Hook:      hook,
		Windows:   wmtest.NewFakeWindowAPI(),
		Presenter: pres,
		Logger:    NullLogger,
		Tick:      time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- a.Run() }()
	waitFor(t, "hook install", hook.Installed)
	t.Cleanup(func() {
		a.Shutdown()
		select {
		case <-runErr:
		default:
		}
	})

	hook.Tap(key.MustParseChord("Ctrl+Alt+H"))
	waitFor(t, "menu open", a.Menu().IsOpen)

	// Cutting with nothing pinned fails; the next snapshot says why.
	hook.Tap(key.MustParseChord("Backspace"))
	waitFor(t, "status feedback", func() bool { return pres.status() != "" })
	if got := pres.status(); got != "nothing selected" {
		t.Errorf("status = %q, want %q", got, "nothing selected")
	}

	// The next operation clears the message.
	hook.Tap(key.MustParseChord("J"))
	waitFor(t, "status cleared", func() bool { return pres.status() == "" })
}

func TestWatchdogResetsStaleHeld(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Watchdog.Enabled = true
		c.Watchdog.Window = "10ms"
	})

	// Press the leader and never release, as a swallowed key-up would
	// leave it.
	h.hook.Press(key.KeyCtrlLeft, key.KeyAltLeft)

	tracker := h.app.tracker.Load()
	deadline := time.Now().Add(5 * time.Second)
	for tracker.Resets() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("watchdog never reset the held set")
		}
		// Stay quiet past the window so the watchdog can arm the
		// reset, then deliver an event for the hook context to apply
		// it on.
		time.Sleep(20 * time.Millisecond)
		h.hook.Press(key.KeyF12)
		h.hook.Release(key.KeyF12)
	}

	// The leader keys are forgotten; only later transitions count.
	if n := tracker.HeldCount(); n > 1 {
		t.Errorf("HeldCount() = %d after reset, want <= 1", n)
	}
}
