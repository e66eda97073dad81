package app

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mkelly/grapnel/internal/config"
	"github.com/mkelly/grapnel/internal/dispatch"
	"github.com/mkelly/grapnel/internal/hotkey"
	"github.com/mkelly/grapnel/internal/key"
	"github.com/mkelly/grapnel/internal/menu"
	"github.com/mkelly/grapnel/internal/registry"
	"github.com/mkelly/grapnel/internal/script"
	"github.com/mkelly/grapnel/internal/track"
	"github.com/mkelly/grapnel/internal/ui"
	"github.com/mkelly/grapnel/internal/wm"
)

// defaultTick is the processing loop interval. Events sit in the queue
// at most this long before dispatch.
const defaultTick = 10 * time.Millisecond

// Options configures an Application.
type Options struct {
	// Config is the loaded configuration. Nil means defaults.
	Config *config.Config

	// ConfigPath enables live reload of the file when set.
	ConfigPath string

	// Hook captures raw key events. Defaults to the platform hook.
	Hook hotkey.Hook

	// Windows is the window-management backend. Defaults to the
	// platform implementation.
	Windows wm.WindowAPI

	// Presenter renders the menu. Defaults to none.
	Presenter ui.Presenter

	// Logger overrides the configured logger. Used by tests.
	Logger *Logger

	// ScriptPath overrides the configured Lua script path.
	ScriptPath string

	// Tick overrides the processing loop interval. Used by tests.
	Tick time.Duration
}

// Application owns the hook, the processing loop, and every subsystem
// between them.
//
// Concurrency model: the hook context (an OS callback thread on
// Windows) writes only to the tracker, which hands recognized chords to
// the processing loop over a bounded queue. The registry, menu,
// dispatcher, and script engine are touched only by the processing
// loop.
type Application struct {
	log       *Logger
	cfg       *config.Config
	hook      hotkey.Hook
	windows   wm.WindowAPI
	presenter ui.Presenter

	queue      *hotkey.Queue
	tracker    atomic.Pointer[track.Tracker]
	registry   *registry.Registry
	menu       *menu.Menu
	dispatcher *dispatch.Dispatcher
	engine     *script.Engine

	watcher        *config.Watcher
	configPath     string
	reloads        chan *config.Config
	watchdogOn     bool
	watchdogWindow time.Duration

	tick        time.Duration
	menuVisible bool
	status      string

	running  atomic.Bool
	started  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	stopped  chan struct{}
}

// New assembles an application from options. Configuration problems
// (bad chords, conflicts, unloadable script) surface here, before the
// hook is installed.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	log := opts.Logger
	if log == nil {
		logCfg := DefaultLoggerConfig()
		logCfg.Level = ParseLogLevel(cfg.LogLevel)
		log = NewLogger(logCfg)
	}
	log = log.WithField("session", uuid.NewString())

	maps, err := cfg.Keymaps()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	windows := opts.Windows
	if windows == nil {
		windows = wm.NewWindowAPI()
	}
	hook := opts.Hook
	if hook == nil {
		hook = wm.NewHook()
	}
	presenter := opts.Presenter
	if presenter == nil {
		presenter = ui.Nop{}
	}

	a := &Application{
		log:        log,
		cfg:        cfg,
		hook:       hook,
		windows:    windows,
		presenter:  presenter,
		queue:      hotkey.NewQueue(cfg.QueueSize),
		configPath: opts.ConfigPath,
		reloads:    make(chan *config.Config, 1),
		tick:       opts.Tick,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	if a.tick <= 0 {
		a.tick = defaultTick
	}

	a.registry = registry.New(windows)
	a.menu = menu.New(a.registry)
	a.dispatcher = dispatch.New(maps, a.menu)
	a.tracker.Store(track.New(maps.Chords(), a.queue))

	if cfg.Watchdog.Enabled {
		window, err := cfg.WatchdogWindow()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
		}
		a.watchdogOn = true
		a.watchdogWindow = window
	}

	a.registerHandlers()

	scriptPath := opts.ScriptPath
	if scriptPath == "" {
		scriptPath = cfg.Script.Path
	}
	if scriptPath != "" {
		if err := a.loadScript(scriptPath); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// loadScript runs the Lua file and registers its actions with the
// dispatcher. Script actions cannot shadow built-ins. A script path
// that does not exist is skipped, so a configured default location
// works before the user creates the file.
func (a *Application) loadScript(path string) error {
	slog := a.log.WithComponent("script")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("no script at %s", path)
		return nil
	}
	a.engine = script.New(script.WithPrinter(func(s string) {
		slog.Info("%s", s)
	}))
	if err := a.engine.LoadFile(path); err != nil {
		a.engine.Close()
		a.engine = nil
		return NewOperationError("load-script", path, err)
	}

	for _, name := range a.engine.Actions() {
		if a.dispatcher.Registered(name) {
			slog.Warn("script action %s shadows a built-in, ignored", name)
			continue
		}
		action := name
		a.dispatcher.Register(action, func() error {
			return a.engine.Call(action)
		})
	}
	slog.Info("loaded %s (%d actions)", path, len(a.engine.Actions()))
	return nil
}

// handleRaw is the hook callback. It runs on the hook context and must
// not block.
func (a *Application) handleRaw(ev key.RawEvent) {
	a.tracker.Load().HandleRaw(ev)
}

// Run installs the hook and drives the processing loop until Shutdown
// is called or a quit action fires. It blocks. An Application runs at
// most once; after it stops, further calls return ErrStopped.
func (a *Application) Run() error {
	if !a.started.CompareAndSwap(false, true) {
		if a.running.Load() {
			return ErrAlreadyRunning
		}
		return ErrStopped
	}
	a.running.Store(true)

	if err := a.hook.Install(a.handleRaw); err != nil {
		a.running.Store(false)
		close(a.stopped)
		return &hotkey.InstallError{Err: err}
	}
	a.log.Info("hook installed")

	if a.configPath != "" {
		w, err := config.Watch(a.configPath, a.queueReload, func(err error) {
			a.log.Warn("config reload failed, keeping previous: %v", err)
		})
		if err != nil {
			a.log.Warn("config watcher unavailable: %v", err)
		} else {
			a.watcher = w
			a.log.Info("watching %s", a.configPath)
		}
	}

	err := a.loop()
	a.cleanup()
	return err
}

// loop is the processing goroutine body.
func (a *Application) loop() error {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	for {
		select {
		case <-a.done:
			return nil
		case now := <-ticker.C:
			a.applyReload()
			if err := a.drainAndDispatch(); err != nil {
				if errors.Is(err, ErrQuit) {
					a.log.Info("quit action")
					return nil
				}
				return err
			}
			a.checkWatchdog(now)
		}
	}
}

// drainAndDispatch empties the queue and routes every event. Unbound
// and inhibited chords are routine; handler failures are logged and do
// not stop the loop. Only ErrQuit propagates.
func (a *Application) drainAndDispatch() error {
	events := a.queue.Drain()
	if len(events) == 0 {
		return nil
	}

	for _, ev := range events {
		a.status = ""
		err := a.dispatcher.Dispatch(ev)
		switch {
		case err == nil:
		case errors.Is(err, ErrQuit):
			a.present()
			return err
		case errors.Is(err, dispatch.ErrUnbound), errors.Is(err, dispatch.ErrInhibited):
			a.log.Debug("%v", err)
		default:
			a.log.Error("%v", err)
		}
	}

	a.present()
	return nil
}

// present pushes the menu state to the presenter after a dispatch
// batch.
func (a *Application) present() {
	if a.menu.IsOpen() {
		a.menuVisible = true
		if err := a.presenter.Show(a.snapshot()); err != nil {
			a.log.Warn("presenter: %v", err)
		}
		return
	}
	if a.menuVisible {
		a.menuVisible = false
		if err := a.presenter.Hide(); err != nil {
			a.log.Warn("presenter: %v", err)
		}
	}
}

// snapshot collects the current menu state for rendering.
func (a *Application) snapshot() ui.Snapshot {
	entries := a.registry.Entries()
	items := make([]ui.Item, len(entries))
	for i, e := range entries {
		items[i] = ui.Item{Slot: i + 1, Title: e.Title}
	}
	sel := a.menu.Selection()
	if len(items) == 0 {
		sel = -1
	}
	return ui.Snapshot{
		Items:             items,
		Selection:         sel,
		ClipboardOccupied: a.menu.ClipboardOccupied(),
		Inhibited:         a.dispatcher.Inhibited(),
		Status:            a.status,
	}
}

// checkWatchdog requests a tracker reset when keys appear held but no
// event has arrived within the window. Lock-screen transitions swallow
// key-ups; without this a phantom modifier would linger.
func (a *Application) checkWatchdog(now time.Time) {
	if !a.watchdogOn {
		return
	}
	t := a.tracker.Load()
	if t.Stale(now, a.watchdogWindow) && t.RequestReset() {
		a.log.Warn("held keys stale for %s (%d held), reset scheduled",
			a.watchdogWindow, t.HeldCount())
	}
}

// queueReload hands a freshly loaded config to the processing loop.
// Runs on the watcher goroutine; only the newest pending config is
// kept.
func (a *Application) queueReload(cfg *config.Config) {
	for {
		select {
		case a.reloads <- cfg:
			return
		default:
			select {
			case <-a.reloads:
			default:
			}
		}
	}
}

// applyReload rebinds from a pending config change. The tracker is
// swapped whole, which clears the held set; keys held across a rebind
// must be re-pressed.
func (a *Application) applyReload() {
	select {
	case cfg := <-a.reloads:
		maps, err := cfg.Keymaps()
		if err != nil {
			a.log.Warn("rebind rejected: %v", err)
			return
		}
		a.cfg = cfg
		a.log.SetLevel(ParseLogLevel(cfg.LogLevel))
		a.dispatcher.SetMaps(maps)
		a.tracker.Store(track.New(maps.Chords(), a.queue))
		if cfg.Watchdog.Enabled {
			if window, err := cfg.WatchdogWindow(); err == nil {
				a.watchdogOn = true
				a.watchdogWindow = window
			}
		} else {
			a.watchdogOn = false
		}
		a.log.Info("configuration reloaded")
	default:
	}
}

// cleanup tears down in reverse construction order. The hook goes
// first so no event arrives while the rest shuts down.
func (a *Application) cleanup() {
	if err := a.hook.Uninstall(); err != nil {
		a.log.Error("hook uninstall: %v", err)
	} else {
		a.log.Info("hook removed")
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("config watcher close: %v", err)
		}
	}
	if a.engine != nil {
		a.engine.Close()
	}
	if err := a.presenter.Close(); err != nil {
		a.log.Warn("presenter close: %v", err)
	}
	if n := a.queue.Dropped(); n > 0 {
		a.log.Warn("%d hotkey events dropped over the session", n)
	}
	a.running.Store(false)
	close(a.stopped)
}

// Shutdown stops the processing loop. Safe to call from any goroutine
// and more than once; it returns once the loop has exited.
func (a *Application) Shutdown() {
	a.stopOnce.Do(func() { close(a.done) })
	if a.started.Load() {
		<-a.stopped
	}
}

// Registry exposes the window registry. Tests use it to seed state.
func (a *Application) Registry() *registry.Registry { return a.registry }

// Menu exposes the menu state machine.
func (a *Application) Menu() *menu.Menu { return a.menu }

// Dispatcher exposes the action dispatcher.
func (a *Application) Dispatcher() *dispatch.Dispatcher { return a.dispatcher }

// Logger returns the application logger.
func (a *Application) Logger() *Logger { return a.log }
