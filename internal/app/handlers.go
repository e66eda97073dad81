package app

import (
	"errors"

	"github.com/mkelly/grapnel/internal/dispatch"
	"github.com/mkelly/grapnel/internal/registry"
)

// registerHandlers binds every built-in action. Handler errors that
// reflect routine conditions (duplicate pin, empty list, stale window)
// are logged here and not surfaced, so the loop treats them as
// handled.
func (a *Application) registerHandlers() {
	d := a.dispatcher
	log := a.log.WithComponent("actions")

	d.Register(dispatch.ActionMenuToggle, func() error {
		a.menu.Toggle()
		log.Debug("menu %s", a.menu.State())
		return nil
	})

	d.Register(dispatch.ActionWindowAdd, func() error {
		h, title, err := a.windows.Foreground()
		if err != nil {
			return err
		}
		entry, err := a.registry.Add(h, title)
		if errors.Is(err, registry.ErrDuplicateWindow) {
			log.Debug("already pinned: %q", title)
			return nil
		}
		if err != nil {
			return err
		}
		log.Info("pinned %q in slot %d", entry.Title, a.registry.Len())
		return nil
	})

	d.Register(dispatch.ActionWindowNext, func() error {
		if _, ok := a.registry.Next(); !ok {
			return nil
		}
		return a.focus(a.registry.Cursor())
	})

	d.Register(dispatch.ActionWindowPrev, func() error {
		if _, ok := a.registry.Prev(); !ok {
			return nil
		}
		return a.focus(a.registry.Cursor())
	})

	for slot := 1; slot <= registry.MaxSlots; slot++ {
		index := slot - 1
		d.Register(dispatch.ActionWindowFocus(slot), func() error {
			if index >= a.registry.Len() {
				return nil
			}
			return a.focus(index)
		})
	}

	d.Register(dispatch.ActionInhibitToggle, func() error {
		if a.dispatcher.ToggleInhibit() {
			log.Info("global hotkeys inhibited")
		} else {
			log.Info("global hotkeys resumed")
		}
		return nil
	})

	d.Register(dispatch.ActionAppQuit, func() error {
		return ErrQuit
	})

	// Menu table actions. Empty-list errors are routine; swaps at the
	// edges are silent no-ops inside the menu itself.
	d.Register(dispatch.ActionMenuQuit, func() error {
		a.menu.Quit()
		return nil
	})
	d.Register(dispatch.ActionMenuConfirm, func() error {
		return a.menuOp("confirm", a.menu.Confirm)
	})
	d.Register(dispatch.ActionMenuUp, func() error {
		a.menu.MoveUp()
		return nil
	})
	d.Register(dispatch.ActionMenuDown, func() error {
		a.menu.MoveDown()
		return nil
	})
	d.Register(dispatch.ActionMenuSwapUp, func() error {
		return a.menuOp("swap-up", a.menu.SwapUp)
	})
	d.Register(dispatch.ActionMenuSwapDown, func() error {
		return a.menuOp("swap-down", a.menu.SwapDown)
	})
	d.Register(dispatch.ActionMenuCut, func() error {
		return a.menuOp("cut", a.menu.Cut)
	})
	d.Register(dispatch.ActionMenuPasteUp, func() error {
		return a.menuOp("paste-up", a.menu.PasteUp)
	})
	d.Register(dispatch.ActionMenuPasteDown, func() error {
		return a.menuOp("paste-down", a.menu.PasteDown)
	})
}

// focus raises the window at index, treating a pruned stale entry as
// feedback rather than failure.
func (a *Application) focus(index int) error {
	err := a.registry.Focus(index)
	if errors.Is(err, registry.ErrStaleWindow) {
		a.log.Info("dropped stale window: %v", err)
		return nil
	}
	return err
}

// menuOp runs a menu operation. Routine failures (empty list, empty
// clipboard, stale window) are handled, not propagated: they become
// the next snapshot's status line so the user sees why nothing
// happened.
func (a *Application) menuOp(name string, op func() error) error {
	err := op()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, registry.ErrStaleWindow):
		a.status = err.Error()
		a.log.Info("%s dropped stale window: %v", name, err)
		return nil
	default:
		a.status = err.Error()
		a.log.Info("menu %s: %v", name, err)
		return nil
	}
}
