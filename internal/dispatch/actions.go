package dispatch

// Global action names, bound while the menu is closed.
const (
	ActionMenuToggle    = "menu.toggle"
	ActionWindowAdd     = "window.add"
	ActionWindowNext    = "window.next"
	ActionWindowPrev    = "window.prev"
	ActionInhibitToggle = "inhibit.toggle"
	ActionAppQuit       = "app.quit"
)

// ActionWindowFocus returns the slot-jump action name for slot n (1-based).
func ActionWindowFocus(n int) string {
	return slotActions[n-1]
}

// slotActions is indexed by slot-1.
var slotActions = [...]string{
	"window.focus1", "window.focus2", "window.focus3", "window.focus4",
	"window.focus5", "window.focus6", "window.focus7", "window.focus8",
}

// Menu action names, bound while the menu is open.
const (
	ActionMenuQuit      = "menu.quit"
	ActionMenuConfirm   = "menu.confirm"
	ActionMenuUp        = "menu.up"
	ActionMenuDown      = "menu.down"
	ActionMenuSwapUp    = "menu.swapUp"
	ActionMenuSwapDown  = "menu.swapDown"
	ActionMenuCut       = "menu.cut"
	ActionMenuPasteUp   = "menu.pasteUp"
	ActionMenuPasteDown = "menu.pasteDown"
)
