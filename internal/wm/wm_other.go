//go:build !windows

package wm

import (
	"github.com/mkelly/grapnel/internal/hotkey"
	"github.com/mkelly/grapnel/internal/key"
)

// unsupportedAPI is the stub window collaborator for platforms without
// window management support.
type unsupportedAPI struct{}

// NewWindowAPI returns a stub that fails every operation with
// ErrUnsupported.
func NewWindowAPI() WindowAPI {
	return &unsupportedAPI{}
}

func (*unsupportedAPI) Foreground() (Handle, string, error) {
	return 0, "", ErrUnsupported
}

func (*unsupportedAPI) SetForeground(Handle) error {
	return ErrUnsupported
}

func (*unsupportedAPI) TitleOf(Handle) (string, error) {
	return "", ErrUnsupported
}

func (*unsupportedAPI) IsValid(Handle) bool {
	return false
}

// unsupportedHook is the stub hook collaborator.
type unsupportedHook struct{}

// NewHook returns a stub hook whose installation always fails.
func NewHook() hotkey.Hook {
	return &unsupportedHook{}
}

func (*unsupportedHook) Install(func(key.RawEvent)) error {
	return &hotkey.InstallError{Err: ErrUnsupported}
}

func (*unsupportedHook) Uninstall() error {
	return nil
}
