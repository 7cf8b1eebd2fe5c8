//go:build linux

package hotkey

import "golang.design/x/hotkey"

// X11 exposes alt and super as Mod1/Mod4.
var modifierNames = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1,
	"super": hotkey.Mod4,
	"win":   hotkey.Mod4,
}
