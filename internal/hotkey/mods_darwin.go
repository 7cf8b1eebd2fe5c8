//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.ModOption,
	"opt":   hotkey.ModOption,
	"cmd":   hotkey.ModCmd,
	"super": hotkey.ModCmd,
	"win":   hotkey.ModCmd,
}
