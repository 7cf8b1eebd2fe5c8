// Package hotkey registers the global capture shortcut.
package hotkey

import (
	"fmt"
	"strings"
	"sync"

	"golang.design/x/hotkey"
)

// Combo is a parsed key combination.
type Combo struct {
	Mods []hotkey.Modifier
	Key  hotkey.Key
}

var keyNames = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
}

// Parse turns a textual combination like "ctrl+f12" or "ctrl+shift+s"
// into modifier and key codes. Names are case-insensitive; the final
// segment must be the key, everything before it a modifier.
func Parse(combo string) (Combo, error) {
	parts := strings.Split(strings.ToLower(combo), "+")
	if len(parts) == 0 || combo == "" {
		return Combo{}, fmt.Errorf("empty hotkey")
	}

	var c Combo
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == len(parts)-1 {
			key, ok := keyNames[part]
			if !ok {
				return Combo{}, fmt.Errorf("unknown key %q in hotkey %q", part, combo)
			}
			c.Key = key
			continue
		}
		mod, ok := modifierNames[part]
		if !ok {
			return Combo{}, fmt.Errorf("unknown modifier %q in hotkey %q", part, combo)
		}
		c.Mods = append(c.Mods, mod)
	}
	if len(c.Mods) == 0 {
		return Combo{}, fmt.Errorf("hotkey %q needs at least one modifier", combo)
	}
	return c, nil
}

// Listener owns one registered global hotkey.
type Listener struct {
	hk   *hotkey.Hotkey
	stop chan struct{}
}

// Listen registers the combination and invokes fn on every press until
// Stop is called. fn runs on the listener goroutine.
func Listen(combo string, fn func()) (*Listener, error) {
	c, err := Parse(combo)
	if err != nil {
		return nil, err
	}

	hk := hotkey.New(c.Mods, c.Key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("registering hotkey %q: %w", combo, err)
	}

	l := &Listener{hk: hk, stop: make(chan struct{})}
	go func() {
		for {
			select {
			case <-hk.Keydown():
				fn()
			case <-l.stop:
				return
			}
		}
	}()
	return l, nil
}

// Stop unregisters the hotkey and ends the listener goroutine. The
// combination is free for re-registration when Stop returns.
func (l *Listener) Stop() {
	close(l.stop)
	l.hk.Unregister()
}

// Manager owns the application's single global hotkey and supports
// re-binding it at runtime, e.g. from the settings dialog.
type Manager struct {
	mu     sync.Mutex
	fn     func()
	combo  string
	listen func(combo string, fn func()) (stopper, error)
	active stopper
}

type stopper interface {
	Stop()
}

// NewManager creates a manager invoking fn on every press of the bound
// combination. Nothing is bound until the first Bind.
func NewManager(fn func()) *Manager {
	return &Manager{
		fn: fn,
		listen: func(combo string, fn func()) (stopper, error) {
			return Listen(combo, fn)
		},
	}
}

// Bind registers combo, replacing any previous binding. When the new
// registration fails, the previous binding is restored and the error
// returned so the caller can keep showing the old combination.
func (m *Manager) Bind(combo string) error {
	if _, err := Parse(combo); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil && combo == m.combo {
		return nil
	}
	if m.active != nil {
		m.active.Stop()
		m.active = nil
	}

	l, err := m.listen(combo, m.fn)
	if err != nil {
		if m.combo != "" {
			if prev, restoreErr := m.listen(m.combo, m.fn); restoreErr == nil {
				m.active = prev
			} else {
				m.combo = ""
			}
		}
		return err
	}
	m.active = l
	m.combo = combo
	return nil
}

// Combo returns the currently bound combination, or "" when none is.
func (m *Manager) Combo() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ""
	}
	return m.combo
}

// Stop releases the current binding.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.Stop()
		m.active = nil
	}
}
