// Package app provides application lifecycle management, configuration
// ownership, and events.
package app

import (
	"log"
	"sync"

	"sentence-ocr/internal/config"
	"sentence-ocr/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventConfigChanged EventType = iota
	EventCaptureStarted
	EventRecognitionDone
	EventRecognitionFailed
	EventStatus
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the live configuration and dispatches application events.
// The live configuration belongs to the UI thread; background work gets
// a value snapshot via Snapshot, never a reference.
type State struct {
	mu sync.RWMutex

	configPath string
	cfg        config.Config
	modified   bool

	listeners map[EventType][]EventListener
}

// NewState loads the configuration from path and returns the state
// owning it.
func NewState(path string) *State {
	return &State{
		configPath: path,
		cfg:        config.Load(path),
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Snapshot returns a value copy of the current configuration.
func (s *State) Snapshot() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Options returns a value copy of the recognition options.
func (s *State) Options() config.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Options
}

// UpdateOptions applies fn to the options and marks the configuration
// modified. Call from the UI thread only.
func (s *State) UpdateOptions(fn func(*config.Options)) {
	s.mu.Lock()
	fn(&s.cfg.Options)
	s.modified = true
	s.mu.Unlock()
	s.Emit(EventConfigChanged, nil)
}

// SetWindowGeometry records the main window geometry for persistence.
func (s *State) SetWindowGeometry(g config.Geometry) {
	s.mu.Lock()
	if s.cfg.Window != g {
		s.cfg.Window = g
		s.modified = true
	}
	s.mu.Unlock()
}

// SetSelection records the last capture rectangle. It is suggested as
// the default the next time the user starts a capture gesture.
func (s *State) SetSelection(r geometry.RectInt) {
	s.mu.Lock()
	g := config.Geometry{
		X:      config.Int(r.X),
		Y:      config.Int(r.Y),
		Width:  config.Int(r.Width),
		Height: config.Int(r.Height),
	}
	if s.cfg.Selection != g {
		s.cfg.Selection = g
		s.modified = true
	}
	s.mu.Unlock()
}

// LastSelection returns the persisted capture rectangle, if complete.
func (s *State) LastSelection() (geometry.RectInt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := s.cfg.Selection
	if !g.Complete() {
		return geometry.RectInt{}, false
	}
	return geometry.NewRectInt(g.X.Value, g.Y.Value, g.Width.Value, g.Height.Value), true
}

// Save writes the configuration to disk unconditionally.
func (s *State) Save() error {
	s.mu.Lock()
	cfg := s.cfg
	path := s.configPath
	s.modified = false
	s.mu.Unlock()
	return config.Save(cfg, path)
}

// SaveIfModified writes the configuration only when it changed since
// the last save. Failures are logged and reported through EventStatus;
// the in-memory configuration is untouched either way.
func (s *State) SaveIfModified() {
	s.mu.Lock()
	if !s.modified {
		s.mu.Unlock()
		return
	}
	cfg := s.cfg
	path := s.configPath
	s.modified = false
	s.mu.Unlock()

	if err := config.Save(cfg, path); err != nil {
		log.Printf("saving settings: %v", err)
		s.mu.Lock()
		s.modified = true
		s.mu.Unlock()
		s.Emit(EventStatus, "Could not save settings: "+err.Error())
	}
}
