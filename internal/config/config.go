// Package config provides loading and saving of application settings.
//
// Settings live in a human-editable TOML file with three sections:
// [options] for recognition behavior, [window] and [selection] for
// persisted geometry. A missing or damaged file is never fatal; every
// unreadable key falls back to its documented default.
package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	configDirName  = "sentence-ocr"
	configFileName = "config.toml"

	// DefaultLanguage is the Tesseract language used when none is configured.
	DefaultLanguage = "eng"

	// DefaultEngine selects the in-process gosseract backend.
	DefaultEngine = "gosseract"

	// DefaultTesseractPath is the subprocess backend's executable name.
	DefaultTesseractPath = "tesseract"

	// DefaultHotkey is the global capture shortcut.
	DefaultHotkey = "ctrl+f12"
)

// OptInt is an optional integer setting. Valid reports whether a value
// was present in the file (or set during the session).
type OptInt struct {
	Value int
	Valid bool
}

// Int returns an OptInt holding v.
func Int(v int) OptInt {
	return OptInt{Value: v, Valid: true}
}

// Geometry holds a persisted rectangle. Each field is independent;
// any subset may be absent.
type Geometry struct {
	X, Y, Width, Height OptInt
}

// IsZero returns true if no field of the geometry is set.
func (g Geometry) IsZero() bool {
	return !g.X.Valid && !g.Y.Valid && !g.Width.Valid && !g.Height.Valid
}

// Complete returns true if all four fields are set.
func (g Geometry) Complete() bool {
	return g.X.Valid && g.Y.Valid && g.Width.Valid && g.Height.Valid
}

// Options holds the recognition settings from the [options] section.
type Options struct {
	RemoveNewlines bool
	ForceBrackets  bool
	Language       string
	Engine         string
	TesseractPath  string
	Hotkey         string
}

// Config is the full application configuration. It is a plain value:
// copying it yields an independent snapshot, which is how option state
// is handed to the background recognition worker.
type Config struct {
	Options   Options
	Window    Geometry
	Selection Geometry
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Options: Options{
			RemoveNewlines: false,
			ForceBrackets:  false,
			Language:       DefaultLanguage,
			Engine:         DefaultEngine,
			TesseractPath:  DefaultTesseractPath,
			Hotkey:         DefaultHotkey,
		},
	}
}

// DefaultPath returns the standard config file location,
// ~/.config/sentence-ocr/config.toml on Linux.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, configDirName, configFileName)
}

// Load reads the configuration from path. It never fails: a missing or
// unreadable file yields the defaults, and a key that cannot be decoded
// keeps its default while the rest of the file is still honored.
func Load(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var raw struct {
		Options   map[string]toml.Primitive `toml:"options"`
		Window    map[string]toml.Primitive `toml:"window"`
		Selection map[string]toml.Primitive `toml:"selection"`
	}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		log.Printf("config: %s is not valid TOML, using defaults: %v", path, err)
		return cfg
	}

	decodeBool(md, raw.Options, "remove_newlines", &cfg.Options.RemoveNewlines)
	decodeBool(md, raw.Options, "force_brackets", &cfg.Options.ForceBrackets)
	decodeString(md, raw.Options, "ocr_language", &cfg.Options.Language)
	decodeString(md, raw.Options, "engine", &cfg.Options.Engine)
	decodeString(md, raw.Options, "tesseract_path", &cfg.Options.TesseractPath)
	decodeString(md, raw.Options, "hotkey", &cfg.Options.Hotkey)

	cfg.Window = decodeGeometry(md, raw.Window)
	cfg.Selection = decodeGeometry(md, raw.Selection)

	return cfg
}

// Save writes the configuration to path, creating the directory if
// needed. Geometry sections are omitted entirely when unset so the file
// stays minimal. Failures are returned to the caller; settings loss
// should be visible, not silent.
func Save(cfg Config, path string) error {
	doc := map[string]interface{}{
		"options": map[string]interface{}{
			"remove_newlines": cfg.Options.RemoveNewlines,
			"force_brackets":  cfg.Options.ForceBrackets,
			"ocr_language":    cfg.Options.Language,
			"engine":          cfg.Options.Engine,
			"tesseract_path":  cfg.Options.TesseractPath,
			"hotkey":          cfg.Options.Hotkey,
		},
	}
	if !cfg.Window.IsZero() {
		doc["window"] = geometryDoc(cfg.Window)
	}
	if !cfg.Selection.IsZero() {
		doc["selection"] = geometryDoc(cfg.Selection)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func geometryDoc(g Geometry) map[string]interface{} {
	m := make(map[string]interface{}, 4)
	if g.X.Valid {
		m["x"] = g.X.Value
	}
	if g.Y.Valid {
		m["y"] = g.Y.Value
	}
	if g.Width.Valid {
		m["width"] = g.Width.Value
	}
	if g.Height.Valid {
		m["height"] = g.Height.Value
	}
	return m
}

func decodeGeometry(md toml.MetaData, section map[string]toml.Primitive) Geometry {
	var g Geometry
	decodeInt(md, section, "x", &g.X)
	decodeInt(md, section, "y", &g.Y)
	decodeInt(md, section, "width", &g.Width)
	decodeInt(md, section, "height", &g.Height)
	return g
}

func decodeBool(md toml.MetaData, section map[string]toml.Primitive, key string, out *bool) {
	prim, ok := section[key]
	if !ok {
		return
	}
	var v bool
	if err := md.PrimitiveDecode(prim, &v); err != nil {
		log.Printf("config: ignoring malformed %s: %v", key, err)
		return
	}
	*out = v
}

func decodeString(md toml.MetaData, section map[string]toml.Primitive, key string, out *string) {
	prim, ok := section[key]
	if !ok {
		return
	}
	var v string
	if err := md.PrimitiveDecode(prim, &v); err != nil {
		log.Printf("config: ignoring malformed %s: %v", key, err)
		return
	}
	if v == "" {
		return
	}
	*out = v
}

func decodeInt(md toml.MetaData, section map[string]toml.Primitive, key string, out *OptInt) {
	prim, ok := section[key]
	if !ok {
		return
	}
	var v int
	if err := md.PrimitiveDecode(prim, &v); err != nil {
		log.Printf("config: ignoring malformed %s: %v", key, err)
		return
	}
	*out = OptInt{Value: v, Valid: true}
}
