// Package ocr wraps the external text recognition engines.
//
// Two backends implement the same contract: an in-process Tesseract
// client (gosseract) and the tesseract command line binary run as a
// subprocess. Callers treat both as a black box taking an image and a
// language and returning text.
package ocr

import (
	"errors"
	"fmt"
	"image"
)

// ErrUnsupportedLanguage is returned when the requested language data
// is not installed for the engine. Callers can tell the user which
// traineddata file to install.
var ErrUnsupportedLanguage = errors.New("ocr language not installed")

// ErrUnavailable is returned when no working engine could be built,
// typically because Tesseract is not installed. The application keeps
// running; every capture retries and reports this until fixed.
var ErrUnavailable = errors.New("ocr engine unavailable")

// Engine recognizes text in an image.
//
// The language is a composable Tesseract code, possibly several joined
// with "+" (for example "chi_sim+eng"). It is passed to the engine
// unchanged.
type Engine interface {
	Recognize(img image.Image, lang string) (string, error)
	Close() error
}

// Backend names accepted in the configuration file.
const (
	BackendGosseract = "gosseract"
	BackendTesseract = "tesseract"
)

// New creates the engine selected by name. tesseractPath is only used
// by the subprocess backend.
func New(name, tesseractPath string) (Engine, error) {
	switch name {
	case BackendGosseract, "":
		return NewGosseract()
	case BackendTesseract:
		return NewTesseract(tesseractPath)
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", name)
	}
}
