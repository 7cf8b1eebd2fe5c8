// Package recognize turns a selected screen region into final text.
//
// The Coordinator strings together the external collaborators: screen
// capture, the OCR engine, and the post-processing pipeline. It holds
// no state between calls and never retries; a failed capture cycle is
// reported and the user simply triggers another one.
package recognize

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"sentence-ocr/internal/capture"
	"sentence-ocr/internal/config"
	"sentence-ocr/internal/ocr"
	"sentence-ocr/internal/textproc"
	"sentence-ocr/pkg/geometry"
)

// Error kinds for a single capture cycle. All are terminal for that
// cycle only; none of them corrupts configuration or application state.
var (
	// ErrCaptureFailed means the screen region could not be grabbed.
	ErrCaptureFailed = errors.New("screen capture failed")

	// ErrEngineFailed means the OCR engine rejected the capture or
	// crashed. The wrapped detail names the underlying cause.
	ErrEngineFailed = errors.New("ocr engine failed")

	// ErrBusy means a recognition is already in flight. The newer
	// request is dropped; the user can retry once the first finishes.
	ErrBusy = errors.New("recognition already in progress")
)

// Grabber captures a screen region. It matches capture.Grab and exists
// so tests can run without a display.
type Grabber func(geometry.RectInt) (*image.RGBA, error)

// Coordinator runs one capture-recognize-postprocess cycle at a time.
type Coordinator struct {
	engine ocr.Engine
	grab   Grabber
}

// New creates a Coordinator using the real screen capturer.
func New(engine ocr.Engine) *Coordinator {
	return &Coordinator{engine: engine, grab: capture.Grab}
}

// NewWithGrabber creates a Coordinator with a custom capturer.
func NewWithGrabber(engine ocr.Engine, grab Grabber) *Coordinator {
	return &Coordinator{engine: engine, grab: grab}
}

// Recognize captures the region, runs OCR with the configured language,
// and post-processes the raw text. opts is a value snapshot; the live
// configuration is never read here.
func (c *Coordinator) Recognize(region geometry.RectInt, opts config.Options) (string, error) {
	img, err := c.grab(region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	raw, err := c.engine.Recognize(img, opts.Language)
	if err != nil {
		// Engine errors with their own guidance pass through so the UI
		// can name the fix; everything else folds into ErrEngineFailed.
		if errors.Is(err, ocr.ErrUnsupportedLanguage) || errors.Is(err, ocr.ErrUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrEngineFailed, err)
	}

	text := strings.TrimSpace(raw)
	text = textproc.Process(text, textproc.Options{
		RemoveNewlines: opts.RemoveNewlines,
		ForceBrackets:  opts.ForceBrackets,
	})
	return text, nil
}
