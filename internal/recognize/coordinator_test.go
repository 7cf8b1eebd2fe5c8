package recognize

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"sentence-ocr/internal/config"
	"sentence-ocr/internal/ocr"
	"sentence-ocr/pkg/geometry"
)

// fakeEngine returns canned text or an error and records the language
// it was asked for.
type fakeEngine struct {
	text     string
	err      error
	lastLang string
	calls    int
}

func (f *fakeEngine) Recognize(img image.Image, lang string) (string, error) {
	f.calls++
	f.lastLang = lang
	return f.text, f.err
}

func (f *fakeEngine) Close() error { return nil }

func okGrab(region geometry.RectInt) (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, region.Width, region.Height)), nil
}

var testRegion = geometry.NewRectInt(10, 10, 200, 100)

func TestRecognizeSuccess(t *testing.T) {
	engine := &fakeEngine{text: "  （你好）\n世界  "}
	coord := NewWithGrabber(engine, okGrab)

	opts := config.Default().Options
	opts.Language = "chi_tra+eng"
	opts.RemoveNewlines = true
	opts.ForceBrackets = true

	text, err := coord.Recognize(testRegion, opts)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "(你好)世界" {
		t.Errorf("got %q, want %q", text, "(你好)世界")
	}
	if engine.lastLang != "chi_tra+eng" {
		t.Errorf("language should pass through unchanged, engine saw %q", engine.lastLang)
	}
}

func TestRecognizeNoPostProcessing(t *testing.T) {
	engine := &fakeEngine{text: "line one\nline two，"}
	coord := NewWithGrabber(engine, okGrab)

	text, err := coord.Recognize(testRegion, config.Default().Options)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	// Only trimming applies when both flags are off.
	if text != "line one\nline two，" {
		t.Errorf("got %q", text)
	}
}

func TestRecognizeCaptureFailure(t *testing.T) {
	engine := &fakeEngine{text: "never used"}
	coord := NewWithGrabber(engine, func(geometry.RectInt) (*image.RGBA, error) {
		return nil, fmt.Errorf("selection lies outside the screen")
	})

	_, err := coord.Recognize(testRegion, config.Default().Options)
	if !errors.Is(err, ErrCaptureFailed) {
		t.Errorf("want ErrCaptureFailed, got %v", err)
	}
	if engine.calls != 0 {
		t.Error("engine must not run when capture fails")
	}
}

func TestRecognizeEngineFailure(t *testing.T) {
	engine := &fakeEngine{err: fmt.Errorf("tesseract: exit status 1")}
	coord := NewWithGrabber(engine, okGrab)

	_, err := coord.Recognize(testRegion, config.Default().Options)
	if !errors.Is(err, ErrEngineFailed) {
		t.Errorf("want ErrEngineFailed, got %v", err)
	}
}

func TestRecognizeUnsupportedLanguage(t *testing.T) {
	engine := &fakeEngine{err: fmt.Errorf("%w: jpn", ocr.ErrUnsupportedLanguage)}
	coord := NewWithGrabber(engine, okGrab)

	_, err := coord.Recognize(testRegion, config.Default().Options)
	if !errors.Is(err, ocr.ErrUnsupportedLanguage) {
		t.Errorf("unsupported language should pass through, got %v", err)
	}
	if errors.Is(err, ErrEngineFailed) {
		t.Error("unsupported language must not be folded into ErrEngineFailed")
	}
}

func TestRecognizeEngineUnavailable(t *testing.T) {
	engine := &fakeEngine{err: fmt.Errorf("%w: tesseract not installed", ocr.ErrUnavailable)}
	coord := NewWithGrabber(engine, okGrab)

	_, err := coord.Recognize(testRegion, config.Default().Options)
	if !errors.Is(err, ocr.ErrUnavailable) {
		t.Errorf("unavailable engine should pass through, got %v", err)
	}
	if errors.Is(err, ErrEngineFailed) {
		t.Error("unavailable engine must not be folded into ErrEngineFailed")
	}
}

func TestRecognizeLeavesOptionsUntouched(t *testing.T) {
	engine := &fakeEngine{text: "text"}
	coord := NewWithGrabber(engine, func(geometry.RectInt) (*image.RGBA, error) {
		return nil, errors.New("boom")
	})

	opts := config.Default().Options
	before := opts
	_, _ = coord.Recognize(testRegion, opts)
	if opts != before {
		t.Error("a failed cycle must not modify the options snapshot")
	}
}
