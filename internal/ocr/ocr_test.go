package ocr

import (
	"errors"
	"image"
	"image/color"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want []string
	}{
		{"with language", "chi_sim+eng", []string{"img.png", "stdout", "-l", "chi_sim+eng", "--psm", "6"}},
		{"single language", "eng", []string{"img.png", "stdout", "-l", "eng", "--psm", "6"}},
		{"engine default", "", []string{"img.png", "stdout", "--psm", "6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildArgs("img.png", tt.lang)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyFailure(t *testing.T) {
	runErr := errors.New("exit status 1")

	err := classifyFailure("Failed loading language 'klingon'\nTesseract couldn't load any languages!", runErr)
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("missing language data should map to ErrUnsupportedLanguage, got %v", err)
	}
	if !strings.Contains(err.Error(), "klingon") {
		t.Errorf("error should carry the offending language line, got %v", err)
	}

	err = classifyFailure("Error in pixReadStream: Unknown format\n", runErr)
	if errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("generic failure misclassified as unsupported language: %v", err)
	}
	if !errors.Is(err, runErr) {
		t.Errorf("generic failure should wrap the exec error: %v", err)
	}

	err = classifyFailure("", runErr)
	if !errors.Is(err, runErr) {
		t.Errorf("empty stderr should still wrap the exec error: %v", err)
	}
}

// The in-process client validates languages during its lazy init, so
// missing traineddata surfaces as a Text() error and must get the same
// classification as the subprocess backend's stderr.
func TestMapTextError(t *testing.T) {
	err := mapTextError(errors.New("Failed loading language 'klingon'"), "klingon")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("missing language data should map to ErrUnsupportedLanguage, got %v", err)
	}
	if !strings.Contains(err.Error(), "klingon") {
		t.Errorf("error should name the language, got %v", err)
	}

	err = mapTextError(errors.New("Could not initialize tesseract."), "jpn")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("init failure should map to ErrUnsupportedLanguage, got %v", err)
	}

	textErr := errors.New("image has no text regions")
	err = mapTextError(textErr, "eng")
	if errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("generic failure misclassified as unsupported language: %v", err)
	}
	if !errors.Is(err, textErr) {
		t.Errorf("generic failure should wrap the original error: %v", err)
	}
}

func TestLazyEngine(t *testing.T) {
	builds := 0
	available := false
	inner := &stubEngine{text: "recognized"}

	lazy := NewLazy(func() (Engine, error) {
		builds++
		if !available {
			return nil, errors.New("tesseract binary \"tesseract\" not usable")
		}
		return inner, nil
	})

	if _, err := lazy.Recognize(nil, "eng"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable while the backend cannot be built, got %v", err)
	}
	if err := lazy.Close(); err != nil {
		t.Fatalf("Close before a successful build should be a no-op, got %v", err)
	}

	available = true
	text, err := lazy.Recognize(nil, "eng")
	if err != nil {
		t.Fatalf("Recognize after the installation is fixed: %v", err)
	}
	if text != "recognized" {
		t.Errorf("got %q", text)
	}

	if _, err := lazy.Recognize(nil, "eng"); err != nil {
		t.Fatalf("second Recognize: %v", err)
	}
	if builds != 2 {
		t.Errorf("the built backend should be cached, got %d builds", builds)
	}

	if err := lazy.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !inner.closed {
		t.Error("Close should release the built backend")
	}
}

type stubEngine struct {
	text   string
	closed bool
}

func (s *stubEngine) Recognize(img image.Image, lang string) (string, error) {
	return s.text, nil
}

func (s *stubEngine) Close() error {
	s.closed = true
	return nil
}

func TestSplitLanguages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"eng", []string{"eng"}},
		{"chi_sim+eng", []string{"chi_sim", "eng"}},
		{"chi_sim + eng", []string{"chi_sim", "eng"}},
		{"eng+", []string{"eng"}},
	}
	for _, tt := range tests {
		if got := splitLanguages(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLanguages(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func uniformImage(w, h int, c color.Gray) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = c.Y
	}
	return img
}

func TestLuminanceUniform(t *testing.T) {
	stats := Luminance(uniformImage(50, 50, color.Gray{Y: 128}))
	if math.Abs(stats.Mean-128) > 1 {
		t.Errorf("mean: got %.1f, want ~128", stats.Mean)
	}
	if stats.StdDev > 1 {
		t.Errorf("uniform image should have ~0 deviation, got %.1f", stats.StdDev)
	}
}

func TestLuminanceBimodal(t *testing.T) {
	// Half black, half white: high contrast.
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 50; x < 100; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	stats := Luminance(img)
	if math.Abs(stats.Mean-127.5) > 2 {
		t.Errorf("mean: got %.1f, want ~127.5", stats.Mean)
	}
	if stats.StdDev < 100 {
		t.Errorf("bimodal image should have high deviation, got %.1f", stats.StdDev)
	}
}

func TestLuminanceEmptyImage(t *testing.T) {
	stats := Luminance(image.NewGray(image.Rect(0, 0, 0, 0)))
	if stats.Mean != 0 || stats.StdDev != 0 {
		t.Errorf("empty image should yield zero stats, got %+v", stats)
	}
}

func TestLuminanceLargeImageSampled(t *testing.T) {
	// Large enough to force sampling; the result should still be exact
	// for a uniform image.
	stats := Luminance(uniformImage(1920, 1080, color.Gray{Y: 200}))
	if math.Abs(stats.Mean-200) > 1 {
		t.Errorf("mean: got %.1f, want ~200", stats.Mean)
	}
}

func TestUpscaleSmall(t *testing.T) {
	small := uniformImage(40, 20, color.Gray{Y: 10})
	scaled := UpscaleSmall(small)
	b := scaled.Bounds()
	if b.Dy() < minOCRDimension {
		t.Errorf("smaller edge should reach %d, got %d", minOCRDimension, b.Dy())
	}
	// Aspect ratio preserved within rounding.
	if got, want := float64(b.Dx())/float64(b.Dy()), 2.0; math.Abs(got-want) > 0.05 {
		t.Errorf("aspect ratio: got %.2f, want %.2f", got, want)
	}

	big := uniformImage(500, 400, color.Gray{Y: 10})
	if UpscaleSmall(big) != big {
		t.Error("large images should be returned unchanged")
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(uniformImage(10, 10, color.Gray{Y: 0}))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("output does not look like a PNG")
	}
}
