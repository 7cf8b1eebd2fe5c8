package ocr

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Gosseract is the in-process Tesseract backend.
type Gosseract struct {
	mu       sync.Mutex
	client   *gosseract.Client
	language string
}

// NewGosseract creates the in-process engine. Construction fails when
// the Tesseract libraries or the default language data are missing.
func NewGosseract() (*Gosseract, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("initializing tesseract: %w", err)
	}

	// Screen text is a single block of lines, not a full page layout.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}

	return &Gosseract{client: client, language: "eng"}, nil
}

// Recognize performs OCR on the image using the given language.
func (g *Gosseract) Recognize(img image.Image, lang string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return "", fmt.Errorf("engine is closed")
	}

	if lang != "" && lang != g.language {
		if err := g.client.SetLanguage(splitLanguages(lang)...); err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
		}
		g.language = lang
	}

	data, err := Preprocess(img)
	if err != nil {
		return "", fmt.Errorf("preprocessing capture: %w", err)
	}

	if err := g.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := g.client.Text()
	if err != nil {
		return "", mapTextError(err, g.language)
	}
	return text, nil
}

// mapTextError classifies a recognition failure from the in-process
// client. Missing language data surfaces here rather than at
// SetLanguage: gosseract only stores the language names and initializes
// tesseract lazily on the first recognition.
func mapTextError(err error, lang string) error {
	if isLanguageFailure(err.Error()) {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	return fmt.Errorf("recognizing text: %w", err)
}

// Close releases the Tesseract client.
func (g *Gosseract) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

// splitLanguages breaks a composable "+"-joined code into the separate
// codes gosseract expects.
func splitLanguages(lang string) []string {
	parts := strings.Split(lang, "+")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
