package ocr

import (
	"fmt"
	"image"
	"sync"
)

// Lazy defers backend construction until the first recognition. It lets
// the application start without a working Tesseract installation:
// every capture retries construction and reports the failure through
// the normal error path until the installation is fixed.
type Lazy struct {
	mu     sync.Mutex
	build  func() (Engine, error)
	engine Engine
}

// NewLazy creates an engine that builds the real backend on demand.
func NewLazy(build func() (Engine, error)) *Lazy {
	return &Lazy{build: build}
}

func (l *Lazy) get() (Engine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.engine != nil {
		return l.engine, nil
	}
	engine, err := l.build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	l.engine = engine
	return engine, nil
}

// Recognize builds the backend if needed and delegates to it.
func (l *Lazy) Recognize(img image.Image, lang string) (string, error) {
	engine, err := l.get()
	if err != nil {
		return "", err
	}
	return engine.Recognize(img, lang)
}

// Close releases the backend when one was built.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.engine == nil {
		return nil
	}
	err := l.engine.Close()
	l.engine = nil
	return err
}
