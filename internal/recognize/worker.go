package recognize

import (
	"sync/atomic"

	"sentence-ocr/internal/config"
	"sentence-ocr/pkg/geometry"
)

// Result is the outcome of one background recognition.
type Result struct {
	Region geometry.RectInt
	Text   string
	Err    error
}

// Worker runs recognitions on a background goroutine so the tray and
// hotkey listener stay responsive during the slow OCR call. At most one
// recognition is in flight; a request arriving while busy is rejected
// with ErrBusy (drop-newest policy). An in-flight call that the process
// does not wait for is simply abandoned at exit.
type Worker struct {
	coord *Coordinator
	busy  atomic.Bool
	done  func(Result)
}

// NewWorker creates a worker delivering results through done. The
// callback runs on the worker goroutine.
func NewWorker(coord *Coordinator, done func(Result)) *Worker {
	return &Worker{coord: coord, done: done}
}

// Submit starts a recognition for the region. opts must be a value
// snapshot of the relevant settings so that in-session configuration
// changes cannot race with the running recognition.
func (w *Worker) Submit(region geometry.RectInt, opts config.Options) error {
	if !w.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	go func() {
		defer w.busy.Store(false)
		text, err := w.coord.Recognize(region, opts)
		w.done(Result{Region: region, Text: text, Err: err})
	}()
	return nil
}

// Busy reports whether a recognition is currently in flight.
func (w *Worker) Busy() bool {
	return w.busy.Load()
}
