// Package overlay implements the full-screen region selection window.
//
// The screen is frozen into a screenshot, shown full screen, and the
// user drags a rectangle over it. The previous selection, when one is
// stored, is drawn as a suggestion and can be confirmed with Enter.
package overlay

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"sentence-ocr/internal/capture"
	"sentence-ocr/pkg/geometry"
)

var (
	borderColor     = color.NRGBA{R: 0x00, G: 0xC8, B: 0x50, A: 0xFF}
	suggestionColor = color.NRGBA{R: 0x00, G: 0xC8, B: 0x50, A: 0x90}
)

// Show freezes the primary display and opens the selection window.
// onDone receives the selected rectangle in virtual-screen pixels;
// onCancel fires when the user presses Escape. Exactly one of the two
// callbacks runs, after the window has closed.
func Show(fyneApp fyne.App, suggested *geometry.RectInt, onDone func(geometry.RectInt), onCancel func()) error {
	shot, screen, err := capture.GrabDisplay(0)
	if err != nil {
		return err
	}

	win := fyneApp.NewWindow("Select Region")
	win.SetPadded(false)

	done := false
	finish := func(r *geometry.RectInt) {
		if done {
			return
		}
		done = true
		win.Close()
		if r != nil {
			onDone(*r)
		} else {
			onCancel()
		}
	}

	area := newSelectArea(shot, screen, suggested, finish)
	win.SetContent(area)

	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			finish(nil)
		case fyne.KeyReturn, fyne.KeyEnter:
			if area.suggested != nil {
				finish(area.suggested)
			}
		}
	})

	win.SetFullScreen(true)
	win.Show()
	return nil
}

// selectArea is the drag-to-select surface.
type selectArea struct {
	widget.BaseWidget

	background *canvas.Image
	rubber     *canvas.Rectangle

	screen    geometry.RectInt
	suggested *geometry.RectInt
	finish    func(*geometry.RectInt)

	dragging   bool
	start, cur fyne.Position
}

var _ desktop.Mouseable = (*selectArea)(nil)
var _ desktop.Hoverable = (*selectArea)(nil)

func newSelectArea(shot image.Image, screen geometry.RectInt, suggested *geometry.RectInt, finish func(*geometry.RectInt)) *selectArea {
	bg := canvas.NewImageFromImage(shot)
	bg.ScaleMode = canvas.ImageScalePixels
	bg.FillMode = canvas.ImageFillStretch

	rubber := canvas.NewRectangle(color.Transparent)
	rubber.StrokeColor = suggestionColor
	rubber.StrokeWidth = 2
	rubber.Hidden = suggested == nil

	a := &selectArea{
		background: bg,
		rubber:     rubber,
		screen:     screen,
		suggested:  suggested,
		finish:     finish,
	}
	a.ExtendBaseWidget(a)
	return a
}

// scale returns device pixels per fyne unit for this widget's canvas.
func (a *selectArea) scale() float32 {
	cv := fyne.CurrentApp().Driver().CanvasForObject(a)
	if cv == nil || cv.Scale() <= 0 {
		return 1
	}
	return cv.Scale()
}

// toPixels converts a widget-local rectangle to virtual-screen pixels.
func (a *selectArea) toPixels(p0, p1 fyne.Position) geometry.RectInt {
	s := float64(a.scale())
	corner := func(p fyne.Position) geometry.PointInt {
		return geometry.PointInt{
			X: a.screen.X + int(float64(p.X)*s+0.5),
			Y: a.screen.Y + int(float64(p.Y)*s+0.5),
		}
	}
	return geometry.FromCorners(corner(p0), corner(p1))
}

// toUnits converts a virtual-screen rectangle to widget-local units.
func (a *selectArea) toUnits(r geometry.RectInt) (fyne.Position, fyne.Size) {
	s := float32(a.scale())
	pos := fyne.NewPos(float32(r.X-a.screen.X)/s, float32(r.Y-a.screen.Y)/s)
	size := fyne.NewSize(float32(r.Width)/s, float32(r.Height)/s)
	return pos, size
}

func (a *selectArea) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	a.dragging = true
	a.start = ev.Position
	a.cur = ev.Position
	a.rubber.StrokeColor = borderColor
	a.rubber.Hidden = false
	a.updateRubber()
}

func (a *selectArea) MouseUp(ev *desktop.MouseEvent) {
	if !a.dragging {
		return
	}
	a.dragging = false
	a.cur = ev.Position

	region := a.toPixels(a.start, a.cur)
	if region.Width < capture.MinDimension || region.Height < capture.MinDimension {
		// Stray click: fall back to showing the suggestion again.
		a.rubber.StrokeColor = suggestionColor
		a.rubber.Hidden = a.suggested == nil
		a.updateRubber()
		return
	}
	a.finish(&region)
}

func (a *selectArea) MouseIn(*desktop.MouseEvent) {}

func (a *selectArea) MouseMoved(ev *desktop.MouseEvent) {
	if !a.dragging {
		return
	}
	a.cur = ev.Position
	a.updateRubber()
}

func (a *selectArea) MouseOut() {}

func (a *selectArea) updateRubber() {
	if a.dragging {
		a.rubber.Move(fyne.NewPos(
			min(a.start.X, a.cur.X), min(a.start.Y, a.cur.Y)))
		a.rubber.Resize(fyne.NewSize(
			abs32(a.cur.X-a.start.X), abs32(a.cur.Y-a.start.Y)))
	} else if a.suggested != nil {
		pos, size := a.toUnits(*a.suggested)
		a.rubber.Move(pos)
		a.rubber.Resize(size)
	}
	a.rubber.Refresh()
}

func (a *selectArea) CreateRenderer() fyne.WidgetRenderer {
	return &selectAreaRenderer{area: a}
}

type selectAreaRenderer struct {
	area *selectArea
}

func (r *selectAreaRenderer) Layout(size fyne.Size) {
	r.area.background.Resize(size)
	r.area.updateRubber()
}

func (r *selectAreaRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *selectAreaRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.area.background, r.area.rubber}
}

func (r *selectAreaRenderer) Refresh() {
	r.area.background.Refresh()
	r.area.rubber.Refresh()
}

func (r *selectAreaRenderer) Destroy() {}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
