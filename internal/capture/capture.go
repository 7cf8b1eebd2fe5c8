// Package capture grabs regions of the screen.
package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"sentence-ocr/pkg/geometry"
)

// MinDimension is the smallest usable selection edge, in pixels.
// Anything smaller is almost certainly a stray click rather than a
// deliberate selection.
const MinDimension = 10

// VirtualBounds returns the union of all active display bounds in
// virtual-screen coordinates.
func VirtualBounds() geometry.RectInt {
	var bounds geometry.RectInt
	n := screenshot.NumActiveDisplays()
	for i := 0; i < n; i++ {
		bounds = bounds.Union(geometry.FromImageRect(screenshot.GetDisplayBounds(i)))
	}
	return bounds
}

// ValidateRegion checks that a selection is usable: large enough and at
// least partially on screen. Pure so the policy is testable without a
// display.
func ValidateRegion(region, screen geometry.RectInt) error {
	if region.Width < MinDimension || region.Height < MinDimension {
		return fmt.Errorf("selection %dx%d is smaller than %dx%d",
			region.Width, region.Height, MinDimension, MinDimension)
	}
	if !region.Intersects(screen) {
		return fmt.Errorf("selection (%d,%d %dx%d) lies outside the screen",
			region.X, region.Y, region.Width, region.Height)
	}
	return nil
}

// Grab captures the given region of the virtual screen.
func Grab(region geometry.RectInt) (*image.RGBA, error) {
	if err := ValidateRegion(region, VirtualBounds()); err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(region.ToImageRect())
	if err != nil {
		return nil, fmt.Errorf("capturing screen region: %w", err)
	}
	return img, nil
}

// GrabDisplay captures an entire display. The selection overlay uses
// this as its frozen background.
func GrabDisplay(index int) (*image.RGBA, geometry.RectInt, error) {
	if index < 0 || index >= screenshot.NumActiveDisplays() {
		return nil, geometry.RectInt{}, fmt.Errorf("no display %d", index)
	}
	bounds := screenshot.GetDisplayBounds(index)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, geometry.RectInt{}, fmt.Errorf("capturing display %d: %w", index, err)
	}
	return img, geometry.FromImageRect(bounds), nil
}
