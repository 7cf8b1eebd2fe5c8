package capture

import (
	"testing"

	"sentence-ocr/pkg/geometry"
)

func TestValidateRegion(t *testing.T) {
	screen := geometry.NewRectInt(0, 0, 1920, 1080)

	tests := []struct {
		name   string
		region geometry.RectInt
		ok     bool
	}{
		{"normal selection", geometry.NewRectInt(100, 100, 300, 200), true},
		{"full screen", geometry.NewRectInt(0, 0, 1920, 1080), true},
		{"partially off right edge", geometry.NewRectInt(1900, 100, 100, 100), true},
		{"partially off top left", geometry.NewRectInt(-50, -50, 100, 100), true},
		{"too narrow", geometry.NewRectInt(100, 100, 9, 200), false},
		{"too short", geometry.NewRectInt(100, 100, 200, 9), false},
		{"zero size", geometry.RectInt{}, false},
		{"entirely right of screen", geometry.NewRectInt(2000, 100, 100, 100), false},
		{"entirely below screen", geometry.NewRectInt(100, 1200, 100, 100), false},
		{"entirely negative", geometry.NewRectInt(-500, -500, 100, 100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegion(tt.region, screen)
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidateRegionMultiMonitor(t *testing.T) {
	// Second monitor left of the primary: virtual bounds include
	// negative coordinates.
	screen := geometry.NewRectInt(0, 0, 1920, 1080).
		Union(geometry.NewRectInt(-1920, 0, 1920, 1080))

	if err := ValidateRegion(geometry.NewRectInt(-800, 200, 300, 100), screen); err != nil {
		t.Errorf("selection on secondary monitor should be valid: %v", err)
	}
	if err := ValidateRegion(geometry.NewRectInt(-5000, 200, 300, 100), screen); err == nil {
		t.Error("selection left of all monitors should be rejected")
	}
}
