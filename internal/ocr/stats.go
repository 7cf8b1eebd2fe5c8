package ocr

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

// statsSampleLimit bounds the cost of statistics on large captures by
// sampling at most ~64k pixels.
const statsSampleLimit = 1 << 16

// LuminanceStats summarizes the brightness distribution of a capture.
type LuminanceStats struct {
	Mean   float64
	StdDev float64
}

// Luminance samples the image and returns brightness statistics in the
// 0-255 range. The standard deviation is a cheap contrast measure: a
// crisp text capture is strongly bimodal with a high deviation, while a
// washed-out one clusters near its mean.
func Luminance(img image.Image) LuminanceStats {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return LuminanceStats{}
	}

	stride := 1
	if total > statsSampleLimit {
		stride = int(math.Ceil(math.Sqrt(float64(total) / float64(statsSampleLimit))))
	}

	samples := make([]float64, 0, statsSampleLimit)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += stride {
			r, g, b, _ := img.At(x, y).RGBA()
			// ITU-R BT.601 luma, scaled from 16-bit channels.
			luma := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
			samples = append(samples, luma)
		}
	}

	mean, std := stat.MeanStdDev(samples, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return LuminanceStats{Mean: mean, StdDev: std}
}
