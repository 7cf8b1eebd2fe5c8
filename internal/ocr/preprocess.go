package ocr

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	// minOCRDimension is the smallest edge Tesseract handles well;
	// captures below this are upscaled first.
	minOCRDimension = 150

	// lowContrastStdDev marks captures that need contrast enhancement
	// before thresholding, e.g. dim themes or translucent overlays.
	lowContrastStdDev = 40.0
)

// Preprocess prepares a screen capture for recognition and returns it
// as PNG bytes: upscale small regions, grayscale, equalize contrast
// when it is poor, binarize, and flip light-on-dark text to the
// dark-on-light form Tesseract expects.
func Preprocess(img image.Image) ([]byte, error) {
	stats := Luminance(img)

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("converting capture: %w", err)
	}
	defer src.Close()

	h, w := src.Rows(), src.Cols()
	scaled := gocv.NewMat()
	defer scaled.Close()
	if minDim := min(h, w); minDim < minOCRDimension {
		scale := float64(minOCRDimension) / float64(minDim)
		gocv.Resize(src, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		src.CopyTo(&scaled)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(scaled, &gray, gocv.ColorRGBToGray)

	if stats.StdDev < lowContrastStdDev {
		clahe := gocv.NewCLAHEWithParams(2.0, image.Point{X: 8, Y: 8})
		enhanced := gocv.NewMat()
		clahe.Apply(gray, &enhanced)
		clahe.Close()
		enhanced.CopyTo(&gray)
		enhanced.Close()
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	// Dark themes produce light text on dark background; Tesseract
	// wants the opposite.
	whiteCount := gocv.CountNonZero(binary)
	total := binary.Rows() * binary.Cols()
	if total > 0 && float64(whiteCount)/float64(total) < 0.5 {
		gocv.BitwiseNot(binary, &binary)
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, binary)
	if err != nil {
		return nil, fmt.Errorf("encoding preprocessed capture: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
