package ocr

import (
	"bytes"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// UpscaleSmall returns the image scaled so that its smaller edge is at
// least minOCRDimension pixels. Larger images are returned unchanged.
// Used by the subprocess backend, which feeds tesseract a plain PNG
// without the gocv preprocessing pipeline.
func UpscaleSmall(img image.Image) image.Image {
	bounds := img.Bounds()
	minDim := min(bounds.Dx(), bounds.Dy())
	if minDim <= 0 || minDim >= minOCRDimension {
		return img
	}

	scale := float64(minOCRDimension) / float64(minDim)
	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(bounds.Dx())*scale+0.5),
		int(float64(bounds.Dy())*scale+0.5)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// EncodePNG serializes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
