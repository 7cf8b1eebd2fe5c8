// Command ocrfile runs the recognition pipeline on an image file,
// without the GUI. Useful for checking an installation and for
// exercising the post-processing options from scripts.
//
// Usage: ocrfile [options] <image.png>
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"sentence-ocr/internal/config"
	"sentence-ocr/internal/ocr"
	"sentence-ocr/internal/textproc"
)

func main() {
	lang := flag.String("l", config.DefaultLanguage, "OCR language code, composable with + (e.g. chi_sim+eng)")
	engineName := flag.String("engine", config.DefaultEngine, "ocr backend: gosseract or tesseract")
	tesseractPath := flag.String("tesseract", config.DefaultTesseractPath, "tesseract binary for the subprocess backend")
	removeNewlines := flag.Bool("remove-newlines", false, "strip newlines from the result")
	forceBrackets := flag.Bool("force-brackets", false, "replace full-width punctuation with ASCII")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ocrfile [options] <image>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	img, err := loadImage(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocrfile: %v\n", err)
		os.Exit(1)
	}

	engine, err := ocr.New(*engineName, *tesseractPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocrfile: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	raw, err := engine.Recognize(img, *lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocrfile: %v\n", err)
		os.Exit(1)
	}

	text := textproc.Process(strings.TrimSpace(raw), textproc.Options{
		RemoveNewlines: *removeNewlines,
		ForceBrackets:  *forceBrackets,
	})
	fmt.Println(text)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
