package ocr

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strings"
)

// Tesseract runs the tesseract binary as a subprocess. It is the
// fallback for setups where the in-process client is unavailable.
type Tesseract struct {
	command string
}

// NewTesseract creates the subprocess backend, probing the binary with
// --version so a missing installation fails at startup rather than on
// the first capture.
func NewTesseract(command string) (*Tesseract, error) {
	if command == "" {
		command = "tesseract"
	}
	t := &Tesseract{command: command}
	if err := t.probe(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tesseract) probe() error {
	cmd := exec.Command(t.command, "--version")
	if _, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tesseract binary %q not usable: %w", t.command, err)
	}
	return nil
}

// Recognize writes the image to a temporary PNG and runs tesseract on
// it, reading the recognized text from stdout.
func (t *Tesseract) Recognize(img image.Image, lang string) (string, error) {
	data, err := EncodePNG(UpscaleSmall(img))
	if err != nil {
		return "", fmt.Errorf("encoding capture: %w", err)
	}

	tmp, err := os.CreateTemp("", "sentence-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing temp image: %w", err)
	}

	cmd := exec.Command(t.command, buildArgs(tmpPath, lang)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", classifyFailure(stderr.String(), err)
	}
	return stdout.String(), nil
}

// Close is a no-op; the subprocess backend holds no resources.
func (t *Tesseract) Close() error {
	return nil
}

// buildArgs assembles the tesseract command line for one recognition.
// The language code is passed through unchanged; tesseract understands
// the "+"-joined composable form natively.
func buildArgs(imagePath, lang string) []string {
	args := []string{imagePath, "stdout"}
	if lang != "" {
		args = append(args, "-l", lang)
	}
	// Single uniform block of text, matching the in-process backend.
	args = append(args, "--psm", "6")
	return args
}

// classifyFailure maps tesseract stderr output onto the package error
// kinds. Missing language data gets its own error so the UI can name
// the traineddata file to install.
func classifyFailure(stderr string, runErr error) error {
	if isLanguageFailure(stderr) {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, firstLine(stderr))
	}
	if msg := firstLine(stderr); msg != "" {
		return fmt.Errorf("tesseract: %s: %w", msg, runErr)
	}
	return fmt.Errorf("tesseract: %w", runErr)
}

// isLanguageFailure reports whether a tesseract error message means the
// requested language data is not installed. Both backends produce the
// same messages; the in-process client forwards them verbatim.
func isLanguageFailure(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "failed loading language") ||
		strings.Contains(lower, "could not initialize tesseract")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
