// Package debug provides debug capture utilities.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// maxSameSecond bounds how many screenshots can share one timestamp.
const maxSameSecond = 100

// ScreenshotCapture writes frames as PNG files named after the time they
// were taken.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// CaptureFromImage saves img and returns the path written. Several
// captures in the same second get numbered suffixes instead of
// overwriting each other.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	// Create output directory if needed
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, filename, err := sc.create()
	if err != nil {
		return "", err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}

	return filename, nil
}

// create opens the first free filename for the current timestamp.
func (sc *ScreenshotCapture) create() (*os.File, string, error) {
	base := sc.GenerateFilename()
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]

	filename := base
	for n := 1; n <= maxSameSecond; n++ {
		file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, filename, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("creating file: %w", err)
		}
		filename = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
	return nil, "", fmt.Errorf("creating file: too many screenshots named %s", base)
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
