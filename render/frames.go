package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mindsgn-studio/donut/engine"
)

// FrameWriter stores an animation as numbered SVG files in one directory
type FrameWriter struct {
	dir     string
	canvas  float64
	opts    Options
	written int
}

// NewFrameWriter creates dir if needed
func NewFrameWriter(dir string, canvasSize float64, opts Options) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}
	return &FrameWriter{dir: dir, canvas: canvasSize, opts: opts}, nil
}

// WriteFrame renders layers into the next frame file and returns its path
func (fw *FrameWriter) WriteFrame(layers engine.Layers) (string, error) {
	path := filepath.Join(fw.dir, fmt.Sprintf("frame-%04d.svg", fw.written))

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create frame: %w", err)
	}

	if err := SVG(file, fw.canvas, layers, fw.opts); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close frame: %w", err)
	}

	fw.written++
	return path, nil
}

// Count returns how many frames were written
func (fw *FrameWriter) Count() int {
	return fw.written
}

// Dir returns the output directory
func (fw *FrameWriter) Dir() string {
	return fw.dir
}
