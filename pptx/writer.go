package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PPTXWriter serializes a Presentation as an Office Open XML archive.
// Entries carry no modification time, so equal input gives equal bytes.
type PPTXWriter struct {
	presentation *Presentation
	// imageIndex maps each picture to its 1-based media part number.
	imageIndex map[*DrawingShape]int
}

// Save writes the presentation to a file, creating parent directories.
// A partially written file is removed on failure.
func (w *PPTXWriter) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writeErr := w.WriteTo(f)
	closeErr := f.Close()

	if writeErr != nil {
		os.Remove(path)
		return writeErr
	}
	return closeErr
}

// WriteTo writes the presentation to a writer.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	if w.presentation == nil {
		return fmt.Errorf("presentation is nil")
	}
	if err := w.presentation.Validate(); err != nil {
		return err
	}

	w.indexImages()
	zw := zip.NewWriter(writer)

	parts := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	for _, part := range parts {
		if err := part(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.presentation.slides {
		if err := w.writeSlide(zw, slide, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, slide, i+1); err != nil {
			return err
		}
	}

	if err := w.writeMedia(zw); err != nil {
		return err
	}

	return zw.Close()
}

// indexImages numbers every picture across the deck in slide order.
func (w *PPTXWriter) indexImages() {
	w.imageIndex = make(map[*DrawingShape]int)
	idx := 1
	for _, slide := range w.presentation.slides {
		for _, ds := range collectDrawingShapes(slide.shapes) {
			w.imageIndex[ds] = idx
			idx++
		}
	}
}
