// Package preview rasterises presentation slides to PNG files.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"deckgen/internal/logging"
	"deckgen/pptx"
)

// Options configures an Exporter.
type Options struct {
	OutDir      string
	Width       int
	Concurrency int
	FontDirs    []string
}

// Exporter renders slides with one font cache shared by every render.
type Exporter struct {
	opts  Options
	fonts *pptx.FontCache
}

// New returns an Exporter. Non-positive width or concurrency fall back to
// 1920 px and one worker.
func New(opts Options) *Exporter {
	if opts.Width <= 0 {
		opts.Width = 1920
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Exporter{opts: opts, fonts: pptx.NewFontCache(opts.FontDirs...)}
}

// FileName is the preview file written for the 1-based slide n.
func FileName(n int) string {
	return fmt.Sprintf("slide-%02d.png", n)
}

func (e *Exporter) renderOptions() *pptx.RenderOptions {
	o := pptx.DefaultRenderOptions()
	o.Width = e.opts.Width
	o.FontCache = e.fonts.Fork()
	return o
}

// Render returns slide index (0-based) encoded as PNG.
func (e *Exporter) Render(ctx context.Context, pres *pptx.Presentation, index int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := e.renderOptions()
	img, err := pres.SlideToImage(index, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pptx.EncodeImage(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("encode slide %d: %w", index+1, err)
	}
	return buf.Bytes(), nil
}

// Export writes every slide to OutDir in parallel and returns the file
// paths in slide order. The first failure cancels the remaining renders.
func (e *Exporter) Export(ctx context.Context, pres *pptx.Presentation) ([]string, error) {
	start := time.Now()
	paths := make([]string, pres.GetSlideCount())

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.opts.Concurrency)
	for i := range paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			path := filepath.Join(e.opts.OutDir, FileName(i+1))
			if err := pres.SaveSlideAsImage(i, path, e.renderOptions()); err != nil {
				return fmt.Errorf("slide %d: %w", i+1, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logging.Debug("previews exported",
		"dir", e.opts.OutDir,
		"slides", len(paths),
		"width", e.opts.Width,
		"took", time.Since(start),
	)
	return paths, nil
}
