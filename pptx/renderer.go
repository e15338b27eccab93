package pptx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height is calculated from slide aspect ratio.
	// Default: 960
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor overrides the slide background. Nil means use slide background or white.
	BackgroundColor *color.RGBA
	// FontDirs specifies additional directories to search for TrueType/OpenType fonts.
	// System font directories are always searched automatically.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across multiple renders.
	// If nil, a new FontCache is created using FontDirs.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// Default text insets of a DrawingML body, in EMU.
const (
	bodyInsetX = 91440
	bodyInsetY = 45720
)

// SlideToImage renders a single slide to an image.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", slideIndex, len(p.slides)-1)
	}
	o := DefaultRenderOptions()
	if opts != nil {
		o = &RenderOptions{}
		*o = *opts
	}
	if o.Width <= 0 {
		o.Width = 960
	}

	slide := p.slides[slideIndex]
	slideW := float64(p.layout.CX)
	slideH := float64(p.layout.CY)
	imgW := o.Width
	imgH := int(math.Round(float64(imgW) * slideH / slideW))

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	r := &renderer{
		img:       img,
		scaleX:    float64(imgW) / slideW,
		scaleY:    float64(imgH) / slideH,
		fontCache: o.FontCache,
		raster:    vector.NewRasterizer(imgW, imgH),
	}
	if r.fontCache == nil {
		r.fontCache = NewFontCache(o.FontDirs...)
	}

	switch {
	case o.BackgroundColor != nil:
		draw.Draw(img, img.Bounds(), &image.Uniform{*o.BackgroundColor}, image.Point{}, draw.Src)
	case slide.background != nil && slide.background.Type != FillNone:
		r.paintFill(img.Bounds(), slide.background)
	default:
		draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	}

	for _, shape := range slide.shapes {
		r.renderShape(shape)
	}

	return img, nil
}

// SlidesToImages renders all slides to images.
func (p *Presentation) SlidesToImages(opts *RenderOptions) ([]image.Image, error) {
	images := make([]image.Image, len(p.slides))
	for i := range p.slides {
		img, err := p.SlideToImage(i, opts)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}

// SaveSlideAsImage renders a slide and saves it to a file.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

// SaveSlidesAsImages renders all slides and saves them to files.
// The pattern should contain %d for the slide number (1-based), e.g. "slide_%d.png".
func (p *Presentation) SaveSlidesAsImages(pattern string, opts *RenderOptions) error {
	for i := range p.slides {
		path := fmt.Sprintf(pattern, i+1)
		if err := p.SaveSlideAsImage(i, path, opts); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// EncodeImage writes img to w in the format selected by opts.
func EncodeImage(w io.Writer, img image.Image, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := EncodeImage(f, img, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// --- renderer ---

type renderer struct {
	img       *image.RGBA
	scaleX    float64
	scaleY    float64
	fontCache *FontCache
	raster    *vector.Rasterizer
}

func (r *renderer) renderShape(shape Shape) {
	switch s := shape.(type) {
	case *RichTextShape:
		r.renderRichText(s)
	case *DrawingShape:
		r.renderDrawing(s)
	case *AutoShape:
		r.renderAutoShape(s)
	}
}

func (r *renderer) emuToPixelX(emu int64) int {
	return int(math.Round(float64(emu) * r.scaleX))
}

func (r *renderer) emuToPixelY(emu int64) int {
	return int(math.Round(float64(emu) * r.scaleY))
}

func (r *renderer) shapeRect(b *BaseShape) image.Rectangle {
	x := r.emuToPixelX(b.offsetX)
	y := r.emuToPixelY(b.offsetY)
	return image.Rect(x, y, x+r.emuToPixelX(b.width), y+r.emuToPixelY(b.height))
}

func argbToRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: c.GetRed(),
		G: c.GetGreen(),
		B: c.GetBlue(),
		A: c.GetAlpha(),
	}
}

// --- Shape rendering ---

func (r *renderer) renderRichText(s *RichTextShape) {
	rect := r.shapeRect(&s.BaseShape)
	r.paintGeometry(AutoShapeRectangle, rect, s.fill, s.border)
	r.drawParagraphs(s.paragraphs, r.textArea(rect), s.textAnchor, s.wordWrap)
}

func (r *renderer) renderDrawing(s *DrawingShape) {
	rect := r.shapeRect(&s.BaseShape)
	if len(s.data) == 0 || rect.Empty() {
		return
	}

	srcImg, _, err := image.Decode(bytes.NewReader(s.data))
	if err != nil {
		r.drawRect(rect, color.RGBA{R: 200, G: 200, B: 200, A: 255}, 1)
		return
	}

	scaled := imaging.Resize(srcImg, rect.Dx(), rect.Dy(), imaging.Lanczos)
	draw.Draw(r.img, rect, scaled, image.Point{}, draw.Over)
}

func (r *renderer) renderAutoShape(s *AutoShape) {
	rect := r.shapeRect(&s.BaseShape)
	r.paintGeometry(s.shapeType, rect, s.fill, s.border)
	if len(s.paragraphs) == 0 {
		return
	}
	anchor := s.textAnchor
	if anchor == TextAnchorNone {
		anchor = TextAnchorMiddle
	}
	r.drawParagraphs(s.paragraphs, r.textArea(rect), anchor, true)
}

func (r *renderer) textArea(rect image.Rectangle) image.Rectangle {
	ix := r.emuToPixelX(bodyInsetX)
	iy := r.emuToPixelY(bodyInsetY)
	return image.Rect(rect.Min.X+ix, rect.Min.Y+iy, rect.Max.X-ix, rect.Max.Y-iy)
}

// paintGeometry fills the preset geometry and strokes its outline. The
// outline is centred on the shape edge like a DrawingML line.
func (r *renderer) paintGeometry(prst AutoShapeType, rect image.Rectangle, fill *Fill, border *Border) {
	if rect.Empty() {
		return
	}
	fr := toFloatRect(rect)
	if fill != nil && fill.Type != FillNone {
		r.fillPath(outline(prst, fr), false, r.fillSource(rect, fill))
	}
	if border == nil || border.Style != BorderSolid {
		return
	}
	bw := float64(border.Width) * r.scaleX
	if bw < 1 {
		bw = 1
	}
	outer := outline(prst, fr.inset(-bw/2))
	inner := outline(prst, fr.inset(bw/2))
	r.raster.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	addPolygon(r.raster, outer, false)
	addPolygon(r.raster, inner, true)
	r.raster.Draw(r.img, r.img.Bounds(), image.NewUniform(argbToRGBA(border.Color)), image.Point{})
}

func (r *renderer) fillPath(pts []point, reverse bool, src image.Image) {
	r.raster.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	addPolygon(r.raster, pts, reverse)
	r.raster.Draw(r.img, r.img.Bounds(), src, image.Point{})
}

// fillSource returns the paint for a fill over rect.
func (r *renderer) fillSource(rect image.Rectangle, f *Fill) image.Image {
	if f.Type != FillGradientLinear {
		return image.NewUniform(argbToRGBA(f.Color))
	}
	grad := image.NewRGBA(r.img.Bounds())
	paintGradient(grad, rect, f)
	return grad
}

// paintFill paints rect of the slide image with f.
func (r *renderer) paintFill(rect image.Rectangle, f *Fill) {
	if f.Type == FillGradientLinear {
		paintGradient(r.img, rect, f)
		return
	}
	draw.Draw(r.img, rect, image.NewUniform(argbToRGBA(f.Color)), image.Point{}, draw.Src)
}

// paintGradient fills rect with a two-stop linear gradient. Rotation follows
// DrawingML: 0 runs left to right and 90 top to bottom.
func paintGradient(dst *image.RGBA, rect image.Rectangle, f *Fill) {
	c0, c1 := argbToRGBA(f.Color), argbToRGBA(f.EndColor)
	theta := float64(f.Rotation) * math.Pi / 180
	dx, dy := math.Cos(theta), math.Sin(theta)
	w, h := float64(rect.Dx()), float64(rect.Dy())
	span := math.Abs(w*dx) + math.Abs(h*dy)
	if span == 0 {
		span = 1
	}
	cx := float64(rect.Min.X) + w/2
	cy := float64(rect.Min.Y) + h/2

	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			t := ((float64(x)+0.5-cx)*dx+(float64(y)+0.5-cy)*dy)/span + 0.5
			dst.SetRGBA(x, y, lerpRGBA(c0, c1, t))
		}
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(u, v uint8) uint8 {
		return uint8(math.Round(float64(u) + (float64(v)-float64(u))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// --- Geometry ---

type point struct{ x, y float64 }

type floatRect struct{ x0, y0, x1, y1 float64 }

func toFloatRect(r image.Rectangle) floatRect {
	return floatRect{float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)}
}

func (f floatRect) inset(d float64) floatRect {
	return floatRect{f.x0 + d, f.y0 + d, f.x1 - d, f.y1 - d}
}

// roundRectRatio is the default corner radius of roundRect relative to the
// shorter side.
const roundRectRatio = 0.16667

// outline flattens a preset geometry into a clockwise polygon.
func outline(prst AutoShapeType, f floatRect) []point {
	w, h := f.x1-f.x0, f.y1-f.y0
	switch prst {
	case AutoShapeEllipse:
		return arc(point{f.x0 + w/2, f.y0 + h/2}, w/2, h/2, -math.Pi, math.Pi, 96)
	case AutoShapeRoundedRect:
		rad := roundRectRatio * math.Min(w, h)
		var pts []point
		pts = append(pts, arc(point{f.x0 + rad, f.y0 + rad}, rad, rad, math.Pi, 1.5*math.Pi, 12)...)
		pts = append(pts, arc(point{f.x1 - rad, f.y0 + rad}, rad, rad, 1.5*math.Pi, 2*math.Pi, 12)...)
		pts = append(pts, arc(point{f.x1 - rad, f.y1 - rad}, rad, rad, 0, 0.5*math.Pi, 12)...)
		pts = append(pts, arc(point{f.x0 + rad, f.y1 - rad}, rad, rad, 0.5*math.Pi, math.Pi, 12)...)
		return pts
	default:
		return []point{{f.x0, f.y0}, {f.x1, f.y0}, {f.x1, f.y1}, {f.x0, f.y1}}
	}
}

func arc(c point, rx, ry, from, to float64, steps int) []point {
	pts := make([]point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := from + (to-from)*float64(i)/float64(steps)
		pts = append(pts, point{c.x + rx*math.Cos(a), c.y + ry*math.Sin(a)})
	}
	return pts
}

// addPolygon adds a closed polygon to z. Reversed polygons cut holes under
// the non-zero winding rule.
func addPolygon(z *vector.Rasterizer, pts []point, reverse bool) {
	if len(pts) < 3 {
		return
	}
	at := func(i int) point {
		if reverse {
			return pts[len(pts)-1-i]
		}
		return pts[i]
	}
	z.MoveTo(float32(at(0).x), float32(at(0).y))
	for i := 1; i < len(pts); i++ {
		p := at(i)
		z.LineTo(float32(p.x), float32(p.y))
	}
	z.ClosePath()
}

func (r *renderer) drawRect(rect image.Rectangle, c color.RGBA, width int) {
	src := image.NewUniform(c)
	for i := 0; i < width; i++ {
		draw.Draw(r.img, image.Rect(rect.Min.X, rect.Min.Y+i, rect.Max.X, rect.Min.Y+i+1), src, image.Point{}, draw.Over)
		draw.Draw(r.img, image.Rect(rect.Min.X, rect.Max.Y-1-i, rect.Max.X, rect.Max.Y-i), src, image.Point{}, draw.Over)
		draw.Draw(r.img, image.Rect(rect.Min.X+i, rect.Min.Y, rect.Min.X+i+1, rect.Max.Y), src, image.Point{}, draw.Over)
		draw.Draw(r.img, image.Rect(rect.Max.X-1-i, rect.Min.Y, rect.Max.X-i, rect.Max.Y), src, image.Point{}, draw.Over)
	}
}

// --- Text rendering ---

// getFace returns a face for f at the slide's pixel scale. Unknown fonts fall
// back to the embedded Go fonts.
func (r *renderer) getFace(f *Font) font.Face {
	if f == nil {
		f = NewFont()
	}
	sizePt := float64(f.Size)
	if sizePt <= 0 {
		sizePt = 10
	}
	// Faces are created at 72 DPI, so the size in points equals pixels.
	sizePx := sizePt * emuPerPoint * r.scaleY

	name := f.Name
	if name == "" {
		name = "Calibri"
	}
	if face := r.fontCache.GetFace(name, sizePx, f.Bold, f.Italic); face != nil {
		return face
	}
	for _, fallback := range []string{"arial", "helvetica", "dejavu sans", "liberation sans", "noto sans"} {
		if face := r.fontCache.GetFace(fallback, sizePx, f.Bold, f.Italic); face != nil {
			return face
		}
	}
	return r.fontCache.FallbackFace(sizePx, f.Bold, f.Italic)
}

// textRun holds rendering info for a single text run.
type textRun struct {
	text  string
	face  font.Face
	color color.RGBA
}

// textLine holds a wrapped line of text runs.
type textLine struct {
	runs      []textRun
	width     int
	height    int
	ascent    int
	spaceAbove int
	alignment HorizontalAlignment
}

func buildTextLine(runs []textRun, align HorizontalAlignment, emptyHeight int) textLine {
	line := textLine{runs: runs, alignment: align}
	for _, r := range runs {
		line.width += font.MeasureString(r.face, r.text).Ceil()
		m := r.face.Metrics()
		if h := int(math.Ceil(float64(m.Height.Ceil()) * 1.2)); h > line.height {
			line.height = h
		}
		if a := m.Ascent.Ceil(); a > line.ascent {
			line.ascent = a
		}
	}
	if line.height <= 0 {
		line.height = emptyHeight
		line.ascent = emptyHeight * 3 / 4
	}
	return line
}

func (r *renderer) layoutParagraphs(paragraphs []*Paragraph, maxWidth int, wrap bool) []textLine {
	var lines []textLine
	defaultHeight := int(math.Ceil(18 * emuPerPoint * r.scaleY * 1.2))

	for _, para := range paragraphs {
		align := para.alignment
		if align == "" {
			align = HorizontalLeft
		}
		before := int(math.Round(float64(para.spaceBefore) / 100 * emuPerPoint * r.scaleY))
		first := len(lines)

		var runs []textRun
		flush := func() {
			line := buildTextLine(runs, align, defaultHeight)
			if wrap && maxWidth > 0 && line.width > maxWidth {
				lines = append(lines, wrapRunLine(line, maxWidth, defaultHeight)...)
			} else {
				lines = append(lines, line)
			}
			runs = nil
		}
		for _, elem := range para.elements {
			switch e := elem.(type) {
			case *TextRun:
				tc := color.RGBA{A: 255}
				if e.font != nil {
					tc = argbToRGBA(e.font.Color)
				}
				runs = append(runs, textRun{text: e.text, face: r.getFace(e.font), color: tc})
			case *BreakElement:
				flush()
			}
		}
		flush()

		if first < len(lines) {
			lines[first].spaceAbove = before
		}
	}
	return lines
}

func (r *renderer) drawParagraphs(paragraphs []*Paragraph, area image.Rectangle, anchor TextAnchorType, wrap bool) {
	w := area.Dx()
	lines := r.layoutParagraphs(paragraphs, w, wrap)

	total := 0
	for _, line := range lines {
		total += line.spaceAbove + line.height
	}
	curY := area.Min.Y
	switch anchor {
	case TextAnchorMiddle:
		curY += (area.Dy() - total) / 2
	case TextAnchorBottom:
		curY += area.Dy() - total
	}

	for _, line := range lines {
		curY += line.spaceAbove
		baseline := curY + line.ascent + (line.height-line.ascent)/4
		curY += line.height

		drawX := area.Min.X
		switch line.alignment {
		case HorizontalCenter:
			drawX += (w - line.width) / 2
		case HorizontalRight:
			drawX += w - line.width
		}

		for _, run := range line.runs {
			d := &font.Drawer{
				Dst:  r.img,
				Src:  image.NewUniform(run.color),
				Face: run.face,
				Dot:  fixed.P(drawX, baseline),
			}
			d.DrawString(run.text)
			drawX += font.MeasureString(run.face, run.text).Ceil()
		}
	}
}

// wrapRunLine wraps a textLine into multiple lines that fit within maxWidth.
func wrapRunLine(line textLine, maxWidth, emptyHeight int) []textLine {
	type styledWord struct {
		word  string
		face  font.Face
		color color.RGBA
	}

	var words []styledWord
	for _, run := range line.runs {
		for i, w := range strings.Fields(run.text) {
			if i > 0 || (len(words) > 0 && strings.HasPrefix(run.text, " ")) {
				w = " " + w
			}
			words = append(words, styledWord{word: w, face: run.face, color: run.color})
		}
	}

	if len(words) == 0 {
		return []textLine{line}
	}

	var result []textLine
	var curRuns []textRun
	curWidth := 0

	for _, sw := range words {
		ww := font.MeasureString(sw.face, sw.word).Ceil()
		if curWidth+ww > maxWidth && curWidth > 0 {
			result = append(result, buildTextLine(curRuns, line.alignment, emptyHeight))
			curRuns = nil
			curWidth = 0
			sw.word = strings.TrimLeft(sw.word, " ")
			ww = font.MeasureString(sw.face, sw.word).Ceil()
		}
		curRuns = append(curRuns, textRun{text: sw.word, face: sw.face, color: sw.color})
		curWidth += ww
	}
	if len(curRuns) > 0 {
		result = append(result, buildTextLine(curRuns, line.alignment, emptyHeight))
	}
	return result
}
