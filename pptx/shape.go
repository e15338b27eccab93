package pptx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF for DecodeConfig
	_ "image/jpeg" // register JPEG for DecodeConfig
	_ "image/png"  // register PNG for DecodeConfig
	"math"
	"os"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP for DecodeConfig
)

// Shape is the interface that all shapes implement.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	// base returns the underlying BaseShape (unexported, internal use only).
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeAutoShape
)

func (t ShapeType) String() string {
	switch t {
	case ShapeTypeRichText:
		return "text"
	case ShapeTypeDrawing:
		return "picture"
	case ShapeTypeAutoShape:
		return "shape"
	}
	return fmt.Sprintf("ShapeType(%d)", int(t))
}

// BaseShape contains common shape properties.
type BaseShape struct {
	name        string
	description string
	offsetX     int64 // in EMU
	offsetY     int64 // in EMU
	width       int64 // in EMU
	height      int64 // in EMU
	fill        *Fill
	border      *Border
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetName(n string) *BaseShape { b.name = n; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = w
	b.height = h
	return b
}

// SetBounds sets position and size in one call.
func (b *BaseShape) SetBounds(x, y, w, h int64) *BaseShape {
	return b.SetPosition(x, y).SetSize(w, h)
}

func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}

func (b *BaseShape) SetFill(f *Fill) { b.fill = f }

func (b *BaseShape) GetBorder() *Border {
	if b.border == nil {
		b.border = NewBorder()
	}
	return b.border
}

func (b *BaseShape) SetBorder(border *Border) { b.border = border }

// TextAnchorType represents the vertical anchoring of text within a shape.
type TextAnchorType string

const (
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
	TextAnchorNone   TextAnchorType = ""
)

// AutoFitType represents the auto-fit behavior of a text body.
type AutoFitType int

const (
	AutoFitNone AutoFitType = iota
	AutoFitNormal
	AutoFitShape
)

// textBody holds the paragraphs shared by text boxes and auto shapes.
type textBody struct {
	paragraphs      []*Paragraph
	activeParagraph int
	textAnchor      TextAnchorType
}

// GetActiveParagraph returns the active paragraph, creating one if needed.
func (t *textBody) GetActiveParagraph() *Paragraph {
	if len(t.paragraphs) == 0 {
		t.paragraphs = append(t.paragraphs, NewParagraph())
		t.activeParagraph = 0
	}
	return t.paragraphs[t.activeParagraph]
}

// CreateParagraph creates a new paragraph and makes it active.
func (t *textBody) CreateParagraph() *Paragraph {
	p := NewParagraph()
	t.paragraphs = append(t.paragraphs, p)
	t.activeParagraph = len(t.paragraphs) - 1
	return p
}

// GetParagraphs returns all paragraphs.
func (t *textBody) GetParagraphs() []*Paragraph {
	return t.paragraphs
}

// CreateTextRun creates a text run in the active paragraph.
func (t *textBody) CreateTextRun(text string) *TextRun {
	return t.GetActiveParagraph().CreateTextRun(text)
}

// SetTextAnchor sets the vertical position of text within the shape.
func (t *textBody) SetTextAnchor(anchor TextAnchorType) {
	t.textAnchor = anchor
}

// GetTextAnchor returns the text anchoring type.
func (t *textBody) GetTextAnchor() TextAnchorType {
	return t.textAnchor
}

// GetText returns the text of all paragraphs joined by newlines.
func (t *textBody) GetText() string {
	lines := make([]string, 0, len(t.paragraphs))
	for _, p := range t.paragraphs {
		lines = append(lines, p.GetText())
	}
	return strings.Join(lines, "\n")
}

// RichTextShape represents a text box.
type RichTextShape struct {
	BaseShape
	textBody
	autoFit  AutoFitType
	wordWrap bool
}

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape creates a new text box with one empty paragraph.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{
		textBody: textBody{paragraphs: []*Paragraph{NewParagraph()}},
		wordWrap: true,
	}
}

// CreateBreak creates a line break in the active paragraph.
func (r *RichTextShape) CreateBreak() *BreakElement {
	return r.GetActiveParagraph().CreateBreak()
}

// SetAutoFit sets the auto-fit type.
func (r *RichTextShape) SetAutoFit(fit AutoFitType) { r.autoFit = fit }

// GetAutoFit returns the auto-fit type.
func (r *RichTextShape) GetAutoFit() AutoFitType { return r.autoFit }

// SetWordWrap sets word wrap.
func (r *RichTextShape) SetWordWrap(wrap bool) { r.wordWrap = wrap }

// GetWordWrap returns word wrap setting.
func (r *RichTextShape) GetWordWrap() bool { return r.wordWrap }

// Paragraph represents a text paragraph.
type Paragraph struct {
	elements    []ParagraphElement
	alignment   HorizontalAlignment
	spaceBefore int // in hundredths of a point
	spaceAfter  int // in hundredths of a point
}

// ParagraphElement is the interface for paragraph content.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph creates a new left-aligned paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{
		elements:  make([]ParagraphElement, 0),
		alignment: HorizontalLeft,
	}
}

// GetAlignment returns the horizontal alignment.
func (p *Paragraph) GetAlignment() HorizontalAlignment { return p.alignment }

// SetAlignment sets the horizontal alignment.
func (p *Paragraph) SetAlignment(a HorizontalAlignment) { p.alignment = a }

// GetElements returns all paragraph elements.
func (p *Paragraph) GetElements() []ParagraphElement { return p.elements }

// GetSpaceBefore returns the space before the paragraph in hundredths of a point.
func (p *Paragraph) GetSpaceBefore() int { return p.spaceBefore }

// SetSpaceBefore sets the space before the paragraph in hundredths of a point.
func (p *Paragraph) SetSpaceBefore(v int) { p.spaceBefore = v }

// GetSpaceAfter returns the space after the paragraph in hundredths of a point.
func (p *Paragraph) GetSpaceAfter() int { return p.spaceAfter }

// SetSpaceAfter sets the space after the paragraph in hundredths of a point.
func (p *Paragraph) SetSpaceAfter(v int) { p.spaceAfter = v }

// CreateTextRun creates a new text run with the default font.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{
		text: text,
		font: NewFont(),
	}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak creates a line break element.
func (p *Paragraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// GetTextRuns returns the text runs of the paragraph, skipping breaks.
func (p *Paragraph) GetTextRuns() []*TextRun {
	var runs []*TextRun
	for _, elem := range p.elements {
		if tr, ok := elem.(*TextRun); ok {
			runs = append(runs, tr)
		}
	}
	return runs
}

// GetText returns the paragraph text with line breaks as "\n".
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case *TextRun:
			sb.WriteString(e.text)
		case *BreakElement:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// TextRun represents a run of text with formatting.
type TextRun struct {
	text string
	font *Font
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the text content.
func (tr *TextRun) GetText() string { return tr.text }

// SetText sets the text content.
func (tr *TextRun) SetText(text string) { tr.text = text }

// GetFont returns the font properties.
func (tr *TextRun) GetFont() *Font { return tr.font }

// SetFont sets the font properties.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// BreakElement represents a line break.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }

// defaultImageDPI is the resolution assumed when sizing a picture from its
// pixel dimensions.
const defaultImageDPI = 72

// DrawingShape represents an embedded picture.
type DrawingShape struct {
	BaseShape
	path     string // source file path, informational
	data     []byte // raw image data
	mimeType string
	pxWidth  int
	pxHeight int
}

func (d *DrawingShape) GetType() ShapeType { return ShapeTypeDrawing }

// NewDrawingShape creates a new drawing shape.
func NewDrawingShape() *DrawingShape {
	return &DrawingShape{}
}

// GetPath returns the file path the image was loaded from.
func (d *DrawingShape) GetPath() string { return d.path }

// SetImageData sets the raw image data and records its pixel size.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image header: %w", err)
	}
	d.data = data
	d.mimeType = mimeType
	d.pxWidth = cfg.Width
	d.pxHeight = cfg.Height
	return nil
}

// GetImageData returns the raw image data.
func (d *DrawingShape) GetImageData() []byte { return d.data }

// GetMimeType returns the image MIME type.
func (d *DrawingShape) GetMimeType() string { return d.mimeType }

// GetPixelSize returns the decoded image dimensions in pixels.
func (d *DrawingShape) GetPixelSize() (int, int) { return d.pxWidth, d.pxHeight }

// maxImageFileSize is the maximum allowed size for an image file loaded from disk.
const maxImageFileSize = 50 << 20 // 50 MB

// SetImageFromFile loads an image from a file path and sets the data and MIME type.
// Returns an error if the file exceeds maxImageFileSize, cannot be read or is
// not a decodable image.
func (d *DrawingShape) SetImageFromFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}
	if err := d.SetImageData(data, guessMimeFromPath(path)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	d.path = path
	return nil
}

// NativeSize returns the picture size in EMU at defaultImageDPI.
func (d *DrawingShape) NativeSize() (int64, int64) {
	return pixelsToEMU(d.pxWidth, defaultImageDPI), pixelsToEMU(d.pxHeight, defaultImageDPI)
}

// FitSize sets the picture extent. A zero width or height is derived from
// the other one so the image keeps its aspect ratio; both zero uses the
// native size.
func (d *DrawingShape) FitSize(width, height int64) *DrawingShape {
	nativeW, nativeH := d.NativeSize()
	switch {
	case width == 0 && height == 0:
		width, height = nativeW, nativeH
	case width == 0 && nativeH > 0:
		width = int64(math.Round(float64(nativeW) * float64(height) / float64(nativeH)))
	case height == 0 && nativeW > 0:
		height = int64(math.Round(float64(nativeH) * float64(width) / float64(nativeW)))
	}
	d.width = width
	d.height = height
	return d
}

// guessMimeFromPath guesses the MIME type from a file extension.
func guessMimeFromPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".bmp"):
		return "image/bmp"
	default:
		return "image/png"
	}
}

// AutoShape represents a preset geometry shape (rectangle, ellipse, etc.)
// that may carry text.
type AutoShape struct {
	BaseShape
	textBody
	shapeType AutoShapeType
}

// AutoShapeType represents the preset geometry name.
type AutoShapeType string

const (
	AutoShapeRectangle   AutoShapeType = "rect"
	AutoShapeRoundedRect AutoShapeType = "roundRect"
	AutoShapeEllipse     AutoShapeType = "ellipse"
)

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

// NewAutoShape creates a new rectangle.
func NewAutoShape() *AutoShape {
	return &AutoShape{
		shapeType: AutoShapeRectangle,
	}
}

// SetAutoShapeType sets the preset geometry.
func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.shapeType = t
	return a
}

// GetAutoShapeType returns the preset geometry.
func (a *AutoShape) GetAutoShapeType() AutoShapeType {
	return a.shapeType
}

// SetSolidFill sets a solid fill on the auto shape.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.GetFill().SetSolid(c)
	return a
}

// HasText reports whether the shape carries any paragraphs.
func (a *AutoShape) HasText() bool {
	return len(a.paragraphs) > 0
}
