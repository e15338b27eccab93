package deck

import (
	"fmt"
	"os"
	"strings"

	"deckgen/internal/logging"
	"deckgen/pptx"
)

func in(v float64) int64 { return pptx.Inch(v) }
func pt(v float64) int64 { return pptx.Point(v) }

// TextStyle is the font applied to one run.
type TextStyle struct {
	Font   string
	Size   int // points
	Color  pptx.Color
	Bold   bool
	Italic bool
}

func body(size int, c pptx.Color) TextStyle {
	return TextStyle{Font: FontBody, Size: size, Color: c}
}

// themed leaves the typeface unset so the run inherits the theme font.
func themed(size int, c pptx.Color) TextStyle {
	return TextStyle{Size: size, Color: c}
}

func title(size int, c pptx.Color) TextStyle {
	return TextStyle{Font: FontTitle, Size: size, Color: c}
}

func (st TextStyle) bold() TextStyle   { st.Bold = true; return st }
func (st TextStyle) italic() TextStyle { st.Italic = true; return st }

func (st TextStyle) apply(f *pptx.Font) {
	f.SetName(st.Font).SetSize(st.Size).SetColor(st.Color).SetBold(st.Bold).SetItalic(st.Italic)
}

// page is the slide under construction. The first asset error sticks and
// turns every later image call into a no-op.
type page struct {
	slide  *pptx.Slide
	number int
	total  int
	assets Assets
	report *Report
	err    error
}

func (pg *page) solidBackground(c pptx.Color) {
	pg.slide.SetBackground(pptx.NewFill().SetSolid(c))
}

// gradientBackground runs c1 at the top to c2 at the bottom.
func (pg *page) gradientBackground(c1, c2 pptx.Color) {
	pg.slide.SetBackground(pptx.NewFill().SetGradientLinear(c1, c2, 90))
}

// textbox adds an empty, non-wrapping text box that grows with its text.
func (pg *page) textbox(x, y, w, h int64) *pptx.RichTextShape {
	tb := pg.slide.CreateRichTextShape()
	tb.SetBounds(x, y, w, h)
	tb.SetWordWrap(false)
	tb.SetAutoFit(pptx.AutoFitShape)
	return tb
}

// setText turns wrapping on and fills the first paragraph with one styled run.
func setText(tb *pptx.RichTextShape, text string, st TextStyle, align pptx.HorizontalAlignment) *pptx.Paragraph {
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	p.SetAlignment(align)
	addRun(p, text, st)
	return p
}

// addRun appends text in style st. Each "\n" becomes a line break.
func addRun(p *pptx.Paragraph, text string, st TextStyle) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.CreateBreak()
		}
		if line == "" {
			continue
		}
		st.apply(p.CreateTextRun(line).GetFont())
	}
}

// addParagraph appends a paragraph holding text, or an empty one.
func addParagraph(tb *pptx.RichTextShape, text string, st TextStyle, align pptx.HorizontalAlignment) *pptx.Paragraph {
	p := tb.CreateParagraph()
	p.SetAlignment(align)
	if text != "" {
		addRun(p, text, st)
	}
	return p
}

// rect adds a borderless rectangle.
func (pg *page) rect(x, y, w, h int64, fill pptx.Color) *pptx.AutoShape {
	s := pg.slide.CreateAutoShape()
	s.SetBounds(x, y, w, h)
	return s.SetSolidFill(fill)
}

// oval adds an ellipse outlined in line at 2 pt.
func (pg *page) oval(x, y, w, h int64, fill, line pptx.Color) *pptx.AutoShape {
	s := pg.slide.CreateAutoShape().SetAutoShapeType(pptx.AutoShapeEllipse)
	s.SetBounds(x, y, w, h)
	s.SetSolidFill(fill)
	s.SetBorder(pptx.NewBorder().SetSolid(line, pt(2)))
	return s
}

// accentLine adds the short gold rule under headings. A zero width means 1.2 in.
func (pg *page) accentLine(x, y, w int64) *pptx.AutoShape {
	if w == 0 {
		w = in(1.2)
	}
	return pg.rect(x, y, w, pt(4), Gold)
}

// card adds the rounded panel behind grouped content with the default thin border.
func (pg *page) card(x, y, w, h int64) *pptx.AutoShape {
	return pg.panel(x, y, w, h, cardBorder, pt(1))
}

// accentCard is a card outlined in c at 2 pt.
func (pg *page) accentCard(x, y, w, h int64, c pptx.Color) *pptx.AutoShape {
	return pg.panel(x, y, w, h, c, pt(2))
}

func (pg *page) panel(x, y, w, h int64, line pptx.Color, width int64) *pptx.AutoShape {
	s := pg.slide.CreateAutoShape().SetAutoShapeType(pptx.AutoShapeRoundedRect)
	s.SetBounds(x, y, w, h)
	s.SetSolidFill(cardFill)
	s.SetBorder(pptx.NewBorder().SetSolid(line, width))
	return s
}

// image places the picture at path when the file exists. Width-only or
// height-only keeps the aspect ratio; neither uses the native size. A path that
// cannot be stat'ed for any reason is skipped and nil returned. A file that
// stats fine but cannot be read or decoded fails the build.
func (pg *page) image(path string, x, y, w, h int64) *pptx.DrawingShape {
	if pg.err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		logging.Debug("asset missing, picture skipped", "slide", pg.number, "path", path, "error", err)
		pg.report.Missing = append(pg.report.Missing, path)
		return nil
	}

	ds := pptx.NewDrawingShape()
	if err := ds.SetImageFromFile(path); err != nil {
		pg.err = fmt.Errorf("slide %d: %w", pg.number, err)
		return nil
	}
	ds.SetPosition(x, y)
	ds.FitSize(w, h)
	pg.slide.AddShape(ds)
	pg.report.Pictures++
	return ds
}

// footer writes "n / total" in the bottom-right corner.
func (pg *page) footer() {
	tb := pg.textbox(in(12.3), in(7.0), in(1.0), in(0.4))
	setText(tb, fmt.Sprintf("%d / %d", pg.number, pg.total), body(11, Dim), pptx.HorizontalRight)
}
