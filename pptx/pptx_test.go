package pptx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// helper: write presentation to buffer and read back
func roundTrip(t *testing.T, p *Presentation) *Presentation {
	t.Helper()
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	data := buf.Bytes()
	pres, err := ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	return pres
}

// testPNG encodes a solid w×h PNG.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 0x2A, G: 0x9D, B: 0x8F, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func zipEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	m := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		m[f.Name] = string(b)
	}
	return m
}

func widescreen() *Presentation {
	p := New()
	p.GetLayout().SetLayout(LayoutWidescreen)
	return p
}

func TestWidescreenLayoutSize(t *testing.T) {
	p := widescreen()
	if p.GetLayout().CX != 12191695 || p.GetLayout().CY != 6858000 {
		t.Fatalf("unexpected size %dx%d", p.GetLayout().CX, p.GetLayout().CY)
	}
}

func TestWriteRequiresSlide(t *testing.T) {
	var buf bytes.Buffer
	err := New().WriteTo(&buf)
	if err == nil || !strings.Contains(err.Error(), "no slides") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	p := widescreen()
	s := p.CreateSlide()
	s.SetBackground(&Fill{Type: FillSolid, Color: Color{ARGB: "nothex"}})
	s.AddShape(NewDrawingShape())
	as := s.CreateAutoShape()
	as.SetAutoShapeType(AutoShapeType("star5"))

	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		"slide 1: background: invalid fill color",
		"slide 1: shape 1: picture has no image data",
		`slide 1: shape 2: unknown preset geometry "star5"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestAutoShapeOutline(t *testing.T) {
	p := widescreen()
	slide := p.CreateSlide()
	plain := slide.CreateAutoShape()
	plain.SetBounds(Inch(1), Inch(1), Inch(2), Point(4))
	plain.SetSolidFill(NewColor("E9C46A"))
	edged := slide.CreateAutoShape()
	edged.SetBounds(Inch(1), Inch(2), Inch(2), Inch(1))
	edged.SetBorder(NewBorder().SetSolid(NewColor("2A3550"), Point(1)))
	tb := slide.CreateRichTextShape()
	tb.SetBounds(Inch(1), Inch(4), Inch(2), Inch(1))

	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	slideXML := zipEntries(t, buf.Bytes())["ppt/slides/slide1.xml"]

	if n := strings.Count(slideXML, "<a:ln><a:noFill/></a:ln>"); n != 1 {
		t.Errorf("noFill outlines = %d, want 1", n)
	}
	if n := strings.Count(slideXML, `<a:ln w="12700">`); n != 1 {
		t.Errorf("solid outlines = %d, want 1", n)
	}

	got := roundTrip(t, p).GetAllSlides()[0].GetShapes()
	if b := got[0].(*AutoShape).GetBorder(); b != nil && b.Style == BorderSolid {
		t.Errorf("borderless shape read back with border %+v", b)
	}
}

func TestPackageParts(t *testing.T) {
	p := widescreen()
	p.CreateSlide()
	p.CreateSlide()

	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	entries := zipEntries(t, buf.Bytes())

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/app.xml",
		"docProps/core.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide2.xml.rels",
	} {
		if _, ok := entries[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	pres := entries["ppt/presentation.xml"]
	if !strings.Contains(pres, `<p:sldSz cx="12191695" cy="6858000"/>`) {
		t.Errorf("slide size not written:\n%s", pres)
	}
	if !strings.Contains(pres, `<p:sldId id="257" r:id="rId3"/>`) {
		t.Errorf("second slide id not written:\n%s", pres)
	}
}

func TestRoundTripText(t *testing.T) {
	p := widescreen()
	slide := p.CreateSlide()
	slide.SetBackground(NewFill().SetSolid(NewColor("0A1628")))

	tb := slide.CreateRichTextShape()
	tb.SetBounds(Inch(1), Inch(2), Inch(6), Inch(1))
	tb.SetAutoFit(AutoFitShape)
	para := tb.GetActiveParagraph()
	para.SetAlignment(HorizontalCenter)
	run := para.CreateTextRun("Building Leaders")
	run.GetFont().SetName("Georgia").SetSize(48).SetBold(true).SetColor(NewColor("F8F9FA"))
	para.CreateBreak()
	para.CreateTextRun("from the Ground Up").GetFont().SetItalic(true)

	next := tb.CreateParagraph()
	next.SetSpaceBefore(1200)
	next.CreateTextRun("Bingjun Li")

	got := roundTrip(t, p)
	if got.GetSlideCount() != 1 {
		t.Fatalf("expected 1 slide, got %d", got.GetSlideCount())
	}
	s := got.GetAllSlides()[0]

	bg := s.GetBackground()
	if bg == nil || bg.Type != FillSolid || bg.Color.RGB() != "0A1628" {
		t.Fatalf("background not preserved: %+v", bg)
	}

	rt, ok := s.GetShapes()[0].(*RichTextShape)
	if !ok {
		t.Fatalf("expected *RichTextShape, got %T", s.GetShapes()[0])
	}
	if rt.GetOffsetX() != Inch(1) || rt.GetOffsetY() != Inch(2) || rt.GetWidth() != Inch(6) {
		t.Errorf("geometry not preserved")
	}
	if rt.GetAutoFit() != AutoFitShape {
		t.Errorf("autofit = %v", rt.GetAutoFit())
	}

	want := []string{"Building Leaders\nfrom the Ground Up", "Bingjun Li"}
	var texts []string
	for _, para := range rt.GetParagraphs() {
		texts = append(texts, para.GetText())
	}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("paragraph text mismatch (-want +got):\n%s", diff)
	}

	first := rt.GetParagraphs()[0]
	if first.GetAlignment() != HorizontalCenter {
		t.Errorf("alignment = %q", first.GetAlignment())
	}
	f := first.GetTextRuns()[0].GetFont()
	if f.Name != "Georgia" || f.Size != 48 || !f.Bold || f.Color.RGB() != "F8F9FA" {
		t.Errorf("font not preserved: %+v", f)
	}
	if !first.GetTextRuns()[1].GetFont().Italic {
		t.Errorf("italic not preserved")
	}
	if rt.GetParagraphs()[1].GetSpaceBefore() != 1200 {
		t.Errorf("space before = %d", rt.GetParagraphs()[1].GetSpaceBefore())
	}
}

func TestRoundTripShapesAndGradient(t *testing.T) {
	p := widescreen()
	slide := p.CreateSlide()
	slide.SetBackground(NewFill().SetGradientLinear(NewColor("0A1628"), NewColor("1A4A42"), 90))

	card := slide.CreateAutoShape()
	card.SetAutoShapeType(AutoShapeRoundedRect)
	card.SetBounds(Inch(0.8), Inch(1.6), Inch(3.6), Inch(4.8))
	card.SetSolidFill(NewColor("142035"))
	card.SetBorder(NewBorder().SetSolid(NewColor("2A3550"), Point(1)))

	oval := slide.CreateAutoShape()
	oval.SetAutoShapeType(AutoShapeEllipse)
	oval.SetBounds(Inch(1), Inch(1), Inch(1), Inch(1))
	oval.SetSolidFill(NewColor("1A3050"))
	oval.CreateTextRun("1")

	got := roundTrip(t, p).GetAllSlides()[0]

	bg := got.GetBackground()
	if bg == nil || bg.Type != FillGradientLinear || bg.Rotation != 90 {
		t.Fatalf("gradient not preserved: %+v", bg)
	}
	if bg.Color.RGB() != "0A1628" || bg.EndColor.RGB() != "1A4A42" {
		t.Errorf("gradient stops = %s, %s", bg.Color.RGB(), bg.EndColor.RGB())
	}

	shapes := got.GetShapes()
	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}
	c := shapes[0].(*AutoShape)
	if c.GetAutoShapeType() != AutoShapeRoundedRect {
		t.Errorf("preset = %s", c.GetAutoShapeType())
	}
	if c.HasText() {
		t.Errorf("card should carry no text")
	}
	if b := c.GetBorder(); b.Style != BorderSolid || b.Width != 12700 || b.Color.RGB() != "2A3550" {
		t.Errorf("border not preserved: %+v", b)
	}
	o := shapes[1].(*AutoShape)
	if o.GetAutoShapeType() != AutoShapeEllipse || o.GetText() != "1" {
		t.Errorf("oval not preserved: %s %q", o.GetAutoShapeType(), o.GetText())
	}
}

func TestRoundTripPicture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hook.png")
	writeFile(t, path, testPNG(t, 144, 72))

	p := widescreen()
	slide := p.CreateSlide()
	pic := slide.CreateDrawingShape()
	if err := pic.SetImageFromFile(path); err != nil {
		t.Fatalf("SetImageFromFile: %v", err)
	}
	pic.SetPosition(Inch(7), Inch(1))
	pic.FitSize(Inch(4), 0)

	if pic.GetHeight() != Inch(2) {
		t.Fatalf("height = %d, want %d", pic.GetHeight(), Inch(2))
	}

	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	entries := zipEntries(t, buf.Bytes())
	if _, ok := entries["ppt/media/image1.png"]; !ok {
		t.Fatalf("media part missing")
	}
	if !strings.Contains(entries["[Content_Types].xml"], `Extension="png"`) {
		t.Errorf("png content type missing")
	}

	got := roundTrip(t, p).GetAllSlides()[0]
	pics := got.GetPictures()
	if len(pics) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(pics))
	}
	w, h := pics[0].GetPixelSize()
	if w != 144 || h != 72 {
		t.Errorf("pixel size = %dx%d", w, h)
	}
	if pics[0].GetWidth() != Inch(4) || pics[0].GetHeight() != Inch(2) {
		t.Errorf("extent not preserved")
	}
}

func TestFitSize(t *testing.T) {
	d := NewDrawingShape()
	if err := d.SetImageData(testPNG(t, 200, 100), "image/png"); err != nil {
		t.Fatalf("SetImageData: %v", err)
	}

	nw, nh := d.NativeSize()
	if nw != 200*914400/72 || nh != 100*914400/72 {
		t.Fatalf("native size = %dx%d", nw, nh)
	}

	tests := []struct {
		name         string
		w, h         int64
		wantW, wantH int64
	}{
		{"native", 0, 0, nw, nh},
		{"width only", Inch(2), 0, Inch(2), Inch(1)},
		{"height only", 0, Inch(3), Inch(6), Inch(3)},
		{"both", Inch(1), Inch(1), Inch(1), Inch(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.FitSize(tt.w, tt.h)
			if d.GetWidth() != tt.wantW || d.GetHeight() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", d.GetWidth(), d.GetHeight(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSetImageDataRejectsGarbage(t *testing.T) {
	d := NewDrawingShape()
	if err := d.SetImageData([]byte("not an image"), "image/png"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCorePropertiesRoundTrip(t *testing.T) {
	p := widescreen()
	p.CreateSlide()
	props := p.GetDocumentProperties()
	props.Title = "Building Leaders from the Ground Up"
	props.Creator = "Bingjun Li"
	props.Subject = "Monmouth University Scholarship Week 2026"
	stamp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	props.SetTimestamps(stamp)

	got := roundTrip(t, p).GetDocumentProperties()
	if got.Title != props.Title || got.Creator != props.Creator || got.Subject != props.Subject {
		t.Errorf("properties not preserved: %+v", got)
	}
	if !got.Created.Equal(stamp) || !got.Modified.Equal(stamp) {
		t.Errorf("timestamps = %v / %v", got.Created, got.Modified)
	}
}

func TestDeterministicOutput(t *testing.T) {
	build := func() []byte {
		p := widescreen()
		p.GetDocumentProperties().SetTimestamps(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		s := p.CreateSlide()
		s.CreateRichTextShape().CreateTextRun("same")
		var buf bytes.Buffer
		if err := p.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo: %v", err)
		}
		return buf.Bytes()
	}
	if !bytes.Equal(build(), build()) {
		t.Fatal("two writes of the same presentation differ")
	}
}

func TestTextIsNFCNormalized(t *testing.T) {
	p := widescreen()
	p.CreateSlide().CreateRichTextShape().CreateTextRun("Café & <tea>")

	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	slide := zipEntries(t, buf.Bytes())["ppt/slides/slide1.xml"]
	if !strings.Contains(slide, "<a:t>Café &amp; &lt;tea&gt;</a:t>") {
		t.Errorf("run text not normalized and escaped:\n%s", slide)
	}
}

func TestExtractText(t *testing.T) {
	p := widescreen()
	s1 := p.CreateSlide()
	s1.CreateRichTextShape().CreateTextRun("first")
	s2 := p.CreateSlide()
	s2.CreateAutoShape().CreateTextRun("second")
	s2.CreateAutoShape()

	if diff := cmp.Diff("first\nsecond", p.ExtractText()); diff != "" {
		t.Errorf("ExtractText mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveSlide(t *testing.T) {
	p := New()
	a, b, c := p.CreateSlide(), p.CreateSlide(), p.CreateSlide()
	a.SetName("a")
	b.SetName("b")
	c.SetName("c")
	if err := p.MoveSlide(2, 0); err != nil {
		t.Fatalf("MoveSlide: %v", err)
	}
	var names []string
	for _, s := range p.GetAllSlides() {
		names = append(names, s.GetName())
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if err := p.MoveSlide(5, 0); err == nil {
		t.Error("expected out of range error")
	}
}

func TestSaveAndOpen(t *testing.T) {
	p := widescreen()
	p.CreateSlide().CreateRichTextShape().CreateTextRun("on disk")
	path := filepath.Join(t.TempDir(), "nested", "deck.pptx")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.ExtractText() != "on disk" {
		t.Errorf("text = %q", got.ExtractText())
	}
	if got.GetLayout().Name != LayoutWidescreen {
		t.Errorf("layout = %s", got.GetLayout().Name)
	}
}
