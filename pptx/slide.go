package pptx

import "strings"

// Slide is a single page of a presentation. Shapes are drawn in the order
// they were added.
type Slide struct {
	name       string
	shapes     []Shape
	background *Fill
}

func newSlide() *Slide {
	return &Slide{shapes: make([]Shape, 0)}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name.
func (s *Slide) SetName(name string) { s.name = name }

// GetShapes returns the shapes on the slide in z-order.
func (s *Slide) GetShapes() []Shape { return s.shapes }

// AddShape appends an existing shape.
func (s *Slide) AddShape(shape Shape) {
	s.shapes = append(s.shapes, shape)
}

// CreateRichTextShape adds a new text box.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	rt := NewRichTextShape()
	s.shapes = append(s.shapes, rt)
	return rt
}

// CreateAutoShape adds a new preset shape.
func (s *Slide) CreateAutoShape() *AutoShape {
	as := NewAutoShape()
	s.shapes = append(s.shapes, as)
	return as
}

// CreateDrawingShape adds a new picture. The caller must set image data
// before the presentation is written.
func (s *Slide) CreateDrawingShape() *DrawingShape {
	ds := NewDrawingShape()
	s.shapes = append(s.shapes, ds)
	return ds
}

// GetBackground returns the slide background, or nil if it inherits the master.
func (s *Slide) GetBackground() *Fill { return s.background }

// SetBackground sets the slide background.
func (s *Slide) SetBackground(f *Fill) { s.background = f }

// GetPictures returns the picture shapes on the slide.
func (s *Slide) GetPictures() []*DrawingShape {
	return collectDrawingShapes(s.shapes)
}

// ExtractText returns the text of every text-bearing shape, one paragraph
// per line.
func (s *Slide) ExtractText() string {
	var parts []string
	for _, shape := range s.shapes {
		parts = append(parts, paragraphTexts(shapeParagraphs(shape))...)
	}
	return strings.Join(parts, "\n")
}

// shapeParagraphs returns the paragraphs of shapes that carry text.
func shapeParagraphs(shape Shape) []*Paragraph {
	switch s := shape.(type) {
	case *RichTextShape:
		return s.paragraphs
	case *AutoShape:
		return s.paragraphs
	}
	return nil
}
