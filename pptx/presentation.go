// Package pptx provides an in-memory model of a PowerPoint presentation and
// reads and writes it as an Office Open XML (.pptx) package.
//
// The model covers what generated decks use: slides with solid or gradient
// backgrounds, text boxes made of styled runs, preset auto shapes (rectangle,
// rounded rectangle, ellipse) and embedded pictures. Slides can also be
// rasterised through SlideToImage for previews.
package pptx

import (
	"errors"
	"time"
)

// Presentation represents an in-memory PowerPoint presentation.
type Presentation struct {
	properties *DocumentProperties
	slides     []*Slide
	layout     *DocumentLayout
}

// New creates an empty Presentation with the default 4:3 layout.
func New() *Presentation {
	return &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
	}
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// SetDocumentProperties sets the document properties.
func (p *Presentation) SetDocumentProperties(props *DocumentProperties) {
	p.properties = props
}

// GetLayout returns the document layout.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// SetLayout sets the document layout.
func (p *Presentation) SetLayout(layout *DocumentLayout) {
	p.layout = layout
}

// CreateSlide creates a new blank slide and appends it to the presentation.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// GetSlide returns a slide by index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, errors.New("slide index out of range")
	}
	return p.slides[index], nil
}

// GetAllSlides returns all slides in order.
func (p *Presentation) GetAllSlides() []*Slide {
	return p.slides
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// MoveSlide moves a slide from one index to another.
func (p *Presentation) MoveSlide(fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= len(p.slides) {
		return errors.New("fromIndex out of range")
	}
	if toIndex < 0 || toIndex >= len(p.slides) {
		return errors.New("toIndex out of range")
	}
	if fromIndex == toIndex {
		return nil
	}
	slide := p.slides[fromIndex]
	p.slides = append(p.slides[:fromIndex], p.slides[fromIndex+1:]...)
	p.slides = append(p.slides, nil)
	copy(p.slides[toIndex+1:], p.slides[toIndex:])
	p.slides[toIndex] = slide
	return nil
}

// DocumentProperties holds the core and extended document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Revision       string
}

// NewDocumentProperties creates document properties stamped with the current time.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "deckgen",
		LastModifiedBy: "deckgen",
		Created:        now,
		Modified:       now,
	}
}

// SetTimestamps sets both the created and modified time.
func (dp *DocumentProperties) SetTimestamps(t time.Time) {
	dp.Created = t
	dp.Modified = t
}
