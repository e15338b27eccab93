package pptx

import (
	"errors"
	"fmt"
)

// Validate reports every structural problem that would make the written
// archive unreadable. The writer calls it before emitting any part.
func (p *Presentation) Validate() error {
	var errs []error
	if p.properties == nil {
		errs = append(errs, errors.New("missing document properties"))
	}
	switch {
	case p.layout == nil:
		errs = append(errs, errors.New("missing slide layout"))
	case p.layout.CX <= 0 || p.layout.CY <= 0:
		errs = append(errs, fmt.Errorf("slide size %dx%d EMU is not positive", p.layout.CX, p.layout.CY))
	}
	if len(p.slides) == 0 {
		errs = append(errs, errors.New("no slides"))
	}
	for i, s := range p.slides {
		if s == nil {
			errs = append(errs, fmt.Errorf("slide %d: nil", i+1))
			continue
		}
		for _, err := range s.validate() {
			errs = append(errs, fmt.Errorf("slide %d: %w", i+1, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid presentation: %w", err)
	}
	return nil
}

// validate returns one error per problem found on the slide.
func (s *Slide) validate() []error {
	var errs []error
	if s.background != nil {
		if err := checkFill(s.background, "background"); err != nil {
			errs = append(errs, err)
		}
	}
	for j, shape := range s.shapes {
		name := fmt.Sprintf("shape %d", j+1)
		if shape == nil {
			errs = append(errs, fmt.Errorf("%s: nil", name))
			continue
		}
		if shape.GetWidth() < 0 || shape.GetHeight() < 0 {
			errs = append(errs, fmt.Errorf("%s: negative extent", name))
		}
		if f := shape.base().fill; f != nil {
			if err := checkFill(f, name); err != nil {
				errs = append(errs, err)
			}
		}

		switch sh := shape.(type) {
		case *DrawingShape:
			if len(sh.data) == 0 {
				errs = append(errs, fmt.Errorf("%s: picture has no image data", name))
			} else if !isValidImageMime(sh.mimeType) {
				errs = append(errs, fmt.Errorf("%s: unsupported image type %q", name, sh.mimeType))
			}
		case *RichTextShape:
			if len(sh.paragraphs) == 0 {
				errs = append(errs, fmt.Errorf("%s: text box has no paragraphs", name))
			}
			errs = append(errs, checkParagraphs(sh.paragraphs, name)...)
		case *AutoShape:
			switch sh.shapeType {
			case AutoShapeRectangle, AutoShapeRoundedRect, AutoShapeEllipse:
			default:
				errs = append(errs, fmt.Errorf("%s: unknown preset geometry %q", name, sh.shapeType))
			}
			errs = append(errs, checkParagraphs(sh.paragraphs, name)...)
		}
	}
	return errs
}

func checkFill(f *Fill, name string) error {
	if f.Type != FillNone && !isValidARGB(f.Color.ARGB) {
		return fmt.Errorf("%s: invalid fill color %q", name, f.Color.ARGB)
	}
	if f.Type == FillGradientLinear && !isValidARGB(f.EndColor.ARGB) {
		return fmt.Errorf("%s: invalid gradient end color %q", name, f.EndColor.ARGB)
	}
	return nil
}

func checkParagraphs(paragraphs []*Paragraph, name string) []error {
	var errs []error
	for i, para := range paragraphs {
		if para == nil {
			errs = append(errs, fmt.Errorf("%s: paragraph %d is nil", name, i+1))
			continue
		}
		for k, elem := range para.elements {
			switch e := elem.(type) {
			case nil:
				errs = append(errs, fmt.Errorf("%s: paragraph %d element %d is nil", name, i+1, k+1))
			case *TextRun:
				if e.font == nil {
					errs = append(errs, fmt.Errorf("%s: paragraph %d run %d has no font", name, i+1, k+1))
				}
			}
		}
	}
	return errs
}

func isValidImageMime(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/gif", "image/bmp":
		return true
	}
	return false
}
