package pptx

// DocumentLayout represents the slide dimensions.
type DocumentLayout struct {
	CX   int64 // width in EMU
	CY   int64 // height in EMU
	Name string
}

// Layout names.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutWidescreen  = "widescreen"
	LayoutScreen16x10 = "screen16x10"
	LayoutCustom      = "custom"
)

// NewDocumentLayout creates a default 4:3 layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{
		CX:   9144000, // 10 inches
		CY:   6858000, // 7.5 inches
		Name: LayoutScreen4x3,
	}
}

// SetLayout sets a predefined layout. Unknown names leave the size unchanged.
func (dl *DocumentLayout) SetLayout(name string) {
	switch name {
	case LayoutScreen4x3:
		dl.CX, dl.CY = 9144000, 6858000
	case LayoutScreen16x9:
		dl.CX, dl.CY = 9144000, 5143500
	case LayoutWidescreen:
		dl.CX, dl.CY = Inch(13.333), Inch(7.5)
	case LayoutScreen16x10:
		dl.CX, dl.CY = 9144000, 5715000
	default:
		return
	}
	dl.Name = name
}

// SetCustomLayout sets custom dimensions in EMU. Non-positive values fall
// back to the 4:3 defaults.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = 9144000
	}
	if cy <= 0 {
		cy = 6858000
	}
	dl.CX = cx
	dl.CY = cy
	dl.Name = LayoutCustom
}

// presentationXMLType maps the layout to the sldSz type attribute.
func (dl *DocumentLayout) presentationXMLType() string {
	switch dl.Name {
	case LayoutScreen4x3:
		return "screen4x3"
	case LayoutScreen16x9:
		return "screen16x9"
	case LayoutScreen16x10:
		return "screen16x10"
	}
	return ""
}
