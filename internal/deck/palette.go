package deck

import "deckgen/pptx"

// Named colors.
var (
	Navy       = pptx.NewColor("0A1628")
	Blue       = pptx.NewColor("1E3A5F")
	Teal       = pptx.NewColor("2A9D8F")
	Gold       = pptx.NewColor("E9C46A")
	Coral      = pptx.NewColor("E76F51")
	White      = pptx.NewColor("F8F9FA")
	Light      = pptx.NewColor("E8ECF1")
	Dim        = pptx.NewColor("999999")
	BlueAccent = pptx.NewColor("4A90D9")
)

// Secondary colors used by a handful of slides.
var (
	cardFill      = pptx.NewColor("142035")
	cardBorder    = pptx.NewColor("2A3550")
	quoteFill     = pptx.NewColor("1A2538")
	tealShade     = pptx.NewColor("1A4A42")
	rustShade     = pptx.NewColor("4A2C2A")
	highlightFill = pptx.NewColor("1E2A3F")
	connectorFill = pptx.NewColor("405060")
	stepGreen     = pptx.NewColor("1E6A5F")
	stepLime      = pptx.NewColor("8AB34F")
	educationFill = pptx.NewColor("1A3050")
	careFill      = pptx.NewColor("143035")
	programFill   = pptx.NewColor("182E42")
)

// Font families. Georgia stands in for Playfair Display, Calibri for Inter.
const (
	FontTitle = "Georgia"
	FontBody  = "Calibri"
)

// Slide canvas, 13.333 x 7.5 in.
var (
	SlideWidth  = pptx.Inch(13.333)
	SlideHeight = pptx.Inch(7.5)
)

// quarter darkens c to a quarter of each channel, the tint used behind tags.
func quarter(c pptx.Color) pptx.Color {
	return pptx.NewColorRGB(c.GetRed()/4, c.GetGreen()/4, c.GetBlue()/4)
}
