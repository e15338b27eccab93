package deck

import "path/filepath"

// Assets locates the optional images the deck embeds.
type Assets struct {
	ImagesDir string
	Logo      string
}

// Image returns the path of a file in the image directory.
func (a Assets) Image(name string) string {
	return filepath.Join(a.ImagesDir, name)
}

// imageFiles lists every file the slides look for in the image directory.
var imageFiles = []string{
	"s2-hook.png",
	"s5-curriculum.png", "s5-assessment.png", "s5-events.png", "s5-outreach.png",
	"s6-foundation.png", "s6-launch.png", "s6-workshops.png", "s6-growth.png", "s6-future.png",
	"ws1-01.png", "ws1-03.png", "ws1-05.png", "ws1-09.png",
	"ws2-01.png", "ws2-03.png", "ws2-04.png", "ws2-11.png",
	"survey-3.png",
	"s11-challenges.png",
	"s12-breakthrough.png",
	"ws2-09.png", "ws2-10.png",
}

// Files returns every asset path the deck may embed, logo first.
func (a Assets) Files() []string {
	files := make([]string, 0, len(imageFiles)+1)
	files = append(files, a.Logo)
	for _, name := range imageFiles {
		files = append(files, a.Image(name))
	}
	return files
}
