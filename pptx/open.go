package pptx

import (
	"io"
	"strings"
)

// Open loads a .pptx from disk.
func Open(path string) (*Presentation, error) {
	return (&PPTXReader{}).Read(path)
}

// ReadFrom loads a .pptx held in r. size is the archive length in bytes.
func ReadFrom(r io.ReaderAt, size int64) (*Presentation, error) {
	return (&PPTXReader{}).ReadFromReader(r, size)
}

// Save writes the presentation to path, creating parent directories.
func (p *Presentation) Save(path string) error {
	return (&PPTXWriter{presentation: p}).Save(path)
}

// WriteTo streams the presentation as a .pptx archive.
func (p *Presentation) WriteTo(w io.Writer) error {
	return (&PPTXWriter{presentation: p}).WriteTo(w)
}

// ExtractText returns the text of all slides; slides without text are skipped.
func (p *Presentation) ExtractText() string {
	var texts []string
	for _, s := range p.slides {
		if t := s.ExtractText(); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n")
}

// paragraphTexts returns the text of each paragraph that is not blank.
func paragraphTexts(paragraphs []*Paragraph) []string {
	var texts []string
	for _, para := range paragraphs {
		if t := para.GetText(); strings.TrimSpace(t) != "" {
			texts = append(texts, t)
		}
	}
	return texts
}
