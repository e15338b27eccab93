package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"
)

// PPTXReader loads .pptx archives written by PPTXWriter or by PowerPoint.
// Only the parts the deck uses are read back: shapes, pictures, text runs,
// fills and core properties.
type PPTXReader struct{}

// Read reads a presentation from a file path.
func (r *PPTXReader) Read(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r.ReadFromReader(f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	pres := &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
	}

	// Missing or malformed document properties are not fatal.
	_ = r.readCoreProperties(zr, pres)
	_ = r.readAppProperties(zr, pres)

	slideRels, err := r.readPresentation(zr, pres)
	if err != nil {
		return nil, err
	}

	presRels, err := r.readRelationships(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(presRels))
	for _, rel := range presRels {
		targets[rel.ID] = rel.Target
	}

	for _, relID := range slideRels {
		target := targets[relID]
		if target == "" {
			continue
		}
		target = resolvePartPath("ppt", target)

		slide, err := r.readSlide(zr, target)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

// resolvePartPath resolves a relationship target against the directory of
// the part that references it.
func resolvePartPath(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(dir, target))
}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
// This prevents zip bomb attacks. 50 MB is generous for any legitimate PPTX part.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for all extracted content from a single ZIP.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

func readFileFromZip(zr *zip.Reader, name string) ([]byte, error) {
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}
	for _, f := range zr.File {
		if f.Name == name {
			if f.UncompressedSize64 > maxZipEntrySize {
				return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
			}
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
			if err != nil {
				return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
			}
			if int64(len(data)) > int64(maxZipEntrySize) {
				return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("file not found in zip: %s", name)
}

// --- Relationship reading ---

type xmlRelForRead struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

func (r *PPTXReader) readRelationships(zr *zip.Reader, path string) ([]xmlRelForRead, error) {
	data, err := readFileFromZip(zr, path)
	if err != nil {
		return nil, nil // relationships file may not exist
	}

	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", path, err)
	}
	return rels.Relationships, nil
}

// --- Presentation part ---

type xmlPresentationForRead struct {
	XMLName xml.Name `xml:"presentation"`
	SldIDs  []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz struct {
		CX   int64  `xml:"cx,attr"`
		CY   int64  `xml:"cy,attr"`
		Type string `xml:"type,attr"`
	} `xml:"sldSz"`
}

// readPresentation reads the slide size and returns the slide relationship
// ids in presentation order.
func (r *PPTXReader) readPresentation(zr *zip.Reader, pres *Presentation) ([]string, error) {
	data, err := readFileFromZip(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	var xp xmlPresentationForRead
	if err := xml.Unmarshal(data, &xp); err != nil {
		return nil, fmt.Errorf("failed to parse presentation.xml: %w", err)
	}

	if xp.SldSz.CX > 0 && xp.SldSz.CY > 0 {
		pres.layout = layoutFromSize(xp.SldSz.CX, xp.SldSz.CY, xp.SldSz.Type)
	}

	ids := make([]string, 0, len(xp.SldIDs))
	for _, s := range xp.SldIDs {
		ids = append(ids, s.RID)
	}
	return ids, nil
}

func layoutFromSize(cx, cy int64, typ string) *DocumentLayout {
	dl := NewDocumentLayout()
	if typ != "" {
		dl.SetLayout(typ)
		if dl.Name == typ && dl.CX == cx && dl.CY == cy {
			return dl
		}
	}
	wide := NewDocumentLayout()
	wide.SetLayout(LayoutWidescreen)
	if wide.CX == cx && wide.CY == cy {
		return wide
	}
	dl.SetCustomLayout(cx, cy)
	return dl
}

// --- Document properties ---

type xmlCorePropsForRead struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Creator        string   `xml:"creator"`
	LastModifiedBy string   `xml:"lastModifiedBy"`
	Title          string   `xml:"title"`
	Description    string   `xml:"description"`
	Subject        string   `xml:"subject"`
	Keywords       string   `xml:"keywords"`
	Category       string   `xml:"category"`
	Revision       string   `xml:"revision"`
	Created        string   `xml:"created"`
	Modified       string   `xml:"modified"`
}

func (r *PPTXReader) readCoreProperties(zr *zip.Reader, pres *Presentation) error {
	data, err := readFileFromZip(zr, "docProps/core.xml")
	if err != nil {
		return err
	}
	var cp xmlCorePropsForRead
	if err := xml.Unmarshal(data, &cp); err != nil {
		return fmt.Errorf("failed to parse core properties: %w", err)
	}

	props := pres.properties
	props.Creator = cp.Creator
	props.LastModifiedBy = cp.LastModifiedBy
	props.Title = cp.Title
	props.Description = cp.Description
	props.Subject = cp.Subject
	props.Keywords = cp.Keywords
	props.Category = cp.Category
	props.Revision = cp.Revision
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(cp.Created)); err == nil {
		props.Created = t
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(cp.Modified)); err == nil {
		props.Modified = t
	}
	return nil
}

type xmlAppPropsForRead struct {
	XMLName xml.Name `xml:"Properties"`
	Company string   `xml:"Company"`
}

func (r *PPTXReader) readAppProperties(zr *zip.Reader, pres *Presentation) error {
	data, err := readFileFromZip(zr, "docProps/app.xml")
	if err != nil {
		return err
	}
	var ap xmlAppPropsForRead
	if err := xml.Unmarshal(data, &ap); err != nil {
		return fmt.Errorf("failed to parse app properties: %w", err)
	}
	pres.properties.Company = ap.Company
	return nil
}
