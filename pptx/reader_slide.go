package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"path"
)

type xmlSlideForRead struct {
	XMLName xml.Name `xml:"sld"`
	CSld    struct {
		Name string `xml:"name,attr"`
		Bg   *struct {
			BgPr *xmlFillProps `xml:"bgPr"`
		} `xml:"bg"`
		SpTree struct {
			Items []xmlShapeForRead `xml:",any"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

// xmlShapeForRead captures both p:sp and p:pic; XMLName tells them apart.
type xmlShapeForRead struct {
	XMLName xml.Name
	NvSpPr  *xmlNonVisual `xml:"nvSpPr"`
	NvPicPr *xmlNonVisual `xml:"nvPicPr"`
	SpPr    xmlShapeProps `xml:"spPr"`
	TxBody  *xmlTxBody    `xml:"txBody"`
	Blip    *struct {
		Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
	} `xml:"blipFill>blip"`
}

type xmlNonVisual struct {
	CNvPr struct {
		Name  string `xml:"name,attr"`
		Descr string `xml:"descr,attr"`
	} `xml:"cNvPr"`
	CNvSpPr *struct {
		TxBox string `xml:"txBox,attr"`
	} `xml:"cNvSpPr"`
}

type xmlFillProps struct {
	SolidFill *xmlSolidFill `xml:"solidFill"`
	GradFill  *xmlGradFill  `xml:"gradFill"`
}

type xmlShapeProps struct {
	xmlFillProps
	Xfrm *struct {
		Off struct {
			X int64 `xml:"x,attr"`
			Y int64 `xml:"y,attr"`
		} `xml:"off"`
		Ext struct {
			CX int64 `xml:"cx,attr"`
			CY int64 `xml:"cy,attr"`
		} `xml:"ext"`
	} `xml:"xfrm"`
	PrstGeom *struct {
		Prst string `xml:"prst,attr"`
	} `xml:"prstGeom"`
	Ln *struct {
		W         int64         `xml:"w,attr"`
		SolidFill *xmlSolidFill `xml:"solidFill"`
		NoFill    *struct{}     `xml:"noFill"`
	} `xml:"ln"`
}

type xmlSolidFill struct {
	SrgbClr *struct {
		Val string `xml:"val,attr"`
	} `xml:"srgbClr"`
}

type xmlGradFill struct {
	Stops []struct {
		Pos     int `xml:"pos,attr"`
		SrgbClr *struct {
			Val string `xml:"val,attr"`
		} `xml:"srgbClr"`
	} `xml:"gsLst>gs"`
	Lin *struct {
		Ang int `xml:"ang,attr"`
	} `xml:"lin"`
}

type xmlTxBody struct {
	BodyPr struct {
		Wrap        string    `xml:"wrap,attr"`
		Anchor      string    `xml:"anchor,attr"`
		SpAutoFit   *struct{} `xml:"spAutoFit"`
		NormAutofit *struct{} `xml:"normAutofit"`
	} `xml:"bodyPr"`
	Paragraphs []struct {
		Items []xmlParaItem `xml:",any"`
	} `xml:"p"`
}

// xmlParaItem captures a:pPr, a:r and a:br in document order.
type xmlParaItem struct {
	XMLName xml.Name
	Algn    string `xml:"algn,attr"`
	SpcBef  *struct {
		Val int `xml:"val,attr"`
	} `xml:"spcBef>spcPts"`
	SpcAft *struct {
		Val int `xml:"val,attr"`
	} `xml:"spcAft>spcPts"`
	RPr *struct {
		Sz        int           `xml:"sz,attr"`
		B         string        `xml:"b,attr"`
		I         string        `xml:"i,attr"`
		SolidFill *xmlSolidFill `xml:"solidFill"`
		Latin     *struct {
			Typeface string `xml:"typeface,attr"`
		} `xml:"latin"`
	} `xml:"rPr"`
	T string `xml:"t"`
}

func (r *PPTXReader) readSlide(zr *zip.Reader, slidePath string) (*Slide, error) {
	data, err := readFileFromZip(zr, slidePath)
	if err != nil {
		return nil, err
	}
	var xs xmlSlideForRead
	if err := xml.Unmarshal(data, &xs); err != nil {
		return nil, fmt.Errorf("failed to parse slide XML: %w", err)
	}

	relsPath := path.Join(path.Dir(slidePath), "_rels", path.Base(slidePath)+".rels")
	rels, err := r.readRelationships(zr, relsPath)
	if err != nil {
		return nil, err
	}
	media := make(map[string]string, len(rels))
	for _, rel := range rels {
		media[rel.ID] = resolvePartPath(path.Dir(slidePath), rel.Target)
	}

	slide := newSlide()
	slide.name = xs.CSld.Name
	if xs.CSld.Bg != nil && xs.CSld.Bg.BgPr != nil {
		slide.background = readFill(*xs.CSld.Bg.BgPr)
	}

	for _, item := range xs.CSld.SpTree.Items {
		switch item.XMLName.Local {
		case "sp":
			slide.shapes = append(slide.shapes, readSp(item))
		case "pic":
			pic, err := readPic(zr, item, media)
			if err != nil {
				return nil, err
			}
			slide.shapes = append(slide.shapes, pic)
		}
	}
	return slide, nil
}

func readSp(item xmlShapeForRead) Shape {
	isTextBox := item.NvSpPr != nil && item.NvSpPr.CNvSpPr != nil && item.NvSpPr.CNvSpPr.TxBox == "1"
	if !isTextBox {
		as := NewAutoShape()
		if item.SpPr.PrstGeom != nil && item.SpPr.PrstGeom.Prst != "" {
			as.shapeType = AutoShapeType(item.SpPr.PrstGeom.Prst)
		}
		readShapeCommon(item, &as.BaseShape, &as.textBody, false)
		return as
	}

	rt := NewRichTextShape()
	rt.paragraphs = nil
	if item.TxBody != nil {
		bp := item.TxBody.BodyPr
		rt.wordWrap = bp.Wrap != "none"
		switch {
		case bp.SpAutoFit != nil:
			rt.autoFit = AutoFitShape
		case bp.NormAutofit != nil:
			rt.autoFit = AutoFitNormal
		}
	}
	readShapeCommon(item, &rt.BaseShape, &rt.textBody, true)
	if len(rt.paragraphs) == 0 {
		rt.paragraphs = []*Paragraph{NewParagraph()}
	}
	return rt
}

func readShapeCommon(item xmlShapeForRead, base *BaseShape, body *textBody, isTextBox bool) {
	if item.NvSpPr != nil {
		base.name = item.NvSpPr.CNvPr.Name
		base.description = item.NvSpPr.CNvPr.Descr
	}
	readGeometry(item.SpPr, base)
	if f := readFill(item.SpPr.xmlFillProps); f != nil {
		base.fill = f
	}
	if ln := item.SpPr.Ln; ln != nil && ln.NoFill == nil && ln.SolidFill != nil && ln.SolidFill.SrgbClr != nil {
		base.border = NewBorder().SetSolid(NewColor(ln.SolidFill.SrgbClr.Val), ln.W)
	}

	if item.TxBody == nil {
		return
	}
	body.textAnchor = TextAnchorType(item.TxBody.BodyPr.Anchor)
	for _, xp := range item.TxBody.Paragraphs {
		para := readParagraph(xp.Items)
		// An auto shape written without text carries a single empty paragraph.
		if !isTextBox && len(item.TxBody.Paragraphs) == 1 && len(para.elements) == 0 {
			break
		}
		body.paragraphs = append(body.paragraphs, para)
	}
}

func readPic(zr *zip.Reader, item xmlShapeForRead, media map[string]string) (*DrawingShape, error) {
	ds := NewDrawingShape()
	if item.NvPicPr != nil {
		ds.name = item.NvPicPr.CNvPr.Name
		ds.description = item.NvPicPr.CNvPr.Descr
	}
	readGeometry(item.SpPr, &ds.BaseShape)

	if item.Blip == nil {
		return ds, nil
	}
	target, ok := media[item.Blip.Embed]
	if !ok {
		return nil, fmt.Errorf("picture %q references unknown relationship %s", ds.name, item.Blip.Embed)
	}
	data, err := readFileFromZip(zr, target)
	if err != nil {
		return nil, err
	}
	if err := ds.SetImageData(data, guessMimeFromPath(target)); err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	ds.path = target
	return ds, nil
}

func readGeometry(sp xmlShapeProps, base *BaseShape) {
	if sp.Xfrm == nil {
		return
	}
	base.offsetX = sp.Xfrm.Off.X
	base.offsetY = sp.Xfrm.Off.Y
	base.width = sp.Xfrm.Ext.CX
	base.height = sp.Xfrm.Ext.CY
}

func readFill(fp xmlFillProps) *Fill {
	switch {
	case fp.SolidFill != nil && fp.SolidFill.SrgbClr != nil:
		return NewFill().SetSolid(NewColor(fp.SolidFill.SrgbClr.Val))
	case fp.GradFill != nil && len(fp.GradFill.Stops) >= 2:
		stops := fp.GradFill.Stops
		first, last := stops[0], stops[len(stops)-1]
		if first.SrgbClr == nil || last.SrgbClr == nil {
			return nil
		}
		angle := 0
		if fp.GradFill.Lin != nil {
			angle = fp.GradFill.Lin.Ang / 60000
		}
		return NewFill().SetGradientLinear(NewColor(first.SrgbClr.Val), NewColor(last.SrgbClr.Val), angle)
	}
	return nil
}

func readParagraph(items []xmlParaItem) *Paragraph {
	para := NewParagraph()
	for _, it := range items {
		switch it.XMLName.Local {
		case "pPr":
			if it.Algn != "" {
				para.alignment = HorizontalAlignment(it.Algn)
			}
			if it.SpcBef != nil {
				para.spaceBefore = it.SpcBef.Val
			}
			if it.SpcAft != nil {
				para.spaceAfter = it.SpcAft.Val
			}
		case "r":
			tr := para.CreateTextRun(it.T)
			if rp := it.RPr; rp != nil {
				f := tr.font
				if rp.Sz > 0 {
					f.Size = rp.Sz / 100
				}
				f.Bold = rp.B == "1" || rp.B == "true"
				f.Italic = rp.I == "1" || rp.I == "true"
				if rp.SolidFill != nil && rp.SolidFill.SrgbClr != nil {
					f.Color = NewColor(rp.SolidFill.SrgbClr.Val)
				}
				if rp.Latin != nil {
					f.Name = rp.Latin.Typeface
				}
			}
		case "br":
			para.CreateBreak()
		}
	}
	return para
}
