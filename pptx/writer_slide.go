package pptx

import (
	"archive/zip"
	"fmt"
	"strings"
)

// pictureRelIDs assigns slide-local relationship ids to the pictures of a
// slide. rId1 is the slide layout.
func pictureRelIDs(slide *Slide) map[*DrawingShape]string {
	m := make(map[*DrawingShape]string)
	for i, ds := range collectDrawingShapes(slide.shapes) {
		m[ds] = fmt.Sprintf("rId%d", i+2)
	}
	return m
}

func (w *PPTXWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	relIDs := pictureRelIDs(slide)

	var shapesXML strings.Builder
	shapeID := 2 // 1 is reserved for the group shape

	for _, shape := range slide.shapes {
		switch s := shape.(type) {
		case *RichTextShape:
			shapesXML.WriteString(w.writeRichTextShapeXML(s, &shapeID))
		case *DrawingShape:
			shapesXML.WriteString(w.writeDrawingShapeXML(s, &shapeID, relIDs[s]))
		case *AutoShape:
			shapesXML.WriteString(w.writeAutoShapeXML(s, &shapeID))
		}
	}

	bgXML := ""
	if slide.background != nil && slide.background.Type != FillNone {
		bgXML = "    <p:bg>\n      <p:bgPr>\n"
		bgXML += w.writeFillXML(slide.background)
		bgXML += "        <a:effectLst/>\n      </p:bgPr>\n    </p:bg>\n"
	}

	nameAttr := ""
	if slide.name != "" {
		nameAttr = fmt.Sprintf(` name="%s"`, xmlEscape(slide.name))
	}

	content := fmt.Sprintf(`%s<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld%s>
%s    <p:spTree>
      %s
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML, nameAttr, bgXML, emptySpTree, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, slide *Slide, slideNum int) error {
	rels := xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
		},
	}
	relIDs := pictureRelIDs(slide)
	for _, ds := range collectDrawingShapes(slide.shapes) {
		rels.Relationships = append(rels.Relationships, xmlRelationship{
			ID:     relIDs[ds],
			Type:   relTypeImage,
			Target: fmt.Sprintf("../media/image%d.%s", w.imageIndex[ds], imageExtension(ds)),
		})
	}
	return writeXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), rels)
}

// collectDrawingShapes returns the pictures among shapes in z-order.
func collectDrawingShapes(shapes []Shape) []*DrawingShape {
	var result []*DrawingShape
	for _, shape := range shapes {
		if ds, ok := shape.(*DrawingShape); ok {
			result = append(result, ds)
		}
	}
	return result
}

func shapeName(b *BaseShape, prefix string, id int) string {
	if b.name != "" {
		return b.name
	}
	return fmt.Sprintf("%s %d", prefix, id)
}

func descrAttr(b *BaseShape) string {
	if b.description == "" {
		return ""
	}
	return fmt.Sprintf(` descr="%s"`, xmlEscape(b.description))
}

func xfrmXML(b *BaseShape) string {
	return fmt.Sprintf(`          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
`, b.offsetX, b.offsetY, b.width, b.height)
}

func prstGeomXML(prst AutoShapeType) string {
	return fmt.Sprintf(`          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
`, prst)
}

func (w *PPTXWriter) writeRichTextShapeXML(s *RichTextShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	var paragraphsXML strings.Builder
	for _, para := range s.paragraphs {
		paragraphsXML.WriteString(w.writeParagraphXML(para))
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"%s/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
%s%s%s%s        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="%s" rtlCol="0"%s>%s</a:bodyPr>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(shapeName(&s.BaseShape, "TextBox", id)), descrAttr(&s.BaseShape),
		xfrmXML(&s.BaseShape), prstGeomXML(AutoShapeRectangle),
		w.writeFillXML(s.fill), w.writeBorderXML(s.border),
		boolToWrap(s.wordWrap), textAnchorAttr(s.textAnchor), autoFitXML(s.autoFit),
		paragraphsXML.String())
}

func boolToWrap(wrap bool) string {
	if wrap {
		return "square"
	}
	return "none"
}

func textAnchorAttr(anchor TextAnchorType) string {
	if anchor == TextAnchorNone {
		return ""
	}
	return fmt.Sprintf(` anchor="%s"`, anchor)
}

func autoFitXML(fit AutoFitType) string {
	switch fit {
	case AutoFitNormal:
		return "<a:normAutofit/>"
	case AutoFitShape:
		return "<a:spAutoFit/>"
	}
	return ""
}

func (w *PPTXWriter) writeParagraphXML(para *Paragraph) string {
	algn := ""
	if para.alignment != "" {
		algn = fmt.Sprintf(` algn="%s"`, para.alignment)
	}

	spacing := ""
	if para.spaceBefore > 0 {
		spacing += fmt.Sprintf(`
              <a:spcBef><a:spcPts val="%d"/></a:spcBef>`, para.spaceBefore)
	}
	if para.spaceAfter > 0 {
		spacing += fmt.Sprintf(`
              <a:spcAft><a:spcPts val="%d"/></a:spcAft>`, para.spaceAfter)
	}

	pPr := fmt.Sprintf("            <a:pPr%s/>\n", algn)
	if spacing != "" {
		pPr = fmt.Sprintf("            <a:pPr%s>%s\n            </a:pPr>\n", algn, spacing)
	}

	var elementsXML strings.Builder
	for _, elem := range para.elements {
		switch e := elem.(type) {
		case *TextRun:
			elementsXML.WriteString(w.writeTextRunXML(e))
		case *BreakElement:
			elementsXML.WriteString("            <a:br/>\n")
		}
	}

	return fmt.Sprintf("          <a:p>\n%s%s          </a:p>\n", pPr, elementsXML.String())
}

func (w *PPTXWriter) writeTextRunXML(tr *TextRun) string {
	font := tr.font
	if font == nil {
		font = NewFont()
	}
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, font.Size*100)
	if font.Bold {
		attrs += ` b="1"`
	}
	if font.Italic {
		attrs += ` i="1"`
	}

	solidFill := ""
	if font.Color.ARGB != "" {
		solidFill = fmt.Sprintf(`
                <a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, colorRGB(font.Color))
	}

	latin := ""
	if font.Name != "" {
		latin = fmt.Sprintf(`
                <a:latin typeface="%s"/>`, xmlEscape(font.Name))
	}

	return fmt.Sprintf(`            <a:r>
              <a:rPr%s>%s%s
              </a:rPr>
              <a:t>%s</a:t>
            </a:r>
`, attrs, solidFill, latin, xmlEscape(tr.text))
}

func (w *PPTXWriter) writeDrawingShapeXML(s *DrawingShape, shapeID *int, relID string) string {
	id := *shapeID
	*shapeID++

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s"%s/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
%s%s        </p:spPr>
      </p:pic>
`, id, xmlEscape(shapeName(&s.BaseShape, "Picture", id)), descrAttr(&s.BaseShape),
		relID, xfrmXML(&s.BaseShape), prstGeomXML(AutoShapeRectangle))
}

func (w *PPTXWriter) writeAutoShapeXML(s *AutoShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	// A shape without text still carries an empty body so it can be edited.
	var paragraphsXML strings.Builder
	for _, para := range s.paragraphs {
		paragraphsXML.WriteString(w.writeParagraphXML(para))
	}
	if len(s.paragraphs) == 0 {
		paragraphsXML.WriteString("          <a:p>\n            <a:endParaRPr lang=\"en-US\" dirty=\"0\"/>\n          </a:p>\n")
	}

	anchor := textAnchorAttr(s.textAnchor)
	if anchor == "" {
		anchor = ` anchor="ctr"`
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"%s/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
%s%s%s%s        </p:spPr>
        <p:txBody>
          <a:bodyPr rtlCol="0"%s/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(shapeName(&s.BaseShape, autoShapePrefix(s.shapeType), id)), descrAttr(&s.BaseShape),
		xfrmXML(&s.BaseShape), prstGeomXML(s.shapeType),
		w.writeFillXML(s.fill), w.writeOutlineXML(s.border),
		anchor, paragraphsXML.String())
}

func autoShapePrefix(t AutoShapeType) string {
	switch t {
	case AutoShapeRoundedRect:
		return "Rounded Rectangle"
	case AutoShapeEllipse:
		return "Oval"
	}
	return "Rectangle"
}

func (w *PPTXWriter) writeFillXML(f *Fill) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case FillSolid:
		return fmt.Sprintf("          <a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>\n", colorRGB(f.Color))
	case FillGradientLinear:
		return fmt.Sprintf(`          <a:gradFill rotWithShape="1">
            <a:gsLst>
              <a:gs pos="0"><a:srgbClr val="%s"/></a:gs>
              <a:gs pos="100000"><a:srgbClr val="%s"/></a:gs>
            </a:gsLst>
            <a:lin ang="%d" scaled="0"/>
          </a:gradFill>
`, colorRGB(f.Color), colorRGB(f.EndColor), f.Rotation*60000)
	}
	return ""
}

func (w *PPTXWriter) writeBorderXML(b *Border) string {
	if b == nil || b.Style != BorderSolid {
		return ""
	}
	return fmt.Sprintf(`          <a:ln w="%d">
            <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
          </a:ln>
`, b.Width, colorRGB(b.Color))
}

// writeOutlineXML is writeBorderXML for auto shapes: without a solid border
// the line is written as an explicit a:noFill.
func (w *PPTXWriter) writeOutlineXML(b *Border) string {
	if b == nil || b.Style != BorderSolid {
		return "          <a:ln><a:noFill/></a:ln>\n"
	}
	return w.writeBorderXML(b)
}

// writeMedia stores every picture once under ppt/media in imageIndex order.
func (w *PPTXWriter) writeMedia(zw *zip.Writer) error {
	for _, slide := range w.presentation.slides {
		for _, ds := range collectDrawingShapes(slide.shapes) {
			path := fmt.Sprintf("ppt/media/image%d.%s", w.imageIndex[ds], imageExtension(ds))
			fw, err := zw.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s in zip: %w", path, err)
			}
			if _, err := fw.Write(ds.data); err != nil {
				return err
			}
		}
	}
	return nil
}
