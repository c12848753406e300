// Package docx serializes a docmodel document into the Office Open XML
// .docx container: a zip holding the content-type map, the package
// relationships, and the main document part. Only the features the
// minutes and chat-log builders need are emitted.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/laraquah/Noted2/internal/docmodel"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>`

const documentClose = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>
</w:body>
</w:document>`

// Write serializes doc into w as a complete .docx package.
func Write(w io.Writer, doc *docmodel.Document) error {
	archive := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", documentXML(doc)},
	}
	for _, part := range parts {
		f, err := archive.Create(part.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

func documentXML(doc *docmodel.Document) string {
	var sb strings.Builder
	sb.WriteString(documentOpen)
	for _, el := range doc.Elements {
		switch v := el.(type) {
		case *docmodel.Paragraph:
			writeParagraph(&sb, v)
		case *docmodel.Table:
			writeTable(&sb, v)
		}
	}
	sb.WriteString(documentClose)
	return sb.String()
}

func writeParagraph(sb *strings.Builder, p *docmodel.Paragraph) {
	sb.WriteString("<w:p>")

	var props strings.Builder
	if p.SpaceBefore {
		props.WriteString(`<w:spacing w:before="200"/>`)
	}
	if p.Indent || p.Bullet {
		indent := 360
		if p.Indent {
			indent = 720
		}
		fmt.Fprintf(&props, `<w:ind w:left="%d"/>`, indent)
	}
	if props.Len() > 0 {
		sb.WriteString("<w:pPr>" + props.String() + "</w:pPr>")
	}

	if p.Bullet {
		writeRun(sb, docmodel.Run{Text: "• "}, false)
	}
	for _, r := range p.Runs {
		writeRun(sb, r, p.Heading)
	}
	sb.WriteString("</w:p>")
}

func writeRun(sb *strings.Builder, r docmodel.Run, heading bool) {
	sb.WriteString("<w:r>")

	var props strings.Builder
	if r.Bold || heading {
		props.WriteString("<w:b/>")
	}
	if r.Underline {
		props.WriteString(`<w:u w:val="single"/>`)
	}
	if heading {
		props.WriteString(`<w:sz w:val="28"/>`)
	}
	if props.Len() > 0 {
		sb.WriteString("<w:rPr>" + props.String() + "</w:rPr>")
	}

	fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t>`, escape(r.Text))
	sb.WriteString("</w:r>")
}

func writeTable(sb *strings.Builder, t *docmodel.Table) {
	sb.WriteString("<w:tbl>")
	sb.WriteString(`<w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:left w:val="single" w:sz="4"/>` +
		`<w:bottom w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr>`)

	if len(t.Widths) > 0 {
		sb.WriteString("<w:tblGrid>")
		for _, width := range t.Widths {
			fmt.Fprintf(sb, `<w:gridCol w:w="%d"/>`, width)
		}
		sb.WriteString("</w:tblGrid>")
	}

	for _, row := range t.Rows {
		sb.WriteString("<w:tr>")
		for i, cell := range row {
			sb.WriteString("<w:tc>")
			if len(t.Widths) > i {
				fmt.Fprintf(sb, `<w:tcPr><w:tcW w:w="%d" w:type="dxa"/></w:tcPr>`, t.Widths[i])
			}
			if len(cell.Paragraphs) == 0 {
				// a table cell must contain at least one paragraph
				sb.WriteString("<w:p/>")
			}
			for _, p := range cell.Paragraphs {
				writeParagraph(sb, p)
			}
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
}

func escape(text string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(text))
	return buf.String()
}
