// Package docmodel holds the structured document model that the markdown
// renderers and the docx serializer share. A document is a flat sequence of
// elements (paragraphs and tables); rich text inside a paragraph is a
// sequence of styled runs.
package docmodel

import "strings"

// Run is a span of text with uniform formatting.
type Run struct {
	Text      string
	Bold      bool
	Underline bool
}

// Paragraph is a single block of runs with block-level formatting.
type Paragraph struct {
	Runs        []Run
	Heading     bool // rendered as a heading-level element
	Bullet      bool // rendered as a bulleted list item
	Indent      bool // left-indented (used for bullets inside table cells)
	SpaceBefore bool // extra spacing before the paragraph
}

// Cell is one table cell holding an ordered list of paragraphs.
type Cell struct {
	Paragraphs []*Paragraph
}

// NewCell builds a single-paragraph cell.
func NewCell(p *Paragraph) *Cell {
	return &Cell{Paragraphs: []*Paragraph{p}}
}

// Text returns the newline-joined text of the cell's paragraphs.
func (c *Cell) Text() string {
	parts := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// Table is a grid of cells. Widths, when set, gives per-column widths in
// twips; an empty slice leaves the column layout to the reader.
type Table struct {
	Rows   [][]*Cell
	Widths []int
}

// Element is a block-level document element: *Paragraph or *Table.
type Element interface {
	element()
}

func (*Paragraph) element() {}
func (*Table) element()     {}

// Document is an ordered list of block elements.
type Document struct {
	Elements []Element
}

// AddParagraph appends p and returns it for further mutation.
func (d *Document) AddParagraph(p *Paragraph) *Paragraph {
	d.Elements = append(d.Elements, p)
	return p
}

// AddTable appends t.
func (d *Document) AddTable(t *Table) {
	d.Elements = append(d.Elements, t)
}

// Text returns the concatenated run text of a paragraph.
func (p *Paragraph) Text() string {
	var out string
	for _, r := range p.Runs {
		out += r.Text
	}
	return out
}
