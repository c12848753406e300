package docmodel

import (
	"regexp"
	"strings"
)

// The renderers accept arbitrary free text and never fail: a malformed line
// degrades to a plain paragraph instead of aborting the body. Line forms are
// checked in order and the first match wins.

var (
	boldSpanPattern = regexp.MustCompile(`\*\*.*?\*\*`)
	tableRowPattern = regexp.MustCompile(`^\|(.+)\|$`)
	tableSepPattern = regexp.MustCompile(`^\|[-:| ]+\|$`)
)

// RenderBody parses the constrained markdown dialect (headings, bullets,
// bold spans, pipe tables) into document elements.
func RenderBody(text string) []Element {
	var elements []Element
	var tableRows [][]string

	flushTable := func() {
		if len(tableRows) == 0 {
			return
		}
		elements = append(elements, buildTable(tableRows))
		// trailing blank paragraph for visual separation after a table
		elements = append(elements, &Paragraph{})
		tableRows = nil
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			flushTable()
			continue
		}

		if tableSepPattern.MatchString(line) {
			continue
		}
		if tableRowPattern.MatchString(line) {
			tableRows = append(tableRows, splitTableCells(line))
			continue
		}
		flushTable()

		switch {
		case strings.HasPrefix(line, "##"):
			heading := strings.TrimSpace(strings.TrimLeft(line, "#"))
			elements = append(elements, &Paragraph{
				Runs:        []Run{{Text: heading}},
				Heading:     true,
				SpaceBefore: true,
			})

		case strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-"):
			clean := strings.TrimSpace(strings.TrimLeft(line, "*- "))
			p := &Paragraph{Bullet: true}
			p.Runs = InlineRuns(clean)
			elements = append(elements, p)

		default:
			elements = append(elements, &Paragraph{Runs: InlineRuns(line)})
		}
	}
	flushTable()

	return elements
}

// RenderCell is the stricter variant used when rendering into a fixed
// template table cell. Headings become bold underlined paragraphs instead of
// heading elements, bullets are indented, and a leading "**Label:** value"
// bullet gets just its label bolded.
func RenderCell(text string) []*Paragraph {
	var paragraphs []*Paragraph

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "##"):
			heading := strings.TrimSpace(strings.TrimLeft(line, "#"))
			paragraphs = append(paragraphs, &Paragraph{
				Runs:        []Run{{Text: heading, Bold: true, Underline: true}},
				SpaceBefore: true,
			})

		case strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-"):
			// strip the bullet marker but keep a following ** intact so the
			// label split below can still see it
			clean := strings.TrimLeft(line, "*-")
			clean = strings.TrimSpace(strings.TrimLeft(clean, "• "))
			paragraphs = append(paragraphs, cellBullet(clean))

		default:
			paragraphs = append(paragraphs, &Paragraph{Runs: InlineRuns(line)})
		}
	}

	return paragraphs
}

// cellBullet renders one bullet line for a template cell. Bullets carrying a
// "**Label:** value" prefix get the label bolded; anything else degrades to a
// plain bullet.
func cellBullet(clean string) *Paragraph {
	p := &Paragraph{Bullet: true, Indent: true}

	if strings.HasPrefix(clean, "**") {
		if label, value, ok := strings.Cut(clean, ":**"); ok {
			label = strings.TrimSpace(strings.TrimLeft(label, "*"))
			if label != "" {
				p.Runs = append(p.Runs, Run{Text: label + ": ", Bold: true})
				p.Runs = append(p.Runs, Run{Text: strings.TrimSpace(value)})
				return p
			}
		}
	}

	p.Runs = InlineRuns(clean)
	return p
}

// InlineRuns scans text for **bold** spans using non-greedy delimiter
// matching. Matched spans become bold runs, everything else plain runs, and
// an unmatched ** sequence is kept literally.
func InlineRuns(text string) []Run {
	var runs []Run
	last := 0
	for _, loc := range boldSpanPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			runs = append(runs, Run{Text: text[last:loc[0]]})
		}
		runs = append(runs, Run{Text: text[loc[0]+2 : loc[1]-2], Bold: true})
		last = loc[1]
	}
	if last < len(text) {
		runs = append(runs, Run{Text: text[last:]})
	}
	return runs
}

// splitTableCells splits a |-delimited row into trimmed cell texts.
func splitTableCells(line string) []string {
	trimmed := strings.Trim(line, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// buildTable converts accumulated row texts into a Table. The first row is
// the header row and its cell runs are forced bold.
func buildTable(rows [][]string) *Table {
	t := &Table{Rows: make([][]*Cell, len(rows))}
	for i, row := range rows {
		cells := make([]*Cell, len(row))
		for j, text := range row {
			p := &Paragraph{Runs: InlineRuns(text)}
			if i == 0 {
				for k := range p.Runs {
					p.Runs[k].Bold = true
				}
			}
			cells[j] = NewCell(p)
		}
		t.Rows[i] = cells
	}
	return t
}
