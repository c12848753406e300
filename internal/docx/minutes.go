package docx

import (
	"strings"

	"github.com/laraquah/Noted2/internal/docmodel"
)

// MinutesData carries every field the minutes template renders.
type MinutesData struct {
	Title          string
	Date           string
	TimeRange      string
	Venue          string
	ClientReps     string // newline-separated
	InternalReps   string // comma-separated
	AbsentReps     string
	Overview       string
	Discussion     string
	ClientRequests string
	NextSteps      string
	AdjournedAt    string
	PreparedBy     string
}

// Column widths in twips for the two template tables.
var (
	headerWidths  = []int{2200, 3400, 3400}
	contentWidths = []int{2200, 6800}
)

// BuildMinutes assembles the minutes document: a title heading, the
// attendance header table, the content table, and the preparer line.
func BuildMinutes(d MinutesData) *docmodel.Document {
	doc := &docmodel.Document{}

	title := d.Title
	if title == "" {
		title = "Meeting Minutes"
	}
	doc.AddParagraph(&docmodel.Paragraph{
		Runs:    []docmodel.Run{{Text: title, Bold: true}},
		Heading: true,
	})
	doc.AddParagraph(&docmodel.Paragraph{})

	doc.AddTable(headerTable(d))
	doc.AddParagraph(&docmodel.Paragraph{})
	doc.AddTable(contentTable(d))

	doc.AddParagraph(&docmodel.Paragraph{SpaceBefore: true})
	doc.AddParagraph(&docmodel.Paragraph{
		Runs: []docmodel.Run{
			{Text: "Prepared by: ", Bold: true},
			{Text: d.PreparedBy},
		},
	})
	return doc
}

func headerTable(d MinutesData) *docmodel.Table {
	return &docmodel.Table{
		Widths: headerWidths,
		Rows: [][]*docmodel.Cell{
			{labelCell("Meeting Details"), plainCell(""), plainCell("")},
			{labelCell("Date"), plainCell(d.Date), plainCell("")},
			{labelCell("Time"), plainCell(d.TimeRange), plainCell("")},
			{labelCell("Venue"), plainCell(d.Venue), plainCell("")},
			{labelCell("Representatives"), multilineCell(d.ClientReps), multilineCell(d.InternalReps)},
			{labelCell("Absent with Apologies"), plainCell(d.AbsentReps), plainCell("")},
		},
	}
}

func contentTable(d MinutesData) *docmodel.Table {
	adjourned := ""
	if d.AdjournedAt != "" {
		adjourned = "Meeting adjourned at " + d.AdjournedAt + "."
	}
	return &docmodel.Table{
		Widths: contentWidths,
		Rows: [][]*docmodel.Cell{
			{labelCell("Item"), labelCell("Details")},
			{labelCell("Overview"), renderedCell(d.Overview)},
			{labelCell("Discussion"), renderedCell(d.Discussion)},
			{labelCell("Client Requests"), renderedCell(d.ClientRequests)},
			{labelCell("Next Steps"), renderedCell(d.NextSteps)},
			{labelCell("Adjournment"), plainCell(adjourned)},
		},
	}
}

func labelCell(text string) *docmodel.Cell {
	return docmodel.NewCell(&docmodel.Paragraph{
		Runs: []docmodel.Run{{Text: text, Bold: true}},
	})
}

func plainCell(text string) *docmodel.Cell {
	return docmodel.NewCell(&docmodel.Paragraph{
		Runs: []docmodel.Run{{Text: text}},
	})
}

// multilineCell splits newline-separated text into one paragraph per line.
func multilineCell(text string) *docmodel.Cell {
	cell := &docmodel.Cell{}
	for _, line := range splitLines(text) {
		cell.Paragraphs = append(cell.Paragraphs, &docmodel.Paragraph{
			Runs: []docmodel.Run{{Text: line}},
		})
	}
	if len(cell.Paragraphs) == 0 {
		cell.Paragraphs = []*docmodel.Paragraph{{}}
	}
	return cell
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// renderedCell runs the cell-mode markdown renderer over free section text.
func renderedCell(text string) *docmodel.Cell {
	paragraphs := docmodel.RenderCell(text)
	if len(paragraphs) == 0 {
		paragraphs = []*docmodel.Paragraph{{}}
	}
	return &docmodel.Cell{Paragraphs: paragraphs}
}
