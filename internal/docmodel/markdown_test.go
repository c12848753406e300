package docmodel

import (
	"reflect"
	"testing"
)

func TestInlineRuns_BoldRoundTrip(t *testing.T) {
	runs := InlineRuns("**bold** plain")

	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].Text != "bold" || !runs[0].Bold {
		t.Errorf("runs[0] = %+v, want bold run %q", runs[0], "bold")
	}
	if runs[1].Text != " plain" || runs[1].Bold {
		t.Errorf("runs[1] = %+v, want plain run %q", runs[1], " plain")
	}
}

func TestInlineRuns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Run
	}{
		{
			name: "plain text",
			in:   "hello world",
			want: []Run{{Text: "hello world"}},
		},
		{
			name: "bold only",
			in:   "**important**",
			want: []Run{{Text: "important", Bold: true}},
		},
		{
			name: "unmatched delimiter stays literal",
			in:   "**oops no close",
			want: []Run{{Text: "**oops no close"}},
		},
		{
			name: "multiple spans non-greedy",
			in:   "**a** and **b**",
			want: []Run{{Text: "a", Bold: true}, {Text: " and "}, {Text: "b", Bold: true}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InlineRuns(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InlineRuns(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderBody_TableDetection(t *testing.T) {
	elements := RenderBody("|A|B|\n|-|-|\n|1|2|")

	var tables []*Table
	for _, el := range elements {
		if tbl, ok := el.(*Table); ok {
			tables = append(tables, tbl)
		}
	}
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}

	tbl := tables[0]
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	for _, cell := range tbl.Rows[0] {
		for _, p := range cell.Paragraphs {
			for _, run := range p.Runs {
				if !run.Bold {
					t.Errorf("header cell run %q not bold", run.Text)
				}
			}
		}
	}
	for _, cell := range tbl.Rows[1] {
		for _, p := range cell.Paragraphs {
			for _, run := range p.Runs {
				if run.Bold {
					t.Errorf("data cell run %q should not be bold", run.Text)
				}
			}
		}
	}

	// a blank separator paragraph follows every table
	last := elements[len(elements)-1]
	if p, ok := last.(*Paragraph); !ok || len(p.Runs) != 0 {
		t.Errorf("expected trailing blank paragraph after table, got %+v", last)
	}
}

func TestRenderBody_LineForms(t *testing.T) {
	elements := RenderBody("## Agenda\n* first item\n- second item\nclosing remark\n\n")

	if len(elements) != 4 {
		t.Fatalf("elements = %d, want 4", len(elements))
	}

	heading := elements[0].(*Paragraph)
	if !heading.Heading || heading.Text() != "Agenda" {
		t.Errorf("heading = %+v, want heading %q", heading, "Agenda")
	}

	for i, want := range []string{"first item", "second item"} {
		p := elements[i+1].(*Paragraph)
		if !p.Bullet || p.Text() != want {
			t.Errorf("elements[%d] = %+v, want bullet %q", i+1, p, want)
		}
	}

	plain := elements[3].(*Paragraph)
	if plain.Bullet || plain.Heading || plain.Text() != "closing remark" {
		t.Errorf("plain = %+v, want plain paragraph", plain)
	}
}

func TestRenderBody_BlankLinesSkipped(t *testing.T) {
	elements := RenderBody("\n\n  \n")
	if len(elements) != 0 {
		t.Errorf("elements = %d, want 0 for blank input", len(elements))
	}
}

func TestRenderBody_Idempotent(t *testing.T) {
	body := "## Review\n* **Tone:** keep it formal\n|A|B|\n|-|-|\n|1|2|\ntail **bold**"

	first := RenderBody(body)
	second := RenderBody(body)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("rendering is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRenderCell_LabelBullet(t *testing.T) {
	paragraphs := RenderCell("* **Wording & Tone:** avoid casual phrasing")

	if len(paragraphs) != 1 {
		t.Fatalf("paragraphs = %d, want 1", len(paragraphs))
	}
	p := paragraphs[0]
	if !p.Bullet || !p.Indent {
		t.Errorf("paragraph = %+v, want indented bullet", p)
	}
	if len(p.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(p.Runs))
	}
	if p.Runs[0].Text != "Wording & Tone: " || !p.Runs[0].Bold {
		t.Errorf("label run = %+v", p.Runs[0])
	}
	if p.Runs[1].Text != "avoid casual phrasing" || p.Runs[1].Bold {
		t.Errorf("value run = %+v", p.Runs[1])
	}
}

func TestRenderCell_PlainBulletFallback(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no label split", "* just a task", "just a task"},
		{"broken label", "* **no colon close", "**no colon close"},
		{"dash bullet", "- another task", "another task"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paragraphs := RenderCell(tt.in)
			if len(paragraphs) != 1 {
				t.Fatalf("paragraphs = %d, want 1", len(paragraphs))
			}
			if got := paragraphs[0].Text(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if !paragraphs[0].Bullet {
				t.Errorf("expected bullet paragraph")
			}
		})
	}
}

func TestRenderCell_HeadingLine(t *testing.T) {
	paragraphs := RenderCell("## Content and Grammar")
	if len(paragraphs) != 1 {
		t.Fatalf("paragraphs = %d, want 1", len(paragraphs))
	}
	run := paragraphs[0].Runs[0]
	if run.Text != "Content and Grammar" || !run.Bold || !run.Underline {
		t.Errorf("heading run = %+v, want bold underlined", run)
	}
}
