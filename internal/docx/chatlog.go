package docx

import (
	"strings"

	"github.com/laraquah/Noted2/internal/docmodel"
	"github.com/laraquah/Noted2/internal/llm"
)

// BuildChatLog turns a chat transcript into a document: each exchange is a
// bolded role line followed by the markdown-rendered message body, with a
// rule between exchanges.
func BuildChatLog(title string, messages []llm.Message) *docmodel.Document {
	doc := &docmodel.Document{}

	if title == "" {
		title = "Meeting Chat Log"
	}
	doc.AddParagraph(&docmodel.Paragraph{
		Runs:    []docmodel.Run{{Text: title, Bold: true}},
		Heading: true,
	})
	doc.AddParagraph(&docmodel.Paragraph{})

	for i, msg := range messages {
		doc.AddParagraph(&docmodel.Paragraph{
			Runs:        []docmodel.Run{{Text: roleLabel(msg.Role) + ":", Bold: true}},
			SpaceBefore: true,
		})
		for _, el := range docmodel.RenderBody(msg.Content) {
			doc.Elements = append(doc.Elements, el)
		}
		if i < len(messages)-1 {
			doc.AddParagraph(&docmodel.Paragraph{
				Runs: []docmodel.Run{{Text: strings.Repeat("_", 40)}},
			})
		}
	}
	return doc
}

func roleLabel(role string) string {
	switch role {
	case llm.RoleUser:
		return "You"
	case llm.RoleAssistant:
		return "Assistant"
	default:
		if role == "" {
			return "Unknown"
		}
		return strings.ToUpper(role[:1]) + role[1:]
	}
}
