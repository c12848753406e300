package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/laraquah/Noted2/internal/session"
)

// RunReview lets the user correct the detected fields and the generated
// sections before export. The session is edited in place; a cancelled
// form leaves it untouched and reports false.
func RunReview(s *session.Session) (bool, error) {
	edited := *s
	var analysisCopy = *s.Analysis

	details := huh.NewGroup(
		huh.NewInput().Title("Meeting Title").Value(&edited.DetectedTitle),
		huh.NewInput().Title("Date").Description("e.g. 01 March 2025").Value(&edited.Date),
		huh.NewInput().Title("Time").Description("e.g. 02:30 PM - 03:15 PM").Value(&edited.TimeRange),
		huh.NewInput().Title("Venue").Value(&edited.Venue),
	).Title("Meeting Details")

	people := huh.NewGroup(
		huh.NewText().
			Title("Participants").
			Description("one per line, tag with (Client) or (iFoundries)").
			Value(&edited.Participants),
		huh.NewInput().Title("Absent with Apologies").Value(&edited.AbsentReps),
		huh.NewInput().Title("Prepared By").Value(&edited.PreparedBy),
	).Title("People")

	sections := huh.NewGroup(
		huh.NewText().Title("Overview").Value(&analysisCopy.Overview),
		huh.NewText().Title("Discussion").Value(&analysisCopy.Discussion),
		huh.NewText().Title("Next Steps").Value(&analysisCopy.NextSteps),
		huh.NewText().Title("Client Requests").Value(&analysisCopy.ClientRequests),
	).Title("Generated Minutes")

	form := huh.NewForm(details, people, sections).WithTheme(getTheme())
	if err := form.Run(); err != nil {
		return false, nil
	}

	edited.Analysis = &analysisCopy
	*s = edited
	return true, nil
}
