package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/laraquah/Noted2/internal/basecamp"
	"github.com/laraquah/Noted2/internal/drive"
)

// BasecampTarget is the destination chosen in the posting flow.
type BasecampTarget struct {
	Project  basecamp.Project
	ToolType string
	ToolID   int64
	ListID   int64
}

// PickProject selects one project from the account's active projects.
func PickProject(projects []basecamp.Project) (basecamp.Project, error) {
	if len(projects) == 0 {
		return basecamp.Project{}, fmt.Errorf("no active projects found")
	}

	options := make([]huh.Option[int64], len(projects))
	byID := make(map[int64]basecamp.Project, len(projects))
	for i, p := range projects {
		options[i] = huh.NewOption(p.Name, p.ID)
		byID[p.ID] = p
	}

	var selected int64
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Basecamp Project").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return basecamp.Project{}, err
	}
	return byID[selected], nil
}

// PickTool selects the tool the minutes are posted into, limited to the
// tools actually enabled on the project.
func PickTool(dock []basecamp.Tool) (string, basecamp.Tool, error) {
	var options []huh.Option[string]
	available := make(map[string]basecamp.Tool)

	if t, ok := basecamp.FindTool(dock, "todoset"); ok && t.Enabled {
		options = append(options, huh.NewOption(basecamp.ToolTodos, basecamp.ToolTodos))
		available[basecamp.ToolTodos] = t
	}
	if t, ok := basecamp.FindTool(dock, "message_board"); ok && t.Enabled {
		options = append(options, huh.NewOption(basecamp.ToolMessageBoard, basecamp.ToolMessageBoard))
		available[basecamp.ToolMessageBoard] = t
	}
	if t, ok := basecamp.FindTool(dock, "vault"); ok && t.Enabled {
		options = append(options, huh.NewOption(basecamp.ToolDocsAndFiles, basecamp.ToolDocsAndFiles))
		available[basecamp.ToolDocsAndFiles] = t
	}
	if len(options) == 0 {
		return "", basecamp.Tool{}, fmt.Errorf("no supported tools enabled on this project")
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Post To").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", basecamp.Tool{}, err
	}
	return selected, available[selected], nil
}

// PickTodoList selects the destination to-do list.
func PickTodoList(lists []basecamp.TodoList) (basecamp.TodoList, error) {
	if len(lists) == 0 {
		return basecamp.TodoList{}, fmt.Errorf("no to-do lists found in this project")
	}

	options := make([]huh.Option[int64], len(lists))
	byID := make(map[int64]basecamp.TodoList, len(lists))
	for i, l := range lists {
		options[i] = huh.NewOption(l.Title, l.ID)
		byID[l.ID] = l
	}

	var selected int64
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("To-do List").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return basecamp.TodoList{}, err
	}
	return byID[selected], nil
}

// PickSnapshot selects one stored meeting snapshot.
func PickSnapshot(files []drive.File) (drive.File, error) {
	if len(files) == 0 {
		return drive.File{}, fmt.Errorf("no saved meetings found")
	}

	options := make([]huh.Option[string], len(files))
	byID := make(map[string]drive.File, len(files))
	for i, f := range files {
		label := f.Name
		if f.CreatedTime != "" {
			label = fmt.Sprintf("%s  (%s)", f.Name, f.CreatedTime)
		}
		options[i] = huh.NewOption(label, f.ID)
		byID[f.ID] = f
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Saved Meetings").
				Description("newest first").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return drive.File{}, err
	}
	return byID[selected], nil
}
