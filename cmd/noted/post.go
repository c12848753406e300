package main

import (
	"fmt"

	"github.com/laraquah/Noted2/internal/basecamp"
	"github.com/laraquah/Noted2/internal/session"
	"github.com/laraquah/Noted2/internal/tui"
	"github.com/spf13/cobra"
)

func postCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post",
		Short: "Post the minutes to a Basecamp project",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Load()
			if err != nil {
				return err
			}
			if s == nil || s.Analysis == nil {
				return fmt.Errorf("no analyzed meeting found: run noted analyze first")
			}

			svc, err := newServices()
			if err != nil {
				return err
			}
			bcCfg := svc.cfg.ToBasecampConfig()
			if bcCfg.AccountID == "" {
				return fmt.Errorf("basecamp is not configured: run noted configure")
			}
			client := basecamp.NewClient(bcCfg, basecamp.NewRefreshTokenSource(bcCfg))

			ctx, cancel := signalContext()
			defer cancel()

			projects, err := client.Projects(ctx)
			if err != nil {
				return err
			}
			project, err := tui.PickProject(projects)
			if err != nil {
				return err
			}

			dock, err := client.Dock(ctx, project.ID)
			if err != nil {
				return err
			}
			toolType, tool, err := tui.PickTool(dock)
			if err != nil {
				return err
			}

			post := basecamp.Post{
				ProjectID: project.ID,
				ToolType:  toolType,
				ToolID:    tool.ID,
				Title:     displayTitle(s),
				Content:   postBody(s),
			}

			if toolType == basecamp.ToolTodos {
				lists, err := client.TodoLists(ctx, project.ID, tool.ID)
				if err != nil {
					return err
				}
				list, err := tui.PickTodoList(lists)
				if err != nil {
					return err
				}
				post.ListID = list.ID
			}

			// attach the rendered document to every post type
			data, err := renderMinutes(s)
			if err != nil {
				return err
			}
			sgid, err := client.UploadAttachment(ctx, documentName(s), data)
			if err != nil {
				return err
			}
			post.SGID = sgid

			if err := client.CreateEntity(ctx, post); err != nil {
				return err
			}

			s.Posted = true
			if err := session.Save(s); err != nil {
				return err
			}

			fmt.Printf("Posted %q to %s in project %q.\n", post.Title, toolType, project.Name)
			return nil
		},
	}
}

// postBody is the plain-text summary accompanying the attached document.
func postBody(s *session.Session) string {
	body := s.Analysis.Overview
	if s.Analysis.NextSteps != "" {
		body += "\n\nNext steps:\n" + s.Analysis.NextSteps
	}
	if body == "" {
		body = "Meeting minutes attached."
	}
	return body
}
