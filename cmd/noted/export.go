package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/laraquah/Noted2/internal/docx"
	"github.com/laraquah/Noted2/internal/drive"
	"github.com/laraquah/Noted2/internal/roster"
	"github.com/laraquah/Noted2/internal/session"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var output string
	var upload bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the minutes as a .docx document",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Load()
			if err != nil {
				return err
			}
			if s == nil || s.Analysis == nil {
				return fmt.Errorf("no analyzed meeting found: run noted analyze first")
			}

			data, err := renderMinutes(s)
			if err != nil {
				return err
			}

			name := output
			if name == "" {
				name = documentName(s)
			}

			if err := os.WriteFile(name, data, 0644); err != nil {
				return fmt.Errorf("write document: %w", err)
			}
			fmt.Printf("Saved %s (%d bytes)\n", name, len(data))

			if upload {
				svc, err := newServices()
				if err != nil {
					return err
				}
				ctx, cancel := signalContext()
				defer cancel()

				id, err := svc.drive.Upload(ctx, svc.cfg.Drive.MinutesFolder, name, drive.DocMimeType, data)
				if err != nil {
					return fmt.Errorf("drive upload: %w", err)
				}
				fmt.Printf("Uploaded to Drive folder %q (file id %s)\n", svc.cfg.Drive.MinutesFolder, id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to <title>.docx)")
	cmd.Flags().BoolVar(&upload, "upload", false, "also upload the document to the Drive minutes folder")
	return cmd
}

// renderMinutes builds the .docx bytes for the session's minutes.
func renderMinutes(s *session.Session) ([]byte, error) {
	reps := roster.Parse(s.Participants)

	doc := docx.BuildMinutes(docx.MinutesData{
		Title:          displayTitle(s),
		Date:           s.Date,
		TimeRange:      s.TimeRange,
		Venue:          s.Venue,
		ClientReps:     reps.ClientReps(),
		InternalReps:   reps.InternalReps(),
		AbsentReps:     s.AbsentReps,
		Overview:       s.Analysis.Overview,
		Discussion:     s.Analysis.Discussion,
		ClientRequests: s.Analysis.ClientRequests,
		NextSteps:      s.Analysis.NextSteps,
		AdjournedAt:    adjournedAt(s.TimeRange),
		PreparedBy:     s.PreparedBy,
	})

	var buf bytes.Buffer
	if err := docx.Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

func displayTitle(s *session.Session) string {
	if s.DetectedTitle != "" {
		return strings.ReplaceAll(s.DetectedTitle, "_", " ")
	}
	return "Meeting Minutes"
}

func documentName(s *session.Session) string {
	title := s.DetectedTitle
	if title == "" {
		title = "Meeting_Minutes"
	}
	return title + ".docx"
}

// adjournedAt pulls the end time out of a "02:30 PM - 03:15 PM" range.
func adjournedAt(timeRange string) string {
	_, end, ok := strings.Cut(timeRange, " - ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(end)
}
