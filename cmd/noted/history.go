package main

import (
	"fmt"
	"time"

	"github.com/laraquah/Noted2/internal/session"
	"github.com/laraquah/Noted2/internal/tui"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and restore saved meetings",
	}
	cmd.AddCommand(historyListCmd(), historyLoadCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved meetings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			files, err := svc.history.List(ctx)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("No saved meetings found.")
				return nil
			}

			for _, f := range files {
				line := fmt.Sprintf("%-44s  %s", f.Name, f.ID)
				if f.CreatedTime != "" {
					line = fmt.Sprintf("%-44s  %s  %s", f.Name, f.CreatedTime, f.ID)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func historyLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [file-id]",
		Short: "Restore a saved meeting into the working session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			var fileID string
			if len(args) == 1 {
				fileID = args[0]
			} else {
				files, err := svc.history.List(ctx)
				if err != nil {
					return err
				}
				picked, err := tui.PickSnapshot(files)
				if err != nil {
					return err
				}
				fileID = picked.ID
			}

			snap, err := svc.history.Load(ctx, fileID)
			if err != nil {
				return err
			}

			s := &session.Session{
				Analysis:      snap.AIResults,
				Participants:  snap.Participants,
				ChatHistory:   snap.ChatHistory,
				DetectedTitle: snap.DetectedTitle,
				Date:          snap.Date,
				CreatedAt:     time.Now(),
			}
			if err := session.Save(s); err != nil {
				return err
			}

			fmt.Printf("Restored %q into the working session.\n", displayTitle(s))
			fmt.Println(tui.StyleSubtle.Render("Run 'noted review', 'noted export' or 'noted chat'."))
			return nil
		},
	}
}
