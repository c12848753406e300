package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/laraquah/Noted2/internal/config"
	"github.com/laraquah/Noted2/internal/drive"
	"github.com/laraquah/Noted2/internal/history"
	"github.com/laraquah/Noted2/internal/llm"
	"github.com/laraquah/Noted2/internal/metadata"
	"github.com/laraquah/Noted2/internal/minutes"
	"github.com/laraquah/Noted2/internal/pipeline"
	"github.com/laraquah/Noted2/internal/session"
	"github.com/laraquah/Noted2/internal/storage"
	"github.com/laraquah/Noted2/internal/transcribe"
	"github.com/laraquah/Noted2/internal/tui"
	"github.com/spf13/cobra"
)

// services bundles the clients most commands need.
type services struct {
	cfg     *config.Config
	llm     llm.Adapter
	drive   *drive.Client
	history *history.Store
	loc     *time.Location
}

func newServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	adapter, err := llm.NewAdapter(cfg.ToLLMConfig())
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.Document.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid document.timezone: %w", err)
	}

	driveClient := drive.NewClient(cfg.ToDriveConfig())
	return &services{
		cfg:     cfg,
		llm:     adapter,
		drive:   driveClient,
		history: history.NewStore(driveClient, cfg.Drive.DataFolder),
		loc:     loc,
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func analyzeCmd() *cobra.Command {
	var participants string

	cmd := &cobra.Command{
		Use:   "analyze <media-file>",
		Short: "Transcribe a recording and generate minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath := args[0]
			if _, err := os.Stat(mediaPath); err != nil {
				return fmt.Errorf("media file: %w", err)
			}

			svc, err := newServices()
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			sniffer := metadata.NewSniffer(svc.llm, svc.loc)
			stage := transcribe.NewStage(
				storage.NewClient(svc.cfg.ToStorageConfig()),
				transcribe.NewSpeechRESTAdapter(svc.cfg.ToSpeechConfig()),
			)
			stage.Timeout = svc.cfg.Speech.Timeout
			generator := minutes.NewGenerator(svc.llm)

			analyzer := &pipeline.Analyzer{
				Sniff: sniffer.Sniff,
				Transcribe: func(ctx context.Context, path string) (string, error) {
					return stage.Transcribe(ctx, path, filepath.Base(path))
				},
				Generate: func(ctx context.Context, participants, transcript string) (*minutes.AnalysisResult, error) {
					return generator.Generate(ctx, transcript, participants)
				},
				SaveSnapshot: svc.history.Save,
				OnStatus: func(s pipeline.Status) {
					fmt.Println(tui.StyleMuted.Render(fmt.Sprintf("[%s]", s)))
				},
			}

			result, err := analyzer.Run(ctx, mediaPath, participants)
			if err != nil {
				return err
			}

			s := &session.Session{
				SourceFile:    mediaPath,
				Analysis:      result.Analysis,
				Participants:  participants,
				DetectedTitle: result.Metadata.Title,
				Venue:         result.Metadata.Venue,
				TimeRange:     result.Metadata.TimeRange(),
				CreatedAt:     time.Now(),
			}
			if result.Metadata.StartTime != nil {
				s.Date = result.Metadata.StartTime.Format("02 January 2006")
			}
			if err := session.Save(s); err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(tui.StyleHeader.Render("Overview"))
			fmt.Println(result.Analysis.Overview)
			fmt.Println()
			fmt.Println(tui.StyleSubtle.Render("Run 'noted review' to check the details, then 'noted export'."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&participants, "participants", "p", "",
		"comma or newline separated names, tagged with (Client) or (iFoundries)")
	return cmd
}

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review and edit the generated minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Load()
			if err != nil {
				return err
			}
			if s == nil || s.Analysis == nil {
				return fmt.Errorf("no analyzed meeting found: run noted analyze first")
			}

			saved, err := tui.RunReview(s)
			if err != nil {
				return err
			}
			if !saved {
				fmt.Println("Review cancelled; nothing changed.")
				return nil
			}
			if err := session.Save(s); err != nil {
				return err
			}
			fmt.Println("Changes saved.")
			return nil
		},
	}
}
