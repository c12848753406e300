package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/laraquah/Noted2/internal/chat"
	"github.com/laraquah/Noted2/internal/config"
	"github.com/laraquah/Noted2/internal/docx"
	"github.com/laraquah/Noted2/internal/drive"
	"github.com/laraquah/Noted2/internal/llm"
	"github.com/laraquah/Noted2/internal/session"
	"github.com/laraquah/Noted2/internal/tui"
	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask questions about the analyzed meeting",
		Long: `Interactive question-answering over the meeting transcript.
Type a question and the assistant streams an answer grounded on the
transcript. Commands: ":save" uploads the chat log to Drive, ":quit"
(or an empty line) exits. Config edits are picked up live.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Load()
			if err != nil {
				return err
			}
			if s == nil || s.Analysis == nil || s.Analysis.FullTranscript == "" {
				return fmt.Errorf("no analyzed meeting found: run noted analyze first")
			}

			manager, err := config.NewManager()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			if err := manager.StartWatching(ctx); err != nil {
				return err
			}
			defer manager.Stop()

			fmt.Println(tui.Logo())
			fmt.Println()
			fmt.Println(tui.StyleSubtle.Render("Ask about the meeting. Empty line or :quit exits, :save uploads the chat log."))
			fmt.Println()

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print(tui.StyleHighlight.Render("you> "))
				if !scanner.Scan() {
					break
				}
				question := strings.TrimSpace(scanner.Text())

				switch question {
				case "", ":quit", ":exit":
					return scanner.Err()
				case ":save":
					if err := saveChatLog(manager.GetConfig(), s); err != nil {
						fmt.Println(tui.StyleError.Render(fmt.Sprintf("save failed: %v", err)))
					}
					continue
				}

				adapter, err := llm.NewAdapter(manager.GetConfig().ToLLMConfig())
				if err != nil {
					fmt.Println(tui.StyleError.Render(err.Error()))
					continue
				}
				responder := chat.NewResponder(adapter)

				updated, err := responder.Ask(ctx,
					s.Analysis.FullTranscript, s.Participants, s.ChatHistory, question,
					func(fragment string) { fmt.Print(fragment) })
				fmt.Println()
				if err != nil {
					fmt.Println(tui.StyleError.Render(err.Error()))
					continue
				}

				s.ChatHistory = updated
				if err := session.Save(s); err != nil {
					fmt.Println(tui.StyleWarning.Render(fmt.Sprintf("session save failed: %v", err)))
				}
			}
			return scanner.Err()
		},
	}
}

// saveChatLog renders the running conversation and uploads it to the
// Drive chats folder.
func saveChatLog(cfg *config.Config, s *session.Session) error {
	if len(s.ChatHistory) == 0 {
		return fmt.Errorf("nothing to save yet")
	}

	doc := docx.BuildChatLog("Chat - "+displayTitle(s), s.ChatHistory)
	var buf bytes.Buffer
	if err := docx.Write(&buf, doc); err != nil {
		return err
	}

	client := drive.NewClient(cfg.ToDriveConfig())
	ctx, cancel := signalContext()
	defer cancel()

	name := fmt.Sprintf("Chat_%s_%s.docx", documentBase(s), time.Now().Format("20060102_150405"))
	id, err := client.Upload(ctx, cfg.Drive.ChatsFolder, name, drive.DocMimeType, buf.Bytes())
	if err != nil {
		return err
	}
	fmt.Printf("Chat log uploaded to %q (file id %s)\n", cfg.Drive.ChatsFolder, id)
	return nil
}

func documentBase(s *session.Session) string {
	if s.DetectedTitle != "" {
		return s.DetectedTitle
	}
	return "Meeting"
}
