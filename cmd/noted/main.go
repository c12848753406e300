package main

import (
	"fmt"
	"os"

	"github.com/laraquah/Noted2/internal/config"
	"github.com/laraquah/Noted2/internal/deps"
	"github.com/laraquah/Noted2/internal/tui"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "noted",
	Short: "Meeting minutes from recorded calls",
	Long: `noted turns a recorded meeting into structured minutes:
it transcribes the recording with speaker diarization, generates the
minutes with an LLM, renders them as a .docx document, and can upload
to Drive, post to Basecamp, and answer questions about the meeting.`,
}

func init() {
	rootCmd.AddCommand(
		analyzeCmd(),
		reviewCmd(),
		exportCmd(),
		postCmd(),
		chatCmd(),
		historyCmd(),
		configureCmd(),
		doctorCmd(),
		versionCmd(),
	)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("noted %s\n", version)
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for noted.
This will guide you through setting up:
- Provider API keys (OpenAI, Google)
- Speech recognition and staging storage
- Drive folders, Basecamp posting and document settings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				cfg = config.DefaultConfig()
			}

			result, err := tui.RunConfigure(cfg)
			if err != nil {
				return fmt.Errorf("configuration wizard error: %w", err)
			}
			if result.Cancelled {
				fmt.Println("Configuration cancelled.")
				return nil
			}

			if err := config.Save(result.Config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			configPath, _ := config.GetConfigPath()
			fmt.Println()
			fmt.Println("Configuration saved successfully!")
			fmt.Printf("Config file location: %s\n", configPath)
			return nil
		},
	}
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			healthy := true

			tools := []struct {
				name   string
				status deps.Status
			}{
				{"ffmpeg", deps.CheckFFmpeg()},
				{"ffprobe", deps.CheckFFprobe()},
			}
			for _, tool := range tools {
				if tool.status.Installed {
					fmt.Println(tui.StyleSuccess.Render(fmt.Sprintf("✓ %s: %s (%s)", tool.name, tool.status.Path, tool.status.Version)))
				} else {
					fmt.Println(tui.StyleError.Render(fmt.Sprintf("✗ %s: not found in PATH", tool.name)))
					healthy = false
				}
			}

			cfg, err := config.Load()
			if err != nil {
				fmt.Println(tui.StyleError.Render(fmt.Sprintf("✗ config: %v", err)))
				healthy = false
			} else if err := cfg.Validate(); err != nil {
				fmt.Println(tui.StyleWarning.Render(fmt.Sprintf("! config: %v", err)))
				healthy = false
			} else {
				fmt.Println(tui.StyleSuccess.Render("✓ configuration valid"))
			}

			if !healthy {
				return fmt.Errorf("some checks failed")
			}
			return nil
		},
	}
}
