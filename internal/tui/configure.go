// Package tui holds the interactive terminal surfaces: the configure
// wizard, the minutes review form, and the Basecamp target picker.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/laraquah/Noted2/internal/config"
	"github.com/muesli/termenv"
)

// ConfigureResult holds the configuration result from the TUI
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// ConfigSection represents a configuration section
type ConfigSection string

const (
	SectionProviders   ConfigSection = "providers"
	SectionSpeech      ConfigSection = "speech"
	SectionStorage     ConfigSection = "storage"
	SectionDrive       ConfigSection = "drive"
	SectionBasecamp    ConfigSection = "basecamp"
	SectionDocument    ConfigSection = "document"
	SectionSaveExit    ConfigSection = "save_exit"
	SectionDiscardExit ConfigSection = "discard_exit"
)

// RunConfigure starts the menu-based configuration wizard.
func RunConfigure(cfg *config.Config) (*ConfigureResult, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	for {
		clearScreen()
		fmt.Println(Logo())
		fmt.Println()

		section, err := selectSection(cfg)
		if err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}

		switch section {
		case SectionSaveExit:
			if err := cfg.Validate(); err != nil {
				fmt.Println(StyleWarning.Render(fmt.Sprintf("Configuration incomplete: %v", err)))
				if !confirm("Save anyway?") {
					continue
				}
			}
			return &ConfigureResult{Config: cfg}, nil

		case SectionDiscardExit:
			return &ConfigureResult{Cancelled: true}, nil

		case SectionProviders:
			if err := editProviders(cfg); err != nil {
				continue
			}
		case SectionSpeech:
			if err := editSpeech(cfg); err != nil {
				continue
			}
		case SectionStorage:
			if err := editStorage(cfg); err != nil {
				continue
			}
		case SectionDrive:
			if err := editDrive(cfg); err != nil {
				continue
			}
		case SectionBasecamp:
			if err := editBasecamp(cfg); err != nil {
				continue
			}
		case SectionDocument:
			if err := editDocument(cfg); err != nil {
				continue
			}
		}
	}
}

func selectSection(cfg *config.Config) (ConfigSection, error) {
	options := []huh.Option[ConfigSection]{
		huh.NewOption(formatProvidersLabel(cfg), SectionProviders),
		huh.NewOption("Speech Recognition", SectionSpeech),
		huh.NewOption(formatStorageLabel(cfg), SectionStorage),
		huh.NewOption("Drive Folders", SectionDrive),
		huh.NewOption(formatBasecampLabel(cfg), SectionBasecamp),
		huh.NewOption("Document Settings", SectionDocument),
		huh.NewOption("Save & Exit", SectionSaveExit),
		huh.NewOption("Discard & Exit", SectionDiscardExit),
	}

	var selected ConfigSection
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ConfigSection]().
				Title("Configuration Menu").
				Description("↑/↓ navigate • enter select • esc cancel").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

func editProviders(cfg *config.Config) error {
	openaiKey := cfg.Providers["openai"].APIKey
	googleToken := cfg.Providers["google"].APIKey

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API Key").
				Description("used for minutes generation, vision and chat").
				EchoMode(huh.EchoModePassword).
				Value(&openaiKey),
			huh.NewInput().
				Title("Google Access Token").
				Description("used for speech, storage and Drive").
				EchoMode(huh.EchoModePassword).
				Value(&googleToken),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}
	cfg.Providers["openai"] = config.ProviderConfig{APIKey: openaiKey}
	cfg.Providers["google"] = config.ProviderConfig{APIKey: googleToken}
	return nil
}

func editSpeech(cfg *config.Config) error {
	minSpeakers := fmt.Sprintf("%d", cfg.Speech.MinSpeakers)
	maxSpeakers := fmt.Sprintf("%d", cfg.Speech.MaxSpeakers)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Language").
				Description("BCP-47 code, e.g. en-US").
				Value(&cfg.Speech.Language),
			huh.NewInput().
				Title("Minimum Speakers").
				Value(&minSpeakers).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Maximum Speakers").
				Value(&maxSpeakers).
				Validate(validatePositiveInt),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}
	fmt.Sscanf(minSpeakers, "%d", &cfg.Speech.MinSpeakers)
	fmt.Sscanf(maxSpeakers, "%d", &cfg.Speech.MaxSpeakers)
	return nil
}

func editStorage(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Staging Bucket").
				Description("bucket name for transcoded audio during transcription").
				Value(&cfg.Storage.Bucket),
		),
	).WithTheme(getTheme())
	return form.Run()
}

func editDrive(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Minutes Folder").Value(&cfg.Drive.MinutesFolder),
			huh.NewInput().Title("Chat Logs Folder").Value(&cfg.Drive.ChatsFolder),
			huh.NewInput().Title("Meeting Data Folder").Value(&cfg.Drive.DataFolder),
		),
	).WithTheme(getTheme())
	return form.Run()
}

func editBasecamp(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Account ID").Value(&cfg.Basecamp.AccountID),
			huh.NewInput().Title("Client ID").Value(&cfg.Basecamp.ClientID),
			huh.NewInput().
				Title("Client Secret").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Basecamp.ClientSecret),
			huh.NewInput().
				Title("Refresh Token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Basecamp.RefreshToken),
		),
	).WithTheme(getTheme())
	return form.Run()
}

func editDocument(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("IANA zone for detected meeting times, e.g. Asia/Singapore").
				Value(&cfg.Document.Timezone).
				Validate(validateTimezone),
			huh.NewInput().
				Title("Default Title").
				Value(&cfg.Document.DefaultTitle),
		),
	).WithTheme(getTheme())
	return form.Run()
}

func confirm(title string) bool {
	var yes bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Value(&yes),
		),
	).WithTheme(getTheme())
	if err := form.Run(); err != nil {
		return false
	}
	return yes
}

func validatePositiveInt(s string) error {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateTimezone(s string) error {
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown timezone")
	}
	return nil
}

// clearScreen clears the terminal screen
func clearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
}

func getTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.Base = lipgloss.NewStyle().BorderForeground(ColorPrimary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(ColorSubtle)

	return t
}
