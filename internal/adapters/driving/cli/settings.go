package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in the config file.

The access token can also be supplied with the ACCESS_TOKEN_7SHIFTS
environment variable, which takes precedence over the stored token.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Keys:

  ` + strings.Join(domain.SettingKeys(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Store the API access token",
	Long: `Prompts for the 7shifts access token and stores it in the config file.
Input is hidden when read from a terminal; otherwise one line is read
from stdin.`,
	Args: cobra.NoArgs,
	RunE: runSettingsToken,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsTokenCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	cmd.Println()

	cmd.Println("[API]")
	if settings.API.Token != "" {
		cmd.Printf("  Token: %s\n", maskToken(settings.API.Token))
	} else {
		cmd.Printf("  Token: (not set)\n")
	}
	if os.Getenv("ACCESS_TOKEN_7SHIFTS") != "" {
		cmd.Printf("  Token override: ACCESS_TOKEN_7SHIFTS\n")
	}
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Rate limit: %g requests/second\n", settings.API.RateLimit)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout())
	cmd.Printf("  Max retries: %d\n", settings.API.MaxRetries)
	cmd.Printf("  Cache TTL: %s\n", settings.API.CacheTTL())
	cmd.Println()

	cmd.Println("[Database]")
	path := settings.Database.Path
	if path == "" {
		path = "(default)"
	}
	cmd.Printf("  Path: %s\n", path)
	cmd.Println()

	cmd.Println("[Sync]")
	cmd.Printf("  Timezone: %s\n", settings.Sync.Timezone)
	if settings.Sync.CompanyID == 0 {
		cmd.Printf("  Company: all\n")
	} else {
		cmd.Printf("  Company: %d\n", settings.Sync.CompanyID)
	}
	cmd.Printf("  Receipt chunk size: %d\n", settings.Sync.ReceiptChunkSize)
	cmd.Printf("  Daemon interval: %s\n", settings.Sync.Interval())
	cmd.Printf("  Daemon window: last %d days\n", settings.Sync.LastNDays)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsToken(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("7shifts access token: ")
	token := readPassword(cmd.InOrStdin())
	cmd.Println()

	if err := settingsService.SetToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	cmd.Printf("Token saved to %s\n", settingsService.ConfigPath())
	return nil
}

// readPassword reads without echo from a terminal, or one line otherwise.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	input, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
