package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/caddie/internal/config"
	"github.com/javiermolinar/caddie/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  caddie config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(config.DefaultConfigPath(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Course.Name = promptValue(reader, out, "Course name", cfg.Course.Name)
	cfg.Course.FirstTee = promptValue(reader, out, "First tee time", cfg.Course.FirstTee)
	cfg.Course.LastTee = promptValue(reader, out, "Last tee time", cfg.Course.LastTee)
	cfg.Course.IntervalMinutes = promptInt(reader, out, "Minutes between tee times", cfg.Course.IntervalMinutes)
	cfg.Assistant.Provider = promptValue(reader, out, "Assistant provider (openai, lmstudio, ollama)", cfg.Assistant.Provider)
	cfg.Assistant.Model = promptValue(reader, out, "Assistant model", cfg.Assistant.Model)
	cfg.Assistant.BaseURL = promptValue(reader, out, "Assistant base URL (Ollama/LM Studio)", cfg.Assistant.BaseURL)
	cfg.Assistant.MaxRetries = promptInt(reader, out, "Assistant retries", cfg.Assistant.MaxRetries)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[course]")
	fmt.Fprintf(out, "  name             = %s\n", cfg.Course.Name)
	fmt.Fprintf(out, "  first_tee        = %s\n", cfg.Course.FirstTee)
	fmt.Fprintf(out, "  last_tee         = %s\n", cfg.Course.LastTee)
	fmt.Fprintf(out, "  interval_minutes = %d\n", cfg.Course.IntervalMinutes)
	fmt.Fprintf(out, "  (%d tee times)\n", len(cfg.TeeTimes()))
	fmt.Fprintln(out, "\n[assistant]")
	fmt.Fprintf(out, "  provider         = %s\n", cfg.Assistant.Provider)
	fmt.Fprintf(out, "  model            = %s\n", cfg.Assistant.Model)
	fmt.Fprintf(out, "  base_url         = %s\n", cfg.Assistant.BaseURL)
	fmt.Fprintf(out, "  max_retries      = %d\n", cfg.Assistant.MaxRetries)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
