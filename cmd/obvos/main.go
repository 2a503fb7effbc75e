// Package main is the entry point for ObvOS, a desktop that lives in your terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	_ "time/tzdata"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/obvos/obvos/internal/config"
	"github.com/obvos/obvos/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var (
	debugMode bool
	themeName string
	logFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "obvos",
		Short: "A desktop that lives in your terminal",
		Long: `ObvOS is a small desktop environment drawn with text.

Open windows from the start menu or desktop icons, drag them by the title bar,
and poke around ObvTerm, a toy shell with history and tab completion.`,
		Example: `  # Start ObvOS
  obvos

  # Start with a different color theme
  obvos --theme dracula

  # Serve desktops over SSH
  obvos ssh --port 2222

  # Edit configuration
  obvos config edit`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (empty keeps the configured theme)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")

	var sshPort, sshHost, sshKeyPath string
	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run ObvOS as an SSH server",
		Long: `Serve an independent ObvOS desktop to every SSH connection.

A host key is generated at ~/.ssh/obvos_host_key when none exists.`,
		Example: `  # Listen on localhost:2222
  obvos ssh

  # Listen on all interfaces
  obvos ssh --host 0.0.0.0 --port 2222`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}
	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ObvOS configuration",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			RunE: func(_ *cobra.Command, _ []string) error {
				return printConfigPath()
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Edit the configuration file in $EDITOR",
			Long: `Open the configuration file in your default editor.

Checks $EDITOR, then $VISUAL, then common editors (vim, vi, nano, emacs).
A running ObvOS picks up appearance and keybinding changes on save.`,
			RunE: func(_ *cobra.Command, _ []string) error {
				return editConfigFile()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the configuration to defaults",
			RunE: func(_ *cobra.Command, _ []string) error {
				return resetConfigToDefaults()
			},
		},
	)

	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect desktop applications",
	}
	appsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List applications, shortcuts and files",
		RunE: func(_ *cobra.Command, _ []string) error {
			return listApps()
		},
	})

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "Inspect keybindings",
	}
	keybindsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all configured keybindings",
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	})

	rootCmd.AddCommand(sshCmd, configCmd, appsCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadFrom(configPath); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resetConfigToDefaults overwrites the config file after confirmation.
func resetConfigToDefaults() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.Save(configPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: obvos config edit")
	return nil
}

// loadConfigOrDefault is used by the read-only subcommands.
func loadConfigOrDefault() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using defaults...")
		userConfig = config.DefaultConfig()
	}
	if themeName != "" {
		userConfig.Appearance.Theme = themeName
	}
	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return userConfig
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.CLITableKey()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
}

func sectionTitle(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Render(s)
}

// listApps prints the desktop catalog.
func listApps() error {
	cat, err := loadConfigOrDefault().Catalog()
	if err != nil {
		return err
	}

	apps := newTable("ID", "Title", "Aliases", "Size")
	for _, a := range cat.Apps() {
		apps.Row(a.ID, a.Title, strings.Join(a.Aliases, ", "), fmt.Sprintf("%dx%d", a.Width, a.Height))
	}
	fmt.Println()
	fmt.Println(sectionTitle("Applications"))
	fmt.Println(apps.Render())

	if shortcuts := cat.Shortcuts(); len(shortcuts) > 0 {
		t := newTable("Shortcut", "URL")
		for _, s := range shortcuts {
			t.Row(s.Label, s.URL)
		}
		fmt.Println()
		fmt.Println(sectionTitle("Shortcuts"))
		fmt.Println(t.Render())
	}

	if names := cat.FileNames(); len(names) > 0 {
		t := newTable("File")
		for _, n := range names {
			t.Row(n)
		}
		fmt.Println()
		fmt.Println(sectionTitle("Files"))
		fmt.Println(t.Render())
	}
	fmt.Println()
	return nil
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings() error {
	registry := config.NewKeybindRegistry(loadConfigOrDefault())

	fmt.Println()
	fmt.Println(sectionTitle("ObvOS Keybindings"))
	fmt.Println()

	for _, section := range config.GetKeybindings(registry) {
		if len(section.Bindings) == 0 {
			continue
		}
		t := newTable("Keys", "Action")
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		fmt.Println(sectionTitle(section.Title))
		fmt.Println(t.Render())
		fmt.Println()
	}

	if invalid := registry.Invalid(); len(invalid) > 0 {
		note := lipgloss.NewStyle().
			Foreground(theme.CLITableDim()).
			Italic(true).
			Render("Ignored invalid keys: " + strings.Join(invalid, ", "))
		fmt.Println(note)
		fmt.Println()
	}
	return nil
}
