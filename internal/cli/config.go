package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumescan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	// A broken config file must not keep the user from inspecting or recreating it
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for errors",
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := configPath
	configDir := filepath.Dir(configFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'resumescan config show' to view current configuration")
		return nil
	}

	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Adjust the formatting thresholds if your field expects longer resumes")
	fmt.Println("  2. Run 'resumescan analyze resume.pdf --job-file posting.txt'")
	fmt.Println("  3. Review past runs with 'resumescan history list'")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'resumescan config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(configPath); err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", configPath)
	return nil
}

const defaultConfig = `# resumescan configuration

[database]
path = "~/.local/share/resumescan/resumescan.db"

[history]
enabled = true   # record every analysis in the database

[formatting]
min_bullets = 5     # fewer bullet lines than this triggers a note
min_words = 250     # resumes shorter than this are flagged
max_words = 1000    # resumes longer than this are flagged

[cache]
enabled = true
max_entries = 64    # in-memory results kept per process

[s3]
# Used for s3://bucket/key resume locations
region = "us-east-1"
# endpoint = "http://localhost:9000"
# Credentials fall back to the default AWS chain when unset

[logging]
level = "warn"      # debug, info, warn, error
format = "text"     # text, json

[mcp]
enabled = true
transport = "stdio"
`
