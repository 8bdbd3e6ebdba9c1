package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/termchat/termchat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage termchat configuration",
	Long: `View or edit your termchat configuration.

Examples:
  termchat config           # show effective config
  termchat config edit      # edit in $EDITOR
  termchat config path      # print config file path`,
	RunE: configShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file in $EDITOR",
	RunE:  configEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configView mirrors Config for YAML output with API keys redacted.
type configView struct {
	Provider string `yaml:"provider"`
	Chat     struct {
		System          string  `yaml:"system,omitempty"`
		DebounceMS      int     `yaml:"debounce_ms"`
		MaxOutputTokens int     `yaml:"max_output_tokens"`
		Temperature     float32 `yaml:"temperature,omitempty"`
	} `yaml:"chat"`
	Session struct {
		Disabled bool   `yaml:"disabled,omitempty"`
		Path     string `yaml:"path,omitempty"`
	} `yaml:"session,omitempty"`
	Anthropic struct {
		APIKey string `yaml:"api_key,omitempty"`
		Model  string `yaml:"model"`
	} `yaml:"anthropic"`
	OpenAI struct {
		APIKey string `yaml:"api_key,omitempty"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`
	Replay struct {
		File    string `yaml:"file,omitempty"`
		Variant string `yaml:"variant"`
	} `yaml:"replay"`
}

func configShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		fmt.Printf("# No config file (using defaults)\n")
		fmt.Printf("# Create one at: %s\n\n", configPath)
	} else {
		fmt.Printf("# %s\n\n", configPath)
	}

	var view configView
	view.Provider = cfg.Provider
	view.Chat.System = cfg.Chat.System
	view.Chat.DebounceMS = cfg.Chat.DebounceMS
	view.Chat.MaxOutputTokens = cfg.Chat.MaxOutputTokens
	view.Chat.Temperature = cfg.Chat.Temperature
	view.Session.Disabled = cfg.Session.Disabled
	view.Session.Path = cfg.Session.Path
	view.Anthropic.APIKey = redactKey(cfg.Anthropic.APIKey)
	view.Anthropic.Model = cfg.Anthropic.Model
	view.OpenAI.APIKey = redactKey(cfg.OpenAI.APIKey)
	view.OpenAI.Model = cfg.OpenAI.Model
	view.Replay.File = cfg.Replay.File
	view.Replay.Variant = cfg.Replay.Variant

	out, err := yaml.Marshal(view)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func redactKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func configEdit(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, configPath)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
