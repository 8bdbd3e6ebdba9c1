package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/termchat/termchat/internal/config"
	"github.com/termchat/termchat/internal/ui"
)

var (
	flagProvider  string
	flagModel     string
	flagNoSession bool
	flagPlain     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "Override provider (anthropic, openai, replay)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Override model for the active provider")
	rootCmd.PersistentFlags().BoolVar(&flagNoSession, "no-session", false, "Disable session persistence for this run")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "Plain text output, no colors or hyperlinks")
}

var rootCmd = &cobra.Command{
	Use:   "termchat",
	Short: "Chat with an LLM in your terminal",
	Long: `termchat streams LLM responses into your terminal, rendering
markdown as it arrives.

Examples:
  termchat chat                          # interactive chat
  termchat chat --provider openai        # use a specific provider
  termchat render README.md             # render a markdown file
  cat notes.md | termchat render         # render from stdin

  termchat sessions                      # list stored sessions
  termchat config                        # show effective configuration`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(flagProvider, flagModel)
	if flagNoSession {
		cfg.Session.Disabled = true
	}
	return cfg, nil
}

func initThemeFromConfig(cfg *config.Config) {
	ui.InitTheme(ui.ThemeConfig{
		Primary:   cfg.Theme.Primary,
		Secondary: cfg.Theme.Secondary,
		Success:   cfg.Theme.Success,
		Error:     cfg.Theme.Error,
		Warning:   cfg.Theme.Warning,
		Muted:     cfg.Theme.Muted,
		Text:      cfg.Theme.Text,
		Spinner:   cfg.Theme.Spinner,
	})
}
