package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termchat/termchat/internal/debuglog"
	"github.com/termchat/termchat/internal/llm"
	"github.com/termchat/termchat/internal/session"
	"github.com/termchat/termchat/internal/signal"
	"github.com/termchat/termchat/internal/tui/chat"
)

var (
	chatResume string
	chatReplay string
	chatDebug  bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the configured provider.
Responses stream in and are rendered as markdown while they arrive.

Examples:
  termchat chat
  termchat chat --provider replay        # offline demo, no API key needed
  termchat chat --resume a1b2c3d4        # continue a stored session

Keyboard shortcuts:
  Enter   - Send message
  Esc     - Cancel streaming
  Ctrl+C  - Quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatResume, "resume", "", "Resume a stored session by id (prefixes accepted)")
	chatCmd.Flags().StringVar(&chatReplay, "replay", "", "Replay a markdown file instead of calling a provider")
	chatCmd.Flags().BoolVarP(&chatDebug, "debug", "d", false, "Log stream traffic to a debug file")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext()
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initThemeFromConfig(cfg)

	if chatReplay != "" {
		cfg.Provider = "replay"
		cfg.Replay.File = chatReplay
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}

	store, err := session.NewStore(session.Config{
		Disabled: cfg.Session.Disabled,
		Path:     cfg.Session.Path,
	})
	if err != nil {
		// A broken database falls back to in-memory; chat still works.
		fmt.Fprintf(os.Stderr, "warning: session storage unavailable: %v\n", err)
		store = &session.NoopStore{}
	}
	defer store.Close()

	logged := session.NewLoggingStore(store, func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	})

	var sess *session.Session
	if chatResume != "" {
		sess, err = resolveSession(ctx, store, chatResume)
		if err != nil {
			return err
		}
	}

	var dbg *debuglog.Logger
	if chatDebug {
		dataDir, err := session.GetDataDir()
		if err != nil {
			return err
		}
		dbg, err = debuglog.Open(dataDir)
		if err != nil {
			return err
		}
		defer dbg.Close()
		fmt.Fprintf(os.Stderr, "debug log: %s\n", dbg.Path())
	}

	return chat.Run(ctx, cfg, provider, logged, sess, dbg)
}

// resolveSession finds a session by full id or unique prefix.
func resolveSession(ctx context.Context, store session.Store, id string) (*session.Session, error) {
	if s, err := store.Get(ctx, id); err != nil {
		return nil, err
	} else if s != nil {
		return s, nil
	}

	summaries, err := store.List(ctx, session.ListOptions{Limit: 1000})
	if err != nil {
		return nil, err
	}
	var match *session.Session
	for _, s := range summaries {
		if len(s.ID) >= len(id) && s.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("session id %q is ambiguous", id)
			}
			full, err := store.Get(ctx, s.ID)
			if err != nil {
				return nil, err
			}
			match = full
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session %q not found", id)
	}
	return match, nil
}
