package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/termchat/termchat/internal/llm"
	"github.com/termchat/termchat/internal/markdown"
	"github.com/termchat/termchat/internal/render"
	"github.com/termchat/termchat/internal/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored chat sessions",
	Long: `List, search, inspect and delete stored chat sessions.

Examples:
  termchat sessions                       # list recent sessions
  termchat sessions search "rate limit"   # full-text search
  termchat sessions show a1b2c3d4         # print a session transcript
  termchat sessions delete a1b2c3d4`,
	RunE: runSessionsList,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE:  runSessionsList,
}

var sessionsSearchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Full-text search across session messages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSessionsSearch,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session and its messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var (
	sessionsProvider string
	sessionsLimit    int
	sessionsStatus   string
	sessionsJSON     bool
)

func init() {
	sessionsListCmd.Flags().StringVar(&sessionsProvider, "filter-provider", "", "Filter by provider")
	sessionsListCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum number of sessions to list")
	sessionsListCmd.Flags().StringVar(&sessionsStatus, "status", "", "Filter by status (active, complete, error, interrupted)")

	sessionsShowCmd.Flags().BoolVar(&sessionsJSON, "json", false, "Output as JSON")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsSearchCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)

	rootCmd.AddCommand(sessionsCmd)
}

func getSessionStore() (session.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Session.Disabled {
		return nil, fmt.Errorf("session storage is disabled in config")
	}
	return session.NewStore(session.Config{Path: cfg.Session.Path})
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	if sessionsStatus != "" {
		validStatuses := []string{"active", "complete", "error", "interrupted"}
		if !slices.Contains(validStatuses, sessionsStatus) {
			return fmt.Errorf("invalid status %q: must be one of %v", sessionsStatus, validStatuses)
		}
	}

	store, err := getSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(context.Background(), session.ListOptions{
		Provider: sessionsProvider,
		Status:   session.SessionStatus(sessionsStatus),
		Limit:    sessionsLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	fmt.Printf("%-10s %-30s %4s %-11s %-11s %s\n",
		"ID", "SUMMARY", "MSGS", "TOKENS", "STATUS", "AGE")
	fmt.Println(strings.Repeat("-", 80))

	for _, s := range summaries {
		summary := s.Summary
		if s.Name != "" {
			summary = s.Name
		}
		if len(summary) > 30 {
			summary = summary[:27] + "..."
		}

		status := string(s.Status)
		if status == "" {
			status = "active"
		}

		fmt.Printf("%-10s %-30s %4d %-11s %-11s %s\n",
			session.ShortID(s.ID), summary, s.MessageCount,
			formatTokens(s.InputTokens, s.OutputTokens), status,
			formatRelativeTime(s.UpdatedAt))
	}
	return nil
}

// formatTokens formats input/output tokens in compact "1.2k/340" form.
func formatTokens(input, output int) string {
	if input == 0 && output == 0 {
		return "-"
	}
	return fmt.Sprintf("%s/%s", formatCount(input), formatCount(output))
}

func formatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		val := float64(n) / 1000
		if val == float64(int(val)) {
			return fmt.Sprintf("%dk", int(val))
		}
		return fmt.Sprintf("%.1fk", val)
	}
	val := float64(n) / 1000000
	if val == float64(int(val)) {
		return fmt.Sprintf("%dM", int(val))
	}
	return fmt.Sprintf("%.1fM", val)
}

func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func runSessionsSearch(cmd *cobra.Command, args []string) error {
	store, err := getSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	query := strings.Join(args, " ")
	results, err := store.Search(context.Background(), query, 20)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No results found for '%s'\n", query)
		return nil
	}

	fmt.Printf("Found %d matches for '%s':\n\n", len(results), query)
	for _, r := range results {
		name := r.SessionName
		if name == "" {
			name = session.ShortID(r.SessionID)
		}
		fmt.Printf("%s (%s)\n", name, r.Provider)
		fmt.Printf("  %s\n\n", r.Snippet)
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	store, err := getSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	sess, err := resolveSession(ctx, store, args[0])
	if err != nil {
		return err
	}

	messages, err := store.GetMessages(ctx, sess.ID, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	if sessionsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Session  *session.Session  `json:"session"`
			Messages []session.Message `json:"messages"`
		}{sess, messages})
	}

	fmt.Printf("Session:  %s\n", sess.ID)
	fmt.Printf("Provider: %s (%s)\n", sess.Provider, sess.Model)
	fmt.Printf("Created:  %s\n", sess.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Tokens:   %s\n\n", formatTokens(sess.InputTokens, sess.OutputTokens))

	r := render.New(render.Options{Width: 80})
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleUser:
			fmt.Printf("❯ %s\n\n", msg.Content)
		case llm.RoleAssistant:
			fmt.Println(r.Render(markdown.Parse(msg.Content)))
			if msg.StreamError != "" {
				fmt.Printf("✗ %s\n", msg.StreamError)
			}
			fmt.Println()
		}
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	store, err := getSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	sess, err := resolveSession(ctx, store, args[0])
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	fmt.Printf("Deleted session %s\n", session.ShortID(sess.ID))
	return nil
}
