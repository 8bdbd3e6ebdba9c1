package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/termchat/termchat/internal/markdown"
	"github.com/termchat/termchat/internal/render"
	"github.com/termchat/termchat/internal/ui"
)

var renderWidth int

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render markdown to the terminal",
	Long: `Parse markdown from a file or stdin and print it rendered for the
terminal. Uses the same parser and renderer as the chat view, so it is
handy for previewing how a document will look mid-stream.

Examples:
  termchat render README.md
  cat notes.md | termchat render
  termchat render --width 60 doc.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Wrap width (default: terminal width)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initThemeFromConfig(cfg)

	var input []byte
	if len(args) == 1 {
		input, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
	} else {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	width := renderWidth
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if width == 0 {
		width = 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	r := render.New(render.Options{Width: width, Hyperlinks: isTTY && !flagPlain})
	out := r.Render(markdown.Parse(string(input)))
	if flagPlain {
		out = ui.StripANSI(out)
	}
	if out != "" {
		fmt.Println(out)
	}
	return nil
}
