package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/pthm/dilint/internal/rules"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <rule>",
	Short: "Show the documentation for a rule",
	Long: `Show the documentation for a rule, by code or name.

Examples:
  dilint explain DI0002
  dilint explain too-many-dependencies`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	RootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	rule := rules.DefaultRegistry().Get(args[0])
	if rule == nil {
		return fmt.Errorf("unknown rule %q (see dilint rules)", args[0])
	}

	doc, ok := rules.Doc(rule)
	if !ok {
		return fmt.Errorf("no documentation for %s", rule.Descriptor().Code)
	}

	u := GetUI()
	if !u.IsInteractive() {
		_, err := fmt.Fprint(u.Writer, doc)
		return err
	}

	_, err := fmt.Fprint(u.Writer, renderMarkdown(doc, 80))
	return err
}

// renderMarkdown styles md for the terminal, falling back to the raw text.
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
