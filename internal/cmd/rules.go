package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/policy"
	"github.com/pthm/dilint/internal/rules"
	"github.com/pthm/dilint/internal/ui"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRules(GetUI(), rules.DefaultRegistry())
	},
}

func init() {
	RootCmd.AddCommand(rulesCmd)
}

type ruleInfo struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Severity string   `json:"severity"`
	Category string   `json:"category"`
	Options  []string `json:"options,omitempty"`
}

func describeRules(reg *rules.Registry) []ruleInfo {
	var out []ruleInfo
	for _, r := range reg.Rules() {
		d := r.Descriptor()
		out = append(out, ruleInfo{
			Code:     d.Code,
			Name:     r.Name(),
			Title:    d.Title,
			Severity: d.DefaultSeverity.String(),
			Category: d.Category,
			Options:  append(r.Options(), d.Code+policy.SeveritySuffix),
		})
	}
	return out
}

func printRules(u *ui.UI, reg *rules.Registry) error {
	infos := describeRules(reg)
	if u.IsJSON() {
		enc := json.NewEncoder(u.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	s := u.Styles
	for i, info := range infos {
		if i > 0 {
			fmt.Fprintln(u.Writer)
		}
		style, _ := s.Severity(severityOf(info.Severity))
		fmt.Fprintf(u.Writer, "%s %s %s\n",
			s.Header.Render(info.Code),
			info.Title,
			style.Render("("+info.Severity+")"),
		)
		fmt.Fprintf(u.Writer, "  %s\n", s.Path.Render(info.Name+", "+strings.ToLower(info.Category)))
		printOptions(u.Writer, s, info.Options)
	}
	return nil
}

func printOptions(w io.Writer, s *ui.Styles, keys []string) {
	for _, k := range keys {
		fmt.Fprintf(w, "    %s\n", s.Key.Render(k))
	}
}

func severityOf(name string) diag.Severity {
	sev, ok := diag.ParseSeverity(name)
	if !ok {
		return diag.Info
	}
	return sev
}
