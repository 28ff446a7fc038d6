package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/policy"
	"github.com/pthm/dilint/internal/rules"
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy <file.go>",
	Short: "Show the options that apply to a file",
	Long: `Show the policy dilint builds for a file, after the options file
and its overrides are applied.

Examples:
  dilint policy internal/server/server.go
  dilint policy --format json main.go`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicy,
}

func init() {
	RootCmd.AddCommand(policyCmd)
}

// policyField is one resolved setting.
type policyField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func runPolicy(cmd *cobra.Command, args []string) error {
	file, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	p := policy.Build(optionsProvider().OptionsFor(file))
	fields := describePolicy(p)

	u := GetUI()
	if u.IsJSON() {
		enc := json.NewEncoder(u.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	}

	s := u.Styles
	fmt.Fprintln(u.Writer, s.Header.Render(filepath.Base(file)))
	fmt.Fprintln(u.Writer, "  "+s.Path.Render(file))
	fmt.Fprintln(u.Writer)
	for _, f := range fields {
		fmt.Fprintf(u.Writer, "  %s = %s\n", s.Key.Render(f.Key), f.Value)
	}
	if p.Conflict() {
		style, icon := s.Severity(diag.Error)
		fmt.Fprintln(u.Writer)
		fmt.Fprintln(u.Writer, style.Render(icon+" "+rules.ConfigurationDescriptor.Format))
	}
	return nil
}

// describePolicy lists every setting of p in a fixed order. Unset lists are
// shown as "(unset)" to tell them apart from an empty entry.
func describePolicy(p *policy.Policy) []policyField {
	list := func(v []string) string {
		if v == nil {
			return "(unset)"
		}
		return strconv.Quote(strings.Join(v, ","))
	}

	limit := "none"
	if p.HasDependencyLimit() {
		limit = strconv.Itoa(p.AllowedDependencies())
	}

	fields := []policyField{
		{policy.KeyIncludedNamespaces, list(p.IncludedNamespaces())},
		{policy.KeyExcludedNamespaces, list(p.ExcludedNamespaces())},
		{policy.KeyExcludedTypes, list(p.ExcludedTypes())},
		{policy.KeyExcludedAssemblies, list(p.ExcludedAssemblies())},
		{policy.KeyExcludedFiles, list(p.ExcludedFiles())},
		{policy.KeyExcludePrivateTypes, strconv.FormatBool(p.ExcludePrivateTypes())},
		{policy.KeyExcludeNestedTypes, strconv.FormatBool(p.ExcludeNestedTypes())},
		{policy.KeyAllowedDependencies, limit},
	}

	for _, r := range rules.DefaultRegistry().Rules() {
		d := r.Descriptor()
		fields = append(fields, policyField{
			Key:   d.Code + policy.SeveritySuffix,
			Value: p.Severity(d.Code, d.DefaultSeverity).String(),
		})
	}
	return fields
}
