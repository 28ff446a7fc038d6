package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm/dilint/internal/config"
	"github.com/pthm/dilint/internal/policy"
	"github.com/pthm/dilint/internal/rules"
	"github.com/pthm/dilint/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()

	path, err := writeTemplate(dir, false)
	if err != nil {
		t.Fatalf("writeTemplate() error = %v", err)
	}
	if path != filepath.Join(dir, config.FileName) {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, config.Template()) {
		t.Error("written file should match the template")
	}

	if _, err := writeTemplate(dir, false); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Errorf("writeTemplate() error = %v, want refusal to overwrite", err)
	}

	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := writeTemplate(dir, true); err != nil {
		t.Fatalf("writeTemplate(force) error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if !bytes.Equal(data, config.Template()) {
		t.Error("forced write should replace the file")
	}
}

func TestDescribePolicy(t *testing.T) {
	p := policy.Build(map[string]string{
		policy.KeyExcludedNamespaces:  "bytes,",
		policy.KeyAllowedDependencies: "3",
		"DI0002.severity":             "none",
	})

	got := make(map[string]string)
	for _, f := range describePolicy(p) {
		got[f.Key] = f.Value
	}

	want := map[string]string{
		policy.KeyIncludedNamespaces:  "(unset)",
		policy.KeyExcludedNamespaces:  `"bytes,"`,
		policy.KeyExcludePrivateTypes: "false",
		policy.KeyAllowedDependencies: "3",
		"DI0001.severity":             "error",
		"DI0002.severity":             "none",
		"DI0003.severity":             "warning",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestDescribePolicyNoLimit(t *testing.T) {
	for _, f := range describePolicy(policy.Build(nil)) {
		if f.Key == policy.KeyAllowedDependencies && f.Value != "none" {
			t.Errorf("%s = %q, want none", f.Key, f.Value)
		}
	}
}

func TestDescribeRules(t *testing.T) {
	infos := describeRules(rules.DefaultRegistry())
	if len(infos) != 3 {
		t.Fatalf("got %d rules, want 3", len(infos))
	}

	di2 := infos[1]
	if di2.Code != rules.CodeNewOperator || di2.Severity != "warning" {
		t.Errorf("rule = %+v, want DI0002 warning", di2)
	}
	if last := di2.Options[len(di2.Options)-1]; last != "DI0002.severity" {
		t.Errorf("last option = %q, want DI0002.severity", last)
	}
}

func TestPrintRulesPlain(t *testing.T) {
	var buf bytes.Buffer
	u := ui.New(&buf, &buf, ui.FormatTerminal)
	if err := printRules(u, rules.DefaultRegistry()); err != nil {
		t.Fatalf("printRules() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"DI0001 Configuration error (error)", "DI0003.allowed_number_of_dependencies"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestIsTestMain(t *testing.T) {
	tests := []struct {
		pkg  packages.Package
		want bool
	}{
		{packages.Package{Name: "main", PkgPath: "example.com/p.test"}, true},
		{packages.Package{Name: "p", PkgPath: "example.com/p"}, false},
		{packages.Package{Name: "main", PkgPath: "example.com/cmd/tool"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.pkg.PkgPath, func(t *testing.T) {
			if got := isTestMain(&tt.pkg); got != tt.want {
				t.Errorf("isTestMain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderMarkdownFallback(t *testing.T) {
	got := renderMarkdown("# DI0002: New operator\n", 80)
	if !strings.Contains(got, "DI0002") {
		t.Errorf("renderMarkdown() = %q, want the heading text", got)
	}
}

func writeBrokenOptions(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte("options: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadConfigIgnoresBrokenDiscoveredFile(t *testing.T) {
	dir := writeBrokenOptions(t)
	t.Chdir(dir)
	t.Setenv(config.EnvConfig, "")
	configPath = ""

	cfg, explicit, ignored, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if explicit {
		t.Error("a discovered file is not explicit")
	}
	if ignored == nil {
		t.Error("loadConfig() should report the ignored file")
	}
	if cfg == nil || cfg.Path != "" || len(cfg.Options) != 0 {
		t.Errorf("loadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigRejectsBrokenNamedFile(t *testing.T) {
	dir := writeBrokenOptions(t)
	t.Setenv(config.EnvConfig, filepath.Join(dir, config.FileName))
	configPath = ""

	if _, _, _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should fail for a broken file named by $DILINT_CONFIG")
	}
}

func TestInitRepairsBrokenFile(t *testing.T) {
	dir := writeBrokenOptions(t)
	t.Chdir(dir)
	t.Setenv(config.EnvConfig, "")
	configPath = ""

	var out, errOut bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	c.SetErr(&errOut)
	if err := setup(c, nil); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if !strings.Contains(errOut.String(), "ignoring options file") {
		t.Errorf("stderr = %q, want a warning about the broken file", errOut.String())
	}

	if _, err := writeTemplate(".", true); err != nil {
		t.Fatalf("writeTemplate(force) error = %v", err)
	}
	if _, err := config.Load(config.FileName); err != nil {
		t.Errorf("repaired file does not load: %v", err)
	}
}
