package rules

import (
	"testing"

	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/policy"
	"github.com/pthm/dilint/internal/symbol"
)

func testSite() Site {
	return Site{
		File:     "/0/Test0.cs",
		Assembly: "TestProject",
		Span:     diag.Span{File: "/0/Test0.cs", StartLine: 3, StartColumn: 50, EndLine: 3, EndColumn: 62},
	}
}

func systemObject() symbol.TypeFacts {
	return symbol.TypeFacts{
		Name:       "Object",
		Containers: []symbol.Container{symbol.Namespace("System"), symbol.Namespace("")},
	}
}

func testNested(access symbol.Access) symbol.TypeFacts {
	return symbol.TypeFacts{
		Name:       "Nested",
		Containers: []symbol.Container{symbol.Type("Test"), symbol.Namespace("")},
		Access:     access,
	}
}

func TestConstructionRule_Name(t *testing.T) {
	r := &ConstructionRule{}
	if r.Name() != "new-operator" {
		t.Errorf("Name() = %q, want %q", r.Name(), "new-operator")
	}
	if r.Descriptor().Code != CodeNewOperator {
		t.Errorf("Descriptor().Code = %q, want %q", r.Descriptor().Code, CodeNewOperator)
	}
}

func TestConstructionRule_NoConfiguration(t *testing.T) {
	r := &ConstructionRule{}
	d, ex, ok := r.Evaluate(testSite(), systemObject(), policy.Build(nil))
	if !ok {
		t.Fatalf("Evaluate() reported nothing, exemption %v", ex)
	}

	want := "Prefer using dependency inversion to new operator for the type System.Object"
	if d.Message != want {
		t.Errorf("Message = %q, want %q", d.Message, want)
	}
	if d.Code != CodeNewOperator {
		t.Errorf("Code = %q, want %q", d.Code, CodeNewOperator)
	}
	if d.Severity != diag.Warning {
		t.Errorf("Severity = %v, want %v", d.Severity, diag.Warning)
	}
	if d.Span != testSite().Span {
		t.Errorf("Span = %+v, want %+v", d.Span, testSite().Span)
	}
}

func TestConstructionRule_Exemptions(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]string
		facts   symbol.TypeFacts
		want    policy.Exemption
	}{
		{
			name:    "included namespace elsewhere",
			options: map[string]string{policy.KeyIncludedNamespaces: "System2"},
			facts:   systemObject(),
			want:    policy.ExemptOutOfScope,
		},
		{
			name:    "excluded namespace",
			options: map[string]string{policy.KeyExcludedNamespaces: "System"},
			facts:   systemObject(),
			want:    policy.ExemptNamespace,
		},
		{
			name: "excluded type",
			options: map[string]string{
				policy.KeyIncludedNamespaces: "System",
				policy.KeyExcludedTypes:      "System.Object",
			},
			facts: systemObject(),
			want:  policy.ExemptType,
		},
		{
			name:    "excluded assembly",
			options: map[string]string{policy.KeyExcludedAssemblies: "TestProject"},
			facts:   systemObject(),
			want:    policy.ExemptAssembly,
		},
		{
			name:    "excluded file",
			options: map[string]string{policy.KeyExcludedFiles: "/0/Test0.cs"},
			facts:   systemObject(),
			want:    policy.ExemptFile,
		},
		{
			name:    "private nested type",
			options: map[string]string{policy.KeyExcludePrivateTypes: "true"},
			facts:   testNested(symbol.Private),
			want:    policy.ExemptPrivate,
		},
		{
			name:    "public nested type",
			options: map[string]string{policy.KeyExcludeNestedTypes: "true"},
			facts:   testNested(symbol.Public),
			want:    policy.ExemptNested,
		},
	}

	r := &ConstructionRule{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ex, ok := r.Evaluate(testSite(), tt.facts, policy.Build(tt.options))
			if ok {
				t.Errorf("Evaluate() reported %q, want no diagnostic", d.Message)
			}
			if ex != tt.want {
				t.Errorf("exemption = %v, want %v", ex, tt.want)
			}
		})
	}
}

func TestConstructionRule_NestedTypeMessage(t *testing.T) {
	r := &ConstructionRule{}
	d, _, ok := r.Evaluate(testSite(), testNested(symbol.Private), policy.Build(nil))
	if !ok {
		t.Fatal("Evaluate() reported nothing for a private nested type without options")
	}

	want := "Prefer using dependency inversion to new operator for the type Test.Nested"
	if d.Message != want {
		t.Errorf("Message = %q, want %q", d.Message, want)
	}
}

func TestConstructionRule_Severity(t *testing.T) {
	r := &ConstructionRule{}

	d, _, ok := r.Evaluate(testSite(), systemObject(), policy.Build(map[string]string{"DI0002.severity": "error"}))
	if !ok || d.Severity != diag.Error {
		t.Errorf("Evaluate() = %v, %v, want error severity", d.Severity, ok)
	}

	_, ex, ok := r.Evaluate(testSite(), systemObject(), policy.Build(map[string]string{"DI0002.severity": "none"}))
	if ok {
		t.Error("Evaluate() reported a diagnostic for a disabled rule")
	}
	if ex != policy.NotExempt {
		t.Errorf("exemption = %v, want %v", ex, policy.NotExempt)
	}
}

func TestConstructionRule_Idempotent(t *testing.T) {
	r := &ConstructionRule{}
	p := policy.Build(map[string]string{policy.KeyIncludedNamespaces: "Sys"})

	first, _, ok1 := r.Evaluate(testSite(), systemObject(), p)
	second, _, ok2 := r.Evaluate(testSite(), systemObject(), p)
	if !ok1 || !ok2 {
		t.Fatal("expected both evaluations to report")
	}
	if first != second {
		t.Errorf("evaluations differ: %+v vs %+v", first, second)
	}
}
