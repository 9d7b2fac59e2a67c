package classify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/radar/pkg/dataset"
	pkgerrors "github.com/agentstation/radar/pkg/errors"
)

func TestDefaultRulesCompile(t *testing.T) {
	rules := DefaultRules()

	status, category, err := compileRules(rules)
	if err != nil {
		t.Fatalf("compileRules() error = %v", err)
	}
	if len(status) != 6 {
		t.Errorf("compiled %d status rules, want 6", len(status))
	}
	if len(category) != 5 {
		t.Errorf("compiled %d category rules, want 5", len(category))
	}
	if len(rules.Companies) != 11 {
		t.Errorf("company table has %d entries, want 11", len(rules.Companies))
	}
	if rules.Companies["huggingface.co"] != "Hugging Face" {
		t.Errorf("huggingface.co maps to %q", rules.Companies["huggingface.co"])
	}
}

func TestDefaultRulesPrecedence(t *testing.T) {
	rules := DefaultRules()
	if rules.Status[0].Status != dataset.StatusShipped {
		t.Errorf("first status rule = %s, want Shipped", rules.Status[0].Status)
	}
	if rules.Status[len(rules.Status)-1].Status != dataset.StatusDelayed {
		t.Errorf("last status rule = %s, want Delayed", rules.Status[len(rules.Status)-1].Status)
	}
	if rules.Category[0].Category != "Model/API" {
		t.Errorf("first category rule = %s, want Model/API", rules.Category[0].Category)
	}
}

func TestCompileRulesBadPattern(t *testing.T) {
	rules := Rules{
		Status: []StatusRule{{Status: dataset.StatusShipped, Pattern: `(`}},
	}
	if _, _, err := compileRules(rules); err == nil {
		t.Fatal("compileRules() error = nil, want pattern error")
	}
}

func TestCompileRulesBadStatus(t *testing.T) {
	rules := Rules{
		Status: []StatusRule{{Status: "Launched", Pattern: `launch`}},
	}
	_, _, err := compileRules(rules)
	if err == nil {
		t.Fatal("compileRules() error = nil, want status error")
	}
	var valErr *pkgerrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("error type = %T, want *ValidationError", err)
	}
}

func TestLoadRulesPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `companies:
  acme.example: Acme
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rules.Status) != 6 || len(rules.Category) != 5 {
		t.Errorf("default tables not kept: %d status, %d category", len(rules.Status), len(rules.Category))
	}
	if len(rules.Companies) != 1 || rules.Companies["acme.example"] != "Acme" {
		t.Errorf("Companies = %v, want the override only", rules.Companies)
	}
}

func TestLoadRulesFullOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `status:
  - status: Shipped
    pattern: \bshipped\b
category:
  - category: Hardware
    pattern: \bchip\b
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rules.Status) != 1 || rules.Status[0].Status != dataset.StatusShipped {
		t.Errorf("Status = %v", rules.Status)
	}
	if len(rules.Category) != 1 || rules.Category[0].Category != "Hardware" {
		t.Errorf("Category = %v", rules.Category)
	}
	if len(rules.Companies) != 11 {
		t.Errorf("company table has %d entries, want the 11 defaults", len(rules.Companies))
	}
}

func TestLoadRulesMissing(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadRules() error = nil, want read error")
	}
	var ioErr *pkgerrors.IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("error type = %T, want *IOError", err)
	}
}

func TestLoadRulesInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("status: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadRules(path)
	if err == nil {
		t.Fatal("LoadRules() error = nil, want parse error")
	}
	var parseErr *pkgerrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error type = %T, want *ParseError", err)
	}
}
