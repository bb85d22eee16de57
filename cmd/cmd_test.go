package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/hh-autofill/internal/ai/registry"
	"github.com/spigell/hh-autofill/internal/form"
)

func TestParseBullets(t *testing.T) {
	got := parseBullets("- Built APIs\n\n* Led a team of 4\n  • Cut costs by 20%\nplain line\n")
	want := []string{"Built APIs", "Led a team of 4", "Cut costs by 20%", "plain line"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected bullets (-want +got):\n%s", diff)
	}
}

func TestReadFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.yaml")
	data := `
fields:
  - kind: input
    label: Email
    id: email
  - kind: select
    label: Gender
    required: true
    options: ["Select...", "Male", "Female"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := readFields(path)
	if err != nil {
		t.Fatalf("readFields: %v", err)
	}
	want := []form.Field{
		{Kind: form.KindInput, Label: "Email", ID: "email"},
		{Kind: form.KindSelect, Label: "Gender", Required: true, Options: []string{"Select...", "Male", "Female"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("fields: []\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := readFields(empty); err == nil {
		t.Fatal("expected an error for a file without fields")
	}
	if _, err := readFields(""); err == nil {
		t.Fatal("expected an error without a path")
	}
}

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	if err := os.WriteFile(path, []byte("  Go engineer \n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := readText(path, "job description")
	if err != nil {
		t.Fatalf("readText: %v", err)
	}
	if got != "Go engineer" {
		t.Fatalf("expected trimmed text, got %q", got)
	}

	if _, err := readText(filepath.Join(t.TempDir(), "missing.txt"), "resume"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRedactedHidesInlineKeys(t *testing.T) {
	config := &Config{Providers: ProvidersConfig{
		Primary:   []registry.ProviderConfig{{Name: "openrouter", APIKey: "secret"}},
		Secondary: []registry.ProviderConfig{{Name: "gemini", APIKeyEnv: "GEMINI_API_KEY"}},
	}}

	got := redacted(config)
	if got.Providers.Primary[0].APIKey != "***" {
		t.Fatalf("expected inline key to be hidden, got %q", got.Providers.Primary[0].APIKey)
	}
	if got.Providers.Secondary[0].APIKeyEnv != "GEMINI_API_KEY" {
		t.Fatal("env variable names are not secret and must be kept")
	}
	if config.Providers.Primary[0].APIKey != "secret" {
		t.Fatal("redacted must not modify the original config")
	}
}
