package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  from-file \n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	original := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		if key == "GROQ_API_KEY" {
			return " from-env ", true
		}
		return "", false
	}
	defer func() { lookupEnv = original }()

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr string
	}{
		{name: "file wins", src: Source{Name: "groq", File: keyFile, Env: "GROQ_API_KEY", Value: "inline"}, want: "from-file"},
		{name: "env before value", src: Source{Name: "groq", Env: "GROQ_API_KEY", Value: "inline"}, want: "from-env"},
		{name: "inline value", src: Source{Name: "groq", Env: "MISSING", Value: " inline "}, want: "inline"},
		{name: "empty file", src: Source{Name: "groq", File: emptyFile}, wantErr: "is empty"},
		{name: "missing file", src: Source{Name: "groq", File: filepath.Join(dir, "nope")}, wantErr: "reading groq"},
		{name: "unset env", src: Source{Name: "groq", Env: "MISSING"}, wantErr: "MISSING is unset"},
		{name: "nothing", src: Source{}, wantErr: "secret is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
