package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]any
		ok    bool
	}{
		{
			name:  "embedded in prose",
			input: `Here is the data: {"a":1,"b":"x"} thanks`,
			want:  map[string]any{"a": float64(1), "b": "x"},
			ok:    true,
		},
		{
			name:  "nested objects use widest span",
			input: `result {"score": 80, "details": {"pros": ["go"]}} done`,
			want:  map[string]any{"score": float64(80), "details": map[string]any{"pros": []any{"go"}}},
			ok:    true,
		},
		{
			name:  "code fence",
			input: "```json\n{\"essay\": \"Hello\"}\n```",
			want:  map[string]any{"essay": "Hello"},
			ok:    true,
		},
		{
			name:  "repairs invalid escape",
			input: `{"note":"line1\invalidescape"}`,
			want:  map[string]any{"note": `line1\invalidescape`},
			ok:    true,
		},
		{
			name:  "keeps valid escapes",
			input: `{"note":"a\nb \"q\" \u0041"}`,
			want:  map[string]any{"note": "a\nb \"q\" A"},
			ok:    true,
		},
		{
			name:  "no object",
			input: "I cannot help with that.",
			ok:    false,
		},
		{
			name:  "broken beyond repair",
			input: `{"a": 1,,}`,
			ok:    false,
		},
		{
			name:  "reversed braces",
			input: `} nope {`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractJSON(tt.input)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v (%v)", tt.ok, ok, got)
			}
			if diff := cmp.Diff(tt.want, got); tt.ok && diff != "" {
				t.Fatalf("unexpected object (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractPlainAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: `  "Yes"  `, want: "Yes"},
		{input: `'No'`, want: "No"},
		{input: `"Mixed'`, want: `"Mixed'`},
		{input: `""Twice""`, want: `"Twice"`},
		{input: "\nDecline\n", want: "Decline"},
		{input: `"`, want: `"`},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := ExtractPlainAnswer(tt.input); got != tt.want {
			t.Errorf("ExtractPlainAnswer(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRepairEscapes(t *testing.T) {
	t.Parallel()

	got := RepairEscapes(`C:\path\n \\ \d`)
	want := `C:\\path\n \\ \\d`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
