package waterfall

import "testing"

func TestMatchOption(t *testing.T) {
	t.Parallel()

	options := []string{"Select...", "Yes", "No", "Decline to answer"}

	tests := []struct {
		name   string
		answer string
		want   string
		ok     bool
	}{
		{name: "exact", answer: "Yes", want: "Yes", ok: true},
		{name: "case-insensitive", answer: "no", want: "No", ok: true},
		{name: "answer contains option", answer: "Yes, I am authorized", want: "Yes", ok: true},
		{name: "option contains answer", answer: "Decline", want: "Decline to answer", ok: true},
		{name: "no partial words", answer: "Nope", ok: false},
		{name: "placeholder never matches", answer: "Select...", ok: false},
		{name: "unrelated", answer: "Maybe later", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := MatchOption(tt.answer, options)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("MatchOption(%q) = (%q, %v), want (%q, %v)", tt.answer, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMatchOptionRejectsSubwordMatches(t *testing.T) {
	t.Parallel()

	if got, ok := MatchOption("No", []string{"None of the above", "Nonbinary"}); ok {
		t.Fatalf("expected No to stay unmatched, got %q", got)
	}
}
