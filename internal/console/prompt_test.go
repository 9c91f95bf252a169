package console_test

import (
	"bytes"
	"strings"
	"testing"

	"photokeep/internal/console"
)

func TestConfirmAnswers(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{" YES \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"whatever\n", false},
		{"", false}, // closed stream defaults to no
	}
	for _, tc := range cases {
		var out bytes.Buffer
		p := console.NewPrompter(strings.NewReader(tc.input), &out)
		got, err := p.Confirm("Delete a.jpg?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if !strings.Contains(out.String(), "Delete a.jpg? [y/N]: ") {
			t.Errorf("prompt not written: %q", out.String())
		}
	}
}

func TestReadLineTrims(t *testing.T) {
	var out bytes.Buffer
	p := console.NewPrompter(strings.NewReader("  2024  \n"), &out)
	answer, err := p.ReadLine("Which year")
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if answer != "2024" {
		t.Fatalf("expected trimmed answer, got %q", answer)
	}
}
