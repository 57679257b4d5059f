package share

import (
	"strings"
	"testing"

	"github.com/robalobadob/birdle/internal/game"
)

func TestEncode_Won(t *testing.T) {
	got := Encode(Input{
		Guesses:     []string{"ABCDE", "ABBEY"},
		Solution:    "ABBEY",
		Label:       Label("", game.ModeDaily, 42),
		MaxAttempts: 6,
	})
	want := "🇸🇬 Birdle 42, 2/6\n\n🐓🐓🥚🥚🐣\n🐓🐓🐓🐓🐓"
	if got != want {
		t.Errorf("Encode mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestEncode_LostHardMode(t *testing.T) {
	guesses := []string{"CRANE", "EGRET", "RAVEN", "ROBIN", "STORK", "QUAIL"}
	got := Encode(Input{
		Guesses:     guesses,
		Solution:    "HERON",
		Label:       Label("Birdle", game.ModePractice, 0),
		Lost:        true,
		HardMode:    true,
		MaxAttempts: 6,
	})
	header := strings.SplitN(got, "\n", 2)[0]
	if header != "Birdle Practice, X/6*" {
		t.Errorf("Unexpected header %q", header)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 2+len(guesses) || lines[1] != "" {
		t.Errorf("Expected header, blank line and %d rows, got %q", len(guesses), got)
	}
}

func TestEncode_IdempotentAndLetterFree(t *testing.T) {
	in := Input{Guesses: []string{"HERON", "EGRET"}, Solution: "EGRET", Label: "Birdle 1,", MaxAttempts: 6}
	a, b := Encode(in), Encode(in)
	if a != b {
		t.Error("Encode should be deterministic")
	}
	body := strings.SplitN(a, "\n\n", 2)[1]
	for _, r := range "EGRTHON" {
		if strings.ContainsRune(body, r) {
			t.Errorf("Share grid leaks letter %c: %q", r, body)
		}
	}
}
