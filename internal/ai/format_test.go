package ai

import (
	"strings"
	"testing"
)

func TestFormatResponseAsteriskCleanup(t *testing.T) {
	got := FormatResponse("* * Point one\n\n\n\nBasically point two")
	want := "**Point one**\n\nPoint two"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatResponseBullets(t *testing.T) {
	got := FormatResponse("*item one\n*   item two")
	want := "- item one\n- item two"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatResponseHeadingsAndLists(t *testing.T) {
	got := FormatResponse("##Options after 12th\n1.Engineering\n2.Medicine")
	want := "## Options after 12th\n1. Engineering\n2. Medicine"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatResponseStarRuns(t *testing.T) {
	got := FormatResponse("***Bold***")
	if got != "**Bold**" {
		t.Fatalf("got %q, want %q", got, "**Bold**")
	}
}

func TestFormatResponseFillerRemoval(t *testing.T) {
	cases := map[string]string{
		"So, you should apply for CUET.": "You should apply for CUET.",
		"Actually, the exam is in May.":  "The exam is in May.",
		"As an AI, I suggest commerce.":  "I suggest commerce.",
		"In my opinion, arts fits you.":  "Arts fits you.",
	}
	for in, want := range cases {
		if got := FormatResponse(in); got != want {
			t.Errorf("FormatResponse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatResponseWordCap(t *testing.T) {
	raw := strings.TrimSpace(strings.Repeat("alpha ", 500))
	got := FormatResponse(raw)
	if !strings.HasSuffix(got, "\n\n...") {
		t.Fatalf("truncated output must end with ellipsis paragraph, got tail %q", got[len(got)-10:])
	}
	words := strings.Fields(got)
	if len(words) != keepWords+1 { // kept words plus the ellipsis marker
		t.Fatalf("got %d words, want %d", len(words), keepWords+1)
	}
}

func TestFormatResponseUnderCapUntouched(t *testing.T) {
	raw := strings.TrimSpace(strings.Repeat("beta ", 100))
	got := FormatResponse(raw)
	if strings.Contains(got, "...") {
		t.Fatalf("short reply must not be truncated: %q", got)
	}
	if len(strings.Fields(got)) != 100 {
		t.Fatalf("got %d words, want 100", len(strings.Fields(got)))
	}
}

func TestFormatResponseIdempotent(t *testing.T) {
	inputs := []string{
		"* * Point one\n\n\n\nBasically point two",
		"*item one\n*item two",
		"** dangling bold\nplain line",
		"##Heading\n\nso, some    spaced   text",
		"***Heavy*** emphasis * stray * stars",
	}
	for _, in := range inputs {
		once := FormatResponse(in)
		twice := FormatResponse(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}
