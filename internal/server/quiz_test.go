package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ultroi/sixbits/internal/ai"
)

type fakeChain struct {
	out string
	err error
}

func (f *fakeChain) Name() string { return "fake" }
func (f *fakeChain) Complete(ctx context.Context, system string, history []ai.Turn, message string) (string, error) {
	return f.out, f.err
}

func TestCategoryForIndexRanges(t *testing.T) {
	want := map[int]string{
		0: "interest", 1: "interest", 2: "interest",
		3: "strength", 4: "strength", 5: "strength",
		6: "personality", 7: "personality", 8: "personality", 9: "personality",
	}
	for i, cat := range want {
		if got := categoryForIndex(i); got != cat {
			t.Errorf("categoryForIndex(%d) = %q, want %q", i, got, cat)
		}
	}
}

func TestScoreAnswersWeighting(t *testing.T) {
	// All ten answers pick option 0. Index-range categories apply regardless
	// of the category declared on the question.
	questions := make([]QuizQuestion, 10)
	for i := range questions {
		stream := "science"
		if i >= 6 {
			stream = "arts"
		}
		questions[i] = QuizQuestion{
			Text:     "q",
			Category: "personality", // deliberately wrong; scoring ignores it
			Options: []QuizOption{
				{Text: "a", Stream: stream},
				{Text: "b", Stream: "commerce"},
				{Text: "c", Stream: "arts"},
				{Text: "d", Stream: "vocational"},
			},
		}
	}
	answers := []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	scores, recommended := scoreAnswers(questions, answers)
	if scores == nil {
		t.Fatal("expected scores")
	}
	if scores["interest"]["science"] != 3 || scores["strength"]["science"] != 3 {
		t.Fatalf("index ranges not applied: %+v", scores)
	}
	if scores["personality"]["arts"] != 4 {
		t.Fatalf("personality tally wrong: %+v", scores)
	}
	// science: 3*3 + 2*3 = 15, arts: 1*4 = 4
	if recommended != "science" {
		t.Fatalf("recommended %q, want science", recommended)
	}
}

func TestScoreAnswersOutOfRange(t *testing.T) {
	questions := make([]QuizQuestion, 10)
	for i := range questions {
		questions[i] = QuizQuestion{Options: []QuizOption{{Stream: "science"}, {Stream: "arts"}, {Stream: "commerce"}, {Stream: "vocational"}}}
	}
	scores, _ := scoreAnswers(questions, []int{0, 0, 0, 0, 0, 4, 0, 0, 0, 0})
	if scores != nil {
		t.Fatal("out-of-range answer must invalidate the submission")
	}
	scores, _ = scoreAnswers(questions, []int{0, 0, -1, 0, 0, 0, 0, 0, 0, 0})
	if scores != nil {
		t.Fatal("negative answer must invalidate the submission")
	}
}

func TestGenerateQuestionsFallsBackOnError(t *testing.T) {
	h := &QuizHandler{Chain: &fakeChain{err: errors.New("provider down")}, Logger: log.New(io.Discard, "", 0)}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/quiz/generate", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	got := h.generateQuestions(c)
	if len(got) != 10 {
		t.Fatalf("fallback bank must have 10 questions, got %d", len(got))
	}
	for i, q := range got {
		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options", i, len(q.Options))
		}
	}
}

func TestGenerateQuestionsFallsBackOnBadJSON(t *testing.T) {
	h := &QuizHandler{Chain: &fakeChain{out: "not json"}, Logger: log.New(io.Discard, "", 0)}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/quiz/generate", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	got := h.generateQuestions(c)
	if len(got) != 10 {
		t.Fatalf("expected question bank fallback, got %d questions", len(got))
	}
}

func TestGenerateQuestionsAcceptsFencedJSON(t *testing.T) {
	bankJSON := "```json\n[" +
		`{"text":"q1","category":"interest","options":[{"text":"a","stream":"science"},{"text":"b","stream":"commerce"},{"text":"c","stream":"arts"},{"text":"d","stream":"vocational"}]}` + repeatQuestion(9) +
		"]\n```"
	h := &QuizHandler{Chain: &fakeChain{out: bankJSON}, Logger: log.New(io.Discard, "", 0)}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/quiz/generate", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	got := h.generateQuestions(c)
	if len(got) != 10 || got[0].Text != "q1" {
		t.Fatalf("fenced AI output must be accepted, got %d questions", len(got))
	}
}

func repeatQuestion(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += `,{"text":"q","category":"strength","options":[{"text":"a","stream":"science"},{"text":"b","stream":"commerce"},{"text":"c","stream":"arts"},{"text":"d","stream":"vocational"}]}`
	}
	return out
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"```json\n[1]\n```": "[1]",
		"```\n[1]\n```":     "[1]",
		"[1]":               "[1]",
		"  [1]  ":           "[1]",
	}
	for in, want := range cases {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}
