package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ultroi/sixbits/internal/ai"
	"github.com/ultroi/sixbits/internal/runtime"
	"github.com/ultroi/sixbits/internal/store"
)

// Answer categories are assigned by fixed question-index ranges: questions
// 0-2 count as interest, 3-5 as strength, 6-9 as personality. The category
// the generator declares on each question is NOT consulted during scoring.
// This reproduces the shipped behaviour; see DESIGN.md before changing it.
func categoryForIndex(i int) string {
	switch {
	case i <= 2:
		return "interest"
	case i <= 5:
		return "strength"
	default:
		return "personality"
	}
}

// Category weights used when folding tallies into a stream recommendation.
var categoryWeights = map[string]int{"interest": 3, "strength": 2, "personality": 1}

var streams = []string{"science", "commerce", "arts", "vocational"}

type QuizHandler struct {
	Store  *store.Store
	Chain  ai.TextProvider
	Logger *log.Logger
}

func (h *QuizHandler) Register(g *echo.Group, secret []byte) {
	g.Use(runtime.EchoAuthMiddleware(secret))
	g.POST("/generate", h.generate)
	g.POST("/submit", h.submit)
	g.GET("/results", h.results)
}

func (h *QuizHandler) generate(c echo.Context) error {
	userID := c.Get("user_id").(string)
	ctx := c.Request().Context()

	questions := h.generateQuestions(c)
	raw, err := json.Marshal(questions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	attemptID := uuid.NewString()
	if err := h.Store.CreateQuizAttempt(ctx, attemptID, userID, raw); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, QuizGenerateResponse{AttemptID: attemptID, Questions: questions})
}

// generateQuestions asks the AI for a personalized question set and falls
// back to the static bank when the AI is unavailable or returns junk.
func (h *QuizHandler) generateQuestions(c echo.Context) []QuizQuestion {
	out, err := h.Chain.Complete(c.Request().Context(), "", nil, ai.QuizGenerationPrompt())
	if err != nil {
		h.Logger.Printf("quiz generation failed, using question bank: %v", err)
		return questionBank
	}
	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(stripCodeFence(out)), &questions); err != nil || len(questions) != 10 {
		h.Logger.Printf("quiz generation returned unusable JSON, using question bank")
		return questionBank
	}
	for _, q := range questions {
		if len(q.Options) != 4 {
			h.Logger.Printf("quiz generation returned malformed options, using question bank")
			return questionBank
		}
	}
	return questions
}

func (h *QuizHandler) submit(c echo.Context) error {
	userID := c.Get("user_id").(string)
	ctx := c.Request().Context()

	var req QuizSubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	raw, err := h.Store.GetQuizAttempt(ctx, req.AttemptID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "attempt not found")
	}
	var questions []QuizQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(req.Answers) != len(questions) {
		return echo.NewHTTPError(http.StatusBadRequest, "one answer per question required")
	}

	scores, recommended := scoreAnswers(questions, req.Answers)
	if scores == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "answer index out of range")
	}

	answersB, _ := json.Marshal(req.Answers)
	scoresB, _ := json.Marshal(scores)
	if err := h.Store.SaveQuizResult(ctx, req.AttemptID, userID, answersB, scoresB, recommended); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, QuizSubmitResponse{
		AttemptID:         req.AttemptID,
		Scores:            scores,
		RecommendedStream: recommended,
	})
}

// scoreAnswers tallies chosen streams per index-range category and folds the
// tallies into a recommendation. Returns nil scores on an invalid answer.
func scoreAnswers(questions []QuizQuestion, answers []int) (map[string]map[string]int, string) {
	scores := map[string]map[string]int{
		"interest":    {},
		"strength":    {},
		"personality": {},
	}
	for i, pick := range answers {
		if pick < 0 || pick >= len(questions[i].Options) {
			return nil, ""
		}
		cat := categoryForIndex(i)
		scores[cat][questions[i].Options[pick].Stream]++
	}

	best, bestTotal := "", -1
	for _, stream := range streams {
		total := 0
		for cat, tally := range scores {
			total += categoryWeights[cat] * tally[stream]
		}
		if total > bestTotal {
			best, bestTotal = stream, total
		}
	}
	return scores, best
}

func (h *QuizHandler) results(c echo.Context) error {
	userID := c.Get("user_id").(string)
	items, err := h.Store.ListQuizResults(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []store.QuizResult{}
	}
	return c.JSON(http.StatusOK, items)
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
