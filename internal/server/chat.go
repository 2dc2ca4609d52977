package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ultroi/sixbits/internal/ai"
	"github.com/ultroi/sixbits/internal/runtime"
	"github.com/ultroi/sixbits/internal/store"
)

// ChatHandler serves the AI counselor conversation.
type ChatHandler struct {
	Store        *store.Store
	Chain        ai.TextProvider
	Rdb          *redis.Client
	HistoryLimit int
	RateLimit    int // messages per user per minute, 0 disables
	Logger       *log.Logger
}

func (h *ChatHandler) Register(g *echo.Group, secret []byte) {
	g.Use(runtime.EchoAuthMiddleware(secret))
	g.POST("", h.send)
	g.GET("/history", h.history)
	g.DELETE("/history", h.clear)
}

func (h *ChatHandler) send(c echo.Context) error {
	userID := c.Get("user_id").(string)
	ctx := c.Request().Context()

	var req ChatRequest
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message required")
	}

	if err := h.checkRateLimit(ctx, userID); err != nil {
		return err
	}

	sessionID, err := h.Store.GetOrCreateSession(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	history, err := h.Store.ListMessages(ctx, sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Similar past exchanges feed the system prompt as advisory context.
	similar := ai.SimilarExchanges(req.Message, history)
	system := ai.CounselorSystemPrompt(similar)

	turns := recentTurns(history, h.HistoryLimit)

	// The user turn is persisted before the provider call so a failed
	// completion never drops it from the transcript.
	if err := h.Store.AppendMessage(ctx, sessionID, store.SenderUser, req.Message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reply, err := h.Chain.Complete(ctx, system, turns, req.Message)
	if err != nil {
		h.Logger.Printf("completion failed for user %s: %v", userID, err)
		return echo.NewHTTPError(ai.HTTPStatus(err), ai.UserMessage(err))
	}
	reply = ai.FormatResponse(reply)

	if err := h.Store.AppendMessage(ctx, sessionID, store.SenderBot, reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, ChatResponse{Reply: reply, SessionID: sessionID})
}

func (h *ChatHandler) history(c echo.Context) error {
	userID := c.Get("user_id").(string)
	ctx := c.Request().Context()

	sessionID, err := h.Store.GetOrCreateSession(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	msgs, err := h.Store.ListMessages(ctx, sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if msgs == nil {
		msgs = []store.ChatMessage{}
	}
	return c.JSON(http.StatusOK, ChatHistoryResponse{SessionID: sessionID, Messages: msgs})
}

func (h *ChatHandler) clear(c echo.Context) error {
	userID := c.Get("user_id").(string)
	ctx := c.Request().Context()

	sessionID, err := h.Store.GetOrCreateSession(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.Store.ClearSession(ctx, sessionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusOK)
}

// checkRateLimit counts messages per user per minute in redis. Without redis
// the limit is not enforced.
func (h *ChatHandler) checkRateLimit(ctx context.Context, userID string) error {
	if h.Rdb == nil || h.RateLimit <= 0 {
		return nil
	}
	key := fmt.Sprintf("chat:rl:%s:%d", userID, time.Now().Unix()/60)
	n, err := h.Rdb.Incr(ctx, key).Result()
	if err != nil {
		h.Logger.Printf("rate limit redis error: %v", err)
		return nil
	}
	if n == 1 {
		h.Rdb.Expire(ctx, key, time.Minute)
	}
	if n > int64(h.RateLimit) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many messages, slow down")
	}
	return nil
}

// recentTurns maps the tail of the transcript into provider turns.
func recentTurns(history []store.ChatMessage, limit int) []ai.Turn {
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	turns := make([]ai.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, ai.Turn{Role: m.Sender, Content: m.Content})
	}
	return turns
}
