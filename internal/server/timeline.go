package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ultroi/sixbits/internal/runtime"
	"github.com/ultroi/sixbits/internal/store"
)

// TimelineHandler manages a user's exam/admission milestone tracker.
type TimelineHandler struct {
	Store *store.Store
}

func (h *TimelineHandler) Register(g *echo.Group, secret []byte) {
	g.Use(runtime.EchoAuthMiddleware(secret))
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *TimelineHandler) list(c echo.Context) error {
	userID := c.Get("user_id").(string)
	items, err := h.Store.ListTimeline(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []store.TimelineEvent{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *TimelineHandler) create(c echo.Context) error {
	userID := c.Get("user_id").(string)
	req, dueAt, err := bindEvent(c)
	if err != nil {
		return err
	}
	id, err := h.Store.CreateTimelineEvent(c.Request().Context(), userID, req.Title, req.Kind, dueAt, req.Notes)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *TimelineHandler) update(c echo.Context) error {
	userID := c.Get("user_id").(string)
	req, dueAt, err := bindEvent(c)
	if err != nil {
		return err
	}
	if err := h.Store.UpdateTimelineEvent(c.Request().Context(), c.Param("id"), userID,
		req.Title, req.Kind, dueAt, req.Done, req.Notes); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusOK)
}

func (h *TimelineHandler) delete(c echo.Context) error {
	userID := c.Get("user_id").(string)
	if err := h.Store.DeleteTimelineEvent(c.Request().Context(), c.Param("id"), userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusOK)
}

func bindEvent(c echo.Context) (TimelineEventRequest, time.Time, error) {
	var req TimelineEventRequest
	if err := c.Bind(&req); err != nil {
		return req, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Title == "" {
		return req, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "title required")
	}
	dueAt, err := time.Parse(time.RFC3339, req.DueAt)
	if err != nil {
		return req, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "due_at must be RFC 3339")
	}
	return req, dueAt, nil
}
