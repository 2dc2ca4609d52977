package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ultroi/sixbits/internal/news"
)

// NewsHandler serves education news for students.
type NewsHandler struct {
	Aggregator *news.Aggregator
	Reader     *news.Reader
}

func (h *NewsHandler) Register(g *echo.Group) {
	g.GET("/education", h.education)
	g.GET("/read", h.read)
}

func (h *NewsHandler) education(c echo.Context) error {
	limit := 5
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	relaxed := c.QueryParam("relaxed") == "true"

	articles, err := h.Aggregator.TopHeadlines(c.Request().Context(), limit, relaxed)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch news")
	}
	return c.JSON(http.StatusOK, articles)
}

func (h *NewsHandler) read(c echo.Context) error {
	rawURL := c.QueryParam("url")
	if rawURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url required")
	}
	result, err := h.Reader.Read(c.Request().Context(), rawURL)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "could not extract article")
	}
	return c.JSON(http.StatusOK, result)
}
