package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ultroi/sixbits/internal/directory"
	"github.com/ultroi/sixbits/internal/store"
)

// CoursesHandler serves the public course directory.
type CoursesHandler struct {
	Store *store.Store
}

func (h *CoursesHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.get)
}

func (h *CoursesHandler) list(c echo.Context) error {
	items, err := h.Store.ListCourses(c.Request().Context(), c.QueryParam("stream"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []store.Course{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CoursesHandler) get(c echo.Context) error {
	item, err := h.Store.GetCourse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}
	return c.JSON(http.StatusOK, item)
}

// SearchHandler serves full-text search across courses and colleges.
type SearchHandler struct {
	Index *directory.Index
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.GET("", h.search)
}

func (h *SearchHandler) search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}
	hits, err := h.Index.Search(q, 10)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hits == nil {
		hits = []directory.Hit{}
	}
	return c.JSON(http.StatusOK, hits)
}
