package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ultroi/sixbits/internal/store"
)

// CollegesHandler serves the public college directory.
type CollegesHandler struct {
	Store *store.Store
}

func (h *CollegesHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.get)
}

func (h *CollegesHandler) list(c echo.Context) error {
	items, err := h.Store.ListColleges(c.Request().Context(), c.QueryParam("district"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []store.College{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CollegesHandler) get(c echo.Context) error {
	item, err := h.Store.GetCollege(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "college not found")
	}
	return c.JSON(http.StatusOK, item)
}
