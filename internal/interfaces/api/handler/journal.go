package handler

import (
	"net/http"
	"strconv"

	"healthlog/internal/application/service"
	"healthlog/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultListLimit = 100

// EntryHandler serves CRUD routes for one journal category.
type EntryHandler[T any] struct {
	svc *service.EntryService[T]
	log logger.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler[T any](svc *service.EntryService[T], log logger.Logger) *EntryHandler[T] {
	return &EntryHandler[T]{svc: svc, log: log}
}

// Register mounts the category routes on g.
func (h *EntryHandler[T]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List returns recent entries. ?limit=0 returns all of them.
func (h *EntryHandler[T]) List(c echo.Context) error {
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return badRequest(c, "limit must be a non-negative integer")
		}
		limit = n
	}
	entries, err := h.svc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *EntryHandler[T]) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	entry, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler[T]) Create(c echo.Context) error {
	entry := new(T)
	if err := c.Bind(entry); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.Create(c.Request().Context(), entry); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *EntryHandler[T]) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	entry := new(T)
	if err := c.Bind(entry); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.Update(c.Request().Context(), id, entry); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler[T]) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
