package handler

import (
	"fmt"
	"net/http"
	"time"

	"healthlog/internal/application/dto"
	"healthlog/internal/application/service"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

var errReminderOfOtherSet = fmt.Errorf("%w: reminder belongs to another set", appErrors.ErrReminderNotFound)

// MedicationSetHandler serves medication sets, set logging and reminders.
type MedicationSetHandler struct {
	setService      service.MedicationSetService
	reminderService service.ReminderService
	log             logger.Logger
}

// NewMedicationSetHandler creates a new MedicationSetHandler.
func NewMedicationSetHandler(
	setService service.MedicationSetService,
	reminderService service.ReminderService,
	log logger.Logger,
) *MedicationSetHandler {
	return &MedicationSetHandler{
		setService:      setService,
		reminderService: reminderService,
		log:             log,
	}
}

// Register mounts the set and reminder routes on g.
func (h *MedicationSetHandler) Register(g *echo.Group) {
	g.GET("", h.ListSets)
	g.POST("", h.CreateSet)
	g.GET("/:id", h.GetSet)
	g.PUT("/:id", h.UpdateSet)
	g.DELETE("/:id", h.DeleteSet)
	g.POST("/:id/log", h.LogSet)

	g.GET("/:id/reminders", h.ListReminders)
	g.POST("/:id/reminders", h.CreateReminder)
	g.GET("/:id/reminders/:reminderId", h.GetReminder)
	g.PUT("/:id/reminders/:reminderId", h.UpdateReminder)
	g.DELETE("/:id/reminders/:reminderId", h.DeleteReminder)
}

func (h *MedicationSetHandler) ListSets(c echo.Context) error {
	sets, err := h.setService.ListSets(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, sets)
}

func (h *MedicationSetHandler) CreateSet(c echo.Context) error {
	var req dto.SaveMedicationSetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	set, err := h.setService.CreateSet(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, set)
}

func (h *MedicationSetHandler) GetSet(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	set, err := h.setService.GetSet(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, set)
}

func (h *MedicationSetHandler) UpdateSet(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req dto.SaveMedicationSetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	set, err := h.setService.UpdateSet(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, set)
}

func (h *MedicationSetHandler) DeleteSet(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.setService.DeleteSet(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LogSet records the set as taken. An empty body logs it now.
func (h *MedicationSetHandler) LogSet(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req dto.LogMedicationSetRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	var at time.Time
	if req.Timestamp > 0 {
		at = time.UnixMilli(req.Timestamp)
	}
	setLog, err := h.setService.LogSet(c.Request().Context(), id, at)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, setLog)
}

func (h *MedicationSetHandler) ListReminders(c echo.Context) error {
	setID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if _, err := h.setService.GetSet(c.Request().Context(), setID); err != nil {
		return respondError(c, h.log, err)
	}
	reminders, err := h.reminderService.ListReminders(c.Request().Context(), setID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, reminders)
}

func (h *MedicationSetHandler) CreateReminder(c echo.Context) error {
	setID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req dto.SaveReminderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	reminder, err := h.reminderService.CreateReminder(c.Request().Context(), setID, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, reminder)
}

// reminderOfSet loads the reminder named in the path and checks it belongs to the set.
func (h *MedicationSetHandler) reminderOfSet(c echo.Context) (dto.ReminderResponse, error) {
	setID, err := parseID(c, "id")
	if err != nil {
		return dto.ReminderResponse{}, err
	}
	reminderID, err := parseID(c, "reminderId")
	if err != nil {
		return dto.ReminderResponse{}, err
	}
	reminder, err := h.reminderService.GetReminder(c.Request().Context(), reminderID)
	if err != nil {
		return dto.ReminderResponse{}, err
	}
	if reminder.SetID != setID {
		return dto.ReminderResponse{}, errReminderOfOtherSet
	}
	return reminder, nil
}

func (h *MedicationSetHandler) GetReminder(c echo.Context) error {
	reminder, err := h.reminderOfSet(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, reminder)
}

func (h *MedicationSetHandler) UpdateReminder(c echo.Context) error {
	current, err := h.reminderOfSet(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req dto.SaveReminderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	reminder, err := h.reminderService.UpdateReminder(c.Request().Context(), current.ID, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, reminder)
}

func (h *MedicationSetHandler) DeleteReminder(c echo.Context) error {
	current, err := h.reminderOfSet(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.reminderService.DeleteReminder(c.Request().Context(), current.ID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
