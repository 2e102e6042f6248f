package action

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/schedule"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/httputil"
)

type Handler struct {
	menu  *schedule.Menu
	store *schedule.Store
}

func NewHandler(menu *schedule.Menu, store *schedule.Store) *Handler {
	return &Handler{menu: menu, store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedule/actions", h.ActionsFor)
	rg.POST("/schedule/actions/open", h.Open)
	rg.POST("/schedule/actions/:context_id/discard", h.Discard)
	rg.POST("/schedule/actions/:context_id/personal-task", h.PersonalTask)
	rg.POST("/schedule/actions/:context_id/waitlist", h.Waitlist)
	rg.POST("/schedule/actions/:context_id/working-hours", h.WorkingHours)
	rg.GET("/schedule/waitlist", h.ListWaitlist)
	rg.GET("/schedule/shifts", h.ListShifts)
}

// ActionsFor returns the menu for one cell, occupied or empty.
func (h *Handler) ActionsFor(c *gin.Context) {
	var apt *model.Appointment
	if id := c.Query("appointment_id"); id != "" {
		aid, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewBadRequest("invalid appointment id", err))
			return
		}
		apt, err = h.store.Get(aid)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
	}
	httputil.RespondWithSuccess(c, h.menu.ActionsFor(apt))
}

type openRequest struct {
	Slot   model.SlotRef    `json:"slot" binding:"required"`
	Action model.SlotAction `json:"action" binding:"required"`
}

// Open snapshots the slot identity into a pending action context before any
// popover state is torn down.
func (h *Handler) Open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid action payload", err))
		return
	}
	httputil.RespondWithSuccess(c, h.menu.Open(req.Slot, req.Action))
}

func (h *Handler) Discard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("context_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid context id", err))
		return
	}
	h.menu.Discard(id)
	httputil.RespondWithSuccess(c, gin.H{"discarded": true})
}

type personalTaskRequest struct {
	Label string `json:"label"`
}

func (h *Handler) PersonalTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("context_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid context id", err))
		return
	}
	var req personalTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid personal task payload", err))
		return
	}

	task, warning, err := h.menu.SubmitPersonalTask(c.Request.Context(), id, req.Label)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if warning != nil {
		httputil.RespondWithWarning(c, task, warning.String())
		return
	}
	httputil.RespondWithSuccess(c, task)
}

type waitlistRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Phone        string `json:"phone"`
	ServiceID    string `json:"service_id"`
}

func (h *Handler) Waitlist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("context_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid context id", err))
		return
	}
	var req waitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid waitlist payload", err))
		return
	}

	entry, err := h.menu.SubmitWaitlist(c.Request.Context(), id, req.CustomerName, req.Phone, req.ServiceID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entry)
}

type workingHoursRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (h *Handler) WorkingHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("context_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid context id", err))
		return
	}
	var req workingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid working hours payload", err))
		return
	}

	change, err := h.menu.SubmitShiftChange(c.Request.Context(), id, req.StartTime, req.EndTime)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, change)
}

func (h *Handler) ListWaitlist(c *gin.Context) {
	staffID, date, err := staffAndDate(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.menu.Waitlist(staffID, date))
}

func (h *Handler) ListShifts(c *gin.Context) {
	staffID, date, err := staffAndDate(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.menu.ShiftChanges(staffID, date))
}

func staffAndDate(c *gin.Context) (uuid.UUID, string, error) {
	var staffID uuid.UUID
	if s := c.Query("staff_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, "", apperrors.NewBadRequest("invalid staff_id", err)
		}
		staffID = id
	}
	return staffID, c.Query("date"), nil
}
