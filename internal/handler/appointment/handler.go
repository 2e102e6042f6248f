package appointment

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/booking"
	"github.com/salonhq/scheduler-api/internal/email"
	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/repository"
	"github.com/salonhq/scheduler-api/internal/schedule"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/httputil"
	"github.com/salonhq/scheduler-api/pkg/logger"
)

type Handler struct {
	store      *schedule.Store
	validator  *booking.Validator
	catalog    repository.CatalogRepository
	machine    *schedule.Machine
	reassigner *schedule.Reassigner
	mail       email.Service
	logger     *logger.Logger
}

func NewHandler(store *schedule.Store, v *booking.Validator, catalog repository.CatalogRepository, machine *schedule.Machine, reassigner *schedule.Reassigner, mail email.Service, log *logger.Logger) *Handler {
	return &Handler{
		store:      store,
		validator:  v,
		catalog:    catalog,
		machine:    machine,
		reassigner: reassigner,
		mail:       mail,
		logger:     log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/appointments", h.List)
	rg.POST("/appointments", h.Create)
	rg.POST("/appointments/:id/transition", h.Transition)
	rg.POST("/appointments/:id/move", h.Move)
	rg.DELETE("/appointments/:id", h.Delete)

	rg.POST("/appointments/:id/drag", h.BeginDrag)
	rg.POST("/appointments/drop", h.Drop)
	rg.POST("/appointments/drag/cancel", h.CancelDrag)
}

func (h *Handler) List(c *gin.Context) {
	filter := model.AppointmentFilter{
		Date: c.Query("date"),
		Time: c.Query("time"),
	}
	if s := c.Query("staff_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewBadRequest("invalid staff_id", err))
			return
		}
		filter.StaffID = id
	}
	httputil.RespondWithSuccess(c, h.store.List(filter))
}

func (h *Handler) Create(c *gin.Context) {
	var form model.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid booking payload", err))
		return
	}

	// Normalize free-typed digits before the authoritative validation pass.
	if form.Phone != "" {
		form.Phone = booking.FormatPhone(form.Phone)
	}

	if fieldErrs := h.validator.Validate(&form); len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field+": "+fe.Message)
		}
		httputil.RespondWithError(c, apperrors.NewValidation("booking form has errors", fields...))
		return
	}

	apt := &model.Appointment{
		ServiceID:    form.ServiceID,
		Date:         form.Date,
		Time:         form.Time,
		StaffID:      form.StaffID,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Phone:        form.Phone,
		Email:        form.Email,
		Notes:        form.Notes,
		Recurring:    form.Recurring,
		Bundle:       form.Bundle,
		HouseCall:    form.HouseCall,
		FormRequired: form.FormRequired,
		DepositPaid:  form.DepositPaid,
	}

	serviceName := form.ServiceID
	if svc, err := h.catalog.GetService(c.Request.Context(), form.ServiceID); err == nil {
		apt.Duration = svc.Duration
		apt.Amount = svc.Price
		serviceName = svc.Name
	} else {
		apt.Duration = schedule.SlotStepMinutes
	}

	warning, err := h.store.Insert(c.Request.Context(), apt)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	// Confirmation mail is fire and forget.
	go func(a model.Appointment, name string) {
		if err := h.mail.SendBookingConfirmation(context.Background(), &a, name); err != nil {
			h.logger.Error(err, "booking confirmation mail failed", "appointment_id", a.ID.String())
		}
	}(*apt, serviceName)

	respond(c, apt, warning)
}

type transitionRequest struct {
	Status  model.AppointmentStatus `json:"status" binding:"required"`
	Handoff bool                    `json:"handoff"`
}

func (h *Handler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid appointment id", err))
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid transition payload", err))
		return
	}

	warning, err := h.machine.Transition(c.Request.Context(), id, req.Status, req.Handoff)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, _ := h.store.Get(id)
	respond(c, apt, warning)
}

type moveRequest struct {
	StaffID uuid.UUID `json:"staff_id" binding:"required"`
	Date    string    `json:"date"`
	Time    string    `json:"time" binding:"required"`
}

func (h *Handler) Move(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid appointment id", err))
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid move payload", err))
		return
	}

	warning, err := h.reassigner.Move(c.Request.Context(), id, req.StaffID, req.Date, req.Time)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, _ := h.store.Get(id)
	respond(c, apt, warning)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid appointment id", err))
		return
	}

	warning, err := h.store.Remove(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	respond(c, gin.H{"deleted": true}, warning)
}

func (h *Handler) BeginDrag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid appointment id", err))
		return
	}
	if err := h.reassigner.BeginDrag(id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"in_flight": id})
}

func (h *Handler) Drop(c *gin.Context) {
	var target model.SlotRef
	if err := c.ShouldBindJSON(&target); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid drop target", err))
		return
	}

	warning, err := h.reassigner.Drop(c.Request.Context(), target)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	respond(c, gin.H{"moved": true}, warning)
}

func (h *Handler) CancelDrag(c *gin.Context) {
	h.reassigner.CancelDrag()
	httputil.RespondWithSuccess(c, gin.H{"cancelled": true})
}

func respond(c *gin.Context, data interface{}, warning *apperrors.PersistenceWarning) {
	if warning != nil {
		httputil.RespondWithWarning(c, data, warning.String())
		return
	}
	httputil.RespondWithSuccess(c, data)
}
