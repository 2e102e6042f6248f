package staff

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/repository"
	"github.com/salonhq/scheduler-api/internal/schedule"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/httputil"
)

type Handler struct {
	staff   repository.StaffRepository
	catalog repository.CatalogRepository
	colors  *schedule.ColorRegistry
}

func NewHandler(staff repository.StaffRepository, catalog repository.CatalogRepository, colors *schedule.ColorRegistry) *Handler {
	return &Handler{staff: staff, catalog: catalog, colors: colors}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/staff", h.List)
	rg.POST("/staff/:id/status", h.UpdateStatus)
	rg.GET("/services", h.Services)
}

// List returns the roster with color assignments derived. Fetch order is the
// assignment order, so colors stay collision-free while the palette allows.
func (h *Handler) List(c *gin.Context) {
	roster, err := h.staff.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInternal(err))
		return
	}
	h.colors.AssignRoster(roster)
	httputil.RespondWithSuccess(c, roster)
}

// UpdateStatus is the only roster write the scheduling core makes:
// break/offline toggles from the slot action menu. The color cache is
// invalidated so every viewer re-derives assignments.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid staff id", err))
		return
	}
	var req model.UpdateStaffStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid status payload", err))
		return
	}
	if !req.Status.Valid() {
		httputil.RespondWithError(c, apperrors.NewValidation("unknown staff status", "status"))
		return
	}

	if err := h.staff.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		httputil.RespondWithError(c, apperrors.NewInternal(err))
		return
	}
	h.colors.InvalidateAll()
	httputil.RespondWithSuccess(c, gin.H{"status": req.Status})
}

func (h *Handler) Services(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInternal(err))
		return
	}
	httputil.RespondWithSuccess(c, services)
}
