package grid

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonhq/scheduler-api/internal/notification"
	"github.com/salonhq/scheduler-api/internal/repository"
	"github.com/salonhq/scheduler-api/internal/schedule"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/httputil"
)

type Handler struct {
	builder       *schedule.GridBuilder
	staff         repository.StaffRepository
	notifications *notification.Service
}

func NewHandler(builder *schedule.GridBuilder, staff repository.StaffRepository, notifications *notification.Service) *Handler {
	return &Handler{builder: builder, staff: staff, notifications: notifications}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedule/grid", h.Grid)
	rg.GET("/schedule/slots", h.Slots)
	rg.GET("/notifications", h.Notifications)
}

// Grid renders one day: the slot axis, a colored column per staff member and
// the live time marker.
func (h *Handler) Grid(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("date must look like 2006-01-02", err))
		return
	}

	roster, err := h.staff.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInternal(err))
		return
	}

	httputil.RespondWithSuccess(c, h.builder.Build(date, roster))
}

func (h *Handler) Slots(c *gin.Context) {
	httputil.RespondWithSuccess(c, schedule.Slots())
}

func (h *Handler) Notifications(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.notifications.Recent())
}
