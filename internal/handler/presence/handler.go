package presence

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/middleware"
	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/presence"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/httputil"
)

type Handler struct {
	tracker *presence.Tracker
}

func NewHandler(tracker *presence.Tracker) *Handler {
	return &Handler{tracker: tracker}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/presence", h.Current)
	rg.POST("/presence", h.Publish)
}

func (h *Handler) Current(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.tracker.Current())
}

type publishRequest struct {
	StaffName string `json:"staff_name"`
	Date      string `json:"date" binding:"required"`
}

func (h *Handler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid presence payload", err))
		return
	}
	staffID := c.MustGet(middleware.ContextStaffID).(uuid.UUID)

	p := &model.Presence{
		StaffID:   staffID,
		StaffName: req.StaffName,
		Date:      req.Date,
	}
	h.tracker.Publish(c.Request.Context(), p)
	httputil.RespondWithSuccess(c, p)
}
