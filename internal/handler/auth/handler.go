package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/middleware"
	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/presence"
	"github.com/salonhq/scheduler-api/internal/repository"
	"github.com/salonhq/scheduler-api/internal/session"
	"github.com/salonhq/scheduler-api/pkg/auth"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/httputil"
	"github.com/salonhq/scheduler-api/pkg/security"
)

type Handler struct {
	staff    repository.StaffRepository
	hasher   security.PasswordHasher
	tokens   auth.TokenService
	sessions *session.Manager
	presence *presence.Tracker
}

func NewHandler(staff repository.StaffRepository, hasher security.PasswordHasher, tokens auth.TokenService, sessions *session.Manager, tracker *presence.Tracker) *Handler {
	return &Handler{
		staff:    staff,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
		presence: tracker,
	}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/session", h.SessionInfo)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid login payload", err))
		return
	}

	staff, err := h.staff.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewUnauthorized("invalid email or password"))
		return
	}
	if err := h.hasher.Compare(staff.PasswordHash, req.Password); err != nil {
		httputil.RespondWithError(c, apperrors.NewUnauthorized("invalid email or password"))
		return
	}

	token, err := h.tokens.Generate(staff)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInternal(err))
		return
	}

	h.sessions.Login(staff, token)
	httputil.RespondWithSuccess(c, model.LoginResponse{Token: token, Staff: staff})
}

func (h *Handler) Logout(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uuid.UUID)
	h.sessions.Logout(staffID)
	h.presence.Forget(staffID)
	httputil.RespondWithSuccess(c, gin.H{"logged_out": true})
}

// SessionInfo reports remaining idle time so the dashboard can render its
// countdown without owning the policy.
func (h *Handler) SessionInfo(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uuid.UUID)
	remaining, warned, err := h.sessions.Remaining(staffID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{
		"idle_remaining_seconds": int(remaining / time.Second),
		"warning_shown":          warned,
	})
}
