package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/schedule"
	"github.com/salonhq/scheduler-api/pkg/auth"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/logger"
	"github.com/salonhq/scheduler-api/pkg/metrics"
)

// Session is one authenticated staff dashboard. It owns both periodic tasks
// (the 1s idle tick and the 30s time-marker tick); ending the session cancels
// both.
type Session struct {
	Token   string
	Staff   *model.StaffMember
	Started time.Time

	activity *Activity
	monitor  *Monitor
	marker   *schedule.TimeMarker
}

// Activity exposes the shared activity cell for middleware.
func (s *Session) Activity() *Activity {
	return s.activity
}

// Marker exposes the session's time-marker for grid rendering.
func (s *Session) Marker() *schedule.TimeMarker {
	return s.marker
}

type Config struct {
	IdleTimeout   time.Duration
	WarningOffset time.Duration
}

// Manager owns all live sessions. Logout (voluntary or forced) revokes the
// token, stops the tickers and clears session state; it never touches the
// appointment collection, which persists independent of any session.
type Manager struct {
	cfg      Config
	tokens   auth.TokenService
	notifier schedule.Notifier
	logger   *logger.Logger
	metrics  *metrics.Metrics

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager(cfg Config, tokens auth.TokenService, notifier schedule.Notifier, log *logger.Logger, m *metrics.Metrics) *Manager {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.WarningOffset <= 0 {
		cfg.WarningOffset = WarningOffset
	}
	return &Manager{
		cfg:      cfg,
		tokens:   tokens,
		notifier: notifier,
		logger:   log,
		metrics:  m,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Login registers a session for an authenticated staff member and starts its
// periodic tasks. A prior session for the same staff member is ended first.
func (m *Manager) Login(staff *model.StaffMember, token string) *Session {
	m.mu.Lock()
	if old, ok := m.sessions[staff.ID]; ok {
		m.mu.Unlock()
		m.end(old, "replaced")
		m.mu.Lock()
	}

	activity := NewActivity()
	marker := schedule.NewTimeMarker()
	s := &Session{
		Token:    token,
		Staff:    staff,
		Started:  time.Now(),
		activity: activity,
		marker:   marker,
	}
	s.monitor = NewMonitor(activity, m.cfg.IdleTimeout, m.cfg.WarningOffset,
		func() { m.warn(s) },
		func() { m.forceLogout(s) },
	)
	m.sessions[staff.ID] = s
	m.mu.Unlock()

	s.monitor.Start(TickInterval)
	marker.Start(schedule.MarkerRefreshInterval)

	if m.metrics != nil {
		m.metrics.ActiveSessionsGauge.Inc()
	}
	m.logger.Info("staff session started", "staff_id", staff.ID.String())
	return s
}

// Get returns the live session for a staff member.
func (m *Manager) Get(staffID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[staffID]
	if !ok {
		return nil, apperrors.NewSessionExpired()
	}
	return s, nil
}

// Touch resets the idle clock for a staff session.
func (m *Manager) Touch(staffID uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[staffID]
	m.mu.Unlock()
	if ok {
		s.activity.Touch()
	}
}

// Remaining reports idle time left and whether the expiry warning has fired.
func (m *Manager) Remaining(staffID uuid.UUID) (time.Duration, bool, error) {
	s, err := m.Get(staffID)
	if err != nil {
		return 0, false, err
	}
	last, warned := s.activity.Snapshot()
	remaining := m.cfg.IdleTimeout - time.Since(last)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, warned, nil
}

// Logout ends a session voluntarily.
func (m *Manager) Logout(staffID uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[staffID]
	m.mu.Unlock()
	if ok {
		m.end(s, "logout")
	}
}

// Shutdown ends every live session; used on process stop.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.Unlock()
	for _, s := range all {
		m.end(s, "shutdown")
	}
}

func (m *Manager) warn(s *Session) {
	if m.metrics != nil {
		m.metrics.IdleWarningsTotal.Inc()
	}
	if m.notifier != nil {
		m.notifier.Notify(context.Background(), "warning", "Your session is about to expire")
	}
	m.logger.Info("idle expiry warning", "staff_id", s.Staff.ID.String())
}

// forceLogout is the designed termination path: warned when possible, never
// silent, never treated as an error.
func (m *Manager) forceLogout(s *Session) {
	if m.metrics != nil {
		m.metrics.ForcedLogoutsTotal.Inc()
	}
	if m.notifier != nil {
		m.notifier.Notify(context.Background(), "warning", "You have been signed out due to inactivity")
	}
	m.end(s, "idle timeout")
}

func (m *Manager) end(s *Session, reason string) {
	m.mu.Lock()
	if cur, ok := m.sessions[s.Staff.ID]; ok && cur == s {
		delete(m.sessions, s.Staff.ID)
	}
	m.mu.Unlock()

	s.monitor.Stop()
	s.marker.Stop()
	m.tokens.Revoke(s.Token)

	if m.metrics != nil {
		m.metrics.ActiveSessionsGauge.Dec()
	}
	m.logger.Info("staff session ended", "staff_id", s.Staff.ID.String(), "reason", reason)
}
