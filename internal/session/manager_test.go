package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/pkg/auth"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/logger"
)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, _, message string) {
	r.messages = append(r.messages, message)
}

func newTestManager(t *testing.T) (*Manager, auth.TokenService, *recordingNotifier) {
	t.Helper()
	tokens := auth.NewTokenService(auth.Config{Secret: "test-secret", ExpiryHours: 1})
	notifier := &recordingNotifier{}
	m := NewManager(Config{}, tokens, notifier, logger.NewLogger(nil), nil)
	return m, tokens, notifier
}

func testStaff() *model.StaffMember {
	return &model.StaffMember{
		ID:    uuid.New(),
		Name:  "Ana Silva",
		Email: "ana@example.com",
		Role:  model.StaffRoleSenior,
	}
}

func TestLoginAndGet(t *testing.T) {
	m, tokens, _ := newTestManager(t)
	staff := testStaff()

	token, err := tokens.Generate(staff)
	require.NoError(t, err)

	s := m.Login(staff, token)
	defer m.Shutdown()
	require.NotNil(t, s)
	assert.NotNil(t, s.Activity())
	assert.NotNil(t, s.Marker())

	got, err := m.Get(staff.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestGetUnknownStaffIsSessionExpired(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Get(uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrSessionExpired))
}

func TestLoginReplacesPriorSession(t *testing.T) {
	m, tokens, _ := newTestManager(t)
	staff := testStaff()

	first, err := tokens.Generate(staff)
	require.NoError(t, err)
	m.Login(staff, first)

	second, err := tokens.Generate(staff)
	require.NoError(t, err)
	s2 := m.Login(staff, second)
	defer m.Shutdown()

	got, err := m.Get(staff.ID)
	require.NoError(t, err)
	assert.Same(t, s2, got)

	// The replaced session's token is revoked with it.
	_, err = tokens.Validate(first)
	assert.Error(t, err)
	_, err = tokens.Validate(second)
	assert.NoError(t, err)
}

func TestLogoutRevokesTokenAndDropsSession(t *testing.T) {
	m, tokens, _ := newTestManager(t)
	staff := testStaff()

	token, err := tokens.Generate(staff)
	require.NoError(t, err)
	m.Login(staff, token)

	m.Logout(staff.ID)

	_, err = m.Get(staff.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrSessionExpired))
	_, err = tokens.Validate(token)
	assert.Error(t, err)

	// Logging out twice is harmless.
	m.Logout(staff.ID)
}

func TestForcedLogoutNotifiesAndEndsSession(t *testing.T) {
	m, tokens, notifier := newTestManager(t)
	staff := testStaff()

	token, err := tokens.Generate(staff)
	require.NoError(t, err)
	s := m.Login(staff, token)

	// Drive the monitor directly instead of waiting five minutes.
	last, _ := s.Activity().Snapshot()
	s.monitor.Check(last.Add(DefaultIdleTimeout))

	_, err = m.Get(staff.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrSessionExpired))
	_, err = tokens.Validate(token)
	assert.Error(t, err)

	require.NotEmpty(t, notifier.messages)
	assert.Contains(t, notifier.messages[len(notifier.messages)-1], "inactivity")
}

func TestRemaining(t *testing.T) {
	m, tokens, _ := newTestManager(t)
	staff := testStaff()

	token, err := tokens.Generate(staff)
	require.NoError(t, err)
	m.Login(staff, token)
	defer m.Shutdown()

	m.Touch(staff.ID)
	remaining, warned, err := m.Remaining(staff.ID)
	require.NoError(t, err)
	assert.False(t, warned)
	assert.Greater(t, remaining, DefaultIdleTimeout-10*time.Second)
	assert.LessOrEqual(t, remaining, DefaultIdleTimeout)
}

func TestShutdownEndsAllSessions(t *testing.T) {
	m, tokens, _ := newTestManager(t)

	for i := 0; i < 3; i++ {
		staff := testStaff()
		token, err := tokens.Generate(staff)
		require.NoError(t, err)
		m.Login(staff, token)
	}

	m.Shutdown()

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.sessions)
}
