package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/scheduler-api/internal/model"
)

func testService() TokenService {
	return NewTokenService(Config{Secret: "test-secret", ExpiryHours: 1})
}

func testStaff() *model.StaffMember {
	return &model.StaffMember{
		ID:    uuid.New(),
		Email: "ana@example.com",
		Role:  model.StaffRoleSenior,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := testService()
	staff := testStaff()

	token, err := svc.Generate(staff)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, staff.Email, claims.Email)
	assert.Equal(t, model.StaffRoleSenior, claims.Role)
}

func TestRevokedTokenFailsValidation(t *testing.T) {
	svc := testService()
	token, err := svc.Generate(testStaff())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.NoError(t, err)

	svc.Revoke(token)

	_, err = svc.Validate(token)
	assert.Error(t, err, "a forced logout must outlive the token's natural expiry")
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := testService().Generate(testStaff())
	require.NoError(t, err)

	other := NewTokenService(Config{Secret: "different-secret", ExpiryHours: 1})
	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := testService().Validate("not.a.token")
	assert.Error(t, err)
}
