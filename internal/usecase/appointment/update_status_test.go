package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func createScheduled(t *testing.T, repo *fakeRepo) *models.Appointment {
	t.Helper()

	ap, err := newCreateUC(repo, newMemAccounts()).Execute(
		context.Background(), bookingInput(futureMonday(), "10:00"))
	require.NoError(t, err)
	return ap
}

func TestUpdateStatus_Confirm(t *testing.T) {
	repo := newFakeRepo()
	ap := createScheduled(t, repo)

	got, err := NewUpdateStatus(repo, nil, nil).Execute(
		context.Background(), 1, 1, ap.ID, "confirmed")
	require.NoError(t, err)

	assert.Equal(t, "confirmed", got.Status)
	assert.Nil(t, got.CancelledAt)
	assert.Nil(t, got.CompletedAt)
}

func TestUpdateStatus_CancelStampsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	ap := createScheduled(t, repo)

	got, err := NewUpdateStatus(repo, nil, nil).Execute(
		context.Background(), 1, 1, ap.ID, "cancelled")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", got.Status)
	assert.NotNil(t, got.CancelledAt)

	// Cancellation keeps the row; it never deletes.
	stored, err := repo.GetAppointment(context.Background(), 1, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stored.Status)
}

func TestUpdateStatus_CompleteStampsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	ap := createScheduled(t, repo)

	got, err := NewUpdateStatus(repo, nil, nil).Execute(
		context.Background(), 1, 1, ap.ID, "completed")
	require.NoError(t, err)
	assert.NotNil(t, got.CompletedAt)
}

func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	repo := newFakeRepo()
	ap := createScheduled(t, repo)
	uc := NewUpdateStatus(repo, nil, nil)

	// No state machine: a cancelled appointment may be rescheduled.
	_, err := uc.Execute(context.Background(), 1, 1, ap.ID, "cancelled")
	require.NoError(t, err)

	got, err := uc.Execute(context.Background(), 1, 1, ap.ID, "scheduled")
	require.NoError(t, err)
	assert.Equal(t, "scheduled", got.Status)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	ap := createScheduled(t, repo)

	_, err := NewUpdateStatus(repo, nil, nil).Execute(
		context.Background(), 1, 1, ap.ID, "no_show")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUpdateStatus_WrongTenant(t *testing.T) {
	repo := newFakeRepo()
	repo.tenants[2] = &models.Tenant{ID: 2, Name: "Outro", Slug: "outro", Active: true}
	ap := createScheduled(t, repo)

	_, err := NewUpdateStatus(repo, nil, nil).Execute(
		context.Background(), 2, 1, ap.ID, "cancelled")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
