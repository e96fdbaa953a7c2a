package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/utils"
)

func sPtr(s string) *string { return &s }

func availableUnit() *models.Unit {
	return &models.Unit{UnitNumber: "101", Status: models.StatusAvailable}
}

func TestTransitionSaleRequiresCustomerName(t *testing.T) {
	now := time.Now().UTC()

	u := availableUnit()
	err := TransitionUnit(u, models.StatusSold, Customer{}, now)
	require.ErrorIs(t, err, utils.ErrMissingCustomerName)
	require.Equal(t, models.StatusAvailable, u.Status)
	require.Nil(t, u.StatusChangedAt)

	err = TransitionUnit(u, models.StatusSold, Customer{Name: sPtr("   ")}, now)
	require.ErrorIs(t, err, utils.ErrMissingCustomerName)

	err = TransitionUnit(u, models.StatusSold, Customer{Name: sPtr("Aziz Karimov")}, now)
	require.NoError(t, err)
	require.Equal(t, models.StatusSold, u.Status)
	require.Equal(t, "Aziz Karimov", *u.CustomerName)
	require.NotNil(t, u.StatusChangedAt)
	require.Equal(t, now, *u.StatusChangedAt)
}

func TestTransitionReservationWithoutName(t *testing.T) {
	u := availableUnit()
	err := TransitionUnit(u, models.StatusReserved, Customer{Phone: sPtr("+998901234567")}, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, models.StatusReserved, u.Status)
	require.Nil(t, u.CustomerName)
	require.Equal(t, "+998901234567", *u.CustomerPhone)
}

func TestTransitionRevertClearsCustomerFields(t *testing.T) {
	u := availableUnit()
	now := time.Now().UTC()
	require.NoError(t, TransitionUnit(u, models.StatusSold, Customer{
		Name:  sPtr("Aziz Karimov"),
		Phone: sPtr("+998901234567"),
		Notes: sPtr("paid deposit"),
	}, now))

	require.NoError(t, TransitionUnit(u, models.StatusAvailable, Customer{}, now.Add(time.Hour)))
	require.Equal(t, models.StatusAvailable, u.Status)
	require.Nil(t, u.CustomerName)
	require.Nil(t, u.CustomerPhone)
	require.Nil(t, u.CustomerNotes)
	require.Equal(t, now.Add(time.Hour), *u.StatusChangedAt)
}

func TestTransitionSameStatusUpdatesFields(t *testing.T) {
	u := availableUnit()
	now := time.Now().UTC()
	require.NoError(t, TransitionUnit(u, models.StatusReserved, Customer{Name: sPtr("Aziz")}, now))

	later := now.Add(2 * time.Hour)
	require.NoError(t, TransitionUnit(u, models.StatusReserved, Customer{Notes: sPtr("called back")}, later))

	// existing name survives, new note lands, timestamp moves
	require.Equal(t, "Aziz", *u.CustomerName)
	require.Equal(t, "called back", *u.CustomerNotes)
	require.Equal(t, later, *u.StatusChangedAt)
}

func TestTransitionSoldNotesEditKeepsStoredName(t *testing.T) {
	u := availableUnit()
	now := time.Now().UTC()
	require.NoError(t, TransitionUnit(u, models.StatusSold, Customer{Name: sPtr("Aziz")}, now))

	// a notes-only edit on a sold unit must not demand the name again
	later := now.Add(time.Hour)
	require.NoError(t, TransitionUnit(u, models.StatusSold, Customer{Notes: sPtr("called back")}, later))
	require.Equal(t, "Aziz", *u.CustomerName)
	require.Equal(t, "called back", *u.CustomerNotes)
	require.Equal(t, later, *u.StatusChangedAt)

	// blanking the name on a sold unit is still refused
	err := TransitionUnit(u, models.StatusSold, Customer{Name: sPtr("  ")}, later)
	require.ErrorIs(t, err, utils.ErrMissingCustomerName)
	require.Equal(t, "Aziz", *u.CustomerName)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	u := availableUnit()
	err := TransitionUnit(u, "pending", Customer{}, time.Now().UTC())
	require.ErrorIs(t, err, utils.ErrInvalidStatus)
	require.Equal(t, models.StatusAvailable, u.Status)
}
