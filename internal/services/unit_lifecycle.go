package services

import (
	"strings"
	"time"

	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/utils"
)

// Customer is the capture payload accompanying a lifecycle change. Nil
// fields leave the stored value untouched on a same-status update.
type Customer struct {
	Name  *string
	Phone *string
	Notes *string
}

// TransitionUnit applies a lifecycle change to u in place.
//
// Rules: a sold unit must end up with a customer name, whether it arrives
// in the payload or is already stored; a reservation may omit it. Any
// move to available clears all customer fields, so stale customer data never
// survives a revert. Re-applying the current status is a legal no-op update
// (e.g. editing notes on a sale or reservation). Every successful call
// stamps StatusChangedAt.
func TransitionUnit(u *models.Unit, newStatus string, c Customer, now time.Time) error {
	if !models.ValidStatus(newStatus) {
		return utils.ErrInvalidStatus
	}
	if newStatus == models.StatusSold {
		name := u.CustomerName
		if c.Name != nil {
			name = c.Name
		}
		if name == nil || strings.TrimSpace(*name) == "" {
			return utils.ErrMissingCustomerName
		}
	}

	if newStatus == models.StatusAvailable {
		u.CustomerName = nil
		u.CustomerPhone = nil
		u.CustomerNotes = nil
	} else {
		if c.Name != nil {
			u.CustomerName = c.Name
		}
		if c.Phone != nil {
			u.CustomerPhone = c.Phone
		}
		if c.Notes != nil {
			u.CustomerNotes = c.Notes
		}
	}

	u.Status = newStatus
	t := now
	u.StatusChangedAt = &t
	return nil
}
