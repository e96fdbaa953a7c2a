package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead follow-up states used by the back-office CRM list.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
)

// Lead is a prospect captured from the public site, optionally tied to the
// project or unit the visitor was looking at. Project/unit names are
// denormalized so the lead survives deletion of what it pointed at.
type Lead struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	ProjectID   *uuid.UUID `json:"project_id"`
	ProjectName *string    `json:"project_name"`
	UnitID      *uuid.UUID `json:"unit_id"`
	UnitNumber  *string    `json:"unit_number"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}
