package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit sale lifecycle states. A sold unit may be reverted to available by
// an admin (a fallen-through sale); there is no terminal state.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusReserved || s == StatusSold
}

// Unit is an apartment on a floor. PolygonData is the unit's serialized
// outline on the floor-plan image; LabelX/LabelY override the centroid for
// text label placement. Customer fields are only meaningful while the unit
// is reserved or sold and are cleared on revert to available.
type Unit struct {
	ID              uuid.UUID  `json:"id"`
	FloorID         uuid.UUID  `json:"floor_id"`
	UnitNumber      string     `json:"unit_number"`
	Rooms           int        `json:"rooms"`
	Area            float64    `json:"area"`
	Status          string     `json:"status"`
	PricePerM2      *float64   `json:"price_per_m2"`
	TotalPrice      *float64   `json:"total_price"`
	PolygonData     *string    `json:"polygon_data"`
	LabelX          *float64   `json:"label_x"`
	LabelY          *float64   `json:"label_y"`
	Description     *string    `json:"description"`
	CustomerName    *string    `json:"customer_name,omitempty"`
	CustomerPhone   *string    `json:"customer_phone,omitempty"`
	CustomerNotes   *string    `json:"customer_notes,omitempty"`
	StatusChangedAt *time.Time `json:"status_changed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
