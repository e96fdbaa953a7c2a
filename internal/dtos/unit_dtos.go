package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/geometry"
)

type CreateUnitRequest struct {
	FloorID     string   `json:"floor_id" validate:"required,uuid"`
	UnitNumber  string   `json:"unit_number" validate:"required"`
	Rooms       int      `json:"rooms" validate:"required,min=1"`
	Area        float64  `json:"area" validate:"required,gt=0"`
	PricePerM2  *float64 `json:"price_per_m2" validate:"omitempty,gte=0"`
	TotalPrice  *float64 `json:"total_price" validate:"omitempty,gte=0"`
	PolygonData *string  `json:"polygon_data"`
	LabelX      *float64 `json:"label_x" validate:"omitempty,gte=0,lte=100"`
	LabelY      *float64 `json:"label_y" validate:"omitempty,gte=0,lte=100"`
	Description *string  `json:"description"`
}

// UpdateUnitRequest applies only the fields present in the payload. Status
// does not live here: lifecycle changes go through ChangeStatusRequest so
// the customer-capture rules always apply.
type UpdateUnitRequest struct {
	UnitNumber  *string  `json:"unit_number"`
	Rooms       *int     `json:"rooms" validate:"omitempty,min=1"`
	Area        *float64 `json:"area" validate:"omitempty,gt=0"`
	PricePerM2  *float64 `json:"price_per_m2" validate:"omitempty,gte=0"`
	TotalPrice  *float64 `json:"total_price" validate:"omitempty,gte=0"`
	PolygonData *string  `json:"polygon_data"`
	LabelX      *float64 `json:"label_x" validate:"omitempty,gte=0,lte=100"`
	LabelY      *float64 `json:"label_y" validate:"omitempty,gte=0,lte=100"`
	Description *string  `json:"description"`
}

// ChangeStatusRequest is the explicit capture step for lifecycle changes.
// A sale requires the customer name; a reservation may omit it (someone
// called, not yet fully qualified).
type ChangeStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=available reserved sold"`
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	CustomerNotes *string `json:"customer_notes"`
}

// ListUnitsQuery collects the public/admin listing filters. Price bounds
// apply to the resolved price, not any single stored column.
type ListUnitsQuery struct {
	FloorID    *uuid.UUID
	BuildingID *uuid.UUID
	ProjectID  *uuid.UUID
	Status     *string
	Rooms      *int
	MinPrice   *float64
	MaxPrice   *float64
	SortKey    string
	SortDesc   bool
}

// Sort keys accepted by the unit listing.
const (
	SortUnitsByPrice  = "price"
	SortUnitsByArea   = "area"
	SortUnitsByNumber = "number"
)

// UnitDTO is the wire form every listing and detail surface shares: stored
// fields plus the resolved price (single fallback chain, applied once
// here), the normalized polygon with its render path, and the label anchor
// (explicit label position when set, polygon centroid otherwise).
type UnitDTO struct {
	ID              uuid.UUID        `json:"id"`
	FloorID         uuid.UUID        `json:"floor_id"`
	BuildingID      uuid.UUID        `json:"building_id"`
	FloorNumber     int              `json:"floor_number"`
	UnitNumber      string           `json:"unit_number"`
	Rooms           int              `json:"rooms"`
	Area            float64          `json:"area"`
	Status          string           `json:"status"`
	Price           float64          `json:"price"`
	RatePerM2       float64          `json:"rate_per_m2"`
	Polygon         geometry.Polygon `json:"polygon,omitempty"`
	Path            string           `json:"path,omitempty"`
	LabelAnchor     *geometry.Point  `json:"label_anchor,omitempty"`
	Description     *string          `json:"description,omitempty"`
	CustomerName    *string          `json:"customer_name,omitempty"`
	CustomerPhone   *string          `json:"customer_phone,omitempty"`
	CustomerNotes   *string          `json:"customer_notes,omitempty"`
	StatusChangedAt *time.Time       `json:"status_changed_at,omitempty"`
}

type ListUnitsResponse struct {
	Units []UnitDTO `json:"units"`
}
