package dtos

import (
	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/geometry"
	"github.com/estatehq/sales-service/internal/models"
)

type CreateBuildingRequest struct {
	ProjectID      string  `json:"project_id" validate:"required,uuid"`
	Name           string  `json:"name" validate:"required"`
	FrontViewImage *string `json:"front_view_image"`
	PositionData   *string `json:"position_data"`
	SortOrder      int     `json:"sort_order"`
}

type UpdateBuildingRequest struct {
	Name           *string `json:"name"`
	FrontViewImage *string `json:"front_view_image"`
	PositionData   *string `json:"position_data"`
	SortOrder      *int    `json:"sort_order"`
}

// BuildingFootprintDTO is a building as drawn on the project's aerial
// image: the normalized outline plus the precomputed render path and label
// anchor, and availability counts for the hover card. Buildings whose
// stored geometry does not normalize to a polygon ship without a footprint
// and simply are not clickable.
type BuildingFootprintDTO struct {
	BuildingID     uuid.UUID        `json:"building_id"`
	Name           string           `json:"name"`
	Footprint      geometry.Polygon `json:"footprint,omitempty"`
	Path           string           `json:"path,omitempty"`
	LabelAnchor    geometry.Point   `json:"label_anchor"`
	FloorCount     int              `json:"floor_count"`
	UnitsTotal     int              `json:"units_total"`
	UnitsAvailable int              `json:"units_available"`
}

// FloorBandDTO is one floor's resolved vertical band on the facade.
// Stored reports whether the band came from authored position data or the
// equal-band fallback.
type FloorBandDTO struct {
	FloorID uuid.UUID `json:"floor_id"`
	Number  int       `json:"number"`
	YStart  float64   `json:"y_start"`
	YEnd    float64   `json:"y_end"`
	Stored  bool      `json:"stored"`
}

// BuildingViewerResponse drives the public facade view: every floor gets a
// clickable band, stored positions taking precedence over the fallback.
type BuildingViewerResponse struct {
	Building *models.Building `json:"building"`
	Bands    []FloorBandDTO   `json:"bands"`
}

type ListBuildingsResponse struct {
	Buildings []*models.Building `json:"buildings"`
}
