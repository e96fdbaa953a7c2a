package models

import (
	"time"

	"github.com/google/uuid"
)

// Floor is a level within a building. PositionData is a serialized
// FloorBand locating the floor on the facade image; absent or invalid data
// falls back to an equal-band layout at render time.
type Floor struct {
	ID             uuid.UUID `json:"id"`
	BuildingID     uuid.UUID `json:"building_id"`
	Number         int       `json:"number"`
	BasePricePerM2 *float64  `json:"base_price_per_m2"`
	FloorPlanImage *string   `json:"floor_plan_image"`
	PositionData   *string   `json:"position_data"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
