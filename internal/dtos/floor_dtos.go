package dtos

import "github.com/estatehq/sales-service/internal/models"

type CreateFloorRequest struct {
	BuildingID     string   `json:"building_id" validate:"required,uuid"`
	Number         int      `json:"number"`
	BasePricePerM2 *float64 `json:"base_price_per_m2" validate:"omitempty,gte=0"`
	FloorPlanImage *string  `json:"floor_plan_image"`
}

type UpdateFloorRequest struct {
	Number         *int     `json:"number"`
	BasePricePerM2 *float64 `json:"base_price_per_m2" validate:"omitempty,gte=0"`
	FloorPlanImage *string  `json:"floor_plan_image"`
	PositionData   *string  `json:"position_data"`
}

// FloorPositionUpdate carries one floor's authored band from the facade
// editor. PositionData is the serialized FloorBand.
type FloorPositionUpdate struct {
	FloorID      string `json:"floor_id" validate:"required,uuid"`
	PositionData string `json:"position_data" validate:"required"`
}

// BatchFloorPositionsRequest is the save payload of the floor-position
// editor: every floor's band written in one request.
type BatchFloorPositionsRequest struct {
	FloorPositions []FloorPositionUpdate `json:"floor_positions" validate:"required,dive"`
}

type BatchFloorPositionsResponse struct {
	Updated int `json:"updated"`
}

// CopyLayoutResponse reports a bulk layout copy. The operation is
// sequential with no rollback, so a failure mid-way leaves earlier floors
// copied; FailedFloors names the ones that did not complete.
type CopyLayoutResponse struct {
	CopiedFloors int      `json:"copied_floors"`
	CopiedUnits  int      `json:"copied_units"`
	FailedFloors []string `json:"failed_floors,omitempty"`
}

type FloorDetailResponse struct {
	Floor *models.Floor `json:"floor"`
	Units []UnitDTO     `json:"units"`
}

type ListFloorsResponse struct {
	Floors []*models.Floor `json:"floors"`
}
