package services

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"

	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/geometry"
	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/repositories"
	"github.com/estatehq/sales-service/internal/utils"
)

// leading digits of a unit number, swapped for the target floor number
// when a layout is copied ("101" on floor 1 becomes "201" on floor 2).
var unitNumberFloorPrefix = regexp.MustCompile(`^\d+`)

type FloorService struct {
	floorRepo    repositories.FloorRepository
	unitRepo     repositories.UnitRepository
	buildingRepo repositories.BuildingRepository
}

func NewFloorService(
	floorRepo repositories.FloorRepository,
	unitRepo repositories.UnitRepository,
	buildingRepo repositories.BuildingRepository,
) *FloorService {
	return &FloorService{floorRepo: floorRepo, unitRepo: unitRepo, buildingRepo: buildingRepo}
}

func (s *FloorService) Create(ctx context.Context, req dtos.CreateFloorRequest) (*models.Floor, error) {
	buildingID, err := uuid.Parse(req.BuildingID)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidPayload, Message: "invalid building id", Err: err}
	}
	b, err := s.buildingRepo.GetByID(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("load building: %w", err)
	}
	if b == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "building not found"}
	}

	f := models.Floor{
		ID:             uuid.New(),
		BuildingID:     buildingID,
		Number:         req.Number,
		BasePricePerM2: req.BasePricePerM2,
		FloorPlanImage: req.FloorPlanImage,
	}
	if err := s.floorRepo.Create(ctx, &f); err != nil {
		return nil, fmt.Errorf("create floor: %w", err)
	}
	return &f, nil
}

func (s *FloorService) Get(ctx context.Context, id uuid.UUID) (*dtos.FloorDetailResponse, error) {
	f, err := s.floorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load floor: %w", err)
	}
	if f == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "floor not found"}
	}

	units, err := s.unitRepo.ListByFloorID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list floor units: %w", err)
	}
	out := dtos.FloorDetailResponse{Floor: f, Units: make([]dtos.UnitDTO, 0, len(units))}
	for _, u := range units {
		out.Units = append(out.Units, unitToDTO(u, f.Number, f.BasePricePerM2, f.BuildingID))
	}
	return &out, nil
}

func (s *FloorService) ListByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*models.Floor, error) {
	return s.floorRepo.ListByBuildingID(ctx, buildingID)
}

func (s *FloorService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateFloorRequest) (*models.Floor, error) {
	f, err := s.floorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load floor: %w", err)
	}
	if f == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "floor not found"}
	}

	if req.Number != nil {
		f.Number = *req.Number
	}
	if req.BasePricePerM2 != nil {
		f.BasePricePerM2 = req.BasePricePerM2
	}
	if req.FloorPlanImage != nil {
		f.FloorPlanImage = req.FloorPlanImage
	}
	if req.PositionData != nil {
		blob, err := normalizeBandBlob(req.PositionData)
		if err != nil {
			return nil, err
		}
		f.PositionData = blob
	}

	if err := s.floorRepo.Update(ctx, f); err != nil {
		return nil, fmt.Errorf("update floor: %w", err)
	}
	return f, nil
}

// Delete removes the floor; its units go with it via the FK cascade.
func (s *FloorService) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.floorRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load floor: %w", err)
	}
	if f == nil {
		return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "floor not found"}
	}
	return s.floorRepo.Delete(ctx, id)
}

// BatchUpdatePositions writes every band from the facade editor's save.
// Bands are validated up front so a bad entry rejects the whole payload
// before any write happens.
func (s *FloorService) BatchUpdatePositions(ctx context.Context, buildingID uuid.UUID, req dtos.BatchFloorPositionsRequest) (int, error) {
	type pending struct {
		floorID uuid.UUID
		blob    *string
	}
	updates := make([]pending, 0, len(req.FloorPositions))
	for _, fp := range req.FloorPositions {
		floorID, err := uuid.Parse(fp.FloorID)
		if err != nil {
			return 0, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidPayload, Message: "invalid floor id", Err: err}
		}
		data := fp.PositionData
		blob, err := normalizeBandBlob(&data)
		if err != nil {
			return 0, err
		}
		updates = append(updates, pending{floorID: floorID, blob: blob})
	}

	updated := 0
	for _, up := range updates {
		if err := s.floorRepo.UpdatePosition(ctx, up.floorID, up.blob); err != nil {
			return updated, fmt.Errorf("update floor position: %w", err)
		}
		updated++
	}
	return updated, nil
}

// CopyLayoutToAll replicates the source floor's plan image and units onto
// every other floor of the same building. Each target floor is processed
// independently and sequentially; a failure is recorded and the remaining
// floors still run. Copied units start over as available with no customer
// data.
func (s *FloorService) CopyLayoutToAll(ctx context.Context, sourceID uuid.UUID) (*dtos.CopyLayoutResponse, error) {
	source, err := s.floorRepo.GetByID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("load source floor: %w", err)
	}
	if source == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "floor not found"}
	}

	sourceUnits, err := s.unitRepo.ListByFloorID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list source units: %w", err)
	}
	floors, err := s.floorRepo.ListByBuildingID(ctx, source.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("list building floors: %w", err)
	}

	resp := dtos.CopyLayoutResponse{}
	for _, target := range floors {
		if target.ID == source.ID {
			continue
		}
		copied, err := s.copyLayoutToFloor(ctx, source, sourceUnits, target)
		if err != nil {
			utils.Logger.WithError(err).Errorf("Copy layout to floor %d failed", target.Number)
			resp.FailedFloors = append(resp.FailedFloors, target.ID.String())
			continue
		}
		resp.CopiedFloors++
		resp.CopiedUnits += copied
	}
	return &resp, nil
}

func (s *FloorService) copyLayoutToFloor(ctx context.Context, source *models.Floor, sourceUnits []*models.Unit, target *models.Floor) (int, error) {
	if err := s.unitRepo.DeleteByFloorID(ctx, target.ID); err != nil {
		return 0, fmt.Errorf("clear target units: %w", err)
	}

	target.FloorPlanImage = source.FloorPlanImage
	if err := s.floorRepo.Update(ctx, target); err != nil {
		return 0, fmt.Errorf("copy plan image: %w", err)
	}

	clones := make([]models.Unit, 0, len(sourceUnits))
	for _, u := range sourceUnits {
		clones = append(clones, models.Unit{
			ID:          uuid.New(),
			FloorID:     target.ID,
			UnitNumber:  renumberUnit(u.UnitNumber, target.Number),
			Rooms:       u.Rooms,
			Area:        u.Area,
			Status:      models.StatusAvailable,
			PricePerM2:  u.PricePerM2,
			PolygonData: u.PolygonData,
			LabelX:      u.LabelX,
			LabelY:      u.LabelY,
			Description: u.Description,
		})
	}
	if err := s.unitRepo.CreateMany(ctx, clones); err != nil {
		return 0, fmt.Errorf("create copied units: %w", err)
	}
	return len(clones), nil
}

func renumberUnit(unitNumber string, floorNumber int) string {
	return unitNumberFloorPrefix.ReplaceAllString(unitNumber, fmt.Sprintf("%d", floorNumber))
}

/* ---------- band helpers ---------- */

// normalizeBandBlob validates a supplied band blob. Empty clears; anything
// else must parse to a strictly-increasing band and is re-serialized.
func normalizeBandBlob(raw *string) (*string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	band, ok := geometry.ParseFloorBand(raw)
	if !ok {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidGeometry,
			Message:    "floor band requires yEnd > yStart within [0,100]",
			Err:        utils.ErrInvalidGeometry,
		}
	}
	band = band.Clamp()
	out, err := geometry.MarshalFloorBand(band)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// resolveBands gives every floor a clickable band: authored positions win,
// floors without one get the equal-band fallback computed over the full
// floor list. Result is ordered top physical floor first.
func resolveBands(floors []*models.Floor) []dtos.FloorBandDTO {
	sorted := make([]*models.Floor, len(floors))
	copy(sorted, floors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number > sorted[j].Number })

	fallback := geometry.DistributeBands(len(sorted))
	out := make([]dtos.FloorBandDTO, 0, len(sorted))
	for i, f := range sorted {
		band, stored := geometry.ParseFloorBand(f.PositionData)
		if !stored {
			band = fallback[i]
		}
		out = append(out, dtos.FloorBandDTO{
			FloorID: f.ID,
			Number:  f.Number,
			YStart:  band.YStart,
			YEnd:    band.YEnd,
			Stored:  stored,
		})
	}
	return out
}
