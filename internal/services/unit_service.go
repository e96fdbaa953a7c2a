package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/geometry"
	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/pricing"
	"github.com/estatehq/sales-service/internal/repositories"
	"github.com/estatehq/sales-service/internal/utils"
)

type UnitService struct {
	unitRepo  repositories.UnitRepository
	floorRepo repositories.FloorRepository
}

func NewUnitService(
	unitRepo repositories.UnitRepository,
	floorRepo repositories.FloorRepository,
) *UnitService {
	return &UnitService{unitRepo: unitRepo, floorRepo: floorRepo}
}

// Create adds a unit to a floor, status available. Supplied geometry is
// normalized through the shape union before persistence; a blob that does
// not normalize to a valid polygon is rejected, not silently dropped,
// because the admin explicitly drew it.
func (s *UnitService) Create(ctx context.Context, req dtos.CreateUnitRequest) (*dtos.UnitDTO, error) {
	floorID, err := uuid.Parse(req.FloorID)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidPayload, Message: "invalid floor id", Err: err}
	}
	floor, err := s.floorRepo.GetByID(ctx, floorID)
	if err != nil {
		return nil, fmt.Errorf("load floor: %w", err)
	}
	if floor == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "floor not found"}
	}

	polygonData, err := normalizePolygonBlob(req.PolygonData)
	if err != nil {
		return nil, err
	}

	u := models.Unit{
		ID:          uuid.New(),
		FloorID:     floorID,
		UnitNumber:  req.UnitNumber,
		Rooms:       req.Rooms,
		Area:        req.Area,
		Status:      models.StatusAvailable,
		PricePerM2:  req.PricePerM2,
		TotalPrice:  req.TotalPrice,
		PolygonData: polygonData,
		LabelX:      req.LabelX,
		LabelY:      req.LabelY,
		Description: req.Description,
	}
	if err := s.unitRepo.Create(ctx, &u); err != nil {
		return nil, fmt.Errorf("create unit: %w", err)
	}

	dto := unitToDTO(&u, floor.Number, floor.BasePricePerM2, floor.BuildingID)
	return &dto, nil
}

func (s *UnitService) Get(ctx context.Context, id uuid.UUID) (*dtos.UnitDTO, error) {
	row, err := s.unitRepo.GetWithFloor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load unit: %w", err)
	}
	if row == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "unit not found"}
	}
	dto := unitToDTO(&row.Unit, row.FloorNumber, row.FloorBasePricePerM2, row.BuildingID)
	return &dto, nil
}

// List returns units matching the query. Price-range filtering and price
// sorting both run through the pricing resolver over the already-built
// DTOs, so boundaries and ordering agree exactly with displayed prices.
func (s *UnitService) List(ctx context.Context, q dtos.ListUnitsQuery) ([]dtos.UnitDTO, error) {
	rows, err := s.unitRepo.ListWithFloor(ctx, repositories.UnitFilter{
		FloorID:    q.FloorID,
		BuildingID: q.BuildingID,
		ProjectID:  q.ProjectID,
		Status:     q.Status,
		Rooms:      q.Rooms,
	})
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}

	units := make([]dtos.UnitDTO, 0, len(rows))
	for _, row := range rows {
		units = append(units, unitToDTO(&row.Unit, row.FloorNumber, row.FloorBasePricePerM2, row.BuildingID))
	}

	priceOf := func(d dtos.UnitDTO) float64 { return d.Price }
	if q.MinPrice != nil || q.MaxPrice != nil {
		units = pricing.FilterByRange(units, priceOf, q.MinPrice, q.MaxPrice)
	}
	switch q.SortKey {
	case dtos.SortUnitsByPrice:
		pricing.SortByPrice(units, priceOf, q.SortDesc)
	case dtos.SortUnitsByArea:
		sort.SliceStable(units, func(i, j int) bool {
			if q.SortDesc {
				return units[i].Area > units[j].Area
			}
			return units[i].Area < units[j].Area
		})
	case dtos.SortUnitsByNumber:
		sort.SliceStable(units, func(i, j int) bool {
			if q.SortDesc {
				return units[i].UnitNumber > units[j].UnitNumber
			}
			return units[i].UnitNumber < units[j].UnitNumber
		})
	}
	return units, nil
}

// Update applies a partial edit. Geometry in the payload is normalized the
// same way as on create; an empty string clears the shape.
func (s *UnitService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateUnitRequest) (*dtos.UnitDTO, error) {
	u, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load unit: %w", err)
	}
	if u == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "unit not found"}
	}

	if req.UnitNumber != nil {
		u.UnitNumber = *req.UnitNumber
	}
	if req.Rooms != nil {
		u.Rooms = *req.Rooms
	}
	if req.Area != nil {
		u.Area = *req.Area
	}
	if req.PricePerM2 != nil {
		u.PricePerM2 = req.PricePerM2
	}
	if req.TotalPrice != nil {
		u.TotalPrice = req.TotalPrice
	}
	if req.LabelX != nil {
		u.LabelX = req.LabelX
	}
	if req.LabelY != nil {
		u.LabelY = req.LabelY
	}
	if req.Description != nil {
		u.Description = req.Description
	}
	if req.PolygonData != nil {
		blob, err := normalizePolygonBlob(req.PolygonData)
		if err != nil {
			return nil, err
		}
		u.PolygonData = blob
	}

	if err := s.unitRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update unit: %w", err)
	}
	return s.Get(ctx, id)
}

// ChangeStatus runs the lifecycle state machine and persists the result.
func (s *UnitService) ChangeStatus(ctx context.Context, id uuid.UUID, req dtos.ChangeStatusRequest) (*dtos.UnitDTO, error) {
	u, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load unit: %w", err)
	}
	if u == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "unit not found"}
	}

	customer := Customer{Name: req.CustomerName, Phone: req.CustomerPhone, Notes: req.CustomerNotes}
	if err := TransitionUnit(u, req.Status, customer, time.Now().UTC()); err != nil {
		switch err {
		case utils.ErrMissingCustomerName:
			return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeMissingCustomer, Message: "customer name is required for a sale", Err: err}
		case utils.ErrInvalidStatus:
			return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidStatus, Message: "unknown status", Err: err}
		default:
			return nil, err
		}
	}

	if err := s.unitRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update unit status: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *UnitService) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load unit: %w", err)
	}
	if u == nil {
		return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "unit not found"}
	}
	return s.unitRepo.Delete(ctx, id)
}

/* ---------- shared helpers ---------- */

// normalizePolygonBlob runs supplied geometry through the shape union. nil
// passes through, an empty string clears, anything else must normalize to
// a valid polygon and is re-serialized in point-list form so legacy rects
// never reach storage again.
func normalizePolygonBlob(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		return nil, nil
	}
	poly := geometry.ParsePolygon(raw)
	if poly == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidGeometry,
			Message:    "polygon requires at least 3 points",
			Err:        utils.ErrInvalidGeometry,
		}
	}
	out, err := geometry.MarshalPolygon(poly)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// unitToDTO builds the shared wire form: one price resolution, normalized
// polygon with render path, and the label anchor (explicit position when
// set, centroid fallback otherwise).
func unitToDTO(u *models.Unit, floorNumber int, floorBaseRate *float64, buildingID uuid.UUID) dtos.UnitDTO {
	in := pricing.Inputs{
		TotalPrice:          u.TotalPrice,
		PricePerM2:          u.PricePerM2,
		FloorBasePricePerM2: floorBaseRate,
		Area:                u.Area,
	}

	dto := dtos.UnitDTO{
		ID:              u.ID,
		FloorID:         u.FloorID,
		BuildingID:      buildingID,
		FloorNumber:     floorNumber,
		UnitNumber:      u.UnitNumber,
		Rooms:           u.Rooms,
		Area:            u.Area,
		Status:          u.Status,
		Price:           pricing.Resolve(in),
		RatePerM2:       pricing.RatePerM2(in),
		Description:     u.Description,
		CustomerName:    u.CustomerName,
		CustomerPhone:   u.CustomerPhone,
		CustomerNotes:   u.CustomerNotes,
		StatusChangedAt: u.StatusChangedAt,
	}

	if poly := geometry.ParsePolygon(u.PolygonData); poly != nil {
		dto.Polygon = poly
		dto.Path = poly.PathString()
		if u.LabelX != nil && u.LabelY != nil {
			dto.LabelAnchor = &geometry.Point{X: *u.LabelX, Y: *u.LabelY}
		} else {
			c := poly.Centroid()
			dto.LabelAnchor = &c
		}
	} else if u.LabelX != nil && u.LabelY != nil {
		dto.LabelAnchor = &geometry.Point{X: *u.LabelX, Y: *u.LabelY}
	}
	return dto
}
