package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/repositories"
)

/* ---------- in-memory fakes ---------- */

type fakeUnitRepo struct {
	units  map[uuid.UUID]*models.Unit
	floors *fakeFloorRepo
}

func newFakeUnitRepo(floors *fakeFloorRepo) *fakeUnitRepo {
	return &fakeUnitRepo{units: map[uuid.UUID]*models.Unit{}, floors: floors}
}

func (r *fakeUnitRepo) Create(_ context.Context, u *models.Unit) error {
	cp := *u
	r.units[u.ID] = &cp
	return nil
}

func (r *fakeUnitRepo) CreateMany(ctx context.Context, list []models.Unit) error {
	for i := range list {
		if err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnitRepo) GetWithFloor(ctx context.Context, id uuid.UUID) (*repositories.UnitWithFloor, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	f := r.floors.floors[u.FloorID]
	return &repositories.UnitWithFloor{
		Unit:                *u,
		FloorNumber:         f.Number,
		FloorBasePricePerM2: f.BasePricePerM2,
		BuildingID:          f.BuildingID,
	}, nil
}

func (r *fakeUnitRepo) ListByFloorID(_ context.Context, floorID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range r.units {
		if u.FloorID == floorID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) ListWithFloor(_ context.Context, filter repositories.UnitFilter) ([]*repositories.UnitWithFloor, error) {
	var out []*repositories.UnitWithFloor
	for _, u := range r.units {
		if filter.FloorID != nil && u.FloorID != *filter.FloorID {
			continue
		}
		if filter.Status != nil && u.Status != *filter.Status {
			continue
		}
		if filter.Rooms != nil && u.Rooms != *filter.Rooms {
			continue
		}
		f := r.floors.floors[u.FloorID]
		if filter.BuildingID != nil && f.BuildingID != *filter.BuildingID {
			continue
		}
		cp := *u
		out = append(out, &repositories.UnitWithFloor{
			Unit:                cp,
			FloorNumber:         f.Number,
			FloorBasePricePerM2: f.BasePricePerM2,
			BuildingID:          f.BuildingID,
		})
	}
	return out, nil
}

func (r *fakeUnitRepo) Update(_ context.Context, u *models.Unit) error {
	cp := *u
	r.units[u.ID] = &cp
	return nil
}

func (r *fakeUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.units, id)
	return nil
}

func (r *fakeUnitRepo) DeleteByFloorID(_ context.Context, floorID uuid.UUID) error {
	for id, u := range r.units {
		if u.FloorID == floorID {
			delete(r.units, id)
		}
	}
	return nil
}

func (r *fakeUnitRepo) CountStatusChangedSince(_ context.Context, since time.Time) (int, error) {
	n := 0
	for _, u := range r.units {
		if u.StatusChangedAt != nil && !u.StatusChangedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeFloorRepo struct {
	floors map[uuid.UUID]*models.Floor
}

func newFakeFloorRepo() *fakeFloorRepo {
	return &fakeFloorRepo{floors: map[uuid.UUID]*models.Floor{}}
}

func (r *fakeFloorRepo) Create(_ context.Context, f *models.Floor) error {
	cp := *f
	r.floors[f.ID] = &cp
	return nil
}

func (r *fakeFloorRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Floor, error) {
	f, ok := r.floors[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFloorRepo) ListByBuildingID(_ context.Context, buildingID uuid.UUID) ([]*models.Floor, error) {
	var out []*models.Floor
	for _, f := range r.floors {
		if f.BuildingID == buildingID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFloorRepo) Update(_ context.Context, f *models.Floor) error {
	cp := *f
	r.floors[f.ID] = &cp
	return nil
}

func (r *fakeFloorRepo) UpdatePosition(_ context.Context, id uuid.UUID, positionData *string) error {
	if f, ok := r.floors[id]; ok {
		f.PositionData = positionData
	}
	return nil
}

func (r *fakeFloorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.floors, id)
	return nil
}

/* ---------- tests ---------- */

func setupUnitService(t *testing.T) (*UnitService, *fakeUnitRepo, *models.Floor) {
	t.Helper()
	floorRepo := newFakeFloorRepo()
	unitRepo := newFakeUnitRepo(floorRepo)

	rate := 1400.0
	floor := &models.Floor{
		ID:             uuid.New(),
		BuildingID:     uuid.New(),
		Number:         2,
		BasePricePerM2: &rate,
	}
	require.NoError(t, floorRepo.Create(context.Background(), floor))

	return NewUnitService(unitRepo, floorRepo), unitRepo, floor
}

func TestUnitServiceCreateNormalizesLegacyRect(t *testing.T) {
	svc, repo, floor := setupUnitService(t)
	rect := `{"x":10,"y":20,"width":30,"height":15}`

	dto, err := svc.Create(context.Background(), dtos.CreateUnitRequest{
		FloorID:     floor.ID.String(),
		UnitNumber:  "201",
		Rooms:       2,
		Area:        50,
		PolygonData: &rect,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusAvailable, dto.Status)
	require.Equal(t, 70000.0, dto.Price) // 1400 * 50 via floor rate
	require.Len(t, dto.Polygon, 4)

	// storage holds the normalized point list, not the rect
	stored := repo.units[dto.ID]
	require.Contains(t, *stored.PolygonData, `"x":10`)
	require.NotContains(t, *stored.PolygonData, "width")
}

func TestUnitServiceCreateRejectsUnknownFloor(t *testing.T) {
	svc, _, _ := setupUnitService(t)

	_, err := svc.Create(context.Background(), dtos.CreateUnitRequest{
		FloorID:    uuid.New().String(),
		UnitNumber: "101",
		Rooms:      1,
		Area:       30,
	})
	require.Error(t, err)
}

func TestUnitServiceChangeStatusFlow(t *testing.T) {
	svc, _, floor := setupUnitService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dtos.CreateUnitRequest{
		FloorID: floor.ID.String(), UnitNumber: "201", Rooms: 2, Area: 50,
	})
	require.NoError(t, err)

	// sale without a name is refused
	_, err = svc.ChangeStatus(ctx, created.ID, dtos.ChangeStatusRequest{Status: models.StatusSold})
	require.Error(t, err)

	name := "Aziz Karimov"
	sold, err := svc.ChangeStatus(ctx, created.ID, dtos.ChangeStatusRequest{
		Status: models.StatusSold, CustomerName: &name,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusSold, sold.Status)
	require.NotNil(t, sold.StatusChangedAt)

	// revert clears the customer
	reverted, err := svc.ChangeStatus(ctx, created.ID, dtos.ChangeStatusRequest{Status: models.StatusAvailable})
	require.NoError(t, err)
	require.Equal(t, models.StatusAvailable, reverted.Status)
	require.Nil(t, reverted.CustomerName)
}

func TestUnitServiceListPriceFilterAndSort(t *testing.T) {
	svc, _, floor := setupUnitService(t)
	ctx := context.Background()

	for _, spec := range []struct {
		number string
		area   float64
	}{
		{"201", 30}, // 42000
		{"202", 50}, // 70000
		{"203", 70}, // 98000
	} {
		_, err := svc.Create(ctx, dtos.CreateUnitRequest{
			FloorID: floor.ID.String(), UnitNumber: spec.number, Rooms: 2, Area: spec.area,
		})
		require.NoError(t, err)
	}

	min, max := 50000.0, 100000.0
	units, err := svc.List(ctx, dtos.ListUnitsQuery{
		MinPrice: &min, MaxPrice: &max, SortKey: dtos.SortUnitsByPrice, SortDesc: true,
	})
	require.NoError(t, err)
	require.Len(t, units, 2)
	require.Equal(t, "203", units[0].UnitNumber)
	require.Equal(t, "202", units[1].UnitNumber)

	byArea, err := svc.List(ctx, dtos.ListUnitsQuery{SortKey: dtos.SortUnitsByArea})
	require.NoError(t, err)
	require.Len(t, byArea, 3)
	require.Equal(t, 30.0, byArea[0].Area)
	require.Equal(t, 70.0, byArea[2].Area)

	byNumber, err := svc.List(ctx, dtos.ListUnitsQuery{SortKey: dtos.SortUnitsByNumber, SortDesc: true})
	require.NoError(t, err)
	require.Equal(t, "203", byNumber[0].UnitNumber)
	require.Equal(t, "201", byNumber[2].UnitNumber)
}
