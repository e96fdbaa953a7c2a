package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/estatehq/sales-service/internal/models"
)

func TestCopyLayoutToAll(t *testing.T) {
	ctx := context.Background()
	floorRepo := newFakeFloorRepo()
	unitRepo := newFakeUnitRepo(floorRepo)
	svc := NewFloorService(floorRepo, unitRepo, nil)

	buildingID := uuid.New()
	plan := "/uploads/plan-floor1.png"
	floors := make([]*models.Floor, 3)
	for i := range floors {
		floors[i] = &models.Floor{ID: uuid.New(), BuildingID: buildingID, Number: i + 1}
		require.NoError(t, floorRepo.Create(ctx, floors[i]))
	}
	source := floors[0]
	source.FloorPlanImage = &plan
	require.NoError(t, floorRepo.Update(ctx, source))

	poly := `[{"x":5,"y":5},{"x":30,"y":5},{"x":30,"y":40},{"x":5,"y":40}]`
	name := "Aziz"
	require.NoError(t, unitRepo.Create(ctx, &models.Unit{
		ID: uuid.New(), FloorID: source.ID, UnitNumber: "101", Rooms: 2, Area: 50,
		Status: models.StatusSold, CustomerName: &name, PolygonData: &poly,
	}))
	require.NoError(t, unitRepo.Create(ctx, &models.Unit{
		ID: uuid.New(), FloorID: source.ID, UnitNumber: "102", Rooms: 1, Area: 35,
		Status: models.StatusAvailable,
	}))

	// pre-existing unit on a target floor gets replaced
	require.NoError(t, unitRepo.Create(ctx, &models.Unit{
		ID: uuid.New(), FloorID: floors[1].ID, UnitNumber: "999", Rooms: 1, Area: 20,
		Status: models.StatusAvailable,
	}))

	resp, err := svc.CopyLayoutToAll(ctx, source.ID)
	require.NoError(t, err)
	require.Equal(t, 2, resp.CopiedFloors)
	require.Equal(t, 4, resp.CopiedUnits)
	require.Empty(t, resp.FailedFloors)

	for _, target := range floors[1:] {
		units, err := unitRepo.ListByFloorID(ctx, target.ID)
		require.NoError(t, err)
		require.Len(t, units, 2)

		numbers := map[string]*models.Unit{}
		for _, u := range units {
			numbers[u.UnitNumber] = u
		}
		lead, ok := numbers[renumberUnit("101", target.Number)]
		require.True(t, ok, "expected renumbered unit on floor %d", target.Number)

		// copies start over: available, no customer, geometry carried
		require.Equal(t, models.StatusAvailable, lead.Status)
		require.Nil(t, lead.CustomerName)
		require.Equal(t, poly, *lead.PolygonData)

		f, err := floorRepo.GetByID(ctx, target.ID)
		require.NoError(t, err)
		require.Equal(t, plan, *f.FloorPlanImage)
	}

	// the source floor is untouched
	sourceUnits, err := unitRepo.ListByFloorID(ctx, source.ID)
	require.NoError(t, err)
	require.Len(t, sourceUnits, 2)
}

func TestCopyLayoutUnknownSource(t *testing.T) {
	floorRepo := newFakeFloorRepo()
	svc := NewFloorService(floorRepo, newFakeUnitRepo(floorRepo), nil)

	_, err := svc.CopyLayoutToAll(context.Background(), uuid.New())
	require.Error(t, err)
}
