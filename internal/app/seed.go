package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/geometry"
	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/repositories"
	"github.com/estatehq/sales-service/internal/utils"
)

// SeedTestData creates one demo project with two buildings, nine floors
// each and a handful of drawn units, so the admin UI and the public views
// have something to show on a fresh database. No-op when projects exist.
func SeedTestData(
	ctx context.Context,
	projectRepo repositories.ProjectRepository,
	buildingRepo repositories.BuildingRepository,
	floorRepo repositories.FloorRepository,
	unitRepo repositories.UnitRepository,
) error {
	existing, err := projectRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list projects: %w", err)
	}
	if len(existing) > 0 {
		utils.Logger.Info("Seed skipped: projects already present")
		return nil
	}

	desc := "Riverside residential complex, 2 towers, handover Q4 2027"
	addr := "12 Embankment Street"
	project := models.Project{
		ID:          uuid.New(),
		Name:        "Riverside Towers",
		Description: &desc,
		Address:     &addr,
	}
	if err := projectRepo.Create(ctx, &project); err != nil {
		return fmt.Errorf("seed: create project: %w", err)
	}

	footprints := []geometry.Polygon{
		{{X: 12, Y: 18}, {X: 38, Y: 15}, {X: 41, Y: 52}, {X: 14, Y: 55}},
		{{X: 55, Y: 30}, {X: 84, Y: 28}, {X: 86, Y: 70}, {X: 57, Y: 72}},
	}

	for i, name := range []string{"Tower A", "Tower B"} {
		blob, err := geometry.MarshalPolygon(footprints[i])
		if err != nil {
			return fmt.Errorf("seed: marshal footprint: %w", err)
		}
		building := models.Building{
			ID:           uuid.New(),
			ProjectID:    project.ID,
			Name:         name,
			PositionData: &blob,
			SortOrder:    i,
		}
		if err := buildingRepo.Create(ctx, &building); err != nil {
			return fmt.Errorf("seed: create building: %w", err)
		}
		if err := seedFloors(ctx, floorRepo, unitRepo, building.ID); err != nil {
			return err
		}
	}

	utils.Logger.Info("Seeded demo project")
	return nil
}

func seedFloors(
	ctx context.Context,
	floorRepo repositories.FloorRepository,
	unitRepo repositories.UnitRepository,
	buildingID uuid.UUID,
) error {
	const floorCount = 9
	baseRate := 1450.0

	for number := 1; number <= floorCount; number++ {
		// upper floors carry a premium
		rate := baseRate + float64(number-1)*35
		floor := models.Floor{
			ID:             uuid.New(),
			BuildingID:     buildingID,
			Number:         number,
			BasePricePerM2: &rate,
		}
		if err := floorRepo.Create(ctx, &floor); err != nil {
			return fmt.Errorf("seed: create floor: %w", err)
		}
		if err := seedUnits(ctx, unitRepo, floor.ID, number); err != nil {
			return err
		}
	}
	return nil
}

func seedUnits(ctx context.Context, unitRepo repositories.UnitRepository, floorID uuid.UUID, floorNumber int) error {
	type template struct {
		suffix  string
		rooms   int
		area    float64
		outline geometry.Polygon
	}
	templates := []template{
		{"01", 1, 38.5, geometry.Polygon{{X: 5, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 45}, {X: 5, Y: 45}}},
		{"02", 2, 56.2, geometry.Polygon{{X: 32, Y: 10}, {X: 62, Y: 10}, {X: 62, Y: 45}, {X: 32, Y: 45}}},
		{"03", 3, 74.8, geometry.Polygon{{X: 64, Y: 10}, {X: 95, Y: 10}, {X: 95, Y: 45}, {X: 64, Y: 45}}},
		{"04", 2, 61.0, geometry.Polygon{{X: 5, Y: 50}, {X: 48, Y: 50}, {X: 48, Y: 90}, {X: 5, Y: 90}}},
		{"05", 1, 42.3, geometry.Polygon{{X: 50, Y: 50}, {X: 72, Y: 50}, {X: 72, Y: 90}, {X: 50, Y: 90}}},
		{"06", 3, 80.4, geometry.Polygon{{X: 74, Y: 50}, {X: 95, Y: 50}, {X: 95, Y: 90}, {X: 74, Y: 90}}},
	}

	units := make([]models.Unit, 0, len(templates))
	for _, t := range templates {
		blob, err := geometry.MarshalPolygon(t.outline)
		if err != nil {
			return fmt.Errorf("seed: marshal unit outline: %w", err)
		}
		units = append(units, models.Unit{
			ID:          uuid.New(),
			FloorID:     floorID,
			UnitNumber:  fmt.Sprintf("%d%s", floorNumber, t.suffix),
			Rooms:       t.rooms,
			Area:        t.area,
			Status:      models.StatusAvailable,
			PolygonData: &blob,
		})
	}
	if err := unitRepo.CreateMany(ctx, units); err != nil {
		return fmt.Errorf("seed: create units: %w", err)
	}
	return nil
}
