package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/estatehq/sales-service/internal/models"
)

/* ───────────── public interface ───────────── */

type FloorRepository interface {
	Create(ctx context.Context, f *models.Floor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Floor, error)
	ListByBuildingID(ctx context.Context, buildingID uuid.UUID) ([]*models.Floor, error)
	Update(ctx context.Context, f *models.Floor) error
	UpdatePosition(ctx context.Context, id uuid.UUID, positionData *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type floorRepo struct {
	db DB
}

func NewFloorRepository(db DB) FloorRepository {
	return &floorRepo{db: db}
}

func (r *floorRepo) Create(ctx context.Context, f *models.Floor) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO floors (
			id, building_id, number, base_price_per_m2, floor_plan_image,
			position_data, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
	`, f.ID, f.BuildingID, f.Number, f.BasePricePerM2, f.FloorPlanImage, f.PositionData)
	return err
}

func (r *floorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Floor, error) {
	row := r.db.QueryRow(ctx, baseSelectFloor()+" WHERE id=$1", id)
	return scanFloor(row)
}

func (r *floorRepo) ListByBuildingID(ctx context.Context, buildingID uuid.UUID) ([]*models.Floor, error) {
	rows, err := r.db.Query(ctx, baseSelectFloor()+" WHERE building_id=$1 ORDER BY number", buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Floor
	for rows.Next() {
		f, err := scanFloor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *floorRepo) Update(ctx context.Context, f *models.Floor) error {
	_, err := r.db.Exec(ctx, `
		UPDATE floors
		SET number=$1, base_price_per_m2=$2, floor_plan_image=$3,
		    position_data=$4, updated_at=NOW()
		WHERE id=$5
	`, f.Number, f.BasePricePerM2, f.FloorPlanImage, f.PositionData, f.ID)
	return err
}

func (r *floorRepo) UpdatePosition(ctx context.Context, id uuid.UUID, positionData *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE floors SET position_data=$1, updated_at=NOW() WHERE id=$2
	`, positionData, id)
	return err
}

func (r *floorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM floors WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectFloor() string {
	return `
		SELECT id, building_id, number, base_price_per_m2, floor_plan_image,
		position_data, created_at, updated_at
		FROM floors`
}

func scanFloor(row pgx.Row) (*models.Floor, error) {
	var f models.Floor
	if err := row.Scan(
		&f.ID, &f.BuildingID, &f.Number, &f.BasePricePerM2,
		&f.FloorPlanImage, &f.PositionData,
		&f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}
