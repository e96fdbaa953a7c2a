package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/estatehq/sales-service/internal/models"
)

/* ───────────── public interface ───────────── */

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Building, error)
	Update(ctx context.Context, b *models.Building) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type buildingRepo struct {
	db DB
}

func NewBuildingRepository(db DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO buildings (
			id, project_id, name, front_view_image, position_data, sort_order,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
	`, b.ID, b.ProjectID, b.Name, b.FrontViewImage, b.PositionData, b.SortOrder)
	return err
}

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE id=$1", id)
	return scanBuilding(row)
}

func (r *buildingRepo) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Building, error) {
	rows, err := r.db.Query(ctx, baseSelectBuilding()+" WHERE project_id=$1 ORDER BY sort_order, name", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *buildingRepo) Update(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		UPDATE buildings
		SET name=$1, front_view_image=$2, position_data=$3, sort_order=$4,
		    updated_at=NOW()
		WHERE id=$5
	`, b.Name, b.FrontViewImage, b.PositionData, b.SortOrder, b.ID)
	return err
}

func (r *buildingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM buildings WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectBuilding() string {
	return `
		SELECT id, project_id, name, front_view_image, position_data, sort_order,
		created_at, updated_at
		FROM buildings`
}

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(
		&b.ID, &b.ProjectID, &b.Name, &b.FrontViewImage,
		&b.PositionData, &b.SortOrder,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
