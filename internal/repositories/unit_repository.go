package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/estatehq/sales-service/internal/models"
)

// UnitFilter narrows unit listings. Nil fields are ignored. Price-range
// filtering is intentionally absent here: the resolved price depends on the
// floor's base rate, so the service layer applies it through the pricing
// resolver after loading.
type UnitFilter struct {
	FloorID    *uuid.UUID
	BuildingID *uuid.UUID
	ProjectID  *uuid.UUID
	Status     *string
	Rooms      *int
}

// UnitWithFloor is a unit row joined with the pricing-relevant floor
// columns, which every listing surface needs for price resolution.
type UnitWithFloor struct {
	models.Unit
	FloorNumber         int      `json:"floor_number"`
	FloorBasePricePerM2 *float64 `json:"floor_base_price_per_m2"`
	BuildingID          uuid.UUID `json:"building_id"`
}

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error
	CreateMany(ctx context.Context, list []models.Unit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	GetWithFloor(ctx context.Context, id uuid.UUID) (*UnitWithFloor, error)
	ListByFloorID(ctx context.Context, floorID uuid.UUID) ([]*models.Unit, error)
	ListWithFloor(ctx context.Context, f UnitFilter) ([]*UnitWithFloor, error)

	Update(ctx context.Context, u *models.Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByFloorID(ctx context.Context, floorID uuid.UUID) error

	CountStatusChangedSince(ctx context.Context, since time.Time) (int, error)
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

/* ---------- create ---------- */

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO units (
			id, floor_id, unit_number, rooms, area, status,
			price_per_m2, total_price, polygon_data, label_x, label_y,
			description, customer_name, customer_phone, customer_notes,
			status_changed_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16, NOW(), NOW())
	`, u.ID, u.FloorID, u.UnitNumber, u.Rooms, u.Area, u.Status,
		u.PricePerM2, u.TotalPrice, u.PolygonData, u.LabelX, u.LabelY,
		u.Description, u.CustomerName, u.CustomerPhone, u.CustomerNotes,
		u.StatusChangedAt)
	return err
}

func (r *unitRepo) CreateMany(ctx context.Context, list []models.Unit) error {
	for i := range list {
		if err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

/* ---------- reads ---------- */

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	row := r.db.QueryRow(ctx, baseSelectUnit()+" WHERE id=$1", id)
	return scanUnit(row)
}

func (r *unitRepo) GetWithFloor(ctx context.Context, id uuid.UUID) (*UnitWithFloor, error) {
	row := r.db.QueryRow(ctx, baseSelectUnitWithFloor()+" WHERE u.id=$1", id)
	return scanUnitWithFloor(row)
}

func (r *unitRepo) ListByFloorID(ctx context.Context, floorID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE floor_id=$1 ORDER BY unit_number", floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *unitRepo) ListWithFloor(ctx context.Context, filter UnitFilter) ([]*UnitWithFloor, error) {
	sql := baseSelectUnitWithFloor()
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.FloorID != nil {
		add("u.floor_id=$%d", *filter.FloorID)
	}
	if filter.BuildingID != nil {
		add("f.building_id=$%d", *filter.BuildingID)
	}
	if filter.ProjectID != nil {
		add("b.project_id=$%d", *filter.ProjectID)
	}
	if filter.Status != nil {
		add("u.status=$%d", *filter.Status)
	}
	if filter.Rooms != nil {
		add("u.rooms=$%d", *filter.Rooms)
	}
	for i, c := range conds {
		if i == 0 {
			sql += " WHERE " + c
		} else {
			sql += " AND " + c
		}
	}
	sql += " ORDER BY f.number, u.unit_number"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*UnitWithFloor
	for rows.Next() {
		u, err := scanUnitWithFloor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

/* ---------- update / delete ---------- */

func (r *unitRepo) Update(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
		UPDATE units
		SET unit_number=$1, rooms=$2, area=$3, status=$4,
		    price_per_m2=$5, total_price=$6, polygon_data=$7,
		    label_x=$8, label_y=$9, description=$10,
		    customer_name=$11, customer_phone=$12, customer_notes=$13,
		    status_changed_at=$14, updated_at=NOW()
		WHERE id=$15
	`, u.UnitNumber, u.Rooms, u.Area, u.Status,
		u.PricePerM2, u.TotalPrice, u.PolygonData,
		u.LabelX, u.LabelY, u.Description,
		u.CustomerName, u.CustomerPhone, u.CustomerNotes,
		u.StatusChangedAt, u.ID)
	return err
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	return err
}

func (r *unitRepo) DeleteByFloorID(ctx context.Context, floorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE floor_id=$1`, floorID)
	return err
}

func (r *unitRepo) CountStatusChangedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM units WHERE status_changed_at >= $1`, since,
	).Scan(&n)
	return n, err
}

/* ---------- internals ---------- */

func baseSelectUnit() string {
	return `
		SELECT id, floor_id, unit_number, rooms, area, status,
		price_per_m2, total_price, polygon_data, label_x, label_y,
		description, customer_name, customer_phone, customer_notes,
		status_changed_at, created_at, updated_at
		FROM units`
}

func baseSelectUnitWithFloor() string {
	return `
		SELECT u.id, u.floor_id, u.unit_number, u.rooms, u.area, u.status,
		u.price_per_m2, u.total_price, u.polygon_data, u.label_x, u.label_y,
		u.description, u.customer_name, u.customer_phone, u.customer_notes,
		u.status_changed_at, u.created_at, u.updated_at,
		f.number, f.base_price_per_m2, f.building_id
		FROM units u
		JOIN floors f ON f.id = u.floor_id
		JOIN buildings b ON b.id = f.building_id`
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(
		&u.ID, &u.FloorID, &u.UnitNumber, &u.Rooms, &u.Area, &u.Status,
		&u.PricePerM2, &u.TotalPrice, &u.PolygonData, &u.LabelX, &u.LabelY,
		&u.Description, &u.CustomerName, &u.CustomerPhone, &u.CustomerNotes,
		&u.StatusChangedAt, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func scanUnitWithFloor(row pgx.Row) (*UnitWithFloor, error) {
	var u UnitWithFloor
	if err := row.Scan(
		&u.ID, &u.FloorID, &u.UnitNumber, &u.Rooms, &u.Area, &u.Status,
		&u.PricePerM2, &u.TotalPrice, &u.PolygonData, &u.LabelX, &u.LabelY,
		&u.Description, &u.CustomerName, &u.CustomerPhone, &u.CustomerNotes,
		&u.StatusChangedAt, &u.CreatedAt, &u.UpdatedAt,
		&u.FloorNumber, &u.FloorBasePricePerM2, &u.BuildingID,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
