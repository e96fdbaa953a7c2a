package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/estatehq/sales-service/internal/models"
)

/* ───────────── public interface ───────────── */

type LeadRepository interface {
	Create(ctx context.Context, l *models.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	List(ctx context.Context) ([]*models.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountSince(ctx context.Context, since time.Time) (int, error)
}

/* ───────────── implementation ───────────── */

type leadRepo struct {
	db DB
}

func NewLeadRepository(db DB) LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(ctx context.Context, l *models.Lead) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO leads (
			id, name, phone, project_id, project_name, unit_id, unit_number,
			status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
	`, l.ID, l.Name, l.Phone, l.ProjectID, l.ProjectName, l.UnitID, l.UnitNumber, l.Status)
	return err
}

func (r *leadRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	row := r.db.QueryRow(ctx, baseSelectLead()+" WHERE id=$1", id)
	return scanLead(row)
}

func (r *leadRepo) List(ctx context.Context) ([]*models.Lead, error) {
	rows, err := r.db.Query(ctx, baseSelectLead()+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *leadRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE leads SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id=$1`, id)
	return err
}

func (r *leadRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

/* ---------- internals ---------- */

func baseSelectLead() string {
	return `
		SELECT id, name, phone, project_id, project_name, unit_id, unit_number,
		status, created_at
		FROM leads`
}

func scanLead(row pgx.Row) (*models.Lead, error) {
	var l models.Lead
	if err := row.Scan(
		&l.ID, &l.Name, &l.Phone, &l.ProjectID, &l.ProjectName,
		&l.UnitID, &l.UnitNumber, &l.Status, &l.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
