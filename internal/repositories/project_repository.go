package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/estatehq/sales-service/internal/models"
)

/* ───────────── public interface ───────────── */

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type projectRepo struct {
	db DB
}

func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO projects (
			id, name, description, address, cover_image, top_view_image,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
	`, p.ID, p.Name, p.Description, p.Address, p.CoverImage, p.TopViewImage)
	return err
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	row := r.db.QueryRow(ctx, baseSelectProject()+" WHERE id=$1", id)
	return scanProject(row)
}

func (r *projectRepo) List(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.Query(ctx, baseSelectProject()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectRepo) Update(ctx context.Context, p *models.Project) error {
	_, err := r.db.Exec(ctx, `
		UPDATE projects
		SET name=$1, description=$2, address=$3, cover_image=$4,
		    top_view_image=$5, updated_at=NOW()
		WHERE id=$6
	`, p.Name, p.Description, p.Address, p.CoverImage, p.TopViewImage, p.ID)
	return err
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectProject() string {
	return `
		SELECT id, name, description, address, cover_image, top_view_image,
		created_at, updated_at
		FROM projects`
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Address,
		&p.CoverImage, &p.TopViewImage,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
