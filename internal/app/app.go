package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/estatehq/sales-service/internal/config"
	"github.com/estatehq/sales-service/internal/utils"
)

const (
	maxConnectRetries = 5
	initialBackoff    = 500 * time.Millisecond
)

// App holds process-wide resources.
type App struct {
	Cfg *config.Config
	DB  *pgxpool.Pool
}

func NewApp(cfg *config.Config) (*App, error) {
	db, err := connectWithRetry(context.Background(), cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &App{Cfg: cfg, DB: db}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

// connectWithRetry gives the database a few seconds to come up; compose
// starts the service and postgres together.
func connectWithRetry(ctx context.Context, url string) (*pgxpool.Pool, error) {
	backoff := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= maxConnectRetries; attempt++ {
		pool, err := pgxpool.Connect(ctx, url)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}
		lastErr = err
		utils.Logger.WithError(err).Warnf("DB connect attempt %d/%d failed, retrying in %s", attempt, maxConnectRetries, backoff)
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, lastErr
}

func ensureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schemaSQL)
	return err
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	address TEXT,
	cover_image TEXT,
	top_view_image TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS buildings (
	id UUID PRIMARY KEY,
	project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	front_view_image TEXT,
	position_data TEXT,
	sort_order INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS floors (
	id UUID PRIMARY KEY,
	building_id UUID NOT NULL REFERENCES buildings(id) ON DELETE CASCADE,
	number INT NOT NULL,
	base_price_per_m2 DOUBLE PRECISION,
	floor_plan_image TEXT,
	position_data TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS units (
	id UUID PRIMARY KEY,
	floor_id UUID NOT NULL REFERENCES floors(id) ON DELETE CASCADE,
	unit_number TEXT NOT NULL,
	rooms INT NOT NULL,
	area DOUBLE PRECISION NOT NULL,
	status TEXT NOT NULL DEFAULT 'available',
	price_per_m2 DOUBLE PRECISION,
	total_price DOUBLE PRECISION,
	polygon_data TEXT,
	label_x DOUBLE PRECISION,
	label_y DOUBLE PRECISION,
	description TEXT,
	customer_name TEXT,
	customer_phone TEXT,
	customer_notes TEXT,
	status_changed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS leads (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	project_id UUID,
	project_name TEXT,
	unit_id UUID,
	unit_number TEXT,
	status TEXT NOT NULL DEFAULT 'new',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_buildings_project ON buildings(project_id);
CREATE INDEX IF NOT EXISTS idx_floors_building ON floors(building_id);
CREATE INDEX IF NOT EXISTS idx_units_floor ON units(floor_id);
CREATE INDEX IF NOT EXISTS idx_units_status ON units(status);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
`
