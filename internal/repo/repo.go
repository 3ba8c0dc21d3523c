package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"devevents/internal/dbconn"
	"devevents/internal/model"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrSlugTaken     = errors.New("slug already taken")
)

type Repository interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	GetEventBySlug(ctx context.Context, slug string) (*model.Event, error)
	GetAllEvents(ctx context.Context) ([]model.Event, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	MigrateUp(migrationsDir string) error
}

type repository struct {
	conns *dbconn.Manager
	log   *zerolog.Logger
}

func NewRepository(conns *dbconn.Manager, log *zerolog.Logger) (Repository, error) {
	if conns == nil {
		return nil, fmt.Errorf("connection manager cannot be nil")
	}
	return &repository{conns: conns, log: log}, nil
}

func (r *repository) db(ctx context.Context) (*dbpg.DB, error) {
	db, err := r.conns.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return db, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	db, err := r.db(context.Background())
	if err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) CreateEvent(ctx context.Context, e *model.Event) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location,
		                    event_date, event_time, mode, audience, agenda, organizer, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	row := db.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
	)

	if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *repository) GetEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, slug, description, overview, image, venue, location,
		       event_date, event_time, mode, audience, agenda, organizer, tags,
		       created_at, updated_at
		FROM events WHERE slug = $1
	`
	row := db.QueryRowContext(ctx, query, slug)

	var e model.Event
	if err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location,
		&e.Date, &e.Time, &e.Mode, &e.Audience, pq.Array(&e.Agenda), &e.Organizer, pq.Array(&e.Tags),
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by slug: %w", err)
	}
	return &e, nil
}

func (r *repository) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, slug, description, overview, image, venue, location,
		       event_date, event_time, mode, audience, agenda, organizer, tags,
		       created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location,
			&e.Date, &e.Time, &e.Mode, &e.Audience, pq.Array(&e.Agenda), &e.Organizer, pq.Array(&e.Tags),
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

func (r *repository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	db, err := r.db(ctx)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM events WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}
