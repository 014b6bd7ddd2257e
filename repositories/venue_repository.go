package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/copapymes/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrVenueConflict = errors.New("venue with this name and location already exists")
	ErrVenueInUse    = errors.New("venue is in use (matches reference it)")
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) Create(ctx context.Context, v *models.Venue) error {
	query := `
		INSERT INTO venues (name, location, capacity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, v.Name, v.Location, v.Capacity).
		Scan(&v.ID, &v.CreatedAt)
	return r.handleVenueError(err)
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `SELECT id, name, location, capacity, created_at, photo_key FROM venues WHERE id = $1`

	v := &models.Venue{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Location, &v.Capacity, &v.CreatedAt, &v.PhotoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	query := `SELECT id, name, location, capacity, created_at, photo_key FROM venues ORDER BY name, location`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.Capacity, &v.CreatedAt, &v.PhotoKey); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *postgresVenueRepository) Update(ctx context.Context, v *models.Venue) error {
	query := `UPDATE venues SET name = $1, location = $2, capacity = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, v.Name, v.Location, v.Capacity, v.ID)
	if err != nil {
		return r.handleVenueError(err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE venues SET photo_key = $1 WHERE id = $2`, photoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update venue photo key: %w", err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return r.handleVenueError(err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) handleVenueError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "venues_name_location_key" {
				return ErrVenueConflict
			}
		case "23503":
			return ErrVenueInUse
		}
	}
	return err
}
