package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/copapymes/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrDivisionNotFound     = errors.New("division not found")
	ErrDivisionNameConflict = errors.New("division name is already in use")
)

type DivisionRepository interface {
	Create(ctx context.Context, division *models.Division) error
	GetByID(ctx context.Context, id int) (*models.Division, error)
	List(ctx context.Context) ([]models.Division, error)
	Update(ctx context.Context, division *models.Division) error
	Delete(ctx context.Context, id int) error
}

type postgresDivisionRepository struct {
	db *sql.DB
}

func NewPostgresDivisionRepository(db *sql.DB) DivisionRepository {
	return &postgresDivisionRepository{db: db}
}

func (r *postgresDivisionRepository) Create(ctx context.Context, d *models.Division) error {
	query := `INSERT INTO divisions (name, quota) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, d.Name, d.Quota).Scan(&d.ID, &d.CreatedAt)
	return r.handleDivisionError(err)
}

func (r *postgresDivisionRepository) GetByID(ctx context.Context, id int) (*models.Division, error) {
	query := `SELECT id, name, quota, created_at FROM divisions WHERE id = $1`

	d := &models.Division{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Quota, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDivisionNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *postgresDivisionRepository) List(ctx context.Context) ([]models.Division, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, quota, created_at FROM divisions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divisions := make([]models.Division, 0)
	for rows.Next() {
		var d models.Division
		if err := rows.Scan(&d.ID, &d.Name, &d.Quota, &d.CreatedAt); err != nil {
			return nil, err
		}
		divisions = append(divisions, d)
	}
	return divisions, rows.Err()
}

func (r *postgresDivisionRepository) Update(ctx context.Context, d *models.Division) error {
	result, err := r.db.ExecContext(ctx, `UPDATE divisions SET name = $1, quota = $2 WHERE id = $3`, d.Name, d.Quota, d.ID)
	if err != nil {
		return r.handleDivisionError(err)
	}
	return checkAffectedRows(result, ErrDivisionNotFound)
}

func (r *postgresDivisionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM divisions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDivisionNotFound)
}

func (r *postgresDivisionRepository) handleDivisionError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		if pqErr.Constraint == "divisions_name_key" {
			return ErrDivisionNameConflict
		}
	}
	return err
}
