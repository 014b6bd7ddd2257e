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
	ErrPrizeNotFound          = errors.New("prize not found")
	ErrPrizeConflict          = errors.New("a prize for this tournament and award date already exists")
	ErrPrizeTournamentInvalid = errors.New("invalid tournament reference")
)

type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	GetByID(ctx context.Context, id int) (*models.Prize, error)
	List(ctx context.Context) ([]models.Prize, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Prize, error)
	Update(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, id int) error
}

type postgresPrizeRepository struct {
	db *sql.DB
}

func NewPostgresPrizeRepository(db *sql.DB) PrizeRepository {
	return &postgresPrizeRepository{db: db}
}

func (r *postgresPrizeRepository) Create(ctx context.Context, p *models.Prize) error {
	query := `
		INSERT INTO prizes (tournament_id, name, description, position, award_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.TournamentID, p.Name, p.Description, p.Position, p.AwardDate,
	).Scan(&p.ID)
	return r.handlePrizeError(err)
}

func (r *postgresPrizeRepository) GetByID(ctx context.Context, id int) (*models.Prize, error) {
	query := `SELECT id, tournament_id, name, description, position, award_date FROM prizes WHERE id = $1`

	p := &models.Prize{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.TournamentID, &p.Name, &p.Description, &p.Position, &p.AwardDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPrizeNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPrizeRepository) List(ctx context.Context) ([]models.Prize, error) {
	return r.list(ctx, `SELECT id, tournament_id, name, description, position, award_date FROM prizes ORDER BY award_date DESC`)
}

func (r *postgresPrizeRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Prize, error) {
	return r.list(ctx,
		`SELECT id, tournament_id, name, description, position, award_date FROM prizes WHERE tournament_id = $1 ORDER BY award_date DESC`,
		tournamentID,
	)
}

func (r *postgresPrizeRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Prize, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	defer rows.Close()

	prizes := make([]models.Prize, 0)
	for rows.Next() {
		var p models.Prize
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.Name, &p.Description, &p.Position, &p.AwardDate); err != nil {
			return nil, err
		}
		prizes = append(prizes, p)
	}
	return prizes, rows.Err()
}

func (r *postgresPrizeRepository) Update(ctx context.Context, p *models.Prize) error {
	query := `UPDATE prizes SET name = $1, description = $2, position = $3, award_date = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Position, p.AwardDate, p.ID)
	if err != nil {
		return r.handlePrizeError(err)
	}
	return checkAffectedRows(result, ErrPrizeNotFound)
}

func (r *postgresPrizeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prizes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPrizeNotFound)
}

func (r *postgresPrizeRepository) handlePrizeError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "prizes_tournament_id_award_date_key" {
				return ErrPrizeConflict
			}
		case "23503":
			if pqErr.Constraint == "prizes_tournament_id_fkey" {
				return ErrPrizeTournamentInvalid
			}
		}
	}
	return err
}
