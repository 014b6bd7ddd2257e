package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/copapymes/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("email address is already in use")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, roleFilter *models.UserRole) ([]models.User, error)
	CountByRole(ctx context.Context) (map[models.UserRole]int, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int, at time.Time) error
	Delete(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

// Users live in a single table: common columns plus nullable role-specific
// columns. The role column decides which profile group is populated.
const userColumns = `
	id, email, password_hash, first_name, last_name, role, document, phone, birth_date,
	active, last_login, created_at,
	access_level, appointed_at,
	department, can_manage_teams,
	shift, can_record_results,
	category, license_number, specialty, available, matches_worked,
	position, shirt_number, team_id, goals, yellow_cards, red_cards`

func (r *postgresUserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (
			email, password_hash, first_name, last_name, role, document, phone, birth_date, active,
			access_level, appointed_at,
			department, can_manage_teams,
			shift, can_record_results,
			category, license_number, specialty, available, matches_worked,
			position, shirt_number, team_id, goals, yellow_cards, red_cards
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING id, created_at`

	var (
		accessLevel      *string
		appointedAt      *time.Time
		department       *string
		canManageTeams   *bool
		shift            *string
		canRecordResults *bool
		category         *string
		licenseNumber    *string
		specialty        *string
		available        *bool
		matchesWorked    *int
		position         *string
		shirtNumber      *int
		teamID           *int
		goals            *int
		yellowCards      *int
		redCards         *int
	)

	switch u.Role {
	case models.RoleAdministrator:
		if p := u.Administrator; p != nil {
			accessLevel = &p.AccessLevel
			appointedAt = p.AppointedAt
		}
	case models.RoleManager:
		if p := u.Manager; p != nil {
			department = p.Department
			canManageTeams = &p.CanManageTeams
		}
	case models.RoleReceptionist:
		if p := u.Receptionist; p != nil {
			shift = p.Shift
			canRecordResults = &p.CanRecordResults
		}
	case models.RoleReferee:
		if p := u.Referee; p != nil {
			category = p.Category
			licenseNumber = p.LicenseNumber
			specialty = p.Specialty
			available = &p.Available
			matchesWorked = &p.MatchesWorked
		}
	case models.RolePlayer:
		if p := u.Player; p != nil {
			position = p.Position
			shirtNumber = p.ShirtNumber
			teamID = p.TeamID
			goals = &p.Goals
			yellowCards = &p.YellowCards
			redCards = &p.RedCards
		}
	}

	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.Document, u.Phone, u.BirthDate, u.Active,
		accessLevel, appointedAt,
		department, canManageTeams,
		shift, canRecordResults,
		category, licenseNumber, specialty, available, matchesWorked,
		position, shirtNumber, teamID, goals, yellowCards, redCards,
	).Scan(&u.ID, &u.CreatedAt)

	return r.handleUserError(err)
}

func (r *postgresUserRepository) scanUser(row interface{ Scan(dest ...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	var (
		accessLevel      sql.NullString
		appointedAt      sql.NullTime
		department       sql.NullString
		canManageTeams   sql.NullBool
		shift            sql.NullString
		canRecordResults sql.NullBool
		category         sql.NullString
		licenseNumber    sql.NullString
		specialty        sql.NullString
		available        sql.NullBool
		matchesWorked    sql.NullInt64
		position         sql.NullString
		shirtNumber      sql.NullInt64
		teamID           sql.NullInt64
		goals            sql.NullInt64
		yellowCards      sql.NullInt64
		redCards         sql.NullInt64
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&u.Document, &u.Phone, &u.BirthDate, &u.Active, &u.LastLogin, &u.CreatedAt,
		&accessLevel, &appointedAt,
		&department, &canManageTeams,
		&shift, &canRecordResults,
		&category, &licenseNumber, &specialty, &available, &matchesWorked,
		&position, &shirtNumber, &teamID, &goals, &yellowCards, &redCards,
	)
	if err != nil {
		return nil, err
	}

	switch u.Role {
	case models.RoleAdministrator:
		u.Administrator = &models.AdministratorProfile{AccessLevel: accessLevel.String}
		if appointedAt.Valid {
			t := appointedAt.Time
			u.Administrator.AppointedAt = &t
		}
	case models.RoleManager:
		u.Manager = &models.ManagerProfile{CanManageTeams: canManageTeams.Bool}
		if department.Valid {
			s := department.String
			u.Manager.Department = &s
		}
	case models.RoleReceptionist:
		u.Receptionist = &models.ReceptionistProfile{CanRecordResults: canRecordResults.Bool}
		if shift.Valid {
			s := shift.String
			u.Receptionist.Shift = &s
		}
	case models.RoleReferee:
		u.Referee = &models.RefereeProfile{
			Available:     available.Bool,
			MatchesWorked: int(matchesWorked.Int64),
		}
		if category.Valid {
			s := category.String
			u.Referee.Category = &s
		}
		if licenseNumber.Valid {
			s := licenseNumber.String
			u.Referee.LicenseNumber = &s
		}
		if specialty.Valid {
			s := specialty.String
			u.Referee.Specialty = &s
		}
	case models.RolePlayer:
		u.Player = &models.PlayerProfile{
			Goals:       int(goals.Int64),
			YellowCards: int(yellowCards.Int64),
			RedCards:    int(redCards.Int64),
		}
		if position.Valid {
			s := position.String
			u.Player.Position = &s
		}
		if shirtNumber.Valid {
			n := int(shirtNumber.Int64)
			u.Player.ShirtNumber = &n
		}
		if teamID.Valid {
			n := int(teamID.Int64)
			u.Player.TeamID = &n
		}
	}

	return u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	u, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`
	u, err := r.scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresUserRepository) List(ctx context.Context, roleFilter *models.UserRole) ([]models.User, error) {
	query := `SELECT` + userColumns + ` FROM users`
	args := []interface{}{}
	if roleFilter != nil {
		query += ` WHERE role = $1`
		args = append(args, *roleFilter)
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, scanErr := r.scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) CountByRole(ctx context.Context) (map[models.UserRole]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.UserRole]int)
	for rows.Next() {
		var role models.UserRole
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	return counts, rows.Err()
}

func (r *postgresUserRepository) Update(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users SET
			first_name = $1,
			last_name = $2,
			document = $3,
			phone = $4,
			birth_date = $5,
			active = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		u.FirstName, u.LastName, u.Document, u.Phone, u.BirthDate, u.Active, u.ID,
	)
	if err != nil {
		return r.handleUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return r.handleUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) handleUserError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		if pqErr.Constraint == "users_email_key" {
			return ErrUserEmailConflict
		}
	}
	return err
}
