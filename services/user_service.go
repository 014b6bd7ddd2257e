package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
)

const minPasswordLength = 8

type CreateUserInput struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
	Document  *string         `json:"document"`
	Phone     *string         `json:"phone"`
	BirthDate *time.Time      `json:"birth_date"`

	// Optional role-specific data; only the group matching Role is read.
	Administrator *models.AdministratorProfile `json:"administrator"`
	Manager       *models.ManagerProfile       `json:"manager"`
	Receptionist  *models.ReceptionistProfile  `json:"receptionist"`
	Referee       *models.RefereeProfile       `json:"referee"`
	Player        *models.PlayerProfile        `json:"player"`
}

type UpdateUserInput struct {
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Document  *string    `json:"document"`
	Phone     *string    `json:"phone"`
	BirthDate *time.Time `json:"birth_date"`
	Active    *bool      `json:"active"`

	Administrator *models.AdministratorProfile `json:"administrator"`
	Manager       *models.ManagerProfile       `json:"manager"`
	Receptionist  *models.ReceptionistProfile  `json:"receptionist"`
	Referee       *models.RefereeProfile       `json:"referee"`
	Player        *models.PlayerProfile        `json:"player"`
}

// UserStats summarizes the user base for the admin dashboard.
type UserStats struct {
	Total  int                     `json:"total"`
	ByRole map[models.UserRole]int `json:"by_role"`
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context, roleFilter *models.UserRole) ([]models.User, error)
	Stats(ctx context.Context) (*UserStats, error)
	Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Email == "" {
		return nil, ErrUserEmailRequired
	}
	if !input.Role.Valid() {
		return nil, ErrUserInvalidRole
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := models.NewUser(input.Email, string(hashedPassword), input.FirstName, input.LastName, input.Role)
	if err != nil {
		return nil, ErrUserInvalidRole
	}
	user.Document = input.Document
	user.Phone = input.Phone
	user.BirthDate = input.BirthDate
	applyProfileInput(user, input.Administrator, input.Manager, input.Receptionist, input.Referee, input.Player)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) List(ctx context.Context, roleFilter *models.UserRole) ([]models.User, error) {
	if roleFilter != nil && !roleFilter.Valid() {
		return nil, ErrUserInvalidRole
	}
	users, err := s.userRepo.List(ctx, roleFilter)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) Stats(ctx context.Context) (*UserStats, error) {
	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	total := 0
	for _, n := range byRole {
		total += n
	}
	return &UserStats{Total: total, ByRole: byRole}, nil
}

func (s *userService) Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Document != nil {
		user.Document = input.Document
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.BirthDate != nil {
		user.BirthDate = input.BirthDate
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	applyProfileInput(user, input.Administrator, input.Manager, input.Receptionist, input.Referee, input.Player)

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

// applyProfileInput overwrites the profile group matching the user's role.
// Groups for other roles are ignored rather than rejected.
func applyProfileInput(
	user *models.User,
	admin *models.AdministratorProfile,
	manager *models.ManagerProfile,
	receptionist *models.ReceptionistProfile,
	referee *models.RefereeProfile,
	player *models.PlayerProfile,
) {
	switch user.Role {
	case models.RoleAdministrator:
		if admin != nil {
			user.Administrator = admin
		}
	case models.RoleManager:
		if manager != nil {
			user.Manager = manager
		}
	case models.RoleReceptionist:
		if receptionist != nil {
			user.Receptionist = receptionist
		}
	case models.RoleReferee:
		if referee != nil {
			user.Referee = referee
		}
	case models.RolePlayer:
		if player != nil {
			user.Player = player
		}
	}
}
