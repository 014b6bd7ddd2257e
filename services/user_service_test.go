package services

import (
	"context"
	"errors"
	"testing"

	"github.com/copapymes/league-system/models"
)

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	category := "national"
	user, err := svc.Create(context.Background(), CreateUserInput{
		Email:     "ref@club.test",
		Password:  "long-enough",
		FirstName: "Ana",
		LastName:  "Suarez",
		Role:      models.RoleReferee,
		Referee:   &models.RefereeProfile{Category: &category, Available: true},
		// A profile for a different role is ignored.
		Player: &models.PlayerProfile{Goals: 10},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !user.Active {
		t.Fatal("new user should be active")
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked in create response")
	}
	if user.Referee == nil || user.Referee.Category == nil || *user.Referee.Category != "national" {
		t.Fatal("referee profile not applied")
	}
	if user.Player != nil {
		t.Fatal("player profile applied to a referee")
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	base := CreateUserInput{
		Email:     "user@club.test",
		Password:  "long-enough",
		FirstName: "Ana",
		LastName:  "Suarez",
		Role:      models.RoleManager,
	}

	for _, tt := range []struct {
		name    string
		mutate  func(*CreateUserInput)
		wantErr error
	}{
		{"missing email", func(in *CreateUserInput) { in.Email = "" }, ErrUserEmailRequired},
		{"unknown role", func(in *CreateUserInput) { in.Role = "coach" }, ErrUserInvalidRole},
		{"short password", func(in *CreateUserInput) { in.Password = "short" }, ErrPasswordTooShort},
	} {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			if _, err := svc.Create(ctx, input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	input := CreateUserInput{
		Email:     "user@club.test",
		Password:  "long-enough",
		FirstName: "Ana",
		LastName:  "Suarez",
		Role:      models.RoleManager,
	}
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(ctx, input); !errors.Is(err, ErrUserEmailConflict) {
		t.Fatalf("got %v, want ErrUserEmailConflict", err)
	}
}

func TestListUsersByRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	repo.add(&models.User{Email: "a@club.test", Role: models.RoleReferee, PasswordHash: "x"})
	repo.add(&models.User{Email: "b@club.test", Role: models.RoleReferee, PasswordHash: "x"})
	repo.add(&models.User{Email: "c@club.test", Role: models.RolePlayer, PasswordHash: "x"})

	referee := models.RoleReferee
	users, err := svc.List(context.Background(), &referee)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Fatal("password hash leaked in list response")
		}
	}

	bogus := models.UserRole("coach")
	if _, err := svc.List(context.Background(), &bogus); !errors.Is(err, ErrUserInvalidRole) {
		t.Fatalf("got %v, want ErrUserInvalidRole", err)
	}
}

func TestUserStats(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	repo.add(&models.User{Email: "a@club.test", Role: models.RoleReferee})
	repo.add(&models.User{Email: "b@club.test", Role: models.RoleReferee})
	repo.add(&models.User{Email: "c@club.test", Role: models.RoleAdministrator})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	if stats.ByRole[models.RoleReferee] != 2 || stats.ByRole[models.RoleAdministrator] != 1 {
		t.Fatalf("by-role counts = %v", stats.ByRole)
	}
}

func TestUpdateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	user := repo.add(&models.User{Email: "a@club.test", Role: models.RolePlayer, Active: true})

	firstName := "Marta"
	inactive := false
	shirt := 9
	updated, err := svc.Update(context.Background(), user.ID, UpdateUserInput{
		FirstName: &firstName,
		Active:    &inactive,
		Player:    &models.PlayerProfile{ShirtNumber: &shirt},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.FirstName != "Marta" || updated.Active {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Player == nil || updated.Player.ShirtNumber == nil || *updated.Player.ShirtNumber != 9 {
		t.Fatal("player profile not applied")
	}

	if _, err := svc.Update(context.Background(), 404, UpdateUserInput{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user: got %v, want ErrUserNotFound", err)
	}
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	user := repo.add(&models.User{Email: "a@club.test", Role: models.RolePlayer})

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second delete: got %v, want ErrUserNotFound", err)
	}
}
