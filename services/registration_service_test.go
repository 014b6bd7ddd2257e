package services

import (
	"context"
	"errors"
	"testing"

	"github.com/copapymes/league-system/models"
)

type registrationFixture struct {
	service          RegistrationService
	tournamentRepo   *fakeTournamentRepo
	registrationRepo *fakeRegistrationRepo
	teamRepo         *fakeTeamRepo
}

func newRegistrationFixture() *registrationFixture {
	tournamentRepo := newFakeTournamentRepo()
	registrationRepo := newFakeRegistrationRepo()
	teamRepo := newFakeTeamRepo()

	return &registrationFixture{
		service:          NewRegistrationService(registrationRepo, tournamentRepo, teamRepo, testLogger()),
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
	}
}

func (f *registrationFixture) addTeam(name string, active bool) *models.Team {
	return f.teamRepo.add(&models.Team{Name: name, ShortName: name[:2], Active: active})
}

func TestRegisterTeam(t *testing.T) {
	f := newRegistrationFixture()
	ctx := context.Background()

	tournament := f.tournamentRepo.add(newTournament(models.TournamentStatusRegistrationOpen, models.TournamentTypeElimination))
	team := f.addTeam("Los Andes", true)

	reg, err := f.service.Register(ctx, tournament.ID, team.ID)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if reg.Status != models.RegistrationStatusPending {
		t.Fatalf("new registration status = %q, want pending", reg.Status)
	}
	if reg.TournamentID != tournament.ID || reg.TeamID != team.ID {
		t.Fatalf("registration references (%d, %d), want (%d, %d)",
			reg.TournamentID, reg.TeamID, tournament.ID, team.ID)
	}
}

func TestRegisterWhenRegistrationNotOpen(t *testing.T) {
	f := newRegistrationFixture()
	ctx := context.Background()
	team := f.addTeam("Los Andes", true)

	for _, status := range []models.TournamentStatus{
		models.TournamentStatusPending,
		models.TournamentStatusActive,
		models.TournamentStatusFinished,
	} {
		tournament := newTournament(status, models.TournamentTypeElimination)
		tournament.Name = "Copa " + string(status)
		f.tournamentRepo.add(tournament)

		if _, err := f.service.Register(ctx, tournament.ID, team.ID); !errors.Is(err, ErrRegistrationClosed) {
			t.Errorf("status %q: got %v, want ErrRegistrationClosed", status, err)
		}
	}
}

func TestRegisterSameTeamTwice(t *testing.T) {
	f := newRegistrationFixture()
	ctx := context.Background()

	tournament := f.tournamentRepo.add(newTournament(models.TournamentStatusRegistrationOpen, models.TournamentTypeElimination))
	team := f.addTeam("Los Andes", true)

	if _, err := f.service.Register(ctx, tournament.ID, team.ID); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := f.service.Register(ctx, tournament.ID, team.ID); !errors.Is(err, ErrRegistrationConflict) {
		t.Fatalf("duplicate registration: got %v, want ErrRegistrationConflict", err)
	}
}

func TestRegisterInactiveTeam(t *testing.T) {
	f := newRegistrationFixture()

	tournament := f.tournamentRepo.add(newTournament(models.TournamentStatusRegistrationOpen, models.TournamentTypeElimination))
	team := f.addTeam("Defensores", false)

	if _, err := f.service.Register(context.Background(), tournament.ID, team.ID); !errors.Is(err, ErrTeamInactive) {
		t.Fatalf("got %v, want ErrTeamInactive", err)
	}
}

func TestRegisterUnknownTeamOrTournament(t *testing.T) {
	f := newRegistrationFixture()
	ctx := context.Background()

	tournament := f.tournamentRepo.add(newTournament(models.TournamentStatusRegistrationOpen, models.TournamentTypeElimination))

	if _, err := f.service.Register(ctx, tournament.ID, 404); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("unknown team: got %v, want ErrTeamNotFound", err)
	}
	if _, err := f.service.Register(ctx, 404, 1); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("unknown tournament: got %v, want ErrTournamentNotFound", err)
	}
}

func TestUpdateRegistrationStatus(t *testing.T) {
	f := newRegistrationFixture()
	ctx := context.Background()

	tournament := f.tournamentRepo.add(newTournament(models.TournamentStatusRegistrationOpen, models.TournamentTypeElimination))
	team := f.addTeam("Los Andes", true)

	reg, err := f.service.Register(ctx, tournament.ID, team.ID)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	accepted, err := f.service.UpdateStatus(ctx, reg.ID, models.RegistrationStatusAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if accepted.Status != models.RegistrationStatusAccepted {
		t.Fatalf("status = %q, want accepted", accepted.Status)
	}

	// Back to pending is not a decision.
	if _, err := f.service.UpdateStatus(ctx, reg.ID, models.RegistrationStatusPending); !errors.Is(err, ErrRegistrationInvalidStatus) {
		t.Fatalf("pending: got %v, want ErrRegistrationInvalidStatus", err)
	}
	if _, err := f.service.UpdateStatus(ctx, reg.ID, "approved"); !errors.Is(err, ErrRegistrationInvalidStatus) {
		t.Fatalf("unknown status: got %v, want ErrRegistrationInvalidStatus", err)
	}
}

func TestUpdateRegistrationStatusAfterClose(t *testing.T) {
	f := newRegistrationFixture()
	ctx := context.Background()

	tournament := f.tournamentRepo.add(newTournament(models.TournamentStatusRegistrationOpen, models.TournamentTypeElimination))
	team := f.addTeam("Los Andes", true)

	reg, err := f.service.Register(ctx, tournament.ID, team.ID)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// The ledger freezes once the tournament moves past registration.
	if err := f.tournamentRepo.UpdateStatus(ctx, nil, tournament.ID, models.TournamentStatusActive); err != nil {
		t.Fatalf("failed to activate tournament: %v", err)
	}

	if _, err := f.service.UpdateStatus(ctx, reg.ID, models.RegistrationStatusAccepted); !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("got %v, want ErrRegistrationClosed", err)
	}
	if err := f.service.Delete(ctx, reg.ID); !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("withdraw after close: got %v, want ErrRegistrationClosed", err)
	}
}

func TestListRegistrationsByTournament(t *testing.T) {
	f := newRegistrationFixture()
	ctx := context.Background()

	tournament := f.tournamentRepo.add(newTournament(models.TournamentStatusRegistrationOpen, models.TournamentTypeElimination))
	teamA := f.addTeam("Alpha", true)
	teamB := f.addTeam("Bravo", true)

	regA, _ := f.service.Register(ctx, tournament.ID, teamA.ID)
	if _, err := f.service.Register(ctx, tournament.ID, teamB.ID); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := f.service.UpdateStatus(ctx, regA.ID, models.RegistrationStatusAccepted); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	all, err := f.service.ListByTournament(ctx, tournament.ID, nil)
	if err != nil {
		t.Fatalf("ListByTournament returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d registrations, want 2", len(all))
	}

	accepted := models.RegistrationStatusAccepted
	onlyAccepted, err := f.service.ListByTournament(ctx, tournament.ID, &accepted)
	if err != nil {
		t.Fatalf("ListByTournament returned error: %v", err)
	}
	if len(onlyAccepted) != 1 || onlyAccepted[0].TeamID != teamA.ID {
		t.Fatalf("accepted filter returned %d registrations", len(onlyAccepted))
	}

	if _, err := f.service.ListByTournament(ctx, 404, nil); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("unknown tournament: got %v, want ErrTournamentNotFound", err)
	}
}
