package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/copapymes/league-system/models"
)

type matchFixture struct {
	service     MatchService
	matchRepo   *fakeMatchRepo
	teamRepo    *fakeTeamRepo
	venueRepo   *fakeVenueRepo
	userRepo    *fakeUserRepo
	broadcaster *fakeBroadcaster
}

func newMatchFixture() *matchFixture {
	matchRepo := newFakeMatchRepo()
	teamRepo := newFakeTeamRepo()
	venueRepo := newFakeVenueRepo()
	userRepo := newFakeUserRepo()
	broadcaster := &fakeBroadcaster{}

	return &matchFixture{
		service:     NewMatchService(matchRepo, teamRepo, venueRepo, userRepo, broadcaster, testLogger()),
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		venueRepo:   venueRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

func (f *matchFixture) addReferee(email string) *models.User {
	return f.userRepo.add(&models.User{Email: email, Role: models.RoleReferee, Active: true})
}

func (f *matchFixture) createMatch(t *testing.T) *models.Match {
	t.Helper()
	home := f.teamRepo.add(&models.Team{Name: "Alpha", Active: true})
	away := f.teamRepo.add(&models.Team{Name: "Bravo", Active: true})

	m, err := f.service.Create(context.Background(), CreateMatchInput{
		TournamentID: 1,
		HomeTeamID:   home.ID,
		AwayTeamID:   away.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return m
}

func TestCreateMatch(t *testing.T) {
	f := newMatchFixture()
	m := f.createMatch(t)

	if m.Status != models.MatchStatusPending {
		t.Fatalf("new match status = %q, want pending", m.Status)
	}
	if m.ID == 0 {
		t.Fatal("new match has no ID")
	}
}

func TestCreateMatchSameTeam(t *testing.T) {
	f := newMatchFixture()

	_, err := f.service.Create(context.Background(), CreateMatchInput{
		TournamentID: 1,
		HomeTeamID:   7,
		AwayTeamID:   7,
	})
	if !errors.Is(err, ErrMatchSameTeam) {
		t.Fatalf("got %v, want ErrMatchSameTeam", err)
	}
}

func TestCreateMatchRefereeValidation(t *testing.T) {
	f := newMatchFixture()
	ctx := context.Background()

	home := f.teamRepo.add(&models.Team{Name: "Alpha", Active: true})
	away := f.teamRepo.add(&models.Team{Name: "Bravo", Active: true})
	manager := f.userRepo.add(&models.User{Email: "manager@club.test", Role: models.RoleManager, Active: true})

	input := CreateMatchInput{TournamentID: 1, HomeTeamID: home.ID, AwayTeamID: away.ID}

	input.RefereeID = &manager.ID
	if _, err := f.service.Create(ctx, input); !errors.Is(err, ErrMatchRefereeInvalid) {
		t.Fatalf("manager as referee: got %v, want ErrMatchRefereeInvalid", err)
	}

	unknown := 404
	input.RefereeID = &unknown
	if _, err := f.service.Create(ctx, input); !errors.Is(err, ErrMatchRefereeInvalid) {
		t.Fatalf("unknown referee: got %v, want ErrMatchRefereeInvalid", err)
	}

	referee := f.addReferee("ref@club.test")
	input.RefereeID = &referee.ID
	m, err := f.service.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create with referee returned error: %v", err)
	}
	if m.RefereeID == nil || *m.RefereeID != referee.ID {
		t.Fatal("referee not assigned on created match")
	}
}

func TestUpdateMatchRecordsResult(t *testing.T) {
	f := newMatchFixture()
	m := f.createMatch(t)

	homeScore, awayScore := 3, 1
	finished := models.MatchStatusFinished
	updated, err := f.service.Update(context.Background(), m.ID, UpdateMatchInput{
		HomeScore: &homeScore,
		AwayScore: &awayScore,
		Status:    &finished,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.HomeScore == nil || *updated.HomeScore != 3 || updated.AwayScore == nil || *updated.AwayScore != 1 {
		t.Fatal("scores not recorded")
	}
	if updated.Status != models.MatchStatusFinished {
		t.Fatalf("status = %q, want finished", updated.Status)
	}
	if f.broadcaster.count() != 1 {
		t.Fatalf("got %d broadcasts, want 1", f.broadcaster.count())
	}
}

func TestUpdateMatchPartial(t *testing.T) {
	f := newMatchFixture()
	m := f.createMatch(t)
	venue := f.venueRepo.add(&models.Venue{Name: "Estadio Norte", Location: "Centro"})

	kickoff := time.Date(2026, time.September, 12, 20, 0, 0, 0, time.UTC)
	updated, err := f.service.Update(context.Background(), m.ID, UpdateMatchInput{
		VenueID:     &venue.ID,
		ScheduledAt: &kickoff,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.VenueID == nil || *updated.VenueID != venue.ID {
		t.Fatal("venue not assigned")
	}
	if updated.ScheduledAt == nil || !updated.ScheduledAt.Equal(kickoff) {
		t.Fatal("schedule not assigned")
	}
	// Fields the input left nil keep their values.
	if updated.Status != models.MatchStatusPending {
		t.Fatalf("status = %q, want pending", updated.Status)
	}
}

func TestUpdateMatchInvalidStatus(t *testing.T) {
	f := newMatchFixture()
	m := f.createMatch(t)

	bogus := models.MatchStatus("abandoned")
	if _, err := f.service.Update(context.Background(), m.ID, UpdateMatchInput{Status: &bogus}); !errors.Is(err, ErrMatchInvalidStatus) {
		t.Fatalf("got %v, want ErrMatchInvalidStatus", err)
	}
	if f.broadcaster.count() != 0 {
		t.Fatalf("got %d broadcasts, want 0", f.broadcaster.count())
	}
}

func TestGetMatchLoadsRelations(t *testing.T) {
	f := newMatchFixture()
	m := f.createMatch(t)
	referee := f.addReferee("ref@club.test")

	if _, err := f.service.Update(context.Background(), m.ID, UpdateMatchInput{RefereeID: &referee.ID}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err := f.service.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.HomeTeam == nil || got.HomeTeam.ID != m.HomeTeamID {
		t.Fatal("home team not loaded")
	}
	if got.AwayTeam == nil || got.AwayTeam.ID != m.AwayTeamID {
		t.Fatal("away team not loaded")
	}
	if got.Referee == nil || got.Referee.ID != referee.ID {
		t.Fatal("referee not loaded")
	}
	if got.Venue != nil {
		t.Fatal("venue loaded for a match without one")
	}
}

func TestDeleteMatch(t *testing.T) {
	f := newMatchFixture()
	m := f.createMatch(t)

	if err := f.service.Delete(context.Background(), m.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.service.GetByID(context.Background(), m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("got %v, want ErrMatchNotFound", err)
	}
	if err := f.service.Delete(context.Background(), m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("second delete: got %v, want ErrMatchNotFound", err)
	}
}
