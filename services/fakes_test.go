package services

import (
	"context"
	"sync"
	"time"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
)

// fakeTxManager runs the closure directly; repositories under test are
// in-memory, so there is nothing to roll back.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	return fn(nil)
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []any
}

func (f *fakeBroadcaster) BroadcastToTournament(tournamentID string, message any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

type fakeTournamentRepo struct {
	mu          sync.Mutex
	nextID      int
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{nextID: 1, tournaments: make(map[int]*models.Tournament)}
}

func (r *fakeTournamentRepo) add(t *models.Tournament) *models.Tournament {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.tournaments[t.ID] = t
	return t
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tournaments {
		if existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	copied := *t
	r.tournaments[t.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) ListFinishableBefore(ctx context.Context, now time.Time) ([]*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Tournament
	for _, t := range r.tournaments {
		if t.Status == models.TournamentStatusActive && !t.EndDate.After(now) {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeRegistrationRepo struct {
	mu            sync.Mutex
	nextID        int
	registrations []*models.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1}
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.registrations {
		if existing.TournamentID == reg.TournamentID && existing.TeamID == reg.TeamID {
			return repositories.ErrRegistrationConflict
		}
	}
	reg.ID = r.nextID
	r.nextID++
	reg.RegisteredAt = time.Now()
	copied := *reg
	r.registrations = append(r.registrations, &copied)
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.registrations {
		if reg.ID == id {
			copied := *reg
			return &copied, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, statusFilter *models.RegistrationStatus, includeTeams bool) ([]*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Registration, 0)
	for _, reg := range r.registrations {
		if reg.TournamentID != tournamentID {
			continue
		}
		if statusFilter != nil && reg.Status != *statusFilter {
			continue
		}
		copied := *reg
		if includeTeams && copied.Team == nil {
			copied.Team = &models.Team{ID: copied.TeamID}
		}
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRegistrationRepo) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.registrations {
		if reg.ID == id {
			reg.Status = status
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, reg := range r.registrations {
		if reg.ID == id {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches []*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1}
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.HomeTeamID == m.AwayTeamID {
		return repositories.ErrMatchSameTeam
	}
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now()
	copied := *m
	r.matches = append(r.matches, &copied)
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) List(ctx context.Context, filter repositories.ListMatchesFilter) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, m := range r.matches {
		if filter.TournamentID != nil && m.TournamentID != *filter.TournamentID {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.matches {
		if existing.ID == m.ID {
			copied := *m
			r.matches[i] = &copied
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.matches {
		if m.ID == id {
			r.matches = append(r.matches[:i], r.matches[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	nextID int
	teams  map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, teams: make(map[int]*models.Team)}
}

func (r *fakeTeamRepo) add(t *models.Team) *models.Team {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.teams[t.ID] = t
	return t
}

func (r *fakeTeamRepo) Create(ctx context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teams {
		if existing.Name == t.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	r.teams[t.ID] = t
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTeamRepo) List(ctx context.Context, onlyActive bool) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		if onlyActive && !t.Active {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(ctx context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[t.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	copied := *t
	r.teams[t.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) SetActive(ctx context.Context, id int, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Active = active
	return nil
}

func (r *fakeTeamRepo) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.CrestKey = crestKey
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakeVenueRepo struct {
	mu     sync.Mutex
	nextID int
	venues map[int]*models.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{nextID: 1, venues: make(map[int]*models.Venue)}
}

func (r *fakeVenueRepo) add(v *models.Venue) *models.Venue {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = r.nextID
	r.nextID++
	r.venues[v.ID] = v
	return v
}

func (r *fakeVenueRepo) Create(ctx context.Context, v *models.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.venues {
		if existing.Name == v.Name && existing.Location == v.Location {
			return repositories.ErrVenueConflict
		}
	}
	v.ID = r.nextID
	r.nextID++
	v.CreatedAt = time.Now()
	r.venues[v.ID] = v
	return nil
}

func (r *fakeVenueRepo) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok {
		return nil, repositories.ErrVenueNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVenueRepo) List(ctx context.Context) ([]models.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Venue, 0, len(r.venues))
	for _, v := range r.venues {
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVenueRepo) Update(ctx context.Context, v *models.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[v.ID]; !ok {
		return repositories.ErrVenueNotFound
	}
	copied := *v
	r.venues[v.ID] = &copied
	return nil
}

func (r *fakeVenueRepo) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok {
		return repositories.ErrVenueNotFound
	}
	v.PhotoKey = photoKey
	return nil
}

func (r *fakeVenueRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[id]; !ok {
		return repositories.ErrVenueNotFound
	}
	delete(r.venues, id)
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*models.User)}
}

func (r *fakeUserRepo) add(u *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, roleFilter *models.UserRole) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if roleFilter != nil && u.Role != *roleFilter {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context) (map[models.UserRole]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.UserRole]int)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
