package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/repositories"
)

// memStore backs every fake repository. The fake tx manager snapshots it
// before a unit of work and restores the snapshot on error.
type memStore struct {
	mu sync.Mutex

	nextID       int
	users        map[int]models.UserProfile
	teams        map[int][]*models.Combatant
	ratings      map[int]models.ArenaRating
	arena        map[int]models.ArenaMatch
	ledger       []models.LedgerEntry
	tournaments  map[int]models.Tournament
	participants map[int]models.TournamentParticipant
	tmatches     map[int]models.TournamentMatch

	// failApply makes ApplyDelta fail for the given user.
	failApply map[int]error
	// failAttach and failStart make AttachOpponent and MarkInProgress fail
	// for the given match.
	failAttach map[int]error
	failStart  map[int]error
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[int]models.UserProfile{},
		teams:        map[int][]*models.Combatant{},
		ratings:      map[int]models.ArenaRating{},
		arena:        map[int]models.ArenaMatch{},
		tournaments:  map[int]models.Tournament{},
		participants: map[int]models.TournamentParticipant{},
		tmatches:     map[int]models.TournamentMatch{},
		failApply:    map[int]error{},
		failAttach:   map[int]error{},
		failStart:    map[int]error{},
	}
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

type memSnapshot struct {
	nextID       int
	users        map[int]models.UserProfile
	ratings      map[int]models.ArenaRating
	arena        map[int]models.ArenaMatch
	ledger       []models.LedgerEntry
	tournaments  map[int]models.Tournament
	participants map[int]models.TournamentParticipant
	tmatches     map[int]models.TournamentMatch
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		nextID:       s.nextID,
		users:        copyMap(s.users),
		ratings:      copyMap(s.ratings),
		arena:        copyMap(s.arena),
		ledger:       append([]models.LedgerEntry(nil), s.ledger...),
		tournaments:  copyMap(s.tournaments),
		participants: copyMap(s.participants),
		tmatches:     copyMap(s.tmatches),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.users = snap.users
	s.ratings = snap.ratings
	s.arena = snap.arena
	s.ledger = snap.ledger
	s.tournaments = snap.tournaments
	s.participants = snap.participants
	s.tmatches = snap.tmatches
}

func (s *memStore) addUser(id int, username string, credits int, team ...*models.Combatant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = models.UserProfile{ID: id, Username: username, Credits: credits}
	s.teams[id] = team
	if id > s.nextID {
		s.nextID = id
	}
}

func (s *memStore) user(id int) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *memStore) ledgerFor(userID int) []models.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LedgerEntry
	for _, e := range s.ledger {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func (s *memStore) arenaMatch(id int) models.ArenaMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena[id]
}

func (s *memStore) tournament(id int) models.Tournament {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tournaments[id]
}

type fakeExec struct{}

func (fakeExec) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errors.New("fake executor does not run SQL")
}

func (fakeExec) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("fake executor does not run SQL")
}

func (fakeExec) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type fakeTxManager struct {
	store *memStore
	txMu  sync.Mutex
	runs  int
}

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	m.runs++

	snap := m.store.snapshot()
	if err := fn(fakeExec{}); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeProfiles struct{ s *memStore }

func cloneTeam(team []*models.Combatant) []*models.Combatant {
	out := make([]*models.Combatant, 0, len(team))
	for _, c := range team {
		out = append(out, c.Clone())
	}
	return out
}

func (f fakeProfiles) GetProfile(_ context.Context, userID int) (*models.UserProfile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	u.ActiveTeam = cloneTeam(f.s.teams[userID])
	return &u, nil
}

func (f fakeProfiles) GetActiveTeam(_ context.Context, userID int) ([]*models.Combatant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return cloneTeam(f.s.teams[userID]), nil
}

func (f fakeProfiles) ApplyDelta(_ context.Context, _ repositories.SQLExecutor, userID int, d models.ProfileDelta) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.failApply[userID]; err != nil {
		return err
	}
	u, ok := f.s.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if u.Credits+d.Credits < 0 || u.Gems+d.Gems < 0 || u.Experience+d.Experience < 0 {
		return repositories.ErrInsufficientBalance
	}
	u.Credits += d.Credits
	u.Gems += d.Gems
	u.Experience += d.Experience
	f.s.users[userID] = u
	return nil
}

type fakeRatings struct{ s *memStore }

func (f fakeRatings) GetByUserID(_ context.Context, userID int) (*models.ArenaRating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.ratings[userID]
	if !ok {
		return nil, repositories.ErrRatingNotFound
	}
	return &r, nil
}

func (f fakeRatings) EnsureDefault(_ context.Context, _ repositories.SQLExecutor, userID int) (*models.ArenaRating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[userID]; !ok {
		return nil, repositories.ErrUserNotFound
	}
	r, ok := f.s.ratings[userID]
	if !ok {
		r = *models.NewArenaRating(userID)
		f.s.ratings[userID] = r
	}
	return &r, nil
}

func (f fakeRatings) Save(_ context.Context, _ repositories.SQLExecutor, r *models.ArenaRating) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.ratings[r.UserID] = *r
	return nil
}

func (f fakeRatings) ListTop(_ context.Context, limit, offset int) ([]*models.ArenaRating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	all := make([]*models.ArenaRating, 0, len(f.s.ratings))
	for _, r := range f.s.ratings {
		r := r
		all = append(all, &r)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Rating != all[j].Rating {
			return all[i].Rating > all[j].Rating
		}
		return all[i].Wins > all[j].Wins
	})
	if offset >= len(all) {
		return []*models.ArenaRating{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeLedger struct{ s *memStore }

func (f fakeLedger) Insert(_ context.Context, _ repositories.SQLExecutor, e *models.LedgerEntry) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	e.ID = f.s.id()
	f.s.ledger = append(f.s.ledger, *e)
	return nil
}

// fakeArchive records archived and discarded battle ids.
type fakeArchive struct {
	mu        sync.Mutex
	archived  []string
	discarded []string
}

func (a *fakeArchive) ArchiveBattle(_ context.Context, summary *models.BattleSummary) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.archived = append(a.archived, summary.BattleID)
	return "https://cdn.example/battles/" + summary.BattleID + ".json", nil
}

func (a *fakeArchive) DiscardBattle(_ context.Context, battleID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.discarded = append(a.discarded, battleID)
	return nil
}

func (a *fakeArchive) discards() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.discarded...)
}

type fakeArenaMatches struct{ s *memStore }

func (f fakeArenaMatches) Create(_ context.Context, _ repositories.SQLExecutor, m *models.ArenaMatch) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m.ID = f.s.id()
	m.CreatedAt = time.Now()
	f.s.arena[m.ID] = *m
	return nil
}

func (f fakeArenaMatches) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.ArenaMatch, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.arena[id]
	if !ok {
		return nil, repositories.ErrArenaMatchNotFound
	}
	return &m, nil
}

func (f fakeArenaMatches) FindActiveByUser(_ context.Context, userID int) (*models.ArenaMatch, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, m := range f.s.arena {
		m := m
		if (m.Status == models.ArenaMatchWaiting || m.Status == models.ArenaMatchInProgress) && m.HasPlayer(userID) {
			return &m, nil
		}
	}
	return nil, repositories.ErrArenaMatchNotFound
}

func (f fakeArenaMatches) update(id int, guard func(models.ArenaMatch) bool, apply func(*models.ArenaMatch)) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.arena[id]
	if !ok || !guard(m) {
		return repositories.ErrArenaMatchStateChanged
	}
	apply(&m)
	f.s.arena[id] = m
	return nil
}

func (f fakeArenaMatches) AttachOpponent(_ context.Context, matchID, player2ID int) error {
	f.s.mu.Lock()
	err := f.s.failAttach[matchID]
	f.s.mu.Unlock()
	if err != nil {
		return err
	}
	return f.update(matchID,
		func(m models.ArenaMatch) bool { return m.Status == models.ArenaMatchWaiting && m.Player2ID == nil },
		func(m *models.ArenaMatch) { p2 := player2ID; m.Player2ID = &p2 })
}

func (f fakeArenaMatches) MarkInProgress(_ context.Context, matchID int, summary *models.BattleSummary, startedAt time.Time) error {
	f.s.mu.Lock()
	err := f.s.failStart[matchID]
	f.s.mu.Unlock()
	if err != nil {
		return err
	}
	return f.update(matchID,
		func(m models.ArenaMatch) bool { return m.Status == models.ArenaMatchWaiting && m.Player2ID != nil },
		func(m *models.ArenaMatch) {
			m.Status = models.ArenaMatchInProgress
			m.BattleData = summary
			m.StartedAt = &startedAt
		})
}

func (f fakeArenaMatches) Complete(_ context.Context, _ repositories.SQLExecutor, done *models.ArenaMatch) error {
	return f.update(done.ID,
		func(m models.ArenaMatch) bool { return m.Status == models.ArenaMatchInProgress },
		func(m *models.ArenaMatch) {
			m.Status = models.ArenaMatchCompleted
			m.WinnerID = done.WinnerID
			m.Rewards = done.Rewards
			m.CompletedAt = done.CompletedAt
			if done.BattleData != nil {
				m.BattleData = done.BattleData
			}
		})
}

func (f fakeArenaMatches) Cancel(_ context.Context, matchID int) error {
	return f.update(matchID,
		func(m models.ArenaMatch) bool { return m.Status == models.ArenaMatchWaiting },
		func(m *models.ArenaMatch) { m.Status = models.ArenaMatchCancelled })
}

func (f fakeArenaMatches) cancelWhere(pred func(models.ArenaMatch) bool) int64 {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id, m := range f.s.arena {
		if m.Status == models.ArenaMatchWaiting && pred(m) {
			m.Status = models.ArenaMatchCancelled
			f.s.arena[id] = m
			n++
		}
	}
	return n
}

func (f fakeArenaMatches) CancelWaitingByPlayer1(_ context.Context, userID int) (int64, error) {
	return f.cancelWhere(func(m models.ArenaMatch) bool { return m.Player1ID == userID }), nil
}

func (f fakeArenaMatches) CancelStaleWaiting(_ context.Context, createdBefore time.Time) (int64, error) {
	return f.cancelWhere(func(m models.ArenaMatch) bool { return m.CreatedAt.Before(createdBefore) }), nil
}

func (f fakeArenaMatches) ListRecentByUser(_ context.Context, userID, limit int) ([]*models.ArenaMatch, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.ArenaMatch
	for _, m := range f.s.arena {
		m := m
		if m.HasPlayer(userID) {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTournaments struct{ s *memStore }

func (f fakeTournaments) Create(_ context.Context, t *models.Tournament) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.tournaments {
		if existing.Slug == t.Slug {
			return repositories.ErrTournamentSlugConflict
		}
	}
	if _, ok := f.s.users[t.OrganizerID]; !ok {
		return repositories.ErrTournamentInvalidOrg
	}
	t.ID = f.s.id()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.s.tournaments[t.ID] = *t
	return nil
}

func (f fakeTournaments) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Tournament, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t, ok := f.s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	t.ParticipantCount = 0
	for _, p := range f.s.participants {
		if p.TournamentID == id {
			t.ParticipantCount++
		}
	}
	return &t, nil
}

func (f fakeTournaments) List(_ context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]*models.Tournament, 0)
	for _, t := range f.s.tournaments {
		t := t
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.OrganizerID != nil && t.OrganizerID != *filter.OrganizerID {
			continue
		}
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Offset >= len(out) {
		return []*models.Tournament{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f fakeTournaments) UpdateProgress(_ context.Context, _ repositories.SQLExecutor, id int, status models.TournamentStatus, currentRound, totalRounds int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t, ok := f.s.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status, t.CurrentRound, t.TotalRounds = status, currentRound, totalRounds
	f.s.tournaments[id] = t
	return nil
}

func (f fakeTournaments) SetWinner(_ context.Context, _ repositories.SQLExecutor, id int, winnerParticipantID int, reward models.Reward) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t, ok := f.s.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	w := winnerParticipantID
	t.WinnerParticipantID = &w
	t.Status = models.TournamentCompleted
	if reward != nil {
		// stored the way the JSONB column holds it
		raw, err := json.Marshal(models.TaggedReward{Reward: reward})
		if err != nil {
			return err
		}
		var stored models.TaggedReward
		if err := json.Unmarshal(raw, &stored); err != nil {
			return err
		}
		t.ChampionReward = &stored
	}
	f.s.tournaments[id] = t
	return nil
}

type fakeParticipants struct{ s *memStore }

func (f fakeParticipants) withUsername(p models.TournamentParticipant) *models.TournamentParticipant {
	p.Username = f.s.users[p.UserID].Username
	return &p
}

func (f fakeParticipants) Create(_ context.Context, _ repositories.SQLExecutor, p *models.TournamentParticipant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.participants {
		if existing.TournamentID == p.TournamentID && existing.UserID == p.UserID {
			return repositories.ErrParticipantConflict
		}
	}
	p.ID = f.s.id()
	p.JoinedAt = time.Now()
	f.s.participants[p.ID] = *p
	return nil
}

func (f fakeParticipants) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.TournamentParticipant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.participants[id]
	if !ok {
		return nil, repositories.ErrParticipantNotFound
	}
	return f.withUsername(p), nil
}

func (f fakeParticipants) GetByTournamentAndUser(_ context.Context, _ repositories.SQLExecutor, tournamentID, userID int) (*models.TournamentParticipant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.participants {
		if p.TournamentID == tournamentID && p.UserID == userID {
			return f.withUsername(p), nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (f fakeParticipants) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) ([]*models.TournamentParticipant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]*models.TournamentParticipant, 0)
	for _, p := range f.s.participants {
		if p.TournamentID == tournamentID {
			out = append(out, f.withUsername(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeParticipants) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.participants[id]; !ok {
		return repositories.ErrParticipantNotFound
	}
	delete(f.s.participants, id)
	return nil
}

func (f fakeParticipants) MarkEliminated(_ context.Context, _ repositories.SQLExecutor, id int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.participants[id]
	if !ok {
		return repositories.ErrParticipantNotFound
	}
	p.Eliminated = true
	f.s.participants[id] = p
	return nil
}

type fakeTournamentMatches struct{ s *memStore }

func (f fakeTournamentMatches) CreateBatch(_ context.Context, _ repositories.SQLExecutor, matches []*models.TournamentMatch) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, m := range matches {
		for _, existing := range f.s.tmatches {
			if existing.TournamentID == m.TournamentID && existing.Round == m.Round && existing.OrderInRound == m.OrderInRound {
				return repositories.ErrTournamentMatchConflict
			}
		}
		m.ID = f.s.id()
		m.CreatedAt = time.Now()
		f.s.tmatches[m.ID] = *m
	}
	return nil
}

func (f fakeTournamentMatches) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.TournamentMatch, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.tmatches[id]
	if !ok {
		return nil, repositories.ErrTournamentMatchNotFound
	}
	return &m, nil
}

func (f fakeTournamentMatches) list(pred func(models.TournamentMatch) bool) []*models.TournamentMatch {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]*models.TournamentMatch, 0)
	for _, m := range f.s.tmatches {
		m := m
		if pred(m) {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].OrderInRound < out[j].OrderInRound
	})
	return out
}

func (f fakeTournamentMatches) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) ([]*models.TournamentMatch, error) {
	return f.list(func(m models.TournamentMatch) bool { return m.TournamentID == tournamentID }), nil
}

func (f fakeTournamentMatches) ListByRound(_ context.Context, _ repositories.SQLExecutor, tournamentID, round int) ([]*models.TournamentMatch, error) {
	return f.list(func(m models.TournamentMatch) bool { return m.TournamentID == tournamentID && m.Round == round }), nil
}

func (f fakeTournamentMatches) Complete(_ context.Context, _ repositories.SQLExecutor, done *models.TournamentMatch) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.tmatches[done.ID]
	if !ok || m.Status.IsFinished() {
		return repositories.ErrTournamentMatchAlreadyFinal
	}
	m.WinnerParticipantID = done.WinnerParticipantID
	m.Status = done.Status
	m.CompletedAt = done.CompletedAt
	if done.BattleData != nil {
		m.BattleData = done.BattleData
	}
	f.s.tmatches[done.ID] = m
	return nil
}

type recordedEvent struct {
	room    string
	event   string
	payload interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *fakeNotifier) Publish(room, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{room: room, event: event, payload: payload})
}

func (n *fakeNotifier) count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.event == event {
			c++
		}
	}
	return c
}

// fixedRand always returns the same float and the lowest index.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(int) int     { return 0 }

func sequentialIDs() IDFunc {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "battle-" + strconv.Itoa(n), nil
	}
}

func combatant(name string, t models.PokemonType, level, hp, attack, defense, speed int, moves ...string) *models.Combatant {
	return &models.Combatant{
		Name:      name,
		Species:   name,
		Types:     []models.PokemonType{t},
		Level:     level,
		Stats:     models.Stats{HP: hp, Attack: attack, Defense: defense, SpecialAttack: attack, SpecialDefense: defense, Speed: speed},
		MaxHP:     hp,
		CurrentHP: hp,
		Moves:     moves,
		Status:    models.StatusCondition{Kind: models.StatusNone},
	}
}

// Pairs of teams that settle every battle on the first turn.
func strongTeam() []*models.Combatant {
	return []*models.Combatant{combatant("Mewtwo", models.TypePsychic, 100, 400, 300, 200, 200, "psychic")}
}

func weakTeam() []*models.Combatant {
	return []*models.Combatant{combatant("Magikarp", models.TypeWater, 1, 10, 5, 5, 5, "splash")}
}
