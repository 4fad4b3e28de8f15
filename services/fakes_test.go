package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/athlos-fc/academy-system/models"
	"github.com/athlos-fc/academy-system/repositories"
)

// In-memory stand-ins for the Postgres repositories. The fake transaction
// manager snapshots their state before running the closure and restores it on
// error, so the all-or-nothing contract of WithinTx holds in tests too.

type fakeRegistrationRepo struct {
	mu        sync.Mutex
	nextID    int
	regs      map[int]*models.Registration
	createErr error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1, regs: make(map[int]*models.Registration)}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, _ repositories.SQLExecutor, reg *models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	reg.ID = f.nextID
	f.nextID++
	reg.CreatedAt = time.Now().UTC()
	stored := *reg
	f.regs[reg.ID] = &stored
	return nil
}

func (f *fakeRegistrationRepo) FindByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.regs[id]
	if !ok {
		return nil, repositories.ErrRegistrationNotFound
	}
	copied := *reg
	return &copied, nil
}

func (f *fakeRegistrationRepo) List(_ context.Context, statusFilter *models.RegistrationStatus) ([]*models.RegistrationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.RegistrationSummary, 0)
	for _, reg := range f.regs {
		if statusFilter != nil && reg.Status != *statusFilter {
			continue
		}
		out = append(out, &models.RegistrationSummary{
			ID:         reg.ID,
			PlayerName: reg.PlayerName,
			Email:      reg.Email,
			Phone:      reg.Phone,
			Program:    reg.Program,
			Status:     reg.Status,
			CreatedAt:  reg.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRegistrationRepo) UpdateStatusIfPending(_ context.Context, _ repositories.SQLExecutor, id int, status models.RegistrationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.regs[id]
	if !ok || reg.Status != models.RegistrationStatusPending {
		return repositories.ErrRegistrationNotFound
	}
	reg.Status = status
	return nil
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.regs[id]; !ok {
		return repositories.ErrRegistrationNotFound
	}
	delete(f.regs, id)
	return nil
}

func (f *fakeRegistrationRepo) snapshot() map[int]*models.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[int]*models.Registration, len(f.regs))
	for id, reg := range f.regs {
		copied := *reg
		snap[id] = &copied
	}
	return snap
}

func (f *fakeRegistrationRepo) restore(snap map[int]*models.Registration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs = snap
}

type fakePlayerRepo struct {
	mu        sync.Mutex
	nextID    int
	players   map[int]*models.Player
	createErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{nextID: 1, players: make(map[int]*models.Player)}
}

func (f *fakePlayerRepo) Create(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	player.ID = f.nextID
	f.nextID++
	player.CreatedAt = time.Now().UTC()
	stored := *player
	f.players[player.ID] = &stored
	return nil
}

func (f *fakePlayerRepo) FindByID(_ context.Context, id int) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	player, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (f *fakePlayerRepo) List(_ context.Context) ([]*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Player, 0, len(f.players))
	for _, p := range f.players {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakePlayerRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.players), nil
}

func (f *fakePlayerRepo) snapshot() map[int]*models.Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[int]*models.Player, len(f.players))
	for id, p := range f.players {
		copied := *p
		snap[id] = &copied
	}
	return snap
}

func (f *fakePlayerRepo) restore(snap map[int]*models.Player) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = snap
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int
	sessions map[int]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{nextID: 1, sessions: make(map[int]*models.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session.ID = f.nextID
	f.nextID++
	session.CreatedAt = time.Now().UTC()
	session.Attendees = []int{}
	stored := *session
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id int) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	copied := *session
	copied.Attendees = append([]int(nil), session.Attendees...)
	return &copied, nil
}

func (f *fakeSessionRepo) List(_ context.Context, limit int) ([]*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		copied := *s
		copied.Attendees = append([]int(nil), s.Attendees...)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSessionRepo) ReplaceAttendees(_ context.Context, _ repositories.SQLExecutor, sessionID int, playerIDs []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.Attendees = append([]int(nil), playerIDs...)
	return nil
}

// fakeTxManager applies the closure against the fakes and reverts their state
// when it fails, mirroring a rolled-back transaction.
type fakeTxManager struct {
	regs      *fakeRegistrationRepo
	players   *fakePlayerRepo
	beginErr  error
	commits   int
	rollbacks int
}

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	var regSnap map[int]*models.Registration
	var playerSnap map[int]*models.Player
	if m.regs != nil {
		regSnap = m.regs.snapshot()
	}
	if m.players != nil {
		playerSnap = m.players.snapshot()
	}

	if err := fn(nil); err != nil {
		if m.regs != nil {
			m.regs.restore(regSnap)
		}
		if m.players != nil {
			m.players.restore(playerSnap)
		}
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

// noopTxManager just runs the closure; used where rollback is not under test.
type noopTxManager struct{}

func (noopTxManager) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type publishedEvent struct {
	Type    string
	Payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
