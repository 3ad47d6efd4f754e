package web

import (
	"context"
	"sync"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// In-memory repositories backing the real use cases under test.

type memVisitorRepo struct {
	mu     sync.Mutex
	states map[string]model.VisitorState
}

func newMemVisitorRepo() *memVisitorRepo {
	return &memVisitorRepo{states: make(map[string]model.VisitorState)}
}

func (m *memVisitorRepo) Get(_ context.Context, id string) (*model.VisitorState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *memVisitorRepo) Save(_ context.Context, s *model.VisitorState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[s.VisitorID] = *s
	return nil
}

func (m *memVisitorRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}

type memPrivacyRepo struct {
	mu   sync.Mutex
	recs map[string]model.PrivacyAcceptance
}

func newMemPrivacyRepo() *memPrivacyRepo {
	return &memPrivacyRepo{recs: make(map[string]model.PrivacyAcceptance)}
}

func (m *memPrivacyRepo) Get(_ context.Context, id string) (*model.PrivacyAcceptance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := r
	return &cp, nil
}

func (m *memPrivacyRepo) Save(_ context.Context, rec *model.PrivacyAcceptance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.VisitorID] = *rec
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]model.AuthSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]model.AuthSession)}
}

func (m *memSessionRepo) Save(_ context.Context, s *model.AuthSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memSessionRepo) Get(_ context.Context, id string) (*model.AuthSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *memSessionRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]model.User)}
}

func (m *memUserRepo) Save(_ context.Context, _ repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, _ repository.Tx, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		cp := u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUserRepo) DeleteByEmail(_ context.Context, _ repository.Tx, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Email == email {
			delete(m.users, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memCategoryRepo struct {
	mu   sync.Mutex
	cats map[string]model.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{cats: make(map[string]model.Category)}
}

func (m *memCategoryRepo) Save(_ context.Context, _ repository.Tx, c *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cats[c.ID] = *c
	return nil
}

func (m *memCategoryRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (m *memCategoryRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Category, 0, len(m.cats))
	for _, c := range m.cats {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCategoryRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cats[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.cats, id)
	return nil
}

type memSectionRepo struct {
	mu   sync.Mutex
	secs map[string]model.Section
}

func newMemSectionRepo() *memSectionRepo {
	return &memSectionRepo{secs: make(map[string]model.Section)}
}

func (m *memSectionRepo) Save(_ context.Context, _ repository.Tx, s *model.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secs[s.ID] = *s
	return nil
}

func (m *memSectionRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.secs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *memSectionRepo) ListByCategory(_ context.Context, _ repository.Tx, categoryID string) ([]*model.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Section, 0)
	for _, s := range m.secs {
		if s.CategoryID == categoryID {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSectionRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Section, 0, len(m.secs))
	for _, s := range m.secs {
		cp := s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSectionRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.secs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.secs, id)
	return nil
}

type memContentRepo struct {
	mu    sync.Mutex
	items []model.ContentItem
	rels  map[string]model.ContentWithRelations
}

func newMemContentRepo() *memContentRepo {
	return &memContentRepo{rels: make(map[string]model.ContentWithRelations)}
}

func (m *memContentRepo) Save(_ context.Context, _ repository.Tx, c *model.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == c.ID {
			m.items[i] = *c
			return nil
		}
	}
	m.items = append([]model.ContentItem{*c}, m.items...)
	return nil
}

func (m *memContentRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			cp := it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memContentRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.ContentItem, 0, len(m.items))
	for _, it := range m.items {
		cp := it
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memContentRepo) ListAllWithRelations(_ context.Context, _ repository.Tx) ([]*model.ContentWithRelations, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.ContentWithRelations, 0, len(m.items))
	for _, it := range m.items {
		rel := m.rels[it.ID]
		rel.ContentItem = it
		out = append(out, &rel)
	}
	return out, nil
}

func (m *memContentRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memContentRepo) setRelation(id string, cat model.Category, sec model.Section) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rels[id] = model.ContentWithRelations{Category: cat, Section: sec}
}

type stubGeo struct {
	country model.Country
	err     error
}

func (s *stubGeo) Detect(context.Context, string) (model.Country, error) {
	if s.err != nil {
		return model.Country{}, s.err
	}
	return s.country, nil
}

type stubPolicy string

func (s stubPolicy) Policy() string { return string(s) }

type stubWatcher struct{}

func (stubWatcher) Watch(string, time.Time) {}
func (stubWatcher) Cancel(string)           {}
