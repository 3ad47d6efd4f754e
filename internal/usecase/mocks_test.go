package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/adapter"
	"universidad-sunshine/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---- geo ----

type mockGeo struct {
	country model.Country
	err     error
	calls   int
}

func (m *mockGeo) Detect(_ context.Context, _ string) (model.Country, error) {
	m.calls++
	if m.err != nil {
		return model.Country{}, m.err
	}
	return m.country, nil
}

// ---- visitor state ----

type mockVisitorRepo struct {
	mu      sync.Mutex
	states  map[string]model.VisitorState
	getErr  error
	saveErr error
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{states: make(map[string]model.VisitorState)}
}

func (m *mockVisitorRepo) Get(_ context.Context, visitorID string) (*model.VisitorState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.states[visitorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *mockVisitorRepo) Save(_ context.Context, state *model.VisitorState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[state.VisitorID] = *state
	return nil
}

func (m *mockVisitorRepo) Delete(_ context.Context, visitorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, visitorID)
	return nil
}

// ---- privacy ----

type mockPrivacyRepo struct {
	mu   sync.Mutex
	recs map[string]model.PrivacyAcceptance
}

func newMockPrivacyRepo() *mockPrivacyRepo {
	return &mockPrivacyRepo{recs: make(map[string]model.PrivacyAcceptance)}
}

func (m *mockPrivacyRepo) Get(_ context.Context, visitorID string) (*model.PrivacyAcceptance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[visitorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := r
	cp.Accepted = make(map[string]bool, len(r.Accepted))
	for k, v := range r.Accepted {
		cp.Accepted[k] = v
	}
	return &cp, nil
}

func (m *mockPrivacyRepo) Save(_ context.Context, rec *model.PrivacyAcceptance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	cp.Accepted = make(map[string]bool, len(rec.Accepted))
	for k, v := range rec.Accepted {
		cp.Accepted[k] = v
	}
	m.recs[rec.VisitorID] = cp
	return nil
}

// ---- sessions ----

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]model.AuthSession
	saveErr  error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]model.AuthSession)}
}

func (m *mockSessionRepo) Save(_ context.Context, s *model.AuthSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *mockSessionRepo) Get(_ context.Context, sessionID string) (*model.AuthSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *mockSessionRepo) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

// ---- users ----

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User // by ID
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]model.User)}
}

func (m *mockUserRepo) Save(_ context.Context, _ repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, _ repository.Tx, email string) (*model.User, error) {
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

func (m *mockUserRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		cp := u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *mockUserRepo) DeleteByEmail(_ context.Context, _ repository.Tx, email string) error {
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

// ---- categories / sections / contents ----

type mockCategoryRepo struct {
	mu   sync.Mutex
	cats map[string]model.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{cats: make(map[string]model.Category)}
}

func (m *mockCategoryRepo) Save(_ context.Context, _ repository.Tx, c *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cats[c.ID] = *c
	return nil
}

func (m *mockCategoryRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (m *mockCategoryRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Category, 0, len(m.cats))
	for _, c := range m.cats {
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cats[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.cats, id)
	return nil
}

type mockSectionRepo struct {
	mu   sync.Mutex
	secs map[string]model.Section
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{secs: make(map[string]model.Section)}
}

func (m *mockSectionRepo) Save(_ context.Context, _ repository.Tx, s *model.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secs[s.ID] = *s
	return nil
}

func (m *mockSectionRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.secs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *mockSectionRepo) ListByCategory(_ context.Context, _ repository.Tx, categoryID string) ([]*model.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Section, 0)
	for _, s := range m.secs {
		if s.CategoryID == categoryID {
			cp := s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockSectionRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Section, 0, len(m.secs))
	for _, s := range m.secs {
		cp := s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockSectionRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.secs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.secs, id)
	return nil
}

type mockContentRepo struct {
	mu    sync.Mutex
	items []model.ContentItem // newest first, like the real repo
	rels  map[string]model.ContentWithRelations
}

func newMockContentRepo() *mockContentRepo {
	return &mockContentRepo{rels: make(map[string]model.ContentWithRelations)}
}

func (m *mockContentRepo) Save(_ context.Context, _ repository.Tx, c *model.ContentItem) error {
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

func (m *mockContentRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.ContentItem, error) {
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

func (m *mockContentRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.ContentItem, 0, len(m.items))
	for _, it := range m.items {
		cp := it
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockContentRepo) ListAllWithRelations(_ context.Context, _ repository.Tx) ([]*model.ContentWithRelations, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.ContentWithRelations, 0, len(m.items))
	for _, it := range m.items {
		rel, ok := m.rels[it.ID]
		if !ok {
			rel = model.ContentWithRelations{}
		}
		rel.ContentItem = it
		out = append(out, &rel)
	}
	return out, nil
}

func (m *mockContentRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
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

// setRelation attaches the category/section served with an item.
func (m *mockContentRepo) setRelation(id string, cat model.Category, sec model.Section) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rels[id] = model.ContentWithRelations{Category: cat, Section: sec}
}

// ---- public content cache ----

type mockContentCache struct {
	mu          sync.Mutex
	byCountry   map[string][]*model.ContentWithRelations
	invalidated int
}

func newMockContentCache() *mockContentCache {
	return &mockContentCache{byCountry: make(map[string][]*model.ContentWithRelations)}
}

func (m *mockContentCache) Get(_ context.Context, code string) ([]*model.ContentWithRelations, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.byCountry[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return items, nil
}

func (m *mockContentCache) Set(_ context.Context, code string, items []*model.ContentWithRelations) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byCountry[code] = items
	return nil
}

func (m *mockContentCache) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byCountry = make(map[string][]*model.ContentWithRelations)
	m.invalidated++
	return nil
}

// ---- tokens ----

type mockTokenService struct {
	ttl       time.Duration
	verifyErr error
	decodeErr error
	expiry    time.Time
}

func (m *mockTokenService) Mint(u *model.User, sessionID string) (string, time.Time, error) {
	exp := time.Now().Add(m.ttl)
	return "tok-" + sessionID, exp, nil
}

func (m *mockTokenService) Verify(token string) (*adapter.TokenClaims, error) {
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return &adapter.TokenClaims{SessionID: token[len("tok-"):]}, nil
}

func (m *mockTokenService) DecodeClaims(token string) (*adapter.TokenClaims, error) {
	if m.decodeErr != nil {
		return nil, m.decodeErr
	}
	return &adapter.TokenClaims{SessionID: token[len("tok-"):], ExpiresAt: m.expiry}, nil
}

func (m *mockTokenService) DecodeExpiry(_ string) (time.Time, error) {
	if m.decodeErr != nil {
		return time.Time{}, m.decodeErr
	}
	return m.expiry, nil
}

// ---- rate limiter / watcher / policy ----

type mockRateLimiter struct {
	allow bool
	err   error
	calls int
}

func (m *mockRateLimiter) Allow(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return m.allow, nil
}

type mockWatcher struct {
	mu        sync.Mutex
	watched   map[string]time.Time
	cancelled []string
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{watched: make(map[string]time.Time)}
}

func (m *mockWatcher) Watch(sessionID string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watched[sessionID] = expiresAt
}

func (m *mockWatcher) Cancel(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.watched, sessionID)
	m.cancelled = append(m.cancelled, sessionID)
}

type staticPolicy string

func (s staticPolicy) Policy() string { return string(s) }
