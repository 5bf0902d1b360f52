package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/cache"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/repositories"
)

// memDraftRepo veritabanı olmadan IDraftRepository.
type memDraftRepo struct {
	mu        sync.Mutex
	nextID    uint
	rows      map[string]models.OrderDraftRecord
	saveErr   error
	deleteErr error
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{rows: map[string]models.OrderDraftRecord{}}
}

func clone(rec models.OrderDraftRecord) models.OrderDraftRecord {
	raw, _ := json.Marshal(rec.Draft)
	var d orderwizard.OrderDraft
	_ = json.Unmarshal(raw, &d)
	rec.Draft = d
	return rec
}

func (r *memDraftRepo) Create(_ context.Context, rec *models.OrderDraftRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = r.nextID
	if rec.Token == "" {
		rec.Token = uuid.NewString()
	}
	r.rows[rec.Token] = clone(*rec)
	return nil
}

func (r *memDraftRepo) FindByToken(_ context.Context, token string, now time.Time) (*models.OrderDraftRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[token]
	if !ok || rec.Expired(now) {
		return nil, repositories.ErrNotFound
	}
	c := clone(rec)
	return &c, nil
}

func (r *memDraftRepo) Save(_ context.Context, rec *models.OrderDraftRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.rows[rec.Token]; !ok {
		return repositories.ErrNotFound
	}
	r.rows[rec.Token] = clone(*rec)
	return nil
}

func (r *memDraftRepo) Delete(_ context.Context, rec *models.OrderDraftRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.rows, rec.Token)
	return nil
}

func (r *memDraftRepo) DeleteExpired(_ context.Context, now time.Time) ([]models.OrderDraftRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.OrderDraftRecord
	for token, rec := range r.rows {
		if !now.Before(rec.ExpiresAt) {
			out = append(out, rec)
			delete(r.rows, token)
		}
	}
	return out, nil
}

func (r *memDraftRepo) stored(token string) (models.OrderDraftRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[token]
	return rec, ok
}

// catalogMock testify/mock tabanlı ICatalogService.
type catalogMock struct {
	mock.Mock
}

var _ ICatalogService = (*catalogMock)(nil)

func (m *catalogMock) Products(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *catalogMock) Product(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *catalogMock) Addons(ctx context.Context) ([]models.Addon, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Addon), args.Error(1)
}

func (m *catalogMock) Countries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *catalogMock) Cities(ctx context.Context, countryID uint) ([]models.City, error) {
	args := m.Called(ctx, countryID)
	return args.Get(0).([]models.City), args.Error(1)
}

func (m *catalogMock) City(ctx context.Context, countryID, cityID uint) (*models.City, error) {
	args := m.Called(ctx, countryID, cityID)
	return args.Get(0).(*models.City), args.Error(1)
}

func (m *catalogMock) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Testimonial), args.Error(1)
}

func (m *catalogMock) HeaderImages(ctx context.Context) ([]models.HeaderImage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.HeaderImage), args.Error(1)
}

func (m *catalogMock) SocialLinks(ctx context.Context) ([]models.SocialMedia, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.SocialMedia), args.Error(1)
}

func (m *catalogMock) HomePage(ctx context.Context) (*HomePage, error) {
	args := m.Called(ctx)
	return args.Get(0).(*HomePage), args.Error(1)
}

func (m *catalogMock) Invalidate(ctx context.Context, resource string) {
	m.Called(ctx, resource)
}

type recordingSubmitter struct {
	mu       sync.Mutex
	err      error
	payloads []*orderwizard.Payload
	flows    []string
}

func (s *recordingSubmitter) Submit(_ context.Context, flow orderwizard.Flow, p *orderwizard.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, p)
	s.flows = append(s.flows, flow.Name)
	return s.err
}

type recordingRemover struct {
	mu      sync.Mutex
	removed []orderwizard.File
}

func (r *recordingRemover) Remove(files ...orderwizard.File) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, files...)
}

// mapCache süresiz bellek içi cache.Cache.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// fakeBackend yol bazında yanıt veren httptest sunucusu.
type fakeBackend struct {
	mu     sync.Mutex
	hits   map[string]int
	routes map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) (*fakeBackend, *apiclient.Client) {
	t.Helper()
	fb := &fakeBackend{hits: map[string]int{}, routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/")
		fb.mu.Lock()
		fb.hits[key]++
		h, ok := fb.routes[key]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, apiclient.New(srv.URL+"/api", apiclient.WithHTTPClient(srv.Client()))
}

func (fb *fakeBackend) handle(key string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[key] = h
}

func (fb *fakeBackend) json(key string, status int, body string) {
	fb.handle(key, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (fb *fakeBackend) count(key string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.hits[key]
}
