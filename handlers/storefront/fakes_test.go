package handlers

import (
	"context"
	"mime/multipart"
	"sync"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/uploads"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type draftsMock struct{ mock.Mock }

var _ services.IOrderDraftService = (*draftsMock)(nil)

func (m *draftsMock) record(args mock.Arguments) (*models.OrderDraftRecord, error) {
	rec, _ := args.Get(0).(*models.OrderDraftRecord)
	return rec, args.Error(1)
}

func (m *draftsMock) StartDraft(ctx context.Context, flow orderwizard.Flow, productID uint, quantity int) (*models.OrderDraftRecord, error) {
	return m.record(m.Called(ctx, flow.Name, productID, quantity))
}

func (m *draftsMock) GetDraft(ctx context.Context, token string) (*models.OrderDraftRecord, error) {
	return m.record(m.Called(ctx, token))
}

func (m *draftsMock) Next(ctx context.Context, token string, mutate services.DraftMutator) (*models.OrderDraftRecord, error) {
	return m.record(m.Called(ctx, token, mutate))
}

func (m *draftsMock) Back(ctx context.Context, token string, mutate services.DraftMutator) (*models.OrderDraftRecord, error) {
	return m.record(m.Called(ctx, token, mutate))
}

func (m *draftsMock) GoTo(ctx context.Context, token string, step int) (*models.OrderDraftRecord, error) {
	return m.record(m.Called(ctx, token, step))
}

func (m *draftsMock) Submit(ctx context.Context, token string, mutate services.DraftMutator) (*models.OrderDraftRecord, error) {
	return m.record(m.Called(ctx, token, mutate))
}

func (m *draftsMock) Discard(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *draftsMock) Quote(ctx context.Context, rec *models.OrderDraftRecord) (*services.Quote, error) {
	args := m.Called(ctx, rec)
	q, _ := args.Get(0).(*services.Quote)
	return q, args.Error(1)
}

func (m *draftsMock) PurgeExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// catalogStub sabit katalog verisi döndürür. err doluysa tüm okumalar başarısız olur.
type catalogStub struct {
	products     []models.Product
	addons       []models.Addon
	countries    []models.Country
	cities       map[uint][]models.City
	testimonials []models.Testimonial
	headers      []models.HeaderImage
	err          error
}

var _ services.ICatalogService = (*catalogStub)(nil)

func newCatalogStub() *catalogStub {
	return &catalogStub{
		products: []models.Product{{ID: 7, Name: "Classic Black", Price: decimal.RequireFromString("25.50")}},
		addons: []models.Addon{
			{ID: 4, Title: "Finish", InputKind: orderwizard.InputSelect, Options: []string{"Matte", "Glossy"}, Price: decimal.NewFromInt(5)},
			{ID: 9, Title: "Back print", InputKind: orderwizard.InputImage, Price: decimal.NewFromInt(3)},
		},
		countries: []models.Country{{ID: 1, Name: "Jordan"}},
		cities:    map[uint][]models.City{1: {{ID: 3, Name: "Amman", CountryID: 1, DeliveryFee: decimal.NewFromInt(2)}}},
	}
}

func (s *catalogStub) Products(context.Context) ([]models.Product, error) { return s.products, s.err }

func (s *catalogStub) Product(_ context.Context, id uint) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, services.ErrCatalogNotFound
}

func (s *catalogStub) Addons(context.Context) ([]models.Addon, error)      { return s.addons, s.err }
func (s *catalogStub) Countries(context.Context) ([]models.Country, error) { return s.countries, s.err }

func (s *catalogStub) Cities(_ context.Context, id uint) ([]models.City, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cities[id], nil
}

func (s *catalogStub) City(ctx context.Context, countryID, cityID uint) (*models.City, error) {
	cities, err := s.Cities(ctx, countryID)
	if err != nil {
		return nil, err
	}
	for i := range cities {
		if cities[i].ID == cityID {
			return &cities[i], nil
		}
	}
	return nil, services.ErrCatalogNotFound
}

func (s *catalogStub) Testimonials(context.Context) ([]models.Testimonial, error) {
	return s.testimonials, s.err
}

func (s *catalogStub) HeaderImages(context.Context) ([]models.HeaderImage, error) {
	return s.headers, s.err
}

func (s *catalogStub) SocialLinks(context.Context) ([]models.SocialMedia, error) { return nil, s.err }

func (s *catalogStub) HomePage(ctx context.Context) (*services.HomePage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.HomePage{HeaderImages: s.headers, Products: s.products, Testimonials: s.testimonials}, nil
}

func (s *catalogStub) Invalidate(context.Context, string) {}

// fileStoreFake yüklemeleri bellekte tutar.
type fileStoreFake struct {
	mu      sync.Mutex
	saved   []orderwizard.File
	removed []orderwizard.File
	err     error
}

func (f *fileStoreFake) SaveHeader(kind uploads.Kind, fh *multipart.FileHeader) (orderwizard.File, error) {
	if f.err != nil {
		return orderwizard.File{}, f.err
	}
	file := orderwizard.File{Name: fh.Filename, Path: string(kind) + "/" + fh.Filename, ContentType: "image/png", Size: fh.Size}
	f.mu.Lock()
	f.saved = append(f.saved, file)
	f.mu.Unlock()
	return file, nil
}

func (f *fileStoreFake) Remove(files ...orderwizard.File) {
	f.mu.Lock()
	f.removed = append(f.removed, files...)
	f.mu.Unlock()
}

type contactMock struct{ mock.Mock }

var _ services.IContactService = (*contactMock)(nil)

func (m *contactMock) SendMessage(ctx context.Context, form services.ContactForm) error {
	return m.Called(ctx, form).Error(0)
}

func (m *contactMock) Subscribe(ctx context.Context, form services.SubscribeForm) error {
	return m.Called(ctx, form).Error(0)
}
