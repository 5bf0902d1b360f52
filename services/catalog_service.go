package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/cache"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogServiceError katalog servis hataları.
type CatalogServiceError string

func (e CatalogServiceError) Error() string { return string(e) }

const (
	ErrCatalogNotFound    CatalogServiceError = "catalog item not found"
	ErrCatalogUnavailable CatalogServiceError = "catalog is temporarily unavailable"
)

// Katalog önbellek anahtarları
const (
	cacheKeyProducts     = "catalog:products"
	cacheKeyAddons       = "catalog:addons"
	cacheKeyCountries    = "catalog:countries"
	cacheKeyCities       = "catalog:cities:"
	cacheKeyTestimonials = "catalog:testimonials"
	cacheKeyHeaders      = "catalog:header-images"
	cacheKeySocial       = "catalog:social-media"
)

// HomePage ana sayfanın ihtiyaç duyduğu tüm veriler.
type HomePage struct {
	HeaderImages []models.HeaderImage
	Products     []models.Product
	Testimonials []models.Testimonial
}

// ICatalogService vitrin tarafının okuduğu referans veriler.
type ICatalogService interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id uint) (*models.Product, error)
	Addons(ctx context.Context) ([]models.Addon, error)
	Countries(ctx context.Context) ([]models.Country, error)
	Cities(ctx context.Context, countryID uint) ([]models.City, error)
	City(ctx context.Context, countryID, cityID uint) (*models.City, error)
	Testimonials(ctx context.Context) ([]models.Testimonial, error)
	HeaderImages(ctx context.Context) ([]models.HeaderImage, error)
	SocialLinks(ctx context.Context) ([]models.SocialMedia, error)
	HomePage(ctx context.Context) (*HomePage, error)
	Invalidate(ctx context.Context, resource string)
}

// CatalogService ICatalogService arayüzünü uygular.
type CatalogService struct {
	products     *apiclient.Resource[models.Product]
	addons       *apiclient.Resource[models.Addon]
	countries    *apiclient.Resource[models.Country]
	cities       *apiclient.Resource[models.City]
	testimonials *apiclient.Resource[models.Testimonial]
	headers      *apiclient.Resource[models.HeaderImage]
	social       *apiclient.Resource[models.SocialMedia]

	cache cache.Cache
	ttl   time.Duration
}

// NewCatalogService yeni bir CatalogService örneği oluşturur.
func NewCatalogService(client *apiclient.Client, c cache.Cache, ttl time.Duration) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CatalogService{
		products:     apiclient.NewResource[models.Product](client, ResourceProducts),
		addons:       apiclient.NewResource[models.Addon](client, ResourceAddons),
		countries:    apiclient.NewResource[models.Country](client, ResourceCountries),
		cities:       apiclient.NewResource[models.City](client, ResourceCities),
		testimonials: apiclient.NewResource[models.Testimonial](client, ResourceTestimonials),
		headers:      apiclient.NewResource[models.HeaderImage](client, ResourceHeaderImages),
		social:       apiclient.NewResource[models.SocialMedia](client, ResourceSocialMedia),
		cache:        c,
		ttl:          ttl,
	}
}

var _ ICatalogService = (*CatalogService)(nil)

// allItems katalog listeleri küçük; tek sayfada çekilir.
func allItems() url.Values {
	return url.Values{"per_page": {"100"}}
}

func listCached[T any](ctx context.Context, s *CatalogService, key string, res *apiclient.Resource[T], query url.Values) ([]T, error) {
	items, err := cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]T, error) {
		return res.List(ctx, query)
	})
	if err != nil {
		configslog.Log.Error("Katalog okunamadı", zap.String("resource", res.Path()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return items, nil
}

func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	return listCached(ctx, s, cacheKeyProducts, s.products, allItems())
}

// Product listeden id ile ürünü bulur (liste önbellekten gelir).
func (s *CatalogService) Product(ctx context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrCatalogNotFound
	}
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrCatalogNotFound
}

func (s *CatalogService) Addons(ctx context.Context) ([]models.Addon, error) {
	return listCached(ctx, s, cacheKeyAddons, s.addons, allItems())
}

func (s *CatalogService) Countries(ctx context.Context) ([]models.Country, error) {
	return listCached(ctx, s, cacheKeyCountries, s.countries, allItems())
}

// Cities ülkeye bağlı şehirler.
func (s *CatalogService) Cities(ctx context.Context, countryID uint) ([]models.City, error) {
	if countryID == 0 {
		return []models.City{}, nil
	}
	id := strconv.FormatUint(uint64(countryID), 10)
	q := allItems()
	q.Set("country_id", id)
	return listCached(ctx, s, cacheKeyCities+id, s.cities, q)
}

// City şehri ülkesiyle birlikte doğrular.
func (s *CatalogService) City(ctx context.Context, countryID, cityID uint) (*models.City, error) {
	cities, err := s.Cities(ctx, countryID)
	if err != nil {
		return nil, err
	}
	for i := range cities {
		if cities[i].ID == cityID {
			return &cities[i], nil
		}
	}
	return nil, ErrCatalogNotFound
}

func (s *CatalogService) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	return listCached(ctx, s, cacheKeyTestimonials, s.testimonials, allItems())
}

func (s *CatalogService) HeaderImages(ctx context.Context) ([]models.HeaderImage, error) {
	return listCached(ctx, s, cacheKeyHeaders, s.headers, allItems())
}

func (s *CatalogService) SocialLinks(ctx context.Context) ([]models.SocialMedia, error) {
	return listCached(ctx, s, cacheKeySocial, s.social, allItems())
}

// HomePage ana sayfa verilerini paralel çeker. Yorum ve hero görselleri
// opsiyoneldir; sadece ürün listesi hatası sayfayı düşürür.
func (s *CatalogService) HomePage(ctx context.Context) (*HomePage, error) {
	page := &HomePage{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := s.Products(gctx)
		if err != nil {
			return err
		}
		page.Products = products
		return nil
	})
	g.Go(func() error {
		items, err := s.Testimonials(gctx)
		if err != nil {
			configslog.Log.Warn("Ana sayfa yorumları alınamadı", zap.Error(err))
			return nil
		}
		page.Testimonials = items
		return nil
	})
	g.Go(func() error {
		items, err := s.HeaderImages(gctx)
		if err != nil {
			configslog.Log.Warn("Ana sayfa görselleri alınamadı", zap.Error(err))
			return nil
		}
		page.HeaderImages = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

// Invalidate admin değişikliğinden sonra ilgili önbelleği siler.
func (s *CatalogService) Invalidate(ctx context.Context, resource string) {
	var keys []string
	switch resource {
	case ResourceProducts:
		keys = []string{cacheKeyProducts}
	case ResourceAddons:
		keys = []string{cacheKeyAddons}
	case ResourceCountries:
		keys = []string{cacheKeyCountries}
	case ResourceCities:
		countries, err := s.Countries(ctx)
		if err == nil {
			for _, c := range countries {
				keys = append(keys, cacheKeyCities+strconv.FormatUint(uint64(c.ID), 10))
			}
		}
	case ResourceTestimonials:
		keys = []string{cacheKeyTestimonials}
	case ResourceHeaderImages:
		keys = []string{cacheKeyHeaders}
	case ResourceSocialMedia:
		keys = []string{cacheKeySocial}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil && !errors.Is(err, cache.ErrMiss) {
		configslog.Log.Warn("Katalog önbelleği silinemedi", zap.Strings("keys", keys), zap.Error(err))
	}
}
