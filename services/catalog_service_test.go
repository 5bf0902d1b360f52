package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsBody = `{"data":[{"id":7,"name":"Classic Black","price":"25.50"},{"id":8,"name":"Gold","price":"40"}]}`

func TestCatalog_ProductsAreCached(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.json("GET products", http.StatusOK, productsBody)
	svc := NewCatalogService(client, newMapCache(), time.Minute)
	ctx := context.Background()

	first, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	p, err := svc.Product(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, "Gold", p.Name)
	assert.Equal(t, "40", p.Price.String())
	assert.Equal(t, 1, fb.count("GET products"))

	svc.Invalidate(ctx, ResourceProducts)
	_, err = svc.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fb.count("GET products"))
}

func TestCatalog_ProductNotFound(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.json("GET products", http.StatusOK, productsBody)
	svc := NewCatalogService(client, nil, time.Minute)

	_, err := svc.Product(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCatalogNotFound)
	_, err = svc.Product(context.Background(), 0)
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestCatalog_CityLooksUpWithinCountry(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle("GET cities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("country_id"))
		_, _ = w.Write([]byte(`{"data":{"data":[{"id":3,"name":"Amman","country_id":1,"delivery_fee":"2.5"}],"pagination":{"current_page":1,"last_page":1,"per_page":100,"total":1}}}`))
	})
	svc := NewCatalogService(client, nil, time.Minute)
	ctx := context.Background()

	city, err := svc.City(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "2.5", city.DeliveryFee.String())

	_, err = svc.City(ctx, 1, 4)
	assert.ErrorIs(t, err, ErrCatalogNotFound)

	cities, err := svc.Cities(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestCatalog_HomePageToleratesOptionalSections(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.json("GET products", http.StatusOK, productsBody)
	fb.json("GET testimonials", http.StatusInternalServerError, `{"message":"boom"}`)
	fb.json("GET header-images", http.StatusOK, `{"data":[{"id":1,"image":"storage/hero 1.jpg"}]}`)
	svc := NewCatalogService(client, nil, time.Minute)

	page, err := svc.HomePage(context.Background())
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Empty(t, page.Testimonials)
	require.Len(t, page.HeaderImages, 1)
	assert.Equal(t, "storage/hero 1.jpg", page.HeaderImages[0].Image)
}

func TestCatalog_HomePageFailsWithoutProducts(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.json("GET products", http.StatusBadGateway, `upstream down`)
	fb.json("GET testimonials", http.StatusOK, `{"data":[]}`)
	fb.json("GET header-images", http.StatusOK, `{"data":[]}`)
	svc := NewCatalogService(client, nil, time.Minute)

	_, err := svc.HomePage(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}
