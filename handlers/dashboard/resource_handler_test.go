package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/queryparams"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer/renderertest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newResourceApp[T any](svc *adminMock[T], res Resource) (*fiber.App, *renderertest.Views) {
	views := &renderertest.Views{}
	app := fiber.New(fiber.Config{Views: views})
	NewResourceHandler[T](svc, res).Register(app.Group("/admin-panel"))
	return app, views
}

func TestResourceHandler_List(t *testing.T) {
	svc := &adminMock[models.Country]{name: "Countries"}
	svc.On("List", mock.Anything, mock.Anything).Return(&queryparams.PaginatedResult{
		Data: []models.Country{{ID: 1, Name: "Jordan", Code: "JO"}, {ID: 2, Name: "Egypt"}},
		Meta: queryparams.PaginationMeta{CurrentPage: 1, PerPage: 10, TotalItems: 2, TotalPages: 1},
	}, nil)
	app, views := newResourceApp(svc, CountryResource)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin-panel/countries?page=1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	last := views.Last()
	assert.Equal(t, listTemplate, last.Template)
	assert.Equal(t, "/admin-panel/countries", last.Data["BasePath"])
	rows, ok := last.Data["Rows"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jordan", rows[0]["name"])
	assert.Equal(t, "JO", rows[0]["code"])
}

func TestResourceHandler_ListBackendDown(t *testing.T) {
	svc := &adminMock[models.Country]{name: "Countries"}
	svc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	app, views := newResourceApp(svc, CountryResource)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin-panel/countries", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Countries could not be loaded. Please try again.", views.Last().Data["Error"])
}

func TestResourceHandler_CreateValidationError(t *testing.T) {
	svc := &adminMock[models.Country]{name: "Countries"}
	svc.On("Create", mock.Anything, `{"code":"","name":""}`).Return(nil, &apiclient.APIError{
		Status:  fiber.StatusUnprocessableEntity,
		Message: "The given data was invalid.",
		Fields:  map[string][]string{"name": {"The name field is required."}},
	})
	app, views := newResourceApp(svc, CountryResource)

	resp, err := app.Test(postForm("/admin-panel/countries/create", url.Values{"name": {"  "}}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	last := views.Last()
	assert.Equal(t, formTemplate, last.Template)
	assert.Equal(t, "/admin-panel/countries/create", last.Data["Action"])
	assert.Equal(t, map[string]string{"name": "The name field is required."}, last.Data["Errors"])
	svc.AssertExpectations(t)
}

func TestResourceHandler_CreateSuccess(t *testing.T) {
	svc := &adminMock[models.Country]{name: "Countries"}
	svc.On("Create", mock.Anything, `{"code":"JO","name":"Jordan"}`).Return(&models.Country{ID: 1, Name: "Jordan"}, nil)
	app, _ := newResourceApp(svc, CountryResource)

	resp, err := app.Test(postForm("/admin-panel/countries/create", url.Values{"name": {"Jordan"}, "code": {"JO"}}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin-panel/countries", resp.Header.Get("Location"))
	svc.AssertExpectations(t)
}

func TestResourceHandler_CreateWithFilesSendsMultipart(t *testing.T) {
	svc := &adminMock[models.Product]{name: "Products"}
	svc.On("Create", mock.Anything, "multipart").Return(&models.Product{ID: 3}, nil)
	app, _ := newResourceApp(svc, ProductResource)

	resp, err := app.Test(postForm("/admin-panel/products/create", url.Values{"name": {"Card"}, "price": {"25"}}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestResourceHandler_ShowUpdatePrefillsItem(t *testing.T) {
	svc := &adminMock[models.Country]{name: "Countries"}
	svc.On("Get", mock.Anything, uint(5)).Return(&models.Country{ID: 5, Name: "Jordan", Code: "JO"}, nil)
	app, views := newResourceApp(svc, CountryResource)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin-panel/countries/update/5", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	formData, ok := views.Last().Data["FormData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jordan", formData["name"])
	assert.Equal(t, "/admin-panel/countries/update/5", views.Last().Data["Action"])
}

func TestResourceHandler_Delete(t *testing.T) {
	svc := &adminMock[models.Country]{name: "Countries"}
	svc.On("Delete", mock.Anything, uint(4)).Return(nil)
	app, _ := newResourceApp(svc, CountryResource)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/admin-panel/countries/delete/4", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin-panel/countries", resp.Header.Get("Location"))
	svc.AssertExpectations(t)
}

func TestResourceHandler_UnauthorizedPropagates(t *testing.T) {
	svc := &adminMock[models.Country]{name: "Countries"}
	svc.On("Delete", mock.Anything, uint(4)).Return(apiclient.ErrUnauthorized)
	views := &renderertest.Views{}
	var got error
	app := fiber.New(fiber.Config{Views: views, ErrorHandler: func(c *fiber.Ctx, err error) error {
		got = err
		return c.SendStatus(fiber.StatusUnauthorized)
	}})
	NewResourceHandler[models.Country](svc, CountryResource).Register(app.Group("/admin-panel"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/admin-panel/countries/delete/4", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.ErrorIs(t, got, apiclient.ErrUnauthorized)
}

func TestResourceHandler_ReadOnlyHasNoForms(t *testing.T) {
	svc := &adminMock[models.Subscriber]{name: "Subscribers"}
	app, _ := newResourceApp(svc, SubscriberResource)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin-panel/subscribers/create", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestResource_HasFiles(t *testing.T) {
	assert.True(t, ProductResource.HasFiles())
	assert.False(t, CountryResource.HasFiles())
	assert.False(t, SubscriberResource.Editable())
	assert.True(t, CountryResource.Editable())
}
