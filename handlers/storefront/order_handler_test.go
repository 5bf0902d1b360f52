package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer/renderertest"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/uploads"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderHandlerSuite struct {
	suite.Suite
	drafts  *draftsMock
	catalog *catalogStub
	files   *fileStoreFake
	views   *renderertest.Views
	app     *fiber.App
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerSuite))
}

func (s *OrderHandlerSuite) SetupTest() {
	s.drafts = &draftsMock{}
	s.catalog = newCatalogStub()
	s.files = &fileStoreFake{}
	s.views = &renderertest.Views{}

	s.app = fiber.New(fiber.Config{Views: s.views})
	h := NewOrderHandler(s.drafts, s.catalog, s.files)
	s.app.Post("/order/start/:productId", h.StartProductOrder)
	s.app.Post("/bulk-orders/start", h.StartBulkOrder)
	s.app.Get("/order/thank-you", h.ThankYou)
	s.app.Get("/order/cities/:countryId", h.Cities)
	s.app.Get("/order/:token", h.Show)
	s.app.Get("/order/:token/step/:step", h.GoTo)
	s.app.Post("/order/:token/next", h.Next)
	s.app.Post("/order/:token/back", h.Back)
	s.app.Post("/order/:token/submit", h.Submit)
	s.app.Post("/order/:token/discard", h.Discard)
}

func (s *OrderHandlerSuite) do(req *http.Request) *http.Response {
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func record(flow orderwizard.Flow, step int) *models.OrderDraftRecord {
	return &models.OrderDraftRecord{Token: "tok", Flow: flow.Name, Step: step, Draft: *orderwizard.NewDraft(7)}
}

// applyMutator Next/Back/Submit çağrısındaki mutator'ı yeni bir taslağa uygular.
func applyMutator(draft *orderwizard.OrderDraft, mutErr *error) func(mock.Arguments) {
	return func(args mock.Arguments) {
		mutate := args.Get(2).(services.DraftMutator)
		*mutErr = mutate(draft)
	}
}

func (s *OrderHandlerSuite) TestStartProductOrder_RedirectsToDraft() {
	s.drafts.On("StartDraft", mock.Anything, "product", uint(7), 3).Return(record(orderwizard.FlowProduct, 1), nil)

	resp := s.do(postForm("/order/start/7", url.Values{"quantity": {"3"}}))

	s.Equal(fiber.StatusSeeOther, resp.StatusCode)
	s.Equal("/order/tok", resp.Header.Get("Location"))
}

func (s *OrderHandlerSuite) TestStartProductOrder_UnknownProductGoesBack() {
	s.drafts.On("StartDraft", mock.Anything, "product", uint(99), 1).Return(nil, services.ErrDraftProductMissing)

	resp := s.do(postForm("/order/start/99", url.Values{}))

	s.Equal(fiber.StatusSeeOther, resp.StatusCode)
	s.Equal("/products/99", resp.Header.Get("Location"))
}

func (s *OrderHandlerSuite) TestStartBulkOrder_RequiresProduct() {
	resp := s.do(postForm("/bulk-orders/start", url.Values{"quantity": {"20"}}))

	s.Equal("/bulk-orders", resp.Header.Get("Location"))
	s.drafts.AssertNotCalled(s.T(), "StartDraft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderHandlerSuite) TestStartBulkOrder_UsesBulkFlow() {
	s.drafts.On("StartDraft", mock.Anything, "bulk", uint(7), 20).Return(record(orderwizard.FlowBulk, 1), nil)

	resp := s.do(postForm("/bulk-orders/start", url.Values{"productId": {"7"}, "quantity": {"20"}}))

	s.Equal("/order/tok", resp.Header.Get("Location"))
}

func (s *OrderHandlerSuite) TestShow_RendersCurrentStep() {
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(record(orderwizard.FlowProduct, 1), nil)

	resp := s.do(httptest.NewRequest(http.MethodGet, "/order/tok", nil))

	s.Equal(fiber.StatusOK, resp.StatusCode)
	last := s.views.Last()
	s.Equal("order/wizard", last.Template)
	s.Equal("layouts/main", last.Layout)
	s.Equal("personal", last.Data["StepKind"])
	s.Equal(true, last.Data["IsFirst"])
	s.Equal(false, last.Data["IsBulk"])
	s.Len(last.Data["Steps"], 6)
	s.NotNil(last.Data["Product"])
}

func (s *OrderHandlerSuite) TestShow_DeliveryStepLoadsCities() {
	rec := record(orderwizard.FlowBulk, 3)
	rec.Draft.DeliveryInfo.CountryID = 1
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(rec, nil)

	s.do(httptest.NewRequest(http.MethodGet, "/order/tok", nil))

	last := s.views.Last()
	s.Equal("delivery", last.Data["StepKind"])
	s.Equal(true, last.Data["IsBulk"])
	cities, ok := last.Data["Cities"].([]models.City)
	s.Require().True(ok)
	s.Require().Len(cities, 1)
	s.Equal("Amman", cities[0].Name)
}

func (s *OrderHandlerSuite) TestShow_ExpiredDraftRedirectsHome() {
	s.drafts.On("GetDraft", mock.Anything, "gone").Return(nil, services.ErrDraftNotFound)

	resp := s.do(httptest.NewRequest(http.MethodGet, "/order/gone", nil))

	s.Equal(fiber.StatusSeeOther, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))
}

func (s *OrderHandlerSuite) TestNext_AppliesPersonalStepFields() {
	rec := record(orderwizard.FlowProduct, 1)
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(rec, nil)
	draft := orderwizard.NewDraft(7)
	var mutErr error
	s.drafts.On("Next", mock.Anything, "tok", mock.Anything).Run(applyMutator(draft, &mutErr)).Return(rec, nil)

	form := url.Values{
		"step":         {"1"},
		"name":         {"  Jane Doe "},
		"position":     {"CTO"},
		"organization": {"Acme"},
		"phoneNumbers": {"+962791234567", "", "+962781234567"},
		"email":        {"jane@example.com"},
		"linkedin":     {"https://linkedin.com/in/jane"},
	}
	resp := s.do(postForm("/order/tok/next", form))

	s.Equal(fiber.StatusSeeOther, resp.StatusCode)
	s.Equal("/order/tok", resp.Header.Get("Location"))
	s.Require().NoError(mutErr)
	s.Equal("Jane Doe", draft.PersonalInfo.Name)
	s.Equal([]string{"+962791234567", "+962781234567"}, draft.PersonalInfo.PhoneNumbers)
	s.Equal("https://linkedin.com/in/jane", draft.PersonalInfo.SocialLinks.LinkedIn)
	s.False(draft.DeliveryInfo.UseSameContact)
}

func (s *OrderHandlerSuite) TestNext_StaleStepIsIgnored() {
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(record(orderwizard.FlowProduct, 1), nil)

	resp := s.do(postForm("/order/tok/next", url.Values{"step": {"2"}}))

	s.Equal("/order/tok", resp.Header.Get("Location"))
	s.drafts.AssertNotCalled(s.T(), "Next", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderHandlerSuite) TestNext_ValidationErrorRendersFieldErrors() {
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(record(orderwizard.FlowProduct, 1), nil)
	ve := &orderwizard.ValidationError{Step: 1, Errors: []orderwizard.FieldError{
		{Path: orderwizard.PathEmail, Message: "Enter a valid email address."},
	}}
	s.drafts.On("Next", mock.Anything, "tok", mock.Anything).Return(nil, ve)

	resp := s.do(postForm("/order/tok/next", url.Values{"step": {"1"}, "email": {"nope"}}))

	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
	errs, ok := s.views.Last().Data["Errors"].(map[string]string)
	s.Require().True(ok)
	s.Equal("Enter a valid email address.", errs["personalInfo.email"])
}

func multipartRequest(t *testing.T, path string, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (s *OrderHandlerSuite) TestNext_DesignStepStoresLogo() {
	rec := record(orderwizard.FlowProduct, 2)
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(rec, nil)
	draft := orderwizard.NewDraft(7)
	draft.CardDesign.CompanyLogo = &orderwizard.File{Name: "old.png", Path: "logo/old.png"}
	var mutErr error
	s.drafts.On("Next", mock.Anything, "tok", mock.Anything).Run(applyMutator(draft, &mutErr)).Return(rec, nil)

	req := multipartRequest(s.T(), "/order/tok/next", map[string]string{
		"step": "2", "nameOnCard": "Jane", "color": "Black", "printLogo": "on", "quantity": "4",
	}, "companyLogo", "logo.png", []byte("\x89PNG fake"))
	s.do(req)

	s.Require().NoError(mutErr)
	s.Require().NotNil(draft.CardDesign.CompanyLogo)
	s.Equal("logo/logo.png", draft.CardDesign.CompanyLogo.Path)
	s.True(draft.CardDesign.PrintLogo)
	s.Equal(4, draft.Quantity)
	// Eski logo kayıttan sonra servis tarafından silinir
	s.Empty(s.files.removed)
}

func (s *OrderHandlerSuite) TestNext_RejectedUploadBecomesFieldError() {
	rec := record(orderwizard.FlowProduct, 2)
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(rec, nil)
	s.files.err = uploads.ErrTooLarge
	draft := orderwizard.NewDraft(7)
	var mutErr error
	s.drafts.On("Next", mock.Anything, "tok", mock.Anything).Run(applyMutator(draft, &mutErr)).Return(rec, nil)

	req := multipartRequest(s.T(), "/order/tok/next", map[string]string{"step": "2"}, "companyLogo", "huge.png", []byte("data"))
	s.do(req)

	ve, ok := orderwizard.AsValidationError(mutErr)
	s.Require().True(ok)
	s.Equal(2, ve.Step)
	s.Equal("The file must be smaller than 10 MB.", ve.Messages()["cardDesign.companyLogo"])
}

func (s *OrderHandlerSuite) TestNext_AddonsStepReadsSelections() {
	rec := record(orderwizard.FlowProduct, 3)
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(rec, nil)
	draft := orderwizard.NewDraft(7)
	var mutErr error
	s.drafts.On("Next", mock.Anything, "tok", mock.Anything).Run(applyMutator(draft, &mutErr)).Return(rec, nil)

	req := multipartRequest(s.T(), "/order/tok/next", map[string]string{
		"step": "3", "addons[4]": "Matte",
	}, "addonImages[9]", "back.png", []byte("img"))
	s.do(req)

	s.Require().NoError(mutErr)
	finish, ok := draft.Addon(4)
	s.Require().True(ok)
	s.Equal("Matte", finish.Value)
	back, ok := draft.Addon(9)
	s.Require().True(ok)
	s.Equal("back.png", back.Value)
	s.Require().Len(draft.AddonImages, 1)
	s.Equal(uint(9), draft.AddonImages[0].AddonID)
	s.Equal("addon/back.png", draft.AddonImages[0].Path)
}

func (s *OrderHandlerSuite) TestNext_AddonImageReplacesOnlyItsOwnFile() {
	rec := record(orderwizard.FlowProduct, 3)
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(rec, nil)
	draft := orderwizard.NewDraft(7)
	draft.AddonImages = []orderwizard.File{
		{Name: "old.png", Path: "addon/old.png", AddonID: 9},
		{Name: "other.png", Path: "addon/other.png", AddonID: 12},
	}
	draft.SetAddon(orderwizard.AddonSelection{AddonID: 9, Value: "old.png", InputKind: orderwizard.InputImage})
	var mutErr error
	s.drafts.On("Next", mock.Anything, "tok", mock.Anything).Run(applyMutator(draft, &mutErr)).Return(rec, nil)

	req := multipartRequest(s.T(), "/order/tok/next", map[string]string{"step": "3"}, "addonImages[9]", "new.png", []byte("img"))
	s.do(req)

	s.Require().NoError(mutErr)
	back, ok := draft.Addon(9)
	s.Require().True(ok)
	s.Equal("new.png", back.Value)
	s.Require().Len(draft.AddonImages, 2)
	s.Equal("addon/other.png", draft.AddonImages[0].Path)
	s.Equal("addon/new.png", draft.AddonImages[1].Path)
	s.Empty(s.files.removed)
}

func (s *OrderHandlerSuite) TestBack_SavesWithoutAdvancing() {
	rec := record(orderwizard.FlowProduct, 2)
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(rec, nil)
	s.drafts.On("Back", mock.Anything, "tok", mock.Anything).Return(record(orderwizard.FlowProduct, 1), nil)

	resp := s.do(postForm("/order/tok/back", url.Values{"step": {"2"}}))

	s.Equal("/order/tok", resp.Header.Get("Location"))
	s.drafts.AssertCalled(s.T(), "Back", mock.Anything, "tok", mock.Anything)
}

func (s *OrderHandlerSuite) TestGoTo_JumpsToStep() {
	s.drafts.On("GoTo", mock.Anything, "tok", 2).Return(record(orderwizard.FlowProduct, 2), nil)

	resp := s.do(httptest.NewRequest(http.MethodGet, "/order/tok/step/2", nil))

	s.Equal("/order/tok", resp.Header.Get("Location"))
	s.drafts.AssertExpectations(s.T())
}

func (s *OrderHandlerSuite) TestSubmit_SuccessRedirectsToThankYou() {
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(record(orderwizard.FlowProduct, 6), nil)
	s.drafts.On("Submit", mock.Anything, "tok", mock.Anything).Return(record(orderwizard.FlowProduct, 6), nil)

	resp := s.do(postForm("/order/tok/submit", url.Values{"step": {"6"}}))

	s.Equal(fiber.StatusSeeOther, resp.StatusCode)
	s.Equal("/order/thank-you", resp.Header.Get("Location"))
}

func (s *OrderHandlerSuite) TestSubmit_AlreadySubmittedGoesToThankYou() {
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(nil, services.ErrDraftSubmitted)

	resp := s.do(postForm("/order/tok/submit", url.Values{"step": {"6"}}))

	s.Equal(fiber.StatusSeeOther, resp.StatusCode)
	s.Equal("/order/thank-you", resp.Header.Get("Location"))
	s.drafts.AssertNotCalled(s.T(), "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderHandlerSuite) TestSubmit_FailureKeepsDraft() {
	s.drafts.On("GetDraft", mock.Anything, "tok").Return(record(orderwizard.FlowProduct, 6), nil)
	s.drafts.On("Submit", mock.Anything, "tok", mock.Anything).Return(nil, services.ErrDraftSubmitFailed)

	resp := s.do(postForm("/order/tok/submit", url.Values{"step": {"6"}}))

	s.Equal("/order/tok", resp.Header.Get("Location"))
	s.drafts.AssertNotCalled(s.T(), "Discard", mock.Anything, mock.Anything)
}

func (s *OrderHandlerSuite) TestDiscard_OnlyRedirectsLocally() {
	s.drafts.On("Discard", mock.Anything, "tok").Return(nil)

	resp := s.do(postForm("/order/tok/discard", url.Values{"return": {"/bulk-orders"}}))
	s.Equal("/bulk-orders", resp.Header.Get("Location"))

	resp = s.do(postForm("/order/tok/discard", url.Values{"return": {"https://evil.example"}}))
	s.Equal("/", resp.Header.Get("Location"))

	resp = s.do(postForm("/order/tok/discard", url.Values{"return": {"//evil.example"}}))
	s.Equal("/", resp.Header.Get("Location"))
}

func (s *OrderHandlerSuite) TestCities_ReturnsJSON() {
	resp := s.do(httptest.NewRequest(http.MethodGet, "/order/cities/1", nil))
	s.Equal(fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var body struct {
		Data []models.City `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.Require().Len(body.Data, 1)
	s.Equal("Amman", body.Data[0].Name)

	resp = s.do(httptest.NewRequest(http.MethodGet, "/order/cities/0", nil))
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestLocalPath(t *testing.T) {
	assert.Equal(t, "/contact", localPath("/contact", "/"))
	assert.Equal(t, "/", localPath("", "/"))
	assert.Equal(t, "/", localPath("//evil.example/x", "/"))
	assert.Equal(t, "/", localPath(`/\evil.example`, "/"))
	assert.Equal(t, "/", localPath("http://evil.example", "/"))
}
