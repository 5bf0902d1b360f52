package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/flashmessages"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	orderLayout   = "layouts/main"
	orderTemplate = "order/wizard"
)

// OrderHandler sipariş sihirbazının sunucu tarafı adımlarını yönetir.
type OrderHandler struct {
	drafts  services.IOrderDraftService
	catalog services.ICatalogService
	files   FileStore
}

// NewOrderHandler yeni bir OrderHandler örneği oluşturur.
func NewOrderHandler(drafts services.IOrderDraftService, catalog services.ICatalogService, files FileStore) *OrderHandler {
	return &OrderHandler{drafts: drafts, catalog: catalog, files: files}
}

func orderURL(token string) string { return "/order/" + token }

// StartProductOrder ürün sayfasındaki "Sipariş ver" butonu.
func (h *OrderHandler) StartProductOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("productId")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid product.")
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return h.start(c, orderwizard.FlowProduct, uint(id), "/products/"+strconv.Itoa(id))
}

// StartBulkOrder toplu sipariş sayfasındaki formdan akışı başlatır.
func (h *OrderHandler) StartBulkOrder(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.FormValue("productId"), 10, 64)
	if err != nil || id == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Please choose a card model.")
		return c.Redirect("/bulk-orders", fiber.StatusSeeOther)
	}
	return h.start(c, orderwizard.FlowBulk, uint(id), "/bulk-orders")
}

func (h *OrderHandler) start(c *fiber.Ctx, flow orderwizard.Flow, productID uint, back string) error {
	qty, _ := strconv.Atoi(c.FormValue("quantity", "1"))
	rec, err := h.drafts.StartDraft(utils.RequestContext(c), flow, productID, qty)
	if err != nil {
		msg := "The order could not be started. Please try again."
		if errors.Is(err, services.ErrDraftProductMissing) {
			msg = err.Error()
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	return c.Redirect(orderURL(rec.Token), fiber.StatusSeeOther)
}

// Show taslağın mevcut adımını gösterir.
func (h *OrderHandler) Show(c *fiber.Ctx) error {
	ctx := utils.RequestContext(c)
	rec, err := h.drafts.GetDraft(ctx, c.Params("token"))
	if err != nil {
		return h.draftGone(c, err)
	}
	return h.renderStep(c, ctx, rec, nil, fiber.StatusOK)
}

// Next adımı kaydeder ve geçerliyse ilerler. Alan hataları aynı adımda 422 ile gösterilir.
func (h *OrderHandler) Next(c *fiber.Ctx) error {
	ctx := utils.RequestContext(c)
	token := c.Params("token")
	mutate, rec, err := h.formFor(c, ctx, token)
	if err != nil {
		return h.draftGone(c, err)
	}
	if !h.postedCurrentStep(c, rec) {
		return c.Redirect(orderURL(token), fiber.StatusSeeOther)
	}

	rec, err = h.drafts.Next(ctx, token, mutate)
	if err != nil {
		return h.stepFailed(c, ctx, token, rec, err)
	}
	return c.Redirect(orderURL(token), fiber.StatusSeeOther)
}

// Back girilenleri doğrulamadan saklar ve bir adım geri döner.
func (h *OrderHandler) Back(c *fiber.Ctx) error {
	ctx := utils.RequestContext(c)
	token := c.Params("token")
	mutate, rec, err := h.formFor(c, ctx, token)
	if err != nil {
		return h.draftGone(c, err)
	}
	if !h.postedCurrentStep(c, rec) {
		return c.Redirect(orderURL(token), fiber.StatusSeeOther)
	}
	if _, err := h.drafts.Back(ctx, token, mutate); err != nil {
		return h.stepFailed(c, ctx, token, nil, err)
	}
	return c.Redirect(orderURL(token), fiber.StatusSeeOther)
}

// GoTo özet ekranındaki "düzenle" bağlantıları.
func (h *OrderHandler) GoTo(c *fiber.Ctx) error {
	token := c.Params("token")
	step, err := c.ParamsInt("step")
	if err != nil {
		return c.Redirect(orderURL(token), fiber.StatusSeeOther)
	}
	if _, err := h.drafts.GoTo(utils.RequestContext(c), token, step); err != nil {
		if errors.Is(err, services.ErrDraftNotFound) || errors.Is(err, services.ErrDraftSubmitted) {
			return h.draftGone(c, err)
		}
		configslog.Log.Warn("Sihirbaz adımına atlanamadı", zap.String("token", token), zap.Int("step", step), zap.Error(err))
	}
	return c.Redirect(orderURL(token), fiber.StatusSeeOther)
}

// Submit son adımda siparişi gönderir. Başarısız gönderimde taslak korunur
// ve kullanıcı tekrar deneyebilir.
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	ctx := utils.RequestContext(c)
	token := c.Params("token")
	mutate, rec, err := h.formFor(c, ctx, token)
	if err != nil {
		return h.draftGone(c, err)
	}
	if !h.postedCurrentStep(c, rec) {
		return c.Redirect(orderURL(token), fiber.StatusSeeOther)
	}

	if _, err := h.drafts.Submit(ctx, token, mutate); err != nil {
		return h.stepFailed(c, ctx, token, nil, err)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Thank you! Your order has been placed. We will contact you shortly.")
	return c.Redirect("/order/thank-you", fiber.StatusSeeOther)
}

// Discard sihirbaz kapatıldığında taslağı ve yüklenen dosyaları siler.
func (h *OrderHandler) Discard(c *fiber.Ctx) error {
	err := h.drafts.Discard(utils.RequestContext(c), c.Params("token"))
	if err != nil && !errors.Is(err, services.ErrDraftNotFound) && !errors.Is(err, services.ErrDraftSubmitted) {
		configslog.Log.Warn("Taslak silinemedi", zap.String("token", c.Params("token")), zap.Error(err))
	}
	return c.Redirect(localPath(c.FormValue("return"), "/"), fiber.StatusSeeOther)
}

// localPath sadece site içi yollara yönlendirmeye izin verir.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return fallback
	}
	return p
}

// ThankYou gönderim sonrası sayfa.
func (h *OrderHandler) ThankYou(c *fiber.Ctx) error {
	return renderer.Render(c, "order/thank_you", orderLayout, fiber.Map{"Title": "Order received"})
}

// Cities teslimat adımındaki ülke seçimine göre şehirleri JSON döndürür.
func (h *OrderHandler) Cities(c *fiber.Ctx) error {
	countryID, err := c.ParamsInt("countryId")
	if err != nil || countryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid country"})
	}
	cities, err := h.catalog.Cities(c.UserContext(), uint(countryID))
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": services.ErrCatalogUnavailable.Error()})
	}
	return c.JSON(fiber.Map{"data": cities})
}

// formFor taslağın mevcut adımına ait form mutator'ını üretir. Form başka bir
// adımdan (örn. tarayıcı geri tuşu) gönderildiyse mutator nil döner.
func (h *OrderHandler) formFor(c *fiber.Ctx, ctx context.Context, token string) (services.DraftMutator, *models.OrderDraftRecord, error) {
	rec, err := h.drafts.GetDraft(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if !h.postedCurrentStep(c, rec) {
		return nil, rec, nil
	}
	flow, err := orderwizard.FlowByName(rec.Flow)
	if err != nil {
		return nil, nil, err
	}
	step, err := flow.Step(rec.Step)
	if err != nil {
		return nil, nil, err
	}

	form := stepForm{c: c, files: h.files, step: rec.Step}
	if step.Kind == orderwizard.StepAddons {
		addons, err := h.catalog.Addons(ctx)
		if err != nil {
			return nil, nil, err
		}
		form.addons = addons
	}
	return form.mutator(step.Kind), rec, nil
}

func (h *OrderHandler) postedCurrentStep(c *fiber.Ctx, rec *models.OrderDraftRecord) bool {
	return rec != nil && c.FormValue("step") == strconv.Itoa(rec.Step)
}

// stepFailed servis hatasını kullanıcıya yansıtır.
func (h *OrderHandler) stepFailed(c *fiber.Ctx, ctx context.Context, token string, rec *models.OrderDraftRecord, err error) error {
	if ve, ok := orderwizard.AsValidationError(err); ok {
		if rec == nil || rec.Step != ve.Step {
			if rec, err = h.drafts.GetDraft(ctx, token); err != nil {
				return h.draftGone(c, err)
			}
		}
		return h.renderStep(c, ctx, rec, ve, fiber.StatusUnprocessableEntity)
	}

	switch {
	case errors.Is(err, services.ErrDraftNotFound), errors.Is(err, services.ErrDraftSubmitted):
		return h.draftGone(c, err)
	case errors.Is(err, services.ErrDraftSubmitFailed),
		errors.Is(err, services.ErrDraftUnknownAddon),
		errors.Is(err, services.ErrDraftSaveFailed):
		var svcErr services.OrderDraftServiceError
		msg := "The order could not be saved. Please try again."
		if errors.As(err, &svcErr) {
			msg = svcErr.Error()
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
	case errors.Is(err, orderwizard.ErrSubmitRequired), errors.Is(err, orderwizard.ErrNotLastStep):
	default:
		configslog.Log.Error("Sihirbaz adımı başarısız", zap.String("token", token), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Something went wrong. Please try again.")
	}
	return c.Redirect(orderURL(token), fiber.StatusSeeOther)
}

// draftGone taslak artık açılamadığında yönlendirir. Gönderilmiş taslak
// teşekkür sayfasına gider.
func (h *OrderHandler) draftGone(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrDraftSubmitted) {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Your order has already been placed.")
		return c.Redirect("/order/thank-you", fiber.StatusSeeOther)
	}
	if !errors.Is(err, services.ErrDraftNotFound) {
		configslog.Log.Error("Sipariş taslağı okunamadı", zap.Error(err))
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Your order session has expired. Please start again.")
	return c.Redirect("/", fiber.StatusSeeOther)
}
