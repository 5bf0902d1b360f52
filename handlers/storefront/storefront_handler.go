package handlers

import (
	"encoding/json"
	"errors"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/flashmessages"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const mainLayout = "layouts/main"

type policyPage struct {
	Slug  string
	Title string
}

// Footer'daki statik politika sayfaları. Her sayfa bir kez listelenir.
var policyPages = []policyPage{
	{"privacy-policy", "Privacy Policy"},
	{"refund-policy", "Refund Policy"},
	{"delivery-policy", "Delivery Policy"},
	{"terms-and-conditions", "Terms and Conditions"},
}

// StorefrontHandler vitrin sayfaları.
type StorefrontHandler struct {
	catalog services.ICatalogService
	contact services.IContactService
}

// NewStorefrontHandler yeni bir StorefrontHandler örneği oluşturur.
func NewStorefrontHandler(catalog services.ICatalogService, contact services.IContactService) *StorefrontHandler {
	return &StorefrontHandler{catalog: catalog, contact: contact}
}

// Home hero görselleri, ürünler ve yorumlar.
func (h *StorefrontHandler) Home(c *fiber.Ctx) error {
	page, err := h.catalog.HomePage(c.UserContext())
	data := fiber.Map{"Title": "Smart NFC Business Cards"}
	if err != nil {
		configslog.Log.Error("Ana sayfa verisi alınamadı", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Our catalog is temporarily unavailable. Please try again shortly."
		data["Page"] = &services.HomePage{}
		return renderer.Render(c, "storefront/home", mainLayout, data, fiber.StatusServiceUnavailable)
	}
	data["Page"] = page
	return renderer.Render(c, "storefront/home", mainLayout, data)
}

// Product ürün detay sayfası.
func (h *StorefrontHandler) Product(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}
	product, err := h.catalog.Product(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCatalogNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	addons, err := h.catalog.Addons(c.UserContext())
	if err != nil {
		configslog.Log.Warn("Ürün sayfası eklentileri alınamadı", zap.Uint("productID", product.ID), zap.Error(err))
	}
	return renderer.Render(c, "storefront/product", mainLayout, fiber.Map{
		"Title":   product.Name,
		"Product": product,
		"Addons":  addons,
	})
}

// BulkOrders kurumsal sipariş sayfası; ürün seçimi ve adet ile sihirbazı başlatır.
func (h *StorefrontHandler) BulkOrders(c *fiber.Ctx) error {
	products, err := h.catalog.Products(c.UserContext())
	if err != nil {
		return err
	}
	return renderer.Render(c, "storefront/bulk_orders", mainLayout, fiber.Map{
		"Title":    "Bulk Orders",
		"Products": products,
	})
}

// ShowContact iletişim formu.
func (h *StorefrontHandler) ShowContact(c *fiber.Ctx) error {
	return renderer.Render(c, "storefront/contact", mainLayout, fiber.Map{
		"Title":    "Contact Us",
		"FormData": flashmessages.GetFlashFormData(c),
		"Errors":   map[string]string{},
	})
}

// Contact iletişim formunu gönderir. Alan hataları formla birlikte 422 döner.
func (h *StorefrontHandler) Contact(c *fiber.Ctx) error {
	var form services.ContactForm
	if err := c.BodyParser(&form); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid form data.")
		return c.Redirect("/contact", fiber.StatusSeeOther)
	}

	err := h.contact.SendMessage(utils.RequestContext(c), form)
	var fieldErrs services.FormErrors
	switch {
	case err == nil:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Thank you! Your message has been sent.")
		return c.Redirect("/contact", fiber.StatusSeeOther)
	case errors.As(err, &fieldErrs):
		return renderer.Render(c, "storefront/contact", mainLayout, fiber.Map{
			"Title":    "Contact Us",
			"FormData": formMap(form),
			"Errors":   map[string]string(fieldErrs),
		}, fiber.StatusUnprocessableEntity)
	default:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		_ = flashmessages.SetFlashFormData(c, form)
		return c.Redirect("/contact", fiber.StatusSeeOther)
	}
}

// Subscribe footer'daki bülten formu.
func (h *StorefrontHandler) Subscribe(c *fiber.Ctx) error {
	var form services.SubscribeForm
	_ = c.BodyParser(&form)

	err := h.contact.Subscribe(utils.RequestContext(c), form)
	var fieldErrs services.FormErrors
	switch {
	case err == nil:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "You are subscribed. Thank you!")
	case errors.As(err, &fieldErrs):
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Please enter a valid email address.")
	default:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	}
	return c.Redirect(localPath(c.FormValue("return"), "/"), fiber.StatusSeeOther)
}

// RegisterPolicies politika sayfalarını kök altında kaydeder.
func (h *StorefrontHandler) RegisterPolicies(r fiber.Router) {
	for _, p := range policyPages {
		page := p
		r.Get("/"+page.Slug, func(c *fiber.Ctx) error {
			return renderer.Render(c, "storefront/policies/"+page.Slug, mainLayout, fiber.Map{"Title": page.Title})
		})
	}
}

// formMap form yapısını şablonların beklediği json anahtarlı haritaya çevirir;
// flash'tan okunan form verisiyle aynı biçimdedir.
func formMap(v any) map[string]interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return out
}
