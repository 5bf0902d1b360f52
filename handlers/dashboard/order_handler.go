package handlers

import (
	"errors"
	"fmt"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/flashmessages"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler siparişler backend'de oluşur; admin sadece listeler, detayı
// görür ve durumunu günceller. Ürün ve toplu siparişler aynı handler'ı kullanır.
type OrderHandler[T any] struct {
	service services.IAdminService[T]
	list    *ResourceHandler[T]
	res     Resource
}

// NewOrderHandler yeni bir OrderHandler örneği oluşturur.
func NewOrderHandler[T any](service services.IAdminService[T], res Resource) *OrderHandler[T] {
	res.Fields = nil
	res.Deletable = false
	res.Viewable = true
	return &OrderHandler[T]{service: service, list: NewResourceHandler(service, res), res: res}
}

// OrderResource ürün siparişleri tablosu.
var OrderResource = Resource{
	Slug: "orders", Title: "Orders", Singular: "Order", SortBy: "created_at",
	Columns: []Column{
		{Key: "id", Label: "#"},
		{Key: "name", Label: "Customer"},
		{Key: "phone", Label: "Phone"},
		{Key: "quantity", Label: "Qty"},
		{Key: "total", Label: "Total", Money: true},
		{Key: "payment_method", Label: "Payment"},
		{Key: "status", Label: "Status"},
		{Key: "created_at", Label: "Placed"},
	},
}

// BulkOrderResource toplu sipariş talepleri tablosu.
var BulkOrderResource = Resource{
	Slug: "bulk-orders", Title: "Bulk Orders", Singular: "Bulk order", SortBy: "created_at",
	Columns: []Column{
		{Key: "id", Label: "#"},
		{Key: "name", Label: "Contact"},
		{Key: "organization", Label: "Organization"},
		{Key: "quantity", Label: "Qty"},
		{Key: "status", Label: "Status"},
		{Key: "created_at", Label: "Placed"},
	},
}

// Register sipariş rotalarını ekler.
func (h *OrderHandler[T]) Register(r fiber.Router) {
	base := "/" + h.res.Slug
	r.Get(base, h.list.List)
	r.Get(base+"/:id", h.Show)
	r.Post(base+"/:id/status", h.UpdateStatus)
}

// Show sipariş detayı ve durum formu.
func (h *OrderHandler[T]) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}
	order, err := h.service.Get(utils.RequestContext(c), uint(id))
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return err
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(h.list.basePath(c), fiber.StatusSeeOther)
	}
	return renderer.Render(c, "dashboard/orders/show", dashboardLayout, fiber.Map{
		"Title":    fmt.Sprintf("%s #%d", h.res.Singular, id),
		"Resource": h.res,
		"BasePath": h.list.basePath(c),
		"Order":    toRow(order),
		"Statuses": models.OrderStatuses,
	})
}

// UpdateStatus sipariş durumunu değiştirir.
func (h *OrderHandler[T]) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}
	back := fmt.Sprintf("%s/%d", h.list.basePath(c), id)

	status := models.OrderStatus(c.FormValue("status"))
	if !status.Valid() {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Unknown order status.")
		return c.Redirect(back, fiber.StatusSeeOther)
	}

	body := apiclient.JSONBody(map[string]string{"status": string(status)})
	if _, err := h.service.Update(utils.RequestContext(c), uint(id), body); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return err
		}
		configslog.Log.Warn("Sipariş durumu güncellenemedi", zap.Int("id", id), zap.String("status", string(status)), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Order status updated.")
	return c.Redirect(back, fiber.StatusSeeOther)
}
