package handlers

import (
	"context"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// stepView adım göstergesindeki tek bir adım.
type stepView struct {
	Number  int
	Title   string
	Current bool
	Done    bool
}

func stepViews(flow orderwizard.Flow, current int) []stepView {
	out := make([]stepView, 0, flow.Len())
	for i, s := range flow.Steps {
		n := i + 1
		out = append(out, stepView{Number: n, Title: s.Title, Current: n == current, Done: n < current})
	}
	return out
}

// renderStep taslağın mevcut adımını, adımın ihtiyaç duyduğu katalog verisiyle gösterir.
// Katalog okunamazsa sayfa yine açılır; alanlar boş seçeneklerle gösterilir.
func (h *OrderHandler) renderStep(c *fiber.Ctx, ctx context.Context, rec *models.OrderDraftRecord, ve *orderwizard.ValidationError, status int) error {
	flow, err := orderwizard.FlowByName(rec.Flow)
	if err != nil {
		return err
	}
	step, err := flow.Step(rec.Step)
	if err != nil {
		return err
	}

	data := fiber.Map{
		"Title":    step.Title,
		"Token":    rec.Token,
		"Flow":     flow.Name,
		"IsBulk":   flow.Name == orderwizard.FlowBulk.Name,
		"Steps":    stepViews(flow, rec.Step),
		"Step":     rec.Step,
		"StepKind": string(step.Kind),
		"IsFirst":  rec.Step == 1,
		"IsLast":   rec.Step == flow.Len(),
		"Draft":    rec.Draft,
		"Errors":   map[string]string{},
	}
	if ve != nil {
		data["Errors"] = ve.Messages()
	}

	if product, err := h.catalog.Product(ctx, rec.Draft.ProductID); err == nil {
		data["Product"] = product
	} else {
		configslog.Log.Warn("Sihirbaz ürünü okunamadı", zap.Uint("productID", rec.Draft.ProductID), zap.Error(err))
	}

	switch step.Kind {
	case orderwizard.StepAddons:
		h.addonData(ctx, data, rec)
	case orderwizard.StepDelivery:
		h.deliveryData(ctx, data, rec)
	case orderwizard.StepPayment, orderwizard.StepReview:
		if q, err := h.drafts.Quote(ctx, rec); err == nil {
			data["Quote"] = q
		}
		if step.Kind == orderwizard.StepReview {
			h.addonData(ctx, data, rec)
			h.deliveryData(ctx, data, rec)
			data["StepNumbers"] = stepNumbers(flow)
		}
	}
	return renderer.Render(c, orderTemplate, orderLayout, data, status)
}

func (h *OrderHandler) addonData(ctx context.Context, data fiber.Map, rec *models.OrderDraftRecord) {
	addons, err := h.catalog.Addons(ctx)
	if err != nil {
		configslog.Log.Warn("Eklentiler okunamadı", zap.Error(err))
		addons = []models.Addon{}
	}
	values := make(map[uint]string, len(rec.Draft.Addons))
	for _, sel := range rec.Draft.Addons {
		values[sel.AddonID] = sel.Value
	}
	data["Addons"] = addons
	data["AddonValues"] = values
}

func (h *OrderHandler) deliveryData(ctx context.Context, data fiber.Map, rec *models.OrderDraftRecord) {
	countries, err := h.catalog.Countries(ctx)
	if err != nil {
		configslog.Log.Warn("Ülkeler okunamadı", zap.Error(err))
		countries = []models.Country{}
	}
	cities := []models.City{}
	if id := rec.Draft.DeliveryInfo.CountryID; id != 0 {
		if list, err := h.catalog.Cities(ctx, id); err == nil {
			cities = list
		}
	}
	data["Countries"] = countries
	data["Cities"] = cities
}

// stepNumbers özet ekranındaki "düzenle" bağlantıları için adım türü -> numara.
func stepNumbers(flow orderwizard.Flow) map[string]int {
	out := make(map[string]int, flow.Len())
	for i, s := range flow.Steps {
		out[string(s.Kind)] = i + 1
	}
	return out
}
