package handlers

import (
	"context"
	"sync"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/middlewares"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/queryparams"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Counter sayfalı listesinden toplam kayıt sayısı okunabilen kaynak.
type Counter interface {
	Name() string
	List(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// Tile panel ana sayfasındaki özet kutusu.
type Tile struct {
	Title string
	Count int64
	Link  string
	Error bool
}

// HomeHandler panel ana sayfası.
type HomeHandler struct {
	counters []Counter
	links    []string
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur. links[i], counters[i]'nin
// panel içindeki liste yoludur (örn. "/orders").
func NewHomeHandler(counters []Counter, links []string) *HomeHandler {
	return &HomeHandler{counters: counters, links: links}
}

// HomePage özet sayıları paralel çeker; okunamayan kutu hatalı işaretlenir.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	ctx := utils.RequestContext(c)
	tiles := make([]Tile, len(h.counters))
	for i, counter := range h.counters {
		tiles[i] = Tile{Title: counter.Name()}
		if i < len(h.links) {
			tiles[i].Link = middlewares.AdminPath(c, h.links[i])
		}
	}

	var mu sync.Mutex
	var g errgroup.Group
	for i, counter := range h.counters {
		i, counter := i, counter
		g.Go(func() error {
			params := queryparams.DefaultListParams("")
			params.PerPage = 1
			res, err := counter.List(ctx, params)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				configslog.Log.Warn("Panel özeti okunamadı", zap.String("resource", counter.Name()), zap.Error(err))
				tiles[i].Error = true
				return nil
			}
			tiles[i].Count = res.Meta.TotalItems
			return nil
		})
	}
	_ = g.Wait()

	if c.Locals("authCleared") == true {
		return apiclient.ErrUnauthorized
	}
	return renderer.Render(c, "dashboard/home", dashboardLayout, fiber.Map{
		"Title": "Dashboard",
		"Tiles": tiles,
	})
}
