package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configsdatabase"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/database"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/cache"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/imageurl"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/uploads"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/repositories"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/routes"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

const (
	janitorInterval = 15 * time.Minute
	bodyLimit       = 40 * 1024 * 1024
	shutdownTimeout = 10 * time.Second
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configs.LoadEnv()
	cfg := configs.LoadConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()
	if err := database.Initialize(configsdatabase.GetDB(), true); err != nil {
		configslog.Log.Fatal("Veritabanı hazırlanamadı", zap.Error(err))
	}

	catalogCache := newCache(cfg)
	client := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.APITimeout))
	files, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		configslog.Log.Fatal("Yükleme dizini hazırlanamadı", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	catalog := services.NewCatalogService(client, catalogCache, cfg.CacheTTL)
	drafts := services.NewOrderDraftService(
		repositories.NewDraftRepository(),
		catalog,
		&apiclient.OrderSubmitter{Client: client, Opener: files},
		files,
		cfg.DraftTTL,
	)

	engine := html.New(cfg.ViewsDir, ".html")
	engine.Reload(!cfg.IsProduction())
	engine.AddFuncMap(renderer.Funcs(imageurl.Resolver{Domain: cfg.BackendDomain}, cfg.Currency))

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        engine,
		ErrorHandler: routes.ErrorHandler,
		BodyLimit:    bodyLimit,
	})
	app.Static("/static", cfg.StaticDir)

	routes.SetupRoutes(app, routes.Deps{
		Config:  cfg,
		Client:  client,
		Catalog: catalog,
		Drafts:  drafts,
		Contact: services.NewContactService(client),
		Auth:    services.NewAuthService(client),
		Files:   files,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go services.RunDraftJanitor(ctx, drafts, janitorInterval)

	go func() {
		configslog.SLog.Infof("Sunucu başlatılıyor: %s", cfg.ListenAddr())
		if err := app.Listen(cfg.ListenAddr()); err != nil && !errors.Is(err, context.Canceled) {
			configslog.Log.Error("Sunucu durdu", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	configslog.SLog.Info("Sunucu kapatılıyor...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
	}
	if closer, ok := catalogCache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// newCache REDIS_ADDR verilmişse Redis, yoksa önbelleksiz çalışır.
func newCache(cfg *configs.AppConfig) cache.Cache {
	if cfg.RedisAddr == "" {
		configslog.SLog.Info("REDIS_ADDR tanımlı değil, katalog önbelleği kapalı")
		return cache.Noop{}
	}
	rc := cache.NewRedisCache(
		cache.NewRedisClient(cfg.RedisAddr, cache.WithPassword(cfg.RedisPassword), cache.WithDB(cfg.RedisDB)),
		"nfc:",
	)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		configslog.Log.Warn("Redis'e ulaşılamadı, önbellek olmadan devam ediliyor", zap.Error(err))
		_ = rc.Close()
		return cache.Noop{}
	}
	return rc
}
