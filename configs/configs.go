package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// AppConfig uygulamanın çalışma zamanı ayarlarını tutar.
type AppConfig struct {
	AppName       string
	AppHost       string
	AppPort       string
	AppEnv        string
	APIBaseURL    string        // Backend REST API kök adresi (örn: https://api.example.com/api)
	BackendDomain string        // Görsel yollarının birleştirileceği domain
	APITimeout    time.Duration // Backend isteklerinin üst sınırı
	UploadDir     string        // Sihirbaz yüklemelerinin geçici dizini
	ViewsDir      string
	StaticDir     string
	DraftTTL      time.Duration // Tamamlanmamış siparişlerin ömrü
	RedisAddr     string        // Boşsa katalog önbelleği kapalıdır
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	CookieSecure  bool
	AdminPrefix   string
	Currency      string
}

// LoadEnv .env dosyasını (varsa) ortam değişkenlerine yükler.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, sistem ortam değişkenleri kullanılacak.")
	}
}

// LoadConfig ortam değişkenlerinden AppConfig üretir.
func LoadConfig() *AppConfig {
	cfg := &AppConfig{
		AppName:       GetEnvWithDefault("APP_NAME", "NFC Cards"),
		AppHost:       GetEnvWithDefault("APP_HOST", "0.0.0.0"),
		AppPort:       GetEnvWithDefault("APP_PORT", "3000"),
		AppEnv:        GetEnvWithDefault("APP_ENV", "development"),
		APIBaseURL:    strings.TrimRight(GetEnvWithDefault("API_BASE_URL", "http://localhost:8000/api"), "/"),
		BackendDomain: strings.TrimRight(GetEnvWithDefault("BACKEND_DOMAIN", "http://localhost:8000"), "/"),
		APITimeout:    GetDurationWithDefault("API_TIMEOUT", 15*time.Second),
		UploadDir:     GetEnvWithDefault("UPLOAD_DIR", "./storage/uploads"),
		ViewsDir:      GetEnvWithDefault("VIEWS_DIR", "./views"),
		StaticDir:     GetEnvWithDefault("STATIC_DIR", "./public"),
		DraftTTL:      GetDurationWithDefault("DRAFT_TTL", 24*time.Hour),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       GetIntWithDefault("REDIS_DB", 0),
		CacheTTL:      GetDurationWithDefault("CACHE_TTL", 10*time.Minute),
		CookieSecure:  GetEnvWithDefault("COOKIE_SECURE", "false") == "true",
		AdminPrefix:   GetEnvWithDefault("ADMIN_PREFIX", "/admin-panel"),
		Currency:      GetEnvWithDefault("CURRENCY", "JOD"),
	}

	if _, err := strconv.Atoi(cfg.AppPort); err != nil {
		configslog.Log.Warn("Geçersiz APP_PORT, varsayılan kullanılıyor", zap.String("APP_PORT", cfg.AppPort))
		cfg.AppPort = "3000"
	}
	return cfg
}

// IsProduction production ortamında mıyız?
func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// ListenAddr host:port döndürür.
func (c *AppConfig) ListenAddr() string {
	return c.AppHost + ":" + c.AppPort
}

// GetEnvWithDefault ortam değişkenini okur, yoksa varsayılanı döndürür.
func GetEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// GetIntWithDefault tam sayı ortam değişkeni okur.
func GetIntWithDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		configslog.Log.Warn("Geçersiz tam sayı ortam değişkeni", zap.String("key", key), zap.String("value", raw))
		return defaultValue
	}
	return v
}

// GetDurationWithDefault "15s", "24h" gibi süre değerlerini okur.
func GetDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		configslog.Log.Warn("Geçersiz süre ortam değişkeni", zap.String("key", key), zap.String("value", raw))
		return defaultValue
	}
	return d
}
