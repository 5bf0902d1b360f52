package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log yapılandırılmış alanlarla kullanılan ana logger.
	Log *zap.Logger
	// SLog printf tarzı mesajlar için sugared logger.
	SLog *zap.SugaredLogger
)

func init() {
	// Paket InitLogger çağrılmadan kullanılırsa (örn. testlerde) nil panic olmasın.
	Log = zap.NewNop()
	SLog = Log.Sugar()
}

// InitLogger APP_ENV ve LOG_LEVEL değişkenlerine göre global logger'ı kurar.
func InitLogger() {
	env := strings.ToLower(os.Getenv("APP_ENV"))

	var cfg zap.Config
	if env == "production" || env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// Logger kurulamazsa uygulama kör çalışmasın
		panic("zap logger oluşturulamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
	zap.ReplaceGlobals(logger)
}

// SetLogger testlerde veya özel kurulumlarda logger'ı değiştirmek için.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger tamponlanmış log kayıtlarını boşaltır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
