package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB DB_* ortam değişkenleri ile PostgreSQL bağlantısını kurar.
func InitDB() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USERNAME", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_DATABASE", "nfc_store"),
		getEnv("DB_SSL_MODE", "disable"),
		getEnv("DB_TIMEZONE", "Asia/Amman"),
	)

	logLevel := logger.Warn
	if os.Getenv("APP_ENV") == "development" {
		logLevel = logger.Info
	}

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	configslog.SLog.Info("Veritabanı bağlantısı kuruldu")
}

// GetDB aktif gorm bağlantısını döndürür.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("Veritabanı başlatılmadı, önce InitDB çağrılmalı")
	}
	return db
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Veritabanı kapatılırken sql.DB alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
		return
	}
	configslog.SLog.Info("Veritabanı bağlantısı kapatıldı")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
