package migrations

import (
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateOrderDraftsTable sihirbaz taslaklarının tablosunu oluşturur/günceller.
func MigrateOrderDraftsTable(db *gorm.DB) error {
	configslog.SLog.Info("order_drafts tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.OrderDraftRecord{}); err != nil {
		configslog.Log.Error("order_drafts tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("order_drafts tablosu hazır")
	return nil
}
