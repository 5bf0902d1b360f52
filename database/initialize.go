package database

import (
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/database/migrations"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları tek transaction içinde çalıştırır. Uygulamanın
// kendi tablosu yalnızca sipariş taslaklarıdır; katalog verisi backend'dedir.
func Initialize(db *gorm.DB, migrate bool) error {
	if !migrate {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		return RunMigrationsInOrder(tx)
	})
	if err != nil {
		configslog.Log.Error("Migrasyon başarısız oldu, işlem geri alındı", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info(" -> Taslak migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateOrderDraftsTable(db); err != nil {
		return err
	}
	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}
