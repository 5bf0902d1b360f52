package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configsdatabase"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound kayıt bulunamadı.
var ErrNotFound = gorm.ErrRecordNotFound

type txKey struct{}

// WithTx transaction'ı context'e koyar; repository'ler varsa onu kullanır.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// IDraftRepository sipariş taslağı veritabanı işlemleri.
type IDraftRepository interface {
	Create(ctx context.Context, rec *models.OrderDraftRecord) error
	FindByToken(ctx context.Context, token string, now time.Time) (*models.OrderDraftRecord, error)
	Save(ctx context.Context, rec *models.OrderDraftRecord) error
	Delete(ctx context.Context, rec *models.OrderDraftRecord) error
	DeleteExpired(ctx context.Context, now time.Time) ([]models.OrderDraftRecord, error)
}

// DraftRepository IDraftRepository arayüzünü uygular.
type DraftRepository struct {
	db *gorm.DB
}

// NewDraftRepository yeni bir DraftRepository örneği oluşturur.
func NewDraftRepository() IDraftRepository {
	return &DraftRepository{db: configsdatabase.GetDB()}
}

// NewDraftRepositoryTx verilen bağlantı/transaction ile çalışır.
func NewDraftRepositoryTx(tx *gorm.DB) IDraftRepository {
	return &DraftRepository{db: tx}
}

func (r *DraftRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni taslak kaydı oluşturur. Token BeforeCreate hook'unda üretilir.
func (r *DraftRepository) Create(ctx context.Context, rec *models.OrderDraftRecord) error {
	if rec == nil {
		return errors.New("oluşturulacak taslak nil olamaz")
	}
	return r.getDB(ctx).Create(rec).Error
}

// FindByToken now anında süresi dolmamış taslağı token ile bulur.
func (r *DraftRepository) FindByToken(ctx context.Context, token string, now time.Time) (*models.OrderDraftRecord, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var rec models.OrderDraftRecord
	err := r.getDB(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("DraftRepository.FindByToken: DB error", zap.String("token", token), zap.Error(err))
		return nil, err
	}
	return &rec, nil
}

// Save adım ve taslak içeriğini günceller.
func (r *DraftRepository) Save(ctx context.Context, rec *models.OrderDraftRecord) error {
	if rec == nil || rec.ID == 0 {
		return errors.New("kaydedilecek taslak geçerli değil")
	}
	result := r.getDB(ctx).Model(rec).Select("step", "draft", "expires_at", "submitted_at", "updated_at").Updates(rec)
	if result.Error != nil {
		configslog.Log.Error("DraftRepository.Save: DB error", zap.Uint("id", rec.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete taslağı kalıcı olarak siler.
func (r *DraftRepository) Delete(ctx context.Context, rec *models.OrderDraftRecord) error {
	if rec == nil || rec.ID == 0 {
		return errors.New("silinecek taslak geçerli değil")
	}
	return r.getDB(ctx).Unscoped().Delete(rec).Error
}

// DeleteExpired süresi dolan taslakları siler ve silinenleri döndürür
// (yüklenen dosyaları temizleyebilmek için).
func (r *DraftRepository) DeleteExpired(ctx context.Context, now time.Time) ([]models.OrderDraftRecord, error) {
	var expired []models.OrderDraftRecord
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expires_at <= ?", now).Find(&expired).Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}
		ids := make([]uint, len(expired))
		for i := range expired {
			ids[i] = expired[i].ID
		}
		return tx.Unscoped().Where("id IN ?", ids).Delete(&models.OrderDraftRecord{}).Error
	})
	if err != nil {
		configslog.Log.Error("DraftRepository.DeleteExpired: DB error", zap.Error(err))
		return nil, err
	}
	return expired, nil
}

var _ IDraftRepository = (*DraftRepository)(nil)
