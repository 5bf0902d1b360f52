package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"gorm.io/gorm"
)

// OrderDraftRecord ziyaretçinin yarım kalan siparişini sunucu tarafında saklar.
// Token çerez yerine URL'de taşınır; taslağın kendisi jsonb olarak tutulur.
type OrderDraftRecord struct {
	BaseModel
	Token     string                 `gorm:"type:varchar(36);uniqueIndex;not null"`
	Flow      string                 `gorm:"type:varchar(20);not null"`
	Step      int                    `gorm:"not null;default:1"`
	Draft     orderwizard.OrderDraft `gorm:"type:jsonb;serializer:json;not null"`
	ExpiresAt time.Time              `gorm:"index;not null"`

	// Gönderildi ama silinemediyse dolu; taslak bir daha açılmaz.
	SubmittedAt *time.Time
}

func (OrderDraftRecord) TableName() string { return "order_drafts" }

// BeforeCreate token boşsa üretir.
func (r *OrderDraftRecord) BeforeCreate(tx *gorm.DB) error {
	if r.Token == "" {
		r.Token = uuid.NewString()
	}
	return nil
}

// Expired taslağın süresi doldu mu?
func (r *OrderDraftRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}
