package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus backend'deki sipariş durumu.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses admin ekranındaki seçim sırası.
var OrderStatuses = []OrderStatus{
	OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
	OrderStatusDelivered, OrderStatusCancelled,
}

// Valid bilinen bir durum mu?
func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Order gönderilmiş ve backend'de kaydedilmiş sipariş. Yaşam döngüsü
// backend'e aittir; admin sadece durumunu günceller.
type Order struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	ProductID     uint            `json:"product_id"`
	Product       *Product        `json:"product,omitempty"`
	Quantity      int             `json:"quantity"`
	PaymentMethod string          `json:"payment_method"`
	PaymentProof  string          `json:"payment_proof,omitempty"`
	CompanyLogo   string          `json:"company_logo,omitempty"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BulkOrder kurumsal/toplu sipariş (custom-orders).
type BulkOrder struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Organization  string      `json:"organization"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Quantity      int         `json:"quantity"`
	PaymentMethod string      `json:"payment_method"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}
