package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
)

// Backend'in sahip olduğu kaynaklar. Bu uygulama sadece okur ve admin
// ekranlarından generic CRUD çağrılarıyla günceller.

// Product satıştaki NFC kart modeli.
type Product struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Color       string          `json:"color,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Addon siparişe eklenebilen ek hizmet.
type Addon struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Price       decimal.Decimal       `json:"price"`
	InputKind   orderwizard.InputKind `json:"input_type"`
	Options     []string              `json:"options,omitempty"`
	Image       string                `json:"image,omitempty"`
}

// HasOptions seçenek listesi sadece radio/select için anlamlıdır.
func (a Addon) HasOptions() bool {
	return a.InputKind == orderwizard.InputRadio || a.InputKind == orderwizard.InputSelect
}

// AcceptsOption değer seçenek listesinde mi?
func (a Addon) AcceptsOption(v string) bool {
	if !a.HasOptions() {
		return true
	}
	for _, o := range a.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Country teslimat yapılan ülke.
type Country struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// City teslimat ücretini taşıyan şehir.
type City struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	CountryID   uint            `json:"country_id"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

// HeaderImage ana sayfa hero görseli.
type HeaderImage struct {
	ID       uint   `json:"id"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image"`
}

// Testimonial müşteri yorumu.
type Testimonial struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Review   string `json:"review"`
	Rating   int    `json:"rating"`
	Image    string `json:"image,omitempty"`
}

// SocialMedia footer'daki sosyal medya bağlantısı.
type SocialMedia struct {
	ID       uint   `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon,omitempty"`
}

// Subscriber bülten abonesi.
type Subscriber struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Message iletişim formundan gelen mesaj.
type Message struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
