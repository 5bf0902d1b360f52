// Package orderwizard sipariş sihirbazının çekirdeğidir: taslak durumu,
// adım bazlı doğrulama, adım sıralayıcı ve multipart serileştirme.
package orderwizard

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod ödeme yöntemi.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// InputKind bir eklentinin (addon) kullanıcıdan değer alma şekli.
type InputKind string

const (
	InputText   InputKind = "text"
	InputNumber InputKind = "number"
	InputRadio  InputKind = "radio"
	InputSelect InputKind = "select"
	InputImage  InputKind = "image"
)

// Valid tanımlı beş türden biri mi?
func (k InputKind) Valid() bool {
	switch k {
	case InputText, InputNumber, InputRadio, InputSelect, InputImage:
		return true
	}
	return false
}

// File yüklenmiş bir ikili dosyaya referanstır. İçerik Opener üzerinden okunur.
type File struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	AddonID     uint   `json:"addonId,omitempty"` // Görsel eklentinin dosyasıysa eklenti ID'si
}

// OrderDraft kullanıcının adım adım doldurduğu sipariş taslağı.
type OrderDraft struct {
	ProductID     uint             `json:"productId" validate:"required"`
	Quantity      int              `json:"quantity" validate:"min=1,max=10000"`
	PersonalInfo  PersonalInfo     `json:"personalInfo"`
	CardDesign    CardDesign       `json:"cardDesign"`
	Addons        []AddonSelection `json:"addons" validate:"unique=AddonID,dive"`
	AddonImages   []File           `json:"addonImages,omitempty"`
	DeliveryInfo  DeliveryInfo     `json:"deliveryInfo"`
	PaymentMethod PaymentMethod    `json:"paymentMethod" validate:"required,oneof=cash online"`
	PaymentProof  *File            `json:"paymentProof,omitempty"`
}

// PersonalInfo kart sahibinin kişisel ve iletişim bilgileri.
type PersonalInfo struct {
	Name          string      `json:"name" validate:"required,min=2,max=100"`
	Position      string      `json:"position" validate:"required,max=100"`
	Organization  string      `json:"organization" validate:"required,max=150"`
	PhoneNumbers  []string    `json:"phoneNumbers" validate:"required,min=1,max=5,dive,required,e164"`
	Email         string      `json:"email" validate:"required,email"`
	BusinessEmail string      `json:"businessEmail,omitempty" validate:"omitempty,email"`
	SocialLinks   SocialLinks `json:"socialLinks"`
}

// SocialLinks opsiyonel sosyal medya adresleri.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	X         string `json:"x,omitempty" validate:"omitempty,url"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
}

// CardDesign kartın üzerine basılacak tasarım bilgileri.
type CardDesign struct {
	NameOnCard  string `json:"nameOnCard" validate:"required,max=60"`
	Color       string `json:"color" validate:"required,max=30"`
	CompanyLogo *File  `json:"companyLogo,omitempty" validate:"required_if=PrintLogo true"`
	PrintLogo   bool   `json:"printLogo"`
}

// AddonSelection bir eklenti için kullanıcının girdiği değer.
type AddonSelection struct {
	AddonID   uint      `json:"addonId" validate:"required"`
	Value     string    `json:"value" validate:"required,max=500"`
	InputKind InputKind `json:"inputKind" validate:"required,oneof=text number radio select image"`
}

// DeliveryInfo teslimat adresi ve iletişim bilgileri.
type DeliveryInfo struct {
	CountryID      uint            `json:"countryId" validate:"required"`
	CityID         uint            `json:"cityId" validate:"required"`
	AddressLine1   string          `json:"addressLine1" validate:"required,max=200"`
	AddressLine2   string          `json:"addressLine2,omitempty" validate:"max=200"`
	Postcode       string          `json:"postcode,omitempty" validate:"omitempty,max=20"`
	UseSameContact bool            `json:"useSameContact"`
	DeliveryPhone  string          `json:"deliveryPhone" validate:"required,e164"`
	DeliveryEmail  string          `json:"deliveryEmail" validate:"required,email"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
}

// NewDraft sipariş penceresi açıldığında kullanılan varsayılan taslağı üretir.
// Telefon listesi en az bir eleman ile başlar.
func NewDraft(productID uint) *OrderDraft {
	return &OrderDraft{
		ProductID: productID,
		Quantity:  1,
		PersonalInfo: PersonalInfo{
			PhoneNumbers: []string{""},
		},
		Addons: []AddonSelection{},
		DeliveryInfo: DeliveryInfo{
			UseSameContact: true,
			DeliveryFee:    decimal.Zero,
		},
		PaymentMethod: PaymentCash,
	}
}

// SetPhoneNumbers telefon listesini boş girdileri atarak ayarlar; liste asla boş kalmaz.
func (d *OrderDraft) SetPhoneNumbers(numbers []string) {
	cleaned := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, "")
	}
	d.PersonalInfo.PhoneNumbers = cleaned
}

// SetAddon eklenti seçimini ekler; aynı addon için mevcut kayıt varsa yerine yazar.
func (d *OrderDraft) SetAddon(sel AddonSelection) {
	for i := range d.Addons {
		if d.Addons[i].AddonID == sel.AddonID {
			d.Addons[i] = sel
			return
		}
	}
	d.Addons = append(d.Addons, sel)
}

// RemoveAddon eklenti seçimini kaldırır. Kaldırıldıysa true döner.
func (d *OrderDraft) RemoveAddon(addonID uint) bool {
	for i := range d.Addons {
		if d.Addons[i].AddonID == addonID {
			d.Addons = append(d.Addons[:i], d.Addons[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAddonImage eklentiye ait yüklenmiş görseli AddonImages'tan çıkarır.
// Diskteki dosya taslak kaydedildikten sonra silinir.
func (d *OrderDraft) RemoveAddonImage(addonID uint) {
	kept := d.AddonImages[:0:0]
	for _, f := range d.AddonImages {
		if f.AddonID != addonID {
			kept = append(kept, f)
		}
	}
	d.AddonImages = kept
}

// Addon id ile seçimi bulur.
func (d *OrderDraft) Addon(addonID uint) (AddonSelection, bool) {
	for _, a := range d.Addons {
		if a.AddonID == addonID {
			return a, true
		}
	}
	return AddonSelection{}, false
}

// Files taslağa bağlı tüm yüklenmiş dosyaları döndürür.
func (d *OrderDraft) Files() []File {
	var files []File
	if d.CardDesign.CompanyLogo != nil {
		files = append(files, *d.CardDesign.CompanyLogo)
	}
	files = append(files, d.AddonImages...)
	if d.PaymentProof != nil {
		files = append(files, *d.PaymentProof)
	}
	return files
}

// copyContactToDelivery "aynı iletişim bilgileri" seçiliyse ilk telefon ve e-postayı
// teslimat alanlarına kopyalar.
func (d *OrderDraft) copyContactToDelivery() {
	if len(d.PersonalInfo.PhoneNumbers) > 0 {
		d.DeliveryInfo.DeliveryPhone = d.PersonalInfo.PhoneNumbers[0]
	}
	d.DeliveryInfo.DeliveryEmail = d.PersonalInfo.Email
}
