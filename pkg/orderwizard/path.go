package orderwizard

import (
	"strconv"
	"strings"
)

// Path taslak içindeki bir alanı noktalı yol ile gösterir (örn: personalInfo.phoneNumbers[0]).
// Yollar elle birleştirilmez, Root/Field/Index ile kurulur.
type Path string

// Root üst seviye bir anahtardan yol başlatır.
func Root(key string) Path { return Path(key) }

// Field alt alan ekler.
func (p Path) Field(name string) Path {
	if p == "" {
		return Path(name)
	}
	return Path(string(p) + "." + name)
}

// Index dizi elemanı ekler.
func (p Path) Index(i int) Path {
	return Path(string(p) + "[" + strconv.Itoa(i) + "]")
}

// String Path'i string'e çevirir.
func (p Path) String() string { return string(p) }

// TopLevel yolun ilk segmentini döndürür (personalInfo.email -> personalInfo).
func (p Path) TopLevel() string {
	s := string(p)
	if i := strings.IndexAny(s, ".["); i >= 0 {
		return s[:i]
	}
	return s
}

// Covers q yolu p'nin kendisi ya da altında mı?
func (p Path) Covers(q Path) bool {
	if p == q {
		return true
	}
	ps, qs := string(p), string(q)
	return strings.HasPrefix(qs, ps+".") || strings.HasPrefix(qs, ps+"[")
}

// Sık kullanılan yollar.
var (
	PathProductID     = Root("productId")
	PathQuantity      = Root("quantity")
	PathPersonalInfo  = Root("personalInfo")
	PathCardDesign    = Root("cardDesign")
	PathAddons        = Root("addons")
	PathAddonImages   = Root("addonImages")
	PathDeliveryInfo  = Root("deliveryInfo")
	PathPaymentMethod = Root("paymentMethod")
	PathPaymentProof  = Root("paymentProof")

	PathName          = PathPersonalInfo.Field("name")
	PathPosition      = PathPersonalInfo.Field("position")
	PathOrganization  = PathPersonalInfo.Field("organization")
	PathPhoneNumbers  = PathPersonalInfo.Field("phoneNumbers")
	PathEmail         = PathPersonalInfo.Field("email")
	PathBusinessEmail = PathPersonalInfo.Field("businessEmail")
	PathSocialLinks   = PathPersonalInfo.Field("socialLinks")

	PathNameOnCard  = PathCardDesign.Field("nameOnCard")
	PathColor       = PathCardDesign.Field("color")
	PathCompanyLogo = PathCardDesign.Field("companyLogo")
	PathPrintLogo   = PathCardDesign.Field("printLogo")

	PathCountryID      = PathDeliveryInfo.Field("countryId")
	PathCityID         = PathDeliveryInfo.Field("cityId")
	PathAddressLine1   = PathDeliveryInfo.Field("addressLine1")
	PathAddressLine2   = PathDeliveryInfo.Field("addressLine2")
	PathPostcode       = PathDeliveryInfo.Field("postcode")
	PathUseSameContact = PathDeliveryInfo.Field("useSameContact")
	PathDeliveryPhone  = PathDeliveryInfo.Field("deliveryPhone")
	PathDeliveryEmail  = PathDeliveryInfo.Field("deliveryEmail")
)
