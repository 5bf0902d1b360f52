package orderwizard

import "fmt"

// StepKind bir adımın ne topladığını belirtir.
type StepKind string

const (
	StepPersonal StepKind = "personal"
	StepDesign   StepKind = "design"
	StepAddons   StepKind = "addons"
	StepDelivery StepKind = "delivery"
	StepPayment  StepKind = "payment"
	StepReview   StepKind = "review"
)

// Step sihirbazdaki tek bir adım.
type Step struct {
	Kind   StepKind
	Title  string
	Fields []Path // Bu adımda doğrulanan alanlar; boşsa adım her zaman geçerlidir
}

// Flow sabit sıralı adım listesi.
type Flow struct {
	Name  string
	Steps []Step
}

var (
	personalStep = Step{
		Kind:  StepPersonal,
		Title: "Personal Information",
		Fields: []Path{
			PathName, PathPosition, PathOrganization, PathPhoneNumbers,
			PathEmail, PathBusinessEmail, PathSocialLinks,
		},
	}
	designStep = Step{
		Kind:   StepDesign,
		Title:  "Card Design",
		Fields: []Path{PathNameOnCard, PathColor, PathCompanyLogo, PathPrintLogo, PathQuantity},
	}
	addonsStep = Step{
		Kind:   StepAddons,
		Title:  "Add-ons",
		Fields: []Path{PathAddons},
	}
	deliveryStep = Step{
		Kind:  StepDelivery,
		Title: "Delivery Information",
		Fields: []Path{
			PathCountryID, PathCityID, PathAddressLine1, PathAddressLine2,
			PathPostcode, PathDeliveryPhone, PathDeliveryEmail,
		},
	}
	paymentStep = Step{
		Kind:   StepPayment,
		Title:  "Payment",
		Fields: []Path{PathPaymentMethod},
	}
	reviewStep = Step{
		Kind:  StepReview,
		Title: "Review & Confirm",
	}
)

// FlowProduct ürün sayfasından başlayan, eklenti adımı içeren 6 adımlı akış.
var FlowProduct = Flow{
	Name:  "product",
	Steps: []Step{personalStep, designStep, addonsStep, deliveryStep, paymentStep, reviewStep},
}

// FlowBulk toplu sipariş formu; eklenti adımı yoktur (5 adım).
var FlowBulk = Flow{
	Name:  "bulk",
	Steps: []Step{personalStep, designStep, deliveryStep, paymentStep, reviewStep},
}

// FlowByName kayıtlı akışı adıyla bulur.
func FlowByName(name string) (Flow, error) {
	switch name {
	case FlowProduct.Name:
		return FlowProduct, nil
	case FlowBulk.Name:
		return FlowBulk, nil
	}
	return Flow{}, fmt.Errorf("%w: %q", ErrUnknownFlow, name)
}

// Len adım sayısı.
func (f Flow) Len() int { return len(f.Steps) }

// Step 1 tabanlı adım numarasına karşılık gelen adımı döndürür.
func (f Flow) Step(n int) (Step, error) {
	if n < 1 || n > len(f.Steps) {
		return Step{}, fmt.Errorf("%w: %d (flow %s has %d steps)", ErrUnknownStep, n, f.Name, len(f.Steps))
	}
	return f.Steps[n-1], nil
}

// StepOf verilen türdeki adımın numarasını döndürür; yoksa 0.
func (f Flow) StepOf(kind StepKind) int {
	for i, s := range f.Steps {
		if s.Kind == kind {
			return i + 1
		}
	}
	return 0
}
