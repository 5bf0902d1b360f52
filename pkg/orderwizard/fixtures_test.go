package orderwizard

import (
	"context"

	"github.com/shopspring/decimal"
)

// validDraft tüm adımları geçen bir taslak döndürür.
func validDraft() *OrderDraft {
	d := NewDraft(7)
	d.PersonalInfo = PersonalInfo{
		Name:         "Zaid Sharkasi",
		Position:     "CTO",
		Organization: "Acme Trading",
		PhoneNumbers: []string{"+962791111111"},
		Email:        "zaid@example.com",
	}
	d.CardDesign = CardDesign{NameOnCard: "Zaid S.", Color: "black"}
	d.Addons = []AddonSelection{{AddonID: 1, Value: "2", InputKind: InputNumber}}
	d.DeliveryInfo = DeliveryInfo{
		CountryID:     1,
		CityID:        3,
		AddressLine1:  "Rainbow St 12",
		DeliveryPhone: "+962791111111",
		DeliveryEmail: "zaid@example.com",
		DeliveryFee:   decimal.NewFromInt(3),
	}
	d.PaymentMethod = PaymentCash
	return d
}

type recordingSubmitter struct {
	calls    int
	err      error
	flow     Flow
	payloads []*Payload
}

func (r *recordingSubmitter) Submit(_ context.Context, flow Flow, p *Payload) error {
	r.calls++
	r.flow = flow
	r.payloads = append(r.payloads, p)
	return r.err
}
