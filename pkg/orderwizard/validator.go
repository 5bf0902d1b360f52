package orderwizard

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// topLevelFields json anahtarı -> OrderDraft Go alan adı.
var topLevelFields = map[string]string{
	"productId":     "ProductID",
	"quantity":      "Quantity",
	"personalInfo":  "PersonalInfo",
	"cardDesign":    "CardDesign",
	"addons":        "Addons",
	"addonImages":   "AddonImages",
	"deliveryInfo":  "DeliveryInfo",
	"paymentMethod": "PaymentMethod",
	"paymentProof":  "PaymentProof",
}

// Validator taslağı adım bazında doğrular.
type Validator struct {
	validate *validator.Validate
}

// NewValidator json etiket isimlerini hata yollarında kullanan bir Validator üretir.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterStructValidation(addonSelectionRules, AddonSelection{})
	return &Validator{validate: v}
}

// addonSelectionRules eklenti türüne bağlı kurallar.
func addonSelectionRules(sl validator.StructLevel) {
	sel := sl.Current().Interface().(AddonSelection)
	if sel.InputKind == InputNumber && sel.Value != "" {
		if _, err := strconv.ParseFloat(sel.Value, 64); err != nil {
			sl.ReportError(sel.Value, "value", "Value", "numeric", "")
		}
	}
}

// ValidateStep sadece verilen adımın alanlarını doğrular. Diğer adımlardaki
// hatalar (geçersiz olsalar bile) sonucu etkilemez.
func (v *Validator) ValidateStep(d *OrderDraft, flow Flow, step int) error {
	s, err := flow.Step(step)
	if err != nil {
		return err
	}
	fe, err := v.validatePaths(d, s.Fields)
	if err != nil {
		return err
	}
	if len(fe) > 0 {
		return &ValidationError{Step: step, Errors: fe}
	}
	return nil
}

// ValidateAll gönderimden önce akıştaki tüm adımları ve ürün referansını doğrular.
// Hata, ilk hatalı adımın numarasıyla döner.
func (v *Validator) ValidateAll(d *OrderDraft, flow Flow) error {
	if fe, err := v.validatePaths(d, []Path{PathProductID}); err != nil {
		return err
	} else if len(fe) > 0 {
		return &ValidationError{Step: 1, Errors: fe}
	}
	for i := 1; i <= flow.Len(); i++ {
		if err := v.ValidateStep(d, flow, i); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validatePaths(d *OrderDraft, fields []Path) ([]FieldError, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	if d == nil {
		return nil, errors.New("orderwizard: nil draft")
	}

	// Adımın dokunduğu üst seviye bölümler
	sections := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if goName, ok := topLevelFields[f.TopLevel()]; ok {
			sections[goName] = struct{}{}
		}
	}

	err := v.validate.StructFiltered(d, func(ns []byte) bool {
		return !inSections(string(ns), sections)
	})
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("orderwizard: validation could not run: %w", err)
	}

	var out []FieldError
	for _, fe := range verrs {
		p := namespaceToPath(fe.Namespace())
		if !declared(fields, p) {
			continue
		}
		out = append(out, FieldError{Path: p, Message: messageFor(fe)})
	}
	return out, nil
}

// inSections validator'ın verdiği Go isim alanının (OrderDraft.PersonalInfo.Email)
// adımın bölümlerinden birine ait olup olmadığını söyler.
func inSections(ns string, sections map[string]struct{}) bool {
	segs := strings.SplitN(ns, ".", 3)
	for i, seg := range segs {
		if i > 1 {
			break
		}
		if j := strings.IndexByte(seg, '['); j >= 0 {
			seg = seg[:j]
		}
		if _, ok := sections[seg]; ok {
			return true
		}
	}
	return false
}

// namespaceToPath "OrderDraft.personalInfo.email" -> "personalInfo.email".
func namespaceToPath(ns string) Path {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return Path(ns[i+1:])
	}
	return Path(ns)
}

func declared(fields []Path, p Path) bool {
	for _, f := range fields {
		if f.Covers(p) {
			return true
		}
	}
	return false
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "e164":
		return "Please enter a valid phone number in international format (e.g. +962791234567)."
	case "url":
		return "Please enter a valid URL."
	case "oneof":
		return "Please choose one of: " + fe.Param() + "."
	case "numeric":
		return "Please enter a number."
	case "unique":
		return "Each item can only be selected once."
	case "min":
		if fe.Kind() == reflect.Slice {
			return "Please add at least " + fe.Param() + " item(s)."
		}
		if fe.Kind() == reflect.String {
			return "Must be at least " + fe.Param() + " characters."
		}
		return "Must be at least " + fe.Param() + "."
	case "max":
		if fe.Kind() == reflect.Slice {
			return "No more than " + fe.Param() + " item(s) allowed."
		}
		if fe.Kind() == reflect.String {
			return "Must be at most " + fe.Param() + " characters."
		}
		return "Must be at most " + fe.Param() + "."
	}
	return "Invalid value."
}
