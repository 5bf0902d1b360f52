package orderwizard

import (
	"errors"
	"strings"
)

var (
	ErrUnknownFlow      = errors.New("unknown order flow")
	ErrUnknownStep      = errors.New("unknown wizard step")
	ErrSubmitRequired   = errors.New("last step reached, submit the order instead")
	ErrNotLastStep      = errors.New("order can only be submitted from the last step")
	ErrAlreadySubmitted = errors.New("order has already been submitted")
)

// FieldError tek bir alana bağlı doğrulama hatası.
type FieldError struct {
	Path    Path   `json:"path"`
	Message string `json:"message"`
}

// ValidationError bir adımın alan hatalarını taşır. Ölümcül değildir, sadece ilerlemeyi engeller.
type ValidationError struct {
	Step   int          `json:"step"`
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Path.String()+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages view'larda kullanılmak üzere yol -> mesaj haritası döndürür.
// Aynı yol için ilk mesaj tutulur.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		if _, ok := out[fe.Path.String()]; !ok {
			out[fe.Path.String()] = fe.Message
		}
	}
	return out
}

// Has verilen yol (veya altı) için hata var mı?
func (e *ValidationError) Has(p Path) bool {
	for _, fe := range e.Errors {
		if p.Covers(fe.Path) {
			return true
		}
	}
	return false
}

// AsValidationError err zincirinde ValidationError varsa döndürür.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
