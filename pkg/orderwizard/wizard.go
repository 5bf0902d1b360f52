package orderwizard

import (
	"context"
	"fmt"
)

// Submitter serileştirilmiş siparişi backend'e gönderir. Wizard her onayda
// Submit'i tam bir kez çağırır; tekrar deneme yapılmaz.
type Submitter interface {
	Submit(ctx context.Context, flow Flow, payload *Payload) error
}

// SubmitterFunc fonksiyonları Submitter olarak kullanmak için.
type SubmitterFunc func(ctx context.Context, flow Flow, payload *Payload) error

// Submit Submitter arayüzünü uygular.
func (f SubmitterFunc) Submit(ctx context.Context, flow Flow, payload *Payload) error {
	return f(ctx, flow, payload)
}

// Wizard doğrusal adım sıralayıcısıdır. Taslağı yerinde değiştirir.
type Wizard struct {
	flow      Flow
	step      int
	draft     *OrderDraft
	validator *Validator
	submitted bool
}

// New ilk adımdan başlayan bir Wizard oluşturur.
func New(flow Flow, draft *OrderDraft, v *Validator) *Wizard {
	return Resume(flow, 1, draft, v)
}

// Resume kaydedilmiş bir adımdan devam eder. Adım akış sınırlarına çekilir.
func Resume(flow Flow, step int, draft *OrderDraft, v *Validator) *Wizard {
	if v == nil {
		v = NewValidator()
	}
	if step < 1 {
		step = 1
	}
	if step > flow.Len() {
		step = flow.Len()
	}
	return &Wizard{flow: flow, step: step, draft: draft, validator: v}
}

// Step mevcut adım numarası (1 tabanlı).
func (w *Wizard) Step() int { return w.step }

// CurrentStep mevcut adımın tanımı.
func (w *Wizard) CurrentStep() Step { return w.flow.Steps[w.step-1] }

// Flow kullanılan akış.
func (w *Wizard) Flow() Flow { return w.flow }

// Draft üzerinde çalışılan taslak.
func (w *Wizard) Draft() *OrderDraft { return w.draft }

// IsLast son adımda mıyız? Son adımda "ileri" yerine gönderim yapılır.
func (w *Wizard) IsLast() bool { return w.step == w.flow.Len() }

// Submitted sipariş başarıyla gönderildi mi?
func (w *Wizard) Submitted() bool { return w.submitted }

// Next mevcut adım geçerliyse bir sonraki adıma geçer.
func (w *Wizard) Next() error {
	if w.IsLast() {
		return ErrSubmitRequired
	}
	current := w.CurrentStep()

	// Online ödemede dekont zorunlu; şema doğrulaması yerine elle hata eklenir.
	if current.Kind == StepPayment {
		if err := w.paymentProofError(w.step); err != nil {
			return err
		}
	}

	if err := w.validator.ValidateStep(w.draft, w.flow, w.step); err != nil {
		return err
	}

	if current.Kind == StepPersonal && w.draft.DeliveryInfo.UseSameContact {
		w.draft.copyContactToDelivery()
	}

	w.step++
	return nil
}

// Back bir önceki adıma döner; ilk adımda kalır.
func (w *Wizard) Back() {
	if w.step > 1 {
		w.step--
	}
}

// GoTo daha önce geçilmiş bir adıma (örn. özet ekranından düzenleme) döner.
// İleri atlamaya izin verilmez.
func (w *Wizard) GoTo(step int) error {
	if step < 1 || step > w.step {
		return fmt.Errorf("%w: cannot jump to %d from %d", ErrUnknownStep, step, w.step)
	}
	w.step = step
	return nil
}

// Submit son adımda taslağı serileştirir ve Submitter'ı tam bir kez çağırır.
// Hata durumunda taslak ve adım olduğu gibi kalır; tekrar gönderim kullanıcıya bırakılır.
func (w *Wizard) Submit(ctx context.Context, s Submitter) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if !w.IsLast() {
		return ErrNotLastStep
	}
	if err := w.validator.ValidateAll(w.draft, w.flow); err != nil {
		return err
	}
	if err := w.paymentProofError(w.flow.StepOf(StepPayment)); err != nil {
		return err
	}
	if err := s.Submit(ctx, w.flow, Serialize(w.draft)); err != nil {
		return err
	}
	w.submitted = true
	return nil
}

func (w *Wizard) paymentProofError(step int) error {
	if w.draft.PaymentMethod != PaymentOnline || w.draft.PaymentProof != nil {
		return nil
	}
	return &ValidationError{
		Step: step,
		Errors: []FieldError{{
			Path:    PathPaymentProof,
			Message: "Please upload the proof of payment for online transfers.",
		}},
	}
}
