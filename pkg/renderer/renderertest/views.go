// Package renderertest handler testlerinde gerçek şablonlar yerine kullanılan
// kayıt tutan fiber.Views uygulamasını sağlar.
package renderertest

import (
	"io"
	"sync"

	"github.com/gofiber/fiber/v2"
)

// Rendered tek bir Render çağrısı.
type Rendered struct {
	Template string
	Layout   string
	Data     fiber.Map
}

// Views fiber.Views arayüzünü uygular; çıktı olarak şablon adını yazar.
type Views struct {
	mu    sync.Mutex
	calls []Rendered
}

var _ fiber.Views = (*Views)(nil)

func (v *Views) Load() error { return nil }

func (v *Views) Render(w io.Writer, name string, bind interface{}, layouts ...string) error {
	r := Rendered{Template: name}
	if len(layouts) > 0 {
		r.Layout = layouts[0]
	}
	if m, ok := bind.(fiber.Map); ok {
		r.Data = m
	}
	v.mu.Lock()
	v.calls = append(v.calls, r)
	v.mu.Unlock()
	_, err := io.WriteString(w, name)
	return err
}

// Last son işlenen şablon. Hiç çağrı yoksa sıfır değer döner.
func (v *Views) Last() Rendered {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.calls) == 0 {
		return Rendered{}
	}
	return v.calls[len(v.calls)-1]
}

// Count toplam Render çağrısı.
func (v *Views) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.calls)
}
