package renderer

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/imageurl"

	"github.com/shopspring/decimal"
)

// Funcs şablonlarda kullanılan yardımcı fonksiyonlar.
func Funcs(images imageurl.Resolver, currency string) template.FuncMap {
	return template.FuncMap{
		"imageURL":    images.URL,
		"placeholder": func() string { return imageurl.Placeholder },
		"money":       func(v any) string { return Money(v, currency) },
		"fieldValue":  FieldValue,
		"date":        Date,
		"add":         func(a, b int) int { return a + b },
		"seq":         Seq,
		"errorUnder":  ErrorUnder,
		"hasKey": func(m map[string]string, key string) bool {
			_, ok := m[key]
			return ok
		},
	}
}

// Money fiyatı iki ondalıkla para birimiyle yazar. decimal, sayı veya
// json'dan gelen metin kabul edilir.
func Money(v any, currency string) string {
	var d decimal.Decimal
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		if x != nil {
			d = *x
		}
	case float64:
		d = decimal.NewFromFloat(x)
	case int:
		d = decimal.NewFromInt(int64(x))
	case string:
		parsed, err := decimal.NewFromString(x)
		if err != nil {
			return x
		}
		d = parsed
	case nil:
		d = decimal.Zero
	default:
		return fmt.Sprint(v)
	}
	return d.StringFixed(2) + " " + currency
}

// FieldValue admin tablolarındaki hücre değerini metne çevirir.
func FieldValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []interface{}:
		parts := make([]string, 0, len(x))
		for _, p := range x {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ", ")
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprint(x)
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	}
	return fmt.Sprint(v)
}

// Date RFC3339 metnini veya time.Time'ı "02 Jan 2006" biçiminde yazar.
func Date(v any) string {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("02 Jan 2006")
	case string:
		t, err := time.Parse(time.RFC3339, x)
		if err != nil {
			return x
		}
		return t.Format("02 Jan 2006")
	}
	return FieldValue(v)
}

// Seq 1..n (sayfalama bağlantıları için).
func Seq(n int) []int {
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}

// ErrorUnder verilen yolun kendisine veya altına ait ilk hata mesajı
// (örn: "personalInfo.phoneNumbers" için "personalInfo.phoneNumbers[1]").
func ErrorUnder(errs map[string]string, prefix string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		if k == prefix || strings.HasPrefix(k, prefix+".") || strings.HasPrefix(k, prefix+"[") {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return errs[keys[0]]
}
