// Package imageurl backend'in döndürdüğü göreli görsel yollarını tarayıcının
// yükleyebileceği tam adreslere çevirir.
package imageurl

import "strings"

// Placeholder görsel yoksa veya yüklenemezse kullanılan yerel varlık.
const Placeholder = "/static/img/placeholder.svg"

var normalizer = strings.NewReplacer(`\`, "/", " ", "%20")

// Resolve göreli yolu backend alan adıyla birleştirir. Ters bölüler düz bölüye,
// boşluklar %20'ye çevrilir. Tam adresler yalnızca normalize edilir.
func Resolve(domain, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return Placeholder
	}
	path = normalizer.Replace(path)
	if isAbsolute(path) {
		return path
	}
	domain = strings.TrimRight(strings.TrimSpace(domain), "/")
	if domain == "" {
		return "/" + strings.TrimLeft(path, "/")
	}
	return domain + "/" + strings.TrimLeft(path, "/")
}

func isAbsolute(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(p, "//")
}

// Resolver şablonlarda kullanılmak üzere alan adını saklar.
type Resolver struct {
	Domain string
}

// URL Resolve'un Resolver alan adıyla çağrılmış hali.
func (r Resolver) URL(path string) string { return Resolve(r.Domain, path) }
