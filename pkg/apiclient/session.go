package apiclient

import "context"

// Session isteği yapan kullanıcının kimlik bilgisidir. Handler katmanı her
// istek için kendi oturumunu context'e koyar; istemci global durum tutmaz.
type Session interface {
	// Token bearer token; boşsa Authorization başlığı eklenmez.
	Token() string
	// Clear backend 401 döndüğünde yerel oturumu temizler.
	Clear()
}

type sessionKey struct{}

// WithSession oturumu context'e ekler.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom context'teki oturumu döndürür; yoksa nil.
func SessionFrom(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)
	return s
}

// StaticSession testler ve servis-servis çağrıları için sabit token.
type StaticSession struct {
	AccessToken string
	Cleared     bool
}

func (s *StaticSession) Token() string { return s.AccessToken }

func (s *StaticSession) Clear() {
	s.AccessToken = ""
	s.Cleared = true
}
