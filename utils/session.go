package utils

import (
	"context"
	"errors"
	"sync"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// Oturum anahtarları
const (
	SessionAuthTokenKey = "auth_token"
	SessionUserIDKey    = "user_id"
	SessionUserNameKey  = "user_name"
)

var ErrNoAuth = errors.New("oturumda yetki bilgisi yok")

// SessionStart isteğin oturumunu açar.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	sess, err := configs.SetupSession().Get(c)
	if err != nil {
		configslog.Log.Error("Oturum açılamadı", zap.Error(err), zap.String("path", c.Path()))
		return nil, err
	}
	return sess, nil
}

// GetAuthToken oturumdaki backend token'ını döndürür.
func GetAuthToken(sess *session.Session) (string, error) {
	token, ok := sess.Get(SessionAuthTokenKey).(string)
	if !ok || token == "" {
		return "", ErrNoAuth
	}
	return token, nil
}

// GetUserIDFromSession oturumdaki yönetici ID'si.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	switch v := sess.Get(SessionUserIDKey).(type) {
	case uint:
		return v, nil
	case int:
		if v > 0 {
			return uint(v), nil
		}
	}
	return 0, ErrNoAuth
}

// SetAuth başarılı girişten sonra oturumu yeniler ve token'ı saklar.
func SetAuth(c *fiber.Ctx, token string, userID uint, userName string) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(SessionAuthTokenKey, token)
	sess.Set(SessionUserIDKey, userID)
	sess.Set(SessionUserNameKey, userName)
	return sess.Save()
}

// ClearAuth yetki bilgilerini oturumdan siler.
func ClearAuth(c *fiber.Ctx) {
	sess, err := SessionStart(c)
	if err != nil {
		return
	}
	sess.Delete(SessionAuthTokenKey)
	sess.Delete(SessionUserIDKey)
	sess.Delete(SessionUserNameKey)
	if err := sess.Save(); err != nil {
		configslog.Log.Warn("Oturum kaydedilemedi", zap.Error(err))
	}
}

// apiSession isteğin oturumunu apiclient.Session olarak sunar. Paralel backend
// çağrıları (errgroup) aynı oturumu paylaşabilir.
type apiSession struct {
	c     *fiber.Ctx
	mu    sync.Mutex
	token string
}

func (s *apiSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *apiSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return
	}
	s.token = ""
	ClearAuth(s.c)
	s.c.Locals("authCleared", true)
}

// APISession istek oturumundaki token ile bir apiclient.Session üretir.
// Backend 401 dönerse oturum temizlenir ve "authCleared" local'i işaretlenir.
func APISession(c *fiber.Ctx) apiclient.Session {
	s := &apiSession{c: c}
	if sess, err := SessionStart(c); err == nil {
		s.token, _ = GetAuthToken(sess)
	}
	return s
}

// RequestContext isteğin context'ini oturumla birlikte döndürür. Context
// middlewares.RequestScope tarafından istek bitince iptal edilir.
func RequestContext(c *fiber.Ctx) context.Context {
	return apiclient.WithSession(c.UserContext(), APISession(c))
}
