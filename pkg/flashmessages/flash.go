package flashmessages

import (
	"encoding/json"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
	flashFormKey    = "flash_form"
)

// FlashMessages tek seferlik okunan bildirimler.
type FlashMessages struct {
	Success string
	Error   string
}

// SetFlashMessage bir sonraki istekte gösterilecek mesajı saklar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := configs.SetupSession().Get(c)
	if err != nil {
		configslog.Log.Warn("Flash mesajı için oturum alınamadı", zap.Error(err))
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages mesajları okur ve oturumdan siler.
func GetFlashMessages(c *fiber.Ctx) (FlashMessages, error) {
	var fm FlashMessages
	sess, err := configs.SetupSession().Get(c)
	if err != nil {
		return fm, err
	}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		fm.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		fm.Error = v
		sess.Delete(FlashErrorKey)
	}
	if fm.Success == "" && fm.Error == "" {
		return fm, nil
	}
	return fm, sess.Save()
}

// SetFlashFormData hatalı form gönderiminden sonra alanları yeniden doldurmak için saklar.
func SetFlashFormData(c *fiber.Ctx, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sess, err := configs.SetupSession().Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashFormKey, string(raw))
	return sess.Save()
}

// GetFlashFormData saklanan form verisini okur ve siler.
func GetFlashFormData(c *fiber.Ctx) map[string]interface{} {
	sess, err := configs.SetupSession().Get(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(flashFormKey).(string)
	if !ok {
		return nil
	}
	sess.Delete(flashFormKey)
	_ = sess.Save()

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
