// Package cache katalog gibi sık okunan, nadiren değişen backend verisini önbelleğe alır.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"go.uber.org/zap"
)

// ErrMiss anahtar önbellekte yok.
var ErrMiss = errors.New("cache: miss")

// Cache bayt düzeyinde anahtar/değer önbelleği.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Noop hiçbir şey saklamaz; Redis yapılandırılmadığında kullanılır.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) Get(context.Context, string) ([]byte, error)              { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                  { return nil }

// Remember değeri önbellekten okur; yoksa load ile üretip saklar. Önbellek
// hataları isteği düşürmez, sadece loglanır.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if raw, err := c.Get(ctx, key); err == nil {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		configslog.Log.Warn("Önbellek kaydı çözülemedi", zap.String("key", key))
	} else if !errors.Is(err, ErrMiss) {
		configslog.Log.Warn("Önbellek okunamadı", zap.String("key", key), zap.Error(err))
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		configslog.Log.Warn("Önbellek değeri kodlanamadı", zap.String("key", key), zap.Error(err))
		return v, nil
	}
	if err := c.Set(ctx, key, raw, ttl); err != nil {
		configslog.Log.Warn("Önbelleğe yazılamadı", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
