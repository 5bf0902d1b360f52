package services

import (
	"context"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"

	"go.uber.org/zap"
)

// RunDraftJanitor süresi dolan taslakları periyodik olarak temizler. ctx iptal
// edilene kadar bloklar; main içinde ayrı goroutine'de çalıştırılır.
func RunDraftJanitor(ctx context.Context, svc IOrderDraftService, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	purge := func() {
		purgeCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if _, err := svc.PurgeExpired(purgeCtx); err != nil {
			configslog.Log.Error("Taslak temizliği başarısız", zap.Error(err))
		}
	}

	purge()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}
