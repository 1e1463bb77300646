package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yuliitezarygml/tg-bor-arend/config"
	rentalRepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

// requestRetention is how long settled rental requests are kept before the
// nightly purge removes them.
const requestRetention = 30 * 24 * time.Hour

func Cron(requests *rentalRepo.RequestRepository, cfg *config.Config, l logger.Interface) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(cfg.Schedule.RequestsPurge, func() {
		ctx := context.WithoutCancel(context.Background())

		removed, err := requests.PurgeTerminal(ctx, time.Now().Add(-requestRetention))
		if err != nil {
			l.Error("Cron job - PurgeTerminal failed: %v", err)

			return
		}

		if removed > 0 {
			l.Info("Cron job - purged %d settled rental requests", removed)
		}
	})

	if err != nil {
		l.Error("Cron job - AddFunc failed: %v", err)

		return
	}

	c.Start()
}
