package cron

import (
	"context"

	"assetline/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

type Cron struct {
	logger        *zap.Logger
	server        *cron.Cron
	reportService *service.ReportService
}

// NewCron .
func NewCron(logger *zap.Logger, reportService *service.ReportService) *Cron {
	server := cron.New(
		cron.WithSeconds(),
	)

	return &Cron{
		logger:        logger,
		server:        server,
		reportService: reportService,
	}
}

func (c *Cron) Run() error {
	// 每小時掃一次低庫存，提醒補貨
	if _, err := c.server.AddFunc("0 0 * * * *", c.sweepLowStock); err != nil {
		return err
	}

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	c.server.Stop()
	return nil
}

func (c *Cron) sweepLowStock() {
	assets, err := c.reportService.LowStock(context.Background())
	if err != nil {
		c.logger.Warn("[Cron] low stock sweep failed", zap.Error(err))
		return
	}
	if len(assets) == 0 {
		return
	}
	for _, asset := range assets {
		c.logger.Warn("[Cron] asset below restock threshold",
			zap.String("assetId", asset.ID),
			zap.String("productName", asset.ProductName),
			zap.Int64("quantity", asset.ProductQuantity),
		)
	}
}
