package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/velourluxe/storefront/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 1h", func() {
		a.SchedPurgeAbandonedCarts()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.gormDB.
			Where("created_at < ?", time.Now().
				Add(-time.Hour*24*365)).Delete(&domain.AuditLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedLowStockReport()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedPurgeAbandonedCarts drops cart lines untouched for 30 days.
func (a *Application) SchedPurgeAbandonedCarts() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	res := a.gormDB.
		Where("updated_at < ?", time.Now().Add(-time.Hour*24*30)).
		Delete(&domain.CartItem{})
	if res.Error != nil {
		zap.L().Error("abandoned cart purge failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		zap.L().Info("purged abandoned cart lines", zap.Int64("count", res.RowsAffected))
	}
}

// SchedLowStockReport logs the out-of-stock catalog share for the operator.
func (a *Application) SchedLowStockReport() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	var total, out int64
	a.gormDB.Model(&domain.Product{}).Count(&total)
	a.gormDB.Model(&domain.Product{}).Where("in_stock = ?", false).Count(&out)
	if out > 0 {
		zap.L().Warn("products out of stock",
			zap.Int64("out_of_stock", out), zap.Int64("catalog_size", total))
	}
}
