// Package jobs holds the scheduled background work. The only job today is
// the billing reconciliation sweep: delivery and billing normally commit in
// one transaction, but rows written before that change (or by hand) can
// leave a delivered order with no bill, and the sweep repairs them.
package jobs

import (
	"github.com/chandragiri4649/milksync-sub000/config"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BillingReconciliationJob struct {
	cron     *cron.Cron
	schedule string
	logger   *logrus.Logger
}

func NewBillingReconciliationJob(schedule string, logger *logrus.Logger) *BillingReconciliationJob {
	return &BillingReconciliationJob{
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger,
	}
}

func (j *BillingReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.Run)
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("billing reconciliation job started")
	return nil
}

func (j *BillingReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.Info("billing reconciliation job stopped")
}

// Run finds delivered orders with no active bill and regenerates their
// bills. Safe to invoke repeatedly: orders that already have an active bill
// are not selected, and regeneration goes through the same upsert path the
// delivery flow uses.
func (j *BillingReconciliationJob) Run() {
	var orders []models.Order
	err := database.DB.Preload("Items").Preload("Items.Product").Preload("DamagedProducts").
		Where("status = ?", models.OrderStatusDelivered).
		Where("id NOT IN (?)", database.DB.Model(&models.Bill{}).
			Select("order_id").Where("status = ?", models.BillStatusActive)).
		Find(&orders).Error
	if err != nil {
		config.LogError(j.logger, "jobs", "Run", "load delivered-but-unbilled orders", nil, err)
		return
	}

	for i := range orders {
		order := &orders[i]
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			_, txErr := models.UpsertBillFromOrder(tx, order)
			return txErr
		})
		if err != nil {
			config.LogError(j.logger, "jobs", "Run", "regenerate bill", order.ID, err)
			continue
		}
		j.logger.WithFields(logrus.Fields{
			"order_id":       order.ID,
			"distributor_id": order.DistributorID,
		}).Info("regenerated bill for delivered order")
	}
}
