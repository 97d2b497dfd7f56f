package service

import (
	"context"

	"safegrowth-backend/app/model"
	"safegrowth-backend/app/repository"
	"safegrowth-backend/cache"

	"github.com/sirupsen/logrus"
)

// invalidateCache dan recordActivity bersifat best-effort: gagal hanya dicatat
// di log, request utama tetap sukses.

func invalidateCache(ctx context.Context, c cache.ReportCache, log *logrus.Logger) {
	if err := c.Invalidate(ctx); err != nil {
		log.WithError(err).Warn("report cache invalidation failed")
	}
}

func recordActivity(ctx context.Context, repo repository.ActivityRepository, log *logrus.Logger, reportID uint, action, detail, actor string) {
	if !repo.Enabled() {
		return
	}
	err := repo.Record(ctx, &model.ReportActivity{
		ReportID: reportID,
		Action:   action,
		Detail:   detail,
		Actor:    actor,
	})
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"report_id": reportID,
			"action":    action,
		}).Warn("failed to record report activity")
	}
}
