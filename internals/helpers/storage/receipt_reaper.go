package storage

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"cftl_backend/internals/configs"
)

const ReceiptPrefix = "receipts/"

// ReferenceChecker returns the subset of keys still referenced by a record.
type ReferenceChecker func(ctx context.Context, keys []string) (map[string]bool, error)

type ReceiptReaper struct {
	Store      ObjectStorage
	Referenced ReferenceChecker
	Prefix     string
	Retention  time.Duration
	DryRun     bool
	Now        func() time.Time
}

type ReapResult struct {
	Scanned int
	Orphans []string
	Deleted int
}

// RunOnce deletes receipt uploads older than the retention window that no
// payment request points at. A signed upload URL that was never submitted
// leaves such an orphan behind.
func (r *ReceiptReaper) RunOnce(ctx context.Context) (ReapResult, error) {
	var res ReapResult
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	prefix := r.Prefix
	if prefix == "" {
		prefix = ReceiptPrefix
	}
	threshold := now().Add(-r.Retention)

	var stale []string
	err := r.Store.ListObjects(ctx, prefix, func(o ObjectInfo) error {
		res.Scanned++
		if o.LastModified.Before(threshold) {
			stale = append(stale, o.Key)
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	if len(stale) == 0 {
		return res, nil
	}

	referenced, err := r.Referenced(ctx, stale)
	if err != nil {
		return res, err
	}
	for _, k := range stale {
		if !referenced[k] {
			res.Orphans = append(res.Orphans, k)
		}
	}
	if len(res.Orphans) == 0 || r.DryRun {
		return res, nil
	}
	if err := r.Store.DeleteObjects(ctx, res.Orphans); err != nil {
		return res, err
	}
	res.Deleted = len(res.Orphans)
	return res, nil
}

// StartReceiptReaperCron schedules RunOnce; the returned cron must be stopped on shutdown.
func StartReceiptReaperCron(cfg configs.AppConfig, r *ReceiptReaper) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(cfg.ReaperSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()

		res, err := r.RunOnce(ctx)
		entry := configs.Log.WithFields(map[string]interface{}{
			"scanned": res.Scanned,
			"orphans": len(res.Orphans),
			"deleted": res.Deleted,
			"dry_run": r.DryRun,
		})
		if err != nil {
			entry.WithError(err).Error("[RECEIPT-REAPER] run failed")
			return
		}
		entry.Info("[RECEIPT-REAPER] run finished")
	})
	if err != nil {
		return nil, err
	}

	configs.Log.Infof("[RECEIPT-REAPER] started schedule=%q retention=%s dryRun=%v",
		cfg.ReaperSchedule, r.Retention, r.DryRun)
	c.Start()
	return c, nil
}
