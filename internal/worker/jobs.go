package worker

import (
	"context"

	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/logger"
	"github.com/marioc/chessvault/internal/services"
)

// WarmArchiveJob syncs a user's full archive in the background so that
// completed months are already cached when a download is requested.
type WarmArchiveJob struct {
	Sync     services.SyncService
	Client   chesscom.ClientInterface
	Username string
}

func (j *WarmArchiveJob) Name() string { return "warm_archive" }

func (j *WarmArchiveJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("username", j.Username)
	log.Info("warming archive cache")

	archives, err := j.Client.FetchArchives(ctx, j.Username)
	if err != nil {
		log.Warn("failed to list archives: %v", err)
		return err
	}
	if len(archives) == 0 {
		log.Debug("no archives to warm")
		return nil
	}

	res, err := j.Sync.SyncMonths(ctx, j.Username, archives)
	if err != nil {
		return err
	}
	log.Info("archive warmed: %d months from cache, %d fetched", res.MonthsFromCache, res.MonthsFromAPI)
	return nil
}
