package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/logger"
	"github.com/marioc/chessvault/internal/models"
	"github.com/marioc/chessvault/internal/repository"
)

// SyncResult reports one sync run: the collected raw games in requested
// month order plus how many months came from the cache versus the API.
// MonthsFromCache + MonthsFromAPI always equals the number of requested
// months; a month whose fetch failed contributes zero games but still
// counts toward the API bucket.
type SyncResult struct {
	Games           []chesscom.MonthlyGame `json:"games"`
	MonthsFromCache int                    `json:"months_from_cache"`
	MonthsFromAPI   int                    `json:"months_from_api"`
}

// SyncService decides, per requested month, whether the local cache is
// authoritative or the archive API must be hit, and merges the results.
type SyncService interface {
	SyncMonths(ctx context.Context, username string, locators []string) (*SyncResult, error)
}

type syncService struct {
	archiveRepo   repository.ArchiveRepository
	client        chesscom.ClientInterface
	maxConcurrent int
	clock         func() time.Time
}

// NewSyncService creates a SyncService using the wall clock.
func NewSyncService(archiveRepo repository.ArchiveRepository, client chesscom.ClientInterface, maxConcurrent int) SyncService {
	return NewSyncServiceWithClock(archiveRepo, client, maxConcurrent, time.Now)
}

// NewSyncServiceWithClock creates a SyncService with an injected clock
// for deterministic freshness decisions in tests.
func NewSyncServiceWithClock(archiveRepo repository.ArchiveRepository, client chesscom.ClientInterface, maxConcurrent int, clock func() time.Time) SyncService {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &syncService{
		archiveRepo:   archiveRepo,
		client:        client,
		maxConcurrent: maxConcurrent,
		clock:         clock,
	}
}

type monthOutcome struct {
	games     []chesscom.MonthlyGame
	fromCache bool
}

// SyncMonths resolves every requested month, dispatching cache reads
// and API fetches concurrently but collecting results back into input
// order. Individual month failures degrade to zero games and never
// abort the run; an all-empty result is valid output.
func (s *syncService) SyncMonths(ctx context.Context, username string, locators []string) (*SyncResult, error) {
	log := logger.FromContext(ctx).WithField("username", username)
	log.Info("syncing %d months", len(locators))

	now := s.clock()
	outcomes := make([]monthOutcome, len(locators))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, locator := range locators {
		i, locator := i, locator
		g.Go(func() error {
			outcomes[i] = s.syncMonth(gCtx, username, locator, now)
			return nil
		})
	}
	// Workers absorb their own failures; Wait only observes ctx cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &SyncResult{}
	for _, o := range outcomes {
		res.Games = append(res.Games, o.games...)
		if o.fromCache {
			res.MonthsFromCache++
		} else {
			res.MonthsFromAPI++
		}
	}

	log.Info("sync complete: %d games, %d months from cache, %d from api",
		len(res.Games), res.MonthsFromCache, res.MonthsFromAPI)
	return res, nil
}

func (s *syncService) syncMonth(ctx context.Context, username, locator string, now time.Time) monthOutcome {
	log := logger.FromContext(ctx).WithField("locator", locator)

	key, err := models.ParseMonthLocator(username, locator)
	if err != nil {
		// Unresolvable locators are treated like failed fetch attempts.
		log.Warn("skipping unparseable month locator: %v", err)
		return monthOutcome{}
	}

	if Authoritative(key, now) {
		cached, err := s.archiveRepo.Exists(ctx, key)
		if err != nil {
			log.Warn("cache existence check failed for %s: %v", key, err)
		}
		if cached {
			games, err := s.archiveRepo.Read(ctx, key)
			if err != nil {
				// Degrade to zero games; the month was still served by the cache path.
				log.Warn("cache read failed for %s: %v", key, err)
				return monthOutcome{fromCache: true}
			}
			log.Debug("month %s served from cache (%d games)", key, len(games))
			return monthOutcome{games: games, fromCache: true}
		}
	}

	games, err := s.client.FetchMonthly(ctx, locator)
	if err != nil {
		log.Warn("fetch failed for %s: %v", key, err)
		return monthOutcome{}
	}

	// Write-through, current month included: the fresh fetch supersedes
	// any stale entry written earlier.
	if err := s.archiveRepo.Write(ctx, key, games); err != nil {
		log.Warn("cache write failed for %s: %v", key, err)
	}
	log.Debug("month %s fetched from api (%d games)", key, len(games))
	return monthOutcome{games: games}
}
