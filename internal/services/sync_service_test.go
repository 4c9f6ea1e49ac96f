package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/errors"
	"github.com/marioc/chessvault/internal/models"
	"github.com/marioc/chessvault/internal/repository"
	"github.com/marioc/chessvault/internal/repository/sqlite"
	"github.com/marioc/chessvault/internal/services"
	"github.com/marioc/chessvault/internal/testutil"
	"github.com/marioc/chessvault/internal/testutil/mocks"
)

// fixedNow pins freshness decisions to March 2024 so "current month"
// behavior is deterministic no matter when the suite runs.
var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func locator(username, yearMonth string) string {
	return "https://api.chess.com/pub/player/" + username + "/games/" + yearMonth
}

func monthGames(urls ...string) []chesscom.MonthlyGame {
	games := make([]chesscom.MonthlyGame, 0, len(urls))
	for _, u := range urls {
		games = append(games, chesscom.MonthlyGame{
			URL:   u,
			White: chesscom.Player{Username: "alice", Rating: 1500, Result: "win"},
			Black: chesscom.Player{Username: "bob", Rating: 1400, Result: "checkmated"},
		})
	}
	return games
}

func newSyncFixture(t *testing.T) (services.SyncService, *mocks.MockChessClient, repository.ArchiveRepository) {
	t.Helper()
	database := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, database) })

	repo := sqlite.NewArchiveRepository(database.DB)
	client := new(mocks.MockChessClient)
	svc := services.NewSyncServiceWithClock(repo, client, 4, fixedClock)
	return svc, client, repo
}

func TestSyncMonths_CachedPastMonthNotFetched(t *testing.T) {
	svc, client, repo := newSyncFixture(t)
	ctx := context.Background()

	may := models.NewMonthKey("alice", 2023, 5)
	cached := monthGames("https://www.chess.com/game/live/1")
	require.NoError(t, repo.Write(ctx, may, cached))

	res, err := svc.SyncMonths(ctx, "alice", []string{locator("alice", "2023/05")})
	require.NoError(t, err)

	assert.Equal(t, 1, res.MonthsFromCache)
	assert.Equal(t, 0, res.MonthsFromAPI)
	assert.Len(t, res.Games, 1)
	client.AssertNotCalled(t, "FetchMonthly", mock.Anything, mock.Anything)
}

func TestSyncMonths_CurrentMonthAlwaysFetched(t *testing.T) {
	svc, client, repo := newSyncFixture(t)
	ctx := context.Background()

	current := models.NewMonthKey("alice", 2024, 3)
	stale := monthGames("https://www.chess.com/game/live/old")
	require.NoError(t, repo.Write(ctx, current, stale))

	fresh := monthGames("https://www.chess.com/game/live/old", "https://www.chess.com/game/live/new")
	client.On("FetchMonthly", mock.Anything, locator("alice", "2024/03")).Return(fresh, nil)

	res, err := svc.SyncMonths(ctx, "alice", []string{locator("alice", "2024/03")})
	require.NoError(t, err)

	assert.Equal(t, 0, res.MonthsFromCache)
	assert.Equal(t, 1, res.MonthsFromAPI)
	assert.Len(t, res.Games, 2)
	client.AssertExpectations(t)

	// The fresh fetch supersedes the stale cache entry.
	got, err := repo.Read(ctx, current)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSyncMonths_UncachedPastMonthWritesThrough(t *testing.T) {
	svc, client, repo := newSyncFixture(t)
	ctx := context.Background()

	fetched := monthGames("https://www.chess.com/game/live/7")
	client.On("FetchMonthly", mock.Anything, locator("alice", "2023/11")).Return(fetched, nil)

	res, err := svc.SyncMonths(ctx, "alice", []string{locator("alice", "2023/11")})
	require.NoError(t, err)

	assert.Equal(t, 0, res.MonthsFromCache)
	assert.Equal(t, 1, res.MonthsFromAPI)

	got, err := repo.Read(ctx, models.NewMonthKey("alice", 2023, 11))
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// A second run now hits the cache only.
	res2, err := svc.SyncMonths(ctx, "alice", []string{locator("alice", "2023/11")})
	require.NoError(t, err)
	assert.Equal(t, 1, res2.MonthsFromCache)
	client.AssertNumberOfCalls(t, "FetchMonthly", 1)
}

func TestSyncMonths_FetchFailureAbsorbed(t *testing.T) {
	svc, client, _ := newSyncFixture(t)
	ctx := context.Background()

	client.On("FetchMonthly", mock.Anything, locator("alice", "2023/08")).
		Return(nil, errors.NewTransientError(fmt.Errorf("archive service unavailable")))

	res, err := svc.SyncMonths(ctx, "alice", []string{locator("alice", "2023/08")})
	require.NoError(t, err)

	assert.Empty(t, res.Games)
	assert.Equal(t, 0, res.MonthsFromCache)
	assert.Equal(t, 1, res.MonthsFromAPI)
}

func TestSyncMonths_UnparseableLocatorCountsAsAPI(t *testing.T) {
	svc, client, _ := newSyncFixture(t)

	res, err := svc.SyncMonths(context.Background(), "alice", []string{"https://api.chess.com/pub/player/alice/games/not/amonth"})
	require.NoError(t, err)

	assert.Empty(t, res.Games)
	assert.Equal(t, 0, res.MonthsFromCache)
	assert.Equal(t, 1, res.MonthsFromAPI)
	client.AssertNotCalled(t, "FetchMonthly", mock.Anything, mock.Anything)
}

func TestSyncMonths_MixedMonthsPreserveOrderAndCounts(t *testing.T) {
	svc, client, repo := newSyncFixture(t)
	ctx := context.Background()

	// 2023/05 cached, 2023/06 uncached, 2024/03 is the current month.
	require.NoError(t, repo.Write(ctx, models.NewMonthKey("alice", 2023, 5),
		monthGames("https://www.chess.com/game/live/may")))

	client.On("FetchMonthly", mock.Anything, locator("alice", "2023/06")).
		Return(monthGames("https://www.chess.com/game/live/june"), nil)
	client.On("FetchMonthly", mock.Anything, locator("alice", "2024/03")).
		Return(monthGames("https://www.chess.com/game/live/march"), nil)

	locators := []string{
		locator("alice", "2023/05"),
		locator("alice", "2023/06"),
		locator("alice", "2024/03"),
	}

	res, err := svc.SyncMonths(ctx, "alice", locators)
	require.NoError(t, err)

	assert.Equal(t, 1, res.MonthsFromCache)
	assert.Equal(t, 2, res.MonthsFromAPI)
	assert.Equal(t, len(locators), res.MonthsFromCache+res.MonthsFromAPI)

	// Games come back in requested month order despite concurrent dispatch.
	require.Len(t, res.Games, 3)
	assert.Equal(t, "https://www.chess.com/game/live/may", res.Games[0].URL)
	assert.Equal(t, "https://www.chess.com/game/live/june", res.Games[1].URL)
	assert.Equal(t, "https://www.chess.com/game/live/march", res.Games[2].URL)
}

func TestSyncMonths_NoLocators(t *testing.T) {
	svc, _, _ := newSyncFixture(t)

	res, err := svc.SyncMonths(context.Background(), "alice", nil)
	require.NoError(t, err)

	assert.Empty(t, res.Games)
	assert.Equal(t, 0, res.MonthsFromCache)
	assert.Equal(t, 0, res.MonthsFromAPI)
}

func TestSyncMonths_CancelledContext(t *testing.T) {
	svc, client, _ := newSyncFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client.On("FetchMonthly", mock.Anything, mock.Anything).
		Return(nil, errors.NewTransientError(ctx.Err())).Maybe()

	_, err := svc.SyncMonths(ctx, "alice", []string{locator("alice", "2023/05")})
	assert.Error(t, err)
}
