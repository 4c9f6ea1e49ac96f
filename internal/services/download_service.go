package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/marioc/chessvault/internal/errors"
	"github.com/marioc/chessvault/internal/export"
	"github.com/marioc/chessvault/internal/games"
	"github.com/marioc/chessvault/internal/logger"
	"github.com/marioc/chessvault/internal/models"
)

// DownloadResult carries the full normalized sequence plus the derived
// summary for one download request.
type DownloadResult struct {
	Games           []models.Game  `json:"data"`
	Summary         models.Summary `json:"summary"`
	MonthsFromCache int            `json:"months_from_cache"`
	MonthsFromAPI   int            `json:"months_from_api"`
}

// DownloadService runs the full pipeline: sync the requested months,
// normalize, aggregate, and export.
type DownloadService interface {
	DownloadGames(ctx context.Context, username string, locators []string) (*DownloadResult, error)
	HeatmapData(ctx context.Context, username string, locators []string) (*models.Heatmap, error)
}

type downloadService struct {
	sync     SyncService
	exporter *export.Exporter
}

// NewDownloadService creates a DownloadService.
func NewDownloadService(sync SyncService, exporter *export.Exporter) DownloadService {
	return &downloadService{sync: sync, exporter: exporter}
}

func (s *downloadService) DownloadGames(ctx context.Context, username string, locators []string) (*DownloadResult, error) {
	log := logger.FromContext(ctx).WithField("username", username)

	if len(locators) == 0 {
		return nil, errors.NewValidationError("selected_months", "at least one month is required")
	}

	synced, err := s.sync.SyncMonths(ctx, username, locators)
	if err != nil {
		return nil, err
	}

	normalized := games.NormalizeAll(synced.Games, username)

	// Most recent first, whatever order the months arrived in.
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Timestamp > normalized[j].Timestamp
	})

	summary := games.Summarize(normalized)
	summary.Period = periodOf(username, locators)

	result := &DownloadResult{
		Games:           normalized,
		Summary:         summary,
		MonthsFromCache: synced.MonthsFromCache,
		MonthsFromAPI:   synced.MonthsFromAPI,
	}

	if len(normalized) == 0 {
		// Empty result is a valid outcome, reported as-is; no artifacts.
		log.Info("no games found for the requested months")
		return result, nil
	}

	csvPath, jsonPath, err := s.exporter.Export(ctx, username, normalized)
	if err != nil {
		log.Error("export failed: %v", err)
		return nil, errors.NewInternalError(err)
	}
	result.Summary.CSVPath = csvPath
	result.Summary.JSONPath = jsonPath

	log.Info("download complete: %d games (%d wins, %d losses, %d draws)",
		summary.TotalGames, summary.Wins, summary.Losses, summary.Draws)
	return result, nil
}

func (s *downloadService) HeatmapData(ctx context.Context, username string, locators []string) (*models.Heatmap, error) {
	if len(locators) == 0 {
		return nil, errors.NewValidationError("selected_months", "at least one month is required")
	}

	synced, err := s.sync.SyncMonths(ctx, username, locators)
	if err != nil {
		return nil, err
	}

	normalized := games.NormalizeAll(synced.Games, username)
	return games.BuildHeatmap(normalized), nil
}

// periodOf derives the requested span from the month locators, ignoring
// ones that do not parse.
func periodOf(username string, locators []string) *models.Period {
	var keys []models.MonthKey
	for _, locator := range locators {
		if key, err := models.ParseMonthLocator(username, locator); err == nil {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	return &models.Period{
		Start:  fmt.Sprintf("%04d-%02d", keys[0].Year, keys[0].Month),
		End:    fmt.Sprintf("%04d-%02d", keys[len(keys)-1].Year, keys[len(keys)-1].Month),
		Months: len(keys),
	}
}
