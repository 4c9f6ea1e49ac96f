// Package export writes the normalized game sequence to tabular (CSV)
// and structured (JSON) artifacts for download.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/marioc/chessvault/internal/logger"
	"github.com/marioc/chessvault/internal/models"
)

var csvHeader = []string{
	"date", "timestamp", "user_color", "opponent", "result",
	"time_control", "time_class", "variant",
	"user_rating", "opponent_rating", "pgn", "url",
}

// Exporter writes export artifacts into a downloads directory.
type Exporter struct {
	dir   string
	clock func() time.Time
}

// New creates an Exporter rooted at dir.
func New(dir string) *Exporter {
	return &Exporter{dir: dir, clock: time.Now}
}

// NewWithClock creates an Exporter with an injected clock so tests get
// deterministic file names.
func NewWithClock(dir string, clock func() time.Time) *Exporter {
	return &Exporter{dir: dir, clock: clock}
}

// Export writes one CSV and one JSON artifact for the ordered game
// sequence and returns their paths. The downloads directory is created
// on first use.
func (e *Exporter) Export(ctx context.Context, username string, games []models.Game) (csvPath, jsonPath string, err error) {
	log := logger.FromContext(ctx).WithPrefix("export").WithField("username", username)

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create downloads dir: %w", err)
	}

	stamp := e.clock().Format("20060102_150405")
	csvPath = filepath.Join(e.dir, fmt.Sprintf("%s_games_%s.csv", username, stamp))
	jsonPath = filepath.Join(e.dir, fmt.Sprintf("%s_games_%s.json", username, stamp))

	if err := e.writeCSV(csvPath, games); err != nil {
		log.Error("csv export failed: %v", err)
		return "", "", err
	}
	if err := e.writeJSON(jsonPath, games); err != nil {
		log.Error("json export failed: %v", err)
		return "", "", err
	}

	log.Info("exported %d games to %s and %s", len(games), csvPath, jsonPath)
	return csvPath, jsonPath, nil
}

func (e *Exporter) writeCSV(path string, games []models.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, g := range games {
		record := []string{
			g.Date,
			strconv.FormatInt(g.Timestamp, 10),
			g.PlayedAs,
			g.Opponent,
			g.Result,
			g.TimeControl,
			g.TimeClass,
			g.Variant,
			strconv.Itoa(g.PlayerRating),
			strconv.Itoa(g.OpponentRating),
			g.PGN,
			g.URL,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (e *Exporter) writeJSON(path string, games []models.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(games)
}
