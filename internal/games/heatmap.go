package games

import (
	"time"

	"github.com/marioc/chessvault/internal/models"
)

// BuildHeatmap buckets normalized games into a 7x24 grid keyed by
// weekday and hour of day, in local time. Every game lands in exactly
// one cell of the totals matrix and one of the outcome matrices.
// Rows follow time.Weekday order (Sunday=0).
func BuildHeatmap(list []models.Game) *models.Heatmap {
	h := models.NewHeatmap()
	for _, g := range list {
		t := time.Unix(g.Timestamp, 0)
		day := int(t.Weekday())
		hour := t.Hour()

		switch g.Result {
		case models.ResultWin:
			h.Wins[day][hour]++
		case models.ResultLoss:
			h.Losses[day][hour]++
		default:
			h.Draws[day][hour]++
		}
		h.Totals[day][hour]++
	}
	return h
}
