package games

import "github.com/marioc/chessvault/internal/models"

// Summarize partitions normalized games into outcome and color counts.
// Empty input yields an all-zero summary.
func Summarize(list []models.Game) models.Summary {
	var s models.Summary
	for _, g := range list {
		s.TotalGames++

		switch g.Result {
		case models.ResultWin:
			s.Wins++
		case models.ResultLoss:
			s.Losses++
		default:
			s.Draws++
		}

		if g.PlayedAs == models.ColorWhite {
			s.AsWhite++
		} else {
			s.AsBlack++
		}
	}
	return s
}
