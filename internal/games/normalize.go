// Package games holds the pure transforms of the pipeline: collapsing
// two-sided archive records into player-centric ones and reducing those
// into summary counts and heatmaps.
package games

import (
	"strings"
	"time"

	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/models"
	"github.com/marioc/chessvault/internal/pgn"
)

const dateLayout = "2006-01-02 15:04:05"

// Normalize collapses a raw two-sided game record into a player-centric
// one for the given username. It is pure and never fails: missing
// fields degrade to zero values. Username comparison is
// case-insensitive; if the username matches neither side the subject is
// treated as black, with the white side as the opponent.
func Normalize(mg chesscom.MonthlyGame, username string) models.Game {
	isWhite := strings.EqualFold(mg.White.Username, username)

	g := models.Game{
		Timestamp:   mg.EndTime,
		Date:        time.Unix(mg.EndTime, 0).Format(dateLayout),
		TimeControl: mg.TimeControl,
		TimeClass:   mg.TimeClass,
		Variant:     mg.Rules,
		PGN:         mg.PGN,
		URL:         mg.URL,
	}

	if isWhite {
		g.PlayedAs = models.ColorWhite
		g.Opponent = mg.Black.Username
		g.PlayerRating = mg.White.Rating
		g.OpponentRating = mg.Black.Rating
	} else {
		g.PlayedAs = models.ColorBlack
		g.Opponent = mg.White.Username
		g.PlayerRating = mg.Black.Rating
		g.OpponentRating = mg.White.Rating
	}

	g.Result = deriveResult(mg, isWhite)

	if mg.PGN != "" {
		headers := pgn.ParseHeaders(mg.PGN)
		g.ECOCode = headers["ECO"]
		g.OpeningName = headers["Opening"]
	}

	return g
}

// deriveResult resolves the outcome relative to the subject. The
// archive encodes the winner's result code as "win"; the losing side
// carries the reason (checkmated, resigned, timeout, ...). When neither
// side says "win" the game was drawn, whatever the codes.
func deriveResult(mg chesscom.MonthlyGame, subjectIsWhite bool) string {
	switch {
	case mg.White.Result == "win":
		if subjectIsWhite {
			return models.ResultWin
		}
		return models.ResultLoss
	case mg.Black.Result == "win":
		if !subjectIsWhite {
			return models.ResultWin
		}
		return models.ResultLoss
	default:
		return models.ResultDraw
	}
}

// NormalizeAll maps a raw month sequence through Normalize, preserving order.
func NormalizeAll(raw []chesscom.MonthlyGame, username string) []models.Game {
	out := make([]models.Game, 0, len(raw))
	for _, mg := range raw {
		out = append(out, Normalize(mg, username))
	}
	return out
}
