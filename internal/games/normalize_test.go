package games_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/games"
	"github.com/marioc/chessvault/internal/models"
)

func sampleGame() chesscom.MonthlyGame {
	return chesscom.MonthlyGame{
		URL:         "https://www.chess.com/game/live/123456789",
		PGN:         "[Event \"Live Chess\"]\n[ECO \"B20\"]\n[Opening \"Sicilian Defense\"]\n\n1. e4 c5",
		TimeControl: "300",
		TimeClass:   "blitz",
		Rules:       "chess",
		EndTime:     1700000000,
		White:       chesscom.Player{Username: "alice", Rating: 1500, Result: "win"},
		Black:       chesscom.Player{Username: "bob", Rating: 1400, Result: "checkmated"},
	}
}

func TestNormalize_SubjectIsWhite(t *testing.T) {
	g := games.Normalize(sampleGame(), "alice")

	assert.Equal(t, models.ColorWhite, g.PlayedAs)
	assert.Equal(t, models.ResultWin, g.Result)
	assert.Equal(t, "bob", g.Opponent)
	assert.Equal(t, 1500, g.PlayerRating)
	assert.Equal(t, 1400, g.OpponentRating)
	assert.Equal(t, int64(1700000000), g.Timestamp)
}

func TestNormalize_SubjectIsBlack(t *testing.T) {
	g := games.Normalize(sampleGame(), "bob")

	assert.Equal(t, models.ColorBlack, g.PlayedAs)
	assert.Equal(t, models.ResultLoss, g.Result)
	assert.Equal(t, "alice", g.Opponent)
	assert.Equal(t, 1400, g.PlayerRating)
	assert.Equal(t, 1500, g.OpponentRating)
}

func TestNormalize_CaseInsensitiveUsername(t *testing.T) {
	g := games.Normalize(sampleGame(), "ALICE")
	assert.Equal(t, models.ColorWhite, g.PlayedAs)
	assert.Equal(t, models.ResultWin, g.Result)
}

func TestNormalize_BlackWins(t *testing.T) {
	mg := sampleGame()
	mg.White.Result = "resigned"
	mg.Black.Result = "win"

	assert.Equal(t, models.ResultLoss, games.Normalize(mg, "alice").Result)
	assert.Equal(t, models.ResultWin, games.Normalize(mg, "bob").Result)
}

func TestNormalize_NoWinnerIsDraw(t *testing.T) {
	// The losing side's code is never "win", so any pair without an
	// explicit win collapses to a draw.
	for _, code := range []string{"agreed", "stalemate", "repetition", "timevsinsufficient", "insufficient"} {
		mg := sampleGame()
		mg.White.Result = code
		mg.Black.Result = code
		assert.Equal(t, models.ResultDraw, games.Normalize(mg, "alice").Result, "code %q", code)
	}
}

func TestNormalize_UnknownSubjectFallsBackToBlack(t *testing.T) {
	// Data anomaly: the requested user appears on neither side. The
	// subject is treated as black with the white side as the opponent.
	g := games.Normalize(sampleGame(), "carol")

	assert.Equal(t, models.ColorBlack, g.PlayedAs)
	assert.Equal(t, "alice", g.Opponent)
	assert.Equal(t, models.ResultLoss, g.Result)
}

func TestNormalize_MissingFieldsDefault(t *testing.T) {
	g := games.Normalize(chesscom.MonthlyGame{}, "alice")

	assert.Equal(t, int64(0), g.Timestamp)
	assert.Equal(t, models.ColorBlack, g.PlayedAs)
	assert.Equal(t, models.ResultDraw, g.Result)
	assert.Zero(t, g.PlayerRating)
	assert.Zero(t, g.OpponentRating)
	assert.Empty(t, g.TimeControl)
	assert.Empty(t, g.TimeClass)
	assert.Empty(t, g.Variant)
	assert.Empty(t, g.PGN)
	assert.Empty(t, g.URL)
}

func TestNormalize_DateRendering(t *testing.T) {
	g := games.Normalize(sampleGame(), "alice")

	expected := time.Unix(1700000000, 0).Format("2006-01-02 15:04:05")
	assert.Equal(t, expected, g.Date)
}

func TestNormalize_OpeningFromPGN(t *testing.T) {
	g := games.Normalize(sampleGame(), "alice")

	assert.Equal(t, "B20", g.ECOCode)
	assert.Equal(t, "Sicilian Defense", g.OpeningName)
}

func TestNormalize_Idempotent(t *testing.T) {
	mg := sampleGame()
	first := games.Normalize(mg, "alice")
	second := games.Normalize(mg, "alice")
	assert.Equal(t, first, second)
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	a := sampleGame()
	b := sampleGame()
	b.URL = "https://www.chess.com/game/live/987654321"
	b.EndTime = 1700000100

	out := games.NormalizeAll([]chesscom.MonthlyGame{a, b}, "alice")
	assert.Len(t, out, 2)
	assert.Equal(t, a.URL, out[0].URL)
	assert.Equal(t, b.URL, out[1].URL)
}
