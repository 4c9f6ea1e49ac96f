package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marioc/chessvault/internal/models"
)

func TestParseMonthLocator(t *testing.T) {
	key, err := models.ParseMonthLocator("Hikaru", "https://api.chess.com/pub/player/hikaru/games/2023/05")
	require.NoError(t, err)
	assert.Equal(t, "hikaru", key.Username)
	assert.Equal(t, 2023, key.Year)
	assert.Equal(t, 5, key.Month)
}

func TestParseMonthLocator_TrailingSlash(t *testing.T) {
	key, err := models.ParseMonthLocator("alice", "https://api.chess.com/pub/player/alice/games/2024/12/")
	require.NoError(t, err)
	assert.Equal(t, 2024, key.Year)
	assert.Equal(t, 12, key.Month)
}

func TestParseMonthLocator_Invalid(t *testing.T) {
	cases := []string{
		"",
		"no-segments",
		"https://api.chess.com/pub/player/alice/games/2023/not-a-month",
		"https://api.chess.com/pub/player/alice/games/abcd/05",
		"https://api.chess.com/pub/player/alice/games/2023/13",
		"https://api.chess.com/pub/player/alice/games/2023/0",
	}
	for _, locator := range cases {
		_, err := models.ParseMonthLocator("alice", locator)
		assert.Error(t, err, "locator %q should not parse", locator)
	}
}

func TestMonthKey_Equality_CaseInsensitive(t *testing.T) {
	a := models.NewMonthKey("Alice", 2023, 5)
	b := models.NewMonthKey("ALICE", 2023, 5)
	assert.Equal(t, a, b)
}

func TestMonthKey_Before(t *testing.T) {
	assert.True(t, models.NewMonthKey("a", 2023, 12).Before(models.NewMonthKey("a", 2024, 1)))
	assert.True(t, models.NewMonthKey("a", 2024, 1).Before(models.NewMonthKey("a", 2024, 2)))
	assert.False(t, models.NewMonthKey("a", 2024, 2).Before(models.NewMonthKey("a", 2024, 2)))
	assert.False(t, models.NewMonthKey("a", 2024, 3).Before(models.NewMonthKey("a", 2024, 2)))
}

func TestMonthKey_IsCurrent(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	assert.True(t, models.NewMonthKey("a", 2024, 3).IsCurrent(now))
	assert.False(t, models.NewMonthKey("a", 2024, 2).IsCurrent(now))
	assert.False(t, models.NewMonthKey("a", 2023, 3).IsCurrent(now))
}

func TestMonthKey_Label(t *testing.T) {
	assert.Equal(t, "May 2023", models.NewMonthKey("a", 2023, 5).Label())
	assert.Equal(t, "December 2024", models.NewMonthKey("a", 2024, 12).Label())
}

func TestMonthKey_String(t *testing.T) {
	assert.Equal(t, "alice/2023-05", models.NewMonthKey("Alice", 2023, 5).String())
}
