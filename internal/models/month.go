package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies one month of a user's archive. Username is stored
// lowercased so equality is case-insensitive.
type MonthKey struct {
	Username string `json:"username"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
}

// NewMonthKey builds a MonthKey, normalizing the username to lowercase.
func NewMonthKey(username string, year, month int) MonthKey {
	return MonthKey{
		Username: strings.ToLower(username),
		Year:     year,
		Month:    month,
	}
}

// ParseMonthLocator derives a MonthKey from an archive locator by taking
// the trailing year/month path segments.
// Locators look like: https://api.chess.com/pub/player/{username}/games/2023/05
func ParseMonthLocator(username, locator string) (MonthKey, error) {
	parts := strings.Split(strings.TrimSuffix(locator, "/"), "/")
	if len(parts) < 2 {
		return MonthKey{}, fmt.Errorf("month locator %q has no year/month segments", locator)
	}

	year, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return MonthKey{}, fmt.Errorf("month locator %q: invalid year: %w", locator, err)
	}
	month, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return MonthKey{}, fmt.Errorf("month locator %q: invalid month: %w", locator, err)
	}
	if month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("month locator %q: month %d out of range", locator, month)
	}
	return NewMonthKey(username, year, month), nil
}

// Before orders keys chronologically.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// IsCurrent reports whether the key names the month that now falls in.
func (k MonthKey) IsCurrent(now time.Time) bool {
	return k.Year == now.Year() && k.Month == int(now.Month())
}

// String renders the key as "username/YYYY-MM".
func (k MonthKey) String() string {
	return fmt.Sprintf("%s/%04d-%02d", k.Username, k.Year, k.Month)
}

// Label renders a display name like "May 2023".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %d", time.Month(k.Month).String(), k.Year)
}
