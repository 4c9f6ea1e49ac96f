package models

// Summary aggregates outcome and color counts over a set of games.
// Total == Wins+Losses+Draws == AsWhite+AsBlack.
type Summary struct {
	TotalGames int     `json:"total_games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Draws      int     `json:"draws"`
	AsWhite    int     `json:"as_white"`
	AsBlack    int     `json:"as_black"`
	Period     *Period `json:"period,omitempty"`
	CSVPath    string  `json:"csv_path,omitempty"`
	JSONPath   string  `json:"json_path,omitempty"`
}

// Period describes the span of requested months.
type Period struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Months int    `json:"months"`
}

// HeatmapDays is the fixed row ordering of the activity heatmap,
// matching Go's time.Weekday numbering (Sunday=0).
var HeatmapDays = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Heatmap buckets game outcomes by weekday and hour of day.
// For every cell, Totals[d][h] == Wins[d][h] + Losses[d][h] + Draws[d][h].
type Heatmap struct {
	Days   [7]string  `json:"days"`
	Hours  [24]int    `json:"hours"`
	Wins   [7][24]int `json:"wins"`
	Losses [7][24]int `json:"losses"`
	Draws  [7][24]int `json:"draws"`
	Totals [7][24]int `json:"totals"`
}

// NewHeatmap returns an empty heatmap with labeled axes.
func NewHeatmap() *Heatmap {
	h := &Heatmap{Days: HeatmapDays}
	for i := range h.Hours {
		h.Hours[i] = i
	}
	return h
}
