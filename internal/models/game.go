package models

// Game is a player-centric view of one archived game: the two-sided
// record from the archive collapsed onto the requested user.
type Game struct {
	Timestamp      int64  `json:"timestamp"`
	Date           string `json:"date"`
	PlayedAs       string `json:"user_color"`
	Opponent       string `json:"opponent"`
	PlayerRating   int    `json:"user_rating"`
	OpponentRating int    `json:"opponent_rating"`
	Result         string `json:"result"`
	TimeControl    string `json:"time_control"`
	TimeClass      string `json:"time_class"`
	Variant        string `json:"variant"`
	ECOCode        string `json:"eco_code,omitempty"`
	OpeningName    string `json:"opening_name,omitempty"`
	PGN            string `json:"pgn"`
	URL            string `json:"url"`
}

// Result values.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// Color values.
const (
	ColorWhite = "white"
	ColorBlack = "black"
)
