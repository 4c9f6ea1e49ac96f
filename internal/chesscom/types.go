package chesscom

// Player is one side of a two-sided game record.
type Player struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

// MonthlyGame is a raw game record as returned by the monthly archive
// endpoint. Fields the pipeline does not consume are left out; the
// payload is cached verbatim in this shape.
type MonthlyGame struct {
	URL         string `json:"url"`
	PGN         string `json:"pgn"`
	TimeControl string `json:"time_control"`
	TimeClass   string `json:"time_class"`
	Rules       string `json:"rules"`
	Rated       bool   `json:"rated"`
	EndTime     int64  `json:"end_time"`
	White       Player `json:"white"`
	Black       Player `json:"black"`
}

// Profile is the public player profile.
type Profile struct {
	Username   string         `json:"username"`
	PlayerID   int64          `json:"player_id"`
	Title      string         `json:"title,omitempty"`
	Name       string         `json:"name,omitempty"`
	Avatar     string         `json:"avatar,omitempty"`
	Country    string         `json:"country,omitempty"`
	Followers  int            `json:"followers"`
	Joined     int64          `json:"joined"`
	LastOnline int64          `json:"last_online"`
	Status     string         `json:"status,omitempty"`
	Stats      map[string]any `json:"stats,omitempty"`
}
