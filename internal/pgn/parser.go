package pgn

import (
	"regexp"
	"strings"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]*)"\]`)

// ParseHeaders extracts PGN header tags into a map.
func ParseHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		if !strings.HasPrefix(line, "[") {
			continue
		}
		if m := headerRe.FindStringSubmatch(line); len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

var gameIDRe = regexp.MustCompile(`.*/game/[^/]+/([0-9]+)`)

// ExtractGameID extracts the numeric game ID from a chess.com game URL,
// falling back to the URL itself when it does not match.
func ExtractGameID(url string) string {
	if m := gameIDRe.FindStringSubmatch(url); len(m) == 2 {
		return m[1]
	}
	return url
}
