package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/marioc/chessvault/internal/errors"
	"github.com/marioc/chessvault/internal/logger"
)

const baseURL = "https://api.chess.com/pub"

// Client talks to the chess.com public API. Requests share a token
// bucket limiter because the API answers 403 to aggressive callers.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a Client with the given request timeout and rate limit.
func New(timeout time.Duration, rps int) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		log:        logger.Default().WithPrefix("chesscom"),
	}
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("url", url)

	if err := c.limiter.Wait(ctx); err != nil {
		return errors.NewTransientError(fmt.Errorf("rate limit wait: %w", err))
	}

	log.Debug("fetching")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return errors.NewTransientError(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "chessvault/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return errors.NewTransientError(err)
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return errors.NewNotFoundError("resource", url)
	case resp.StatusCode == http.StatusForbidden:
		return errors.NewForbiddenError("access denied by chess.com API, likely rate limited")
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("unexpected status=%d, body=%s", resp.StatusCode, string(body))
		return errors.NewTransientError(fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return errors.NewMalformedError(err)
	}
	return nil
}

type archivesResp struct {
	Archives []string `json:"archives"`
}

// FetchArchives returns the list of monthly archive URLs for a user.
// A user with no games yields an empty list, not an error.
func (c *Client) FetchArchives(ctx context.Context, username string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)

	var out archivesResp
	url := fmt.Sprintf("%s/player/%s/games/archives", baseURL, username)
	if err := c.get(ctx, url, &out); err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			log.Debug("no archives for user")
			return nil, nil
		}
		return nil, err
	}

	log.Info("fetched %d archives for user %s", len(out.Archives), username)
	return out.Archives, nil
}

// FetchMonthly returns the raw games of one monthly archive.
func (c *Client) FetchMonthly(ctx context.Context, archiveURL string) ([]MonthlyGame, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("archive_url", archiveURL)

	var payload struct {
		Games []MonthlyGame `json:"games"`
	}
	if err := c.get(ctx, archiveURL, &payload); err != nil {
		return nil, err
	}

	log.Info("fetched %d games from archive", len(payload.Games))
	return payload.Games, nil
}

// FetchProfile returns the public profile of a user, enriched with the
// player's rating stats when that endpoint answers.
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)

	var profile Profile
	if err := c.get(ctx, fmt.Sprintf("%s/player/%s", baseURL, username), &profile); err != nil {
		return nil, err
	}

	// Stats are best effort; the profile alone is a useful answer.
	var stats map[string]any
	if err := c.get(ctx, fmt.Sprintf("%s/player/%s/stats", baseURL, username), &stats); err != nil {
		log.Warn("failed to fetch player stats: %v", err)
	} else {
		profile.Stats = stats
	}
	return &profile, nil
}

// UserExists reports whether a username resolves on chess.com. When the
// profile endpoint answers 403 (rate limiting), the archives endpoint
// is probed as a fallback before giving up.
func (c *Client) UserExists(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)

	var profile Profile
	err := c.get(ctx, fmt.Sprintf("%s/player/%s", baseURL, username), &profile)
	if err == nil {
		return true, nil
	}
	if errors.IsCode(err, errors.ErrCodeNotFound) {
		return false, nil
	}
	if errors.IsCode(err, errors.ErrCodeForbidden) {
		log.Warn("profile endpoint forbidden, probing archives endpoint")
		var out archivesResp
		if probeErr := c.get(ctx, fmt.Sprintf("%s/player/%s/games/archives", baseURL, username), &out); probeErr == nil {
			return true, nil
		}
		return false, err
	}
	return false, err
}
