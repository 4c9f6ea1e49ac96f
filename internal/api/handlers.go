package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marioc/chessvault/internal/errors"
	"github.com/marioc/chessvault/internal/logger"
	"github.com/marioc/chessvault/internal/models"
	"github.com/marioc/chessvault/internal/worker"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type monthOption struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

func (s *Server) handleCheckUsername(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	username := chi.URLParam(r, "username")
	if username == "" {
		handleError(w, r, errors.NewBadRequestError("username is required"))
		return
	}
	log = log.WithField("username", username)

	exists, err := s.ChessClient.UserExists(r.Context(), username)
	if err != nil && !errors.IsCode(err, errors.ErrCodeNotFound) {
		log.Warn("user existence check failed: %v", err)
		msg := "could not reach chess.com"
		if errors.IsCode(err, errors.ErrCodeForbidden) {
			msg = "access limited by the chess.com API, try again in a few minutes"
		}
		respondJSON(w, r, http.StatusOK, map[string]any{"exists": false, "error": msg})
		return
	}
	if !exists {
		respondJSON(w, r, http.StatusOK, map[string]any{"exists": false, "error": "user not found on chess.com"})
		return
	}

	archives, err := s.ChessClient.FetchArchives(r.Context(), username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	months := make([]monthOption, 0, len(archives))
	for _, url := range archives {
		opt := monthOption{URL: url, Label: url}
		if key, err := models.ParseMonthLocator(username, url); err == nil {
			opt.Label = key.Label()
		}
		months = append(months, opt)
	}

	// Profile is best effort; the month list alone is a useful answer.
	profile, err := s.ChessClient.FetchProfile(r.Context(), username)
	if err != nil {
		log.Warn("failed to fetch profile: %v", err)
	}

	if s.WarmCache && s.WarmPool != nil {
		s.WarmPool.TrySubmit(&worker.WarmArchiveJob{
			Sync:     s.SyncService,
			Client:   s.ChessClient,
			Username: username,
		})
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"exists":  true,
		"months":  months,
		"profile": profile,
	})
}

// parseDownloadForm extracts the username and the selected month
// locators shared by the download and heatmap endpoints.
func parseDownloadForm(r *http.Request) (username string, locators []string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", nil, errors.NewBadRequestError("invalid form data")
	}

	username = strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		return "", nil, errors.NewValidationError("username", "required")
	}

	raw := r.FormValue("selected_months")
	if raw == "" {
		return "", nil, errors.NewValidationError("selected_months", "required")
	}
	if err := json.Unmarshal([]byte(raw), &locators); err != nil {
		return "", nil, errors.NewValidationError("selected_months", "must be a JSON array of month URLs")
	}
	if len(locators) == 0 {
		return "", nil, errors.NewValidationError("selected_months", "at least one month is required")
	}
	return username, locators, nil
}

func (s *Server) handleDownloadGames(w http.ResponseWriter, r *http.Request) {
	username, locators, err := parseDownloadForm(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	exists, err := s.ChessClient.UserExists(r.Context(), username)
	if err == nil && !exists {
		handleError(w, r, errors.NewNotFoundError("user", username))
		return
	}

	result, err := s.DownloadService.DownloadGames(r.Context(), username, locators)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if result.Summary.TotalGames == 0 {
		respondJSON(w, r, http.StatusOK, map[string]any{
			"success": false,
			"error":   "no games found for the selected period",
		})
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"summary": result.Summary,
		"data":    result.Games,
	})
}

func (s *Server) handleHeatmapData(w http.ResponseWriter, r *http.Request) {
	username, locators, err := parseDownloadForm(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	exists, err := s.ChessClient.UserExists(r.Context(), username)
	if err == nil && !exists {
		handleError(w, r, errors.NewNotFoundError("user", username))
		return
	}

	heatmap, err := s.DownloadService.HeatmapData(r.Context(), username, locators)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"success":      true,
		"heatmap_data": heatmap,
	})
}

func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	// Reject anything that could escape the downloads directory.
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		handleError(w, r, errors.NewBadRequestError("invalid file name"))
		return
	}

	path := filepath.Join(s.DownloadsDir, name)
	http.ServeFile(w, r, path)
}
