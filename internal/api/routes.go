package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	// The front end is served separately as a static page.
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/api/check-username/{username}", s.handleCheckUsername)
	r.Post("/api/download-games", s.handleDownloadGames)
	r.Post("/api/heatmap-data", s.handleHeatmapData)
	r.Get("/api/downloads/{file}", s.handleDownloadFile)

	return r
}
