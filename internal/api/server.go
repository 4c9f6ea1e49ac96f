package api

import (
	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/services"
	"github.com/marioc/chessvault/internal/worker"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	DownloadService services.DownloadService
	SyncService     services.SyncService
	ChessClient     chesscom.ClientInterface
	WarmPool        *worker.Pool
	WarmCache       bool
	DownloadsDir    string
}
