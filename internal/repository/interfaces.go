// Package repository defines the persistence interfaces consumed by the
// services layer. Implementations live in subpackages.
package repository

import (
	"context"

	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/models"
)

// ArchiveRepository persists one raw month payload per MonthKey.
// Entries are never evicted: a completed month on the archive service
// never changes retroactively, so a written payload stays valid.
type ArchiveRepository interface {
	// Exists reports whether a payload has been written for the key.
	Exists(ctx context.Context, key models.MonthKey) (bool, error)

	// Read returns the previously written payload verbatim. It fails
	// with a NOT_FOUND error when no payload exists for the key.
	Read(ctx context.Context, key models.MonthKey) ([]chesscom.MonthlyGame, error)

	// Write stores the payload for the key, overwriting any previous
	// value. Same-key races are last-write-wins.
	Write(ctx context.Context, key models.MonthKey, games []chesscom.MonthlyGame) error
}
