package store

import (
	"context"

	"taskdeck/internal/model"
)

// DocumentStore persists the application state as a single document.
// Every Save rewrites the whole document; there is no partial update.
type DocumentStore interface {
	// Load reads the current document. A store with no prior data
	// returns an empty document, not an error.
	Load(ctx context.Context) (*model.Document, error)

	// Save rewrites the document. Implementations must leave the prior
	// document intact when the write fails partway.
	Save(ctx context.Context, doc *model.Document) error

	Close() error
}
