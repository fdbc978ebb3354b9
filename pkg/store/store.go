// Package store persists named cloud documents.
//
// A Document pairs an input item set with its computed layout under a stable
// UUID, so clients can save, list, and re-fetch arrangements without
// recomputing them. Two backends are provided:
//   - mongo: production document storage
//   - memory: tests and single-process development
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cumulus/pkg/errors"
	"github.com/matzehuels/cumulus/pkg/layout"
)

// Document is a saved cloud: the input set and its computed arrangement.
type Document struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name" bson:"name"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
	Items     layout.ItemSet `json:"items" bson:"items"`
	Layout    layout.Layout  `json:"layout" bson:"layout"`
}

// Summary is the listing projection: everything but the payloads.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	ItemCount int       `json:"item_count" bson:"item_count"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for cloud document storage backends.
type Store interface {
	// Save upserts a document by ID, refreshing UpdatedAt.
	Save(ctx context.Context, doc *Document) error

	// Get retrieves a document by ID.
	// Returns a CLOUD_NOT_FOUND error if it doesn't exist.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns summaries of all documents, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a document by ID.
	// Returns a CLOUD_NOT_FOUND error if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewDocument creates a document with a fresh UUID and validated name.
func NewDocument(name string, items layout.ItemSet, l layout.Layout) (*Document, error) {
	if err := errors.ValidateCloudName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     items,
		Layout:    l,
	}, nil
}

// notFound builds the standard missing-document error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeCloudNotFound, "cloud %s not found", id)
}
