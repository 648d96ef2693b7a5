/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"encoding/json"

	"github.com/suparena/posestore/storagemodels"
)

// DocumentStore is the write capability the importer depends on.
// Upsert creates the document or fully replaces an existing one with the same id.
type DocumentStore interface {
	Upsert(ctx context.Context, collection, documentID string, value json.RawMessage) error
}

// Getter reads a single document body.
type Getter interface {
	Get(ctx context.Context, collection, documentID string) (json.RawMessage, error)
}

type Store interface {
	DocumentStore
	Getter

	Delete(ctx context.Context, collection, documentID string) error

	List(ctx context.Context, params *storagemodels.ListParams) ([]storagemodels.Document, error)

	Stream(ctx context.Context, params *storagemodels.ListParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult
}
