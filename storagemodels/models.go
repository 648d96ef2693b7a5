/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/json"
)

// Document is a stored value addressed by collection and document id.
type Document struct {
	// Collection is the logical collection name (for example "pose_references").
	Collection string `json:"collection"`
	// ID is the document id within the collection.
	ID string `json:"id"`
	// Body is the stored JSON value, kept verbatim.
	Body json.RawMessage `json:"body"`
}

// ListParams defines parameters for listing the documents of a collection.
// Used for both List and Stream.
type ListParams struct {
	// Collection whose documents are listed.
	Collection string
	// IDPrefix optionally restricts the listing to ids starting with the prefix.
	IDPrefix string
	// Limit caps the total number of documents returned. Zero means no cap.
	Limit int32
	// PageSize defines an optional page size for the underlying store.
	PageSize int32
}
