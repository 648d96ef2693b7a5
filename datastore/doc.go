/*
Package datastore defines the persistence capabilities used by posestore.

DocumentStore is the narrow write capability taken by the importer:

	type DocumentStore interface {
	    Upsert(ctx context.Context, collection, documentID string, value json.RawMessage) error
	}

Store is the full interface implemented by backends:

	type Store interface {
	    DocumentStore
	    Get(ctx context.Context, collection, documentID string) (json.RawMessage, error)
	    Delete(ctx context.Context, collection, documentID string) error
	    List(ctx context.Context, params *storagemodels.ListParams) ([]storagemodels.Document, error)
	    Stream(ctx context.Context, params *storagemodels.ListParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult
	}

Implementations:
  - ddb: DynamoDB implementation using a single-table layout
  - mock: In-memory implementation for testing

Document values are opaque JSON; stores never interpret them.
*/
package datastore
