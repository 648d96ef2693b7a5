/*
Package ddb provides a DynamoDB implementation of the datastore.Store interface.

All collections share one table. Each document is one item:

	PK          key template from the collection's index map
	SK          key template from the collection's index map
	EntityType  "Document"
	Collection  collection name
	DocumentID  document id
	Body        the JSON value as a native map/list/scalar attribute

Key Features:

Macro Expansion:
Key templates use the {Collection} and {DocumentID} macros:

	registry.RegisterIndexMap("pose_references", map[string]string{
	    "PK": "POSE#{Collection}",   // Becomes "POSE#pose_references"
	    "SK": "{DocumentID}",        // Becomes "sitting"
	})

Upsert is an unconditional PutItem, so writing an existing id replaces the
whole item. Get of a missing id returns errors.NotFoundError.

Streaming:
Stream pages through a collection with retries on throttling:

	results := store.Stream(ctx, &storagemodels.ListParams{Collection: "pose_references"},
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	)

The store talks to DynamoDB through the API interface, which *dynamodb.Client
satisfies; tests substitute a fake.
*/
package ddb
