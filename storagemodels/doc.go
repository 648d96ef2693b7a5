/*
Package storagemodels defines the data structures shared by posestore's
document stores.

Key Types:

Document:
A stored JSON value addressed by collection and id:

	doc := Document{
	    Collection: "pose_references",
	    ID:         "sitting",
	    Body:       json.RawMessage(`{"hip":90}`),
	}

ListParams:
Parameters for listing a collection:

	params := &ListParams{
	    Collection: "pose_references",
	    IDPrefix:   "yoga_",
	    PageSize:   25,
	}

StreamResult and StreamOptions:
Streaming delivers documents on a channel with per-item metadata and is
configured with functional options:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
