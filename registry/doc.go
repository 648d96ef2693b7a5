/*
Package registry maps collections to DynamoDB key templates.

Every collection is stored in the same table. An index map tells the ddb
store how to build the key attributes of a document from two macros,
{Collection} and {DocumentID}:

	registry.RegisterIndexMap("pose_references", map[string]string{
	    "PK": "POSE#{Collection}",
	    "SK": "{DocumentID}",
	})

Collections without a registered map use DefaultIndexMap:

	PK: "COLLECTION#{Collection}"
	SK: "DOC#{DocumentID}"

The registry is thread-safe and should be populated during initialization.
*/
package registry
