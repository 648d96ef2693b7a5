/*
Package posestore loads reference posture data into a document store and
reads it back for posture matching.

The module is split into small packages:
  - importer: fetches a posture file and upserts one document per posture
  - datastore: the DocumentStore and Store contracts, with DynamoDB (ddb)
    and in-memory (mock) implementations
  - posture: joint angle extraction and comparison against stored references
  - config: layered configuration for the poseimport command

StorageManager in this package routes document operations by collection:

	sm := posestore.NewStorageManager(ddbStore)
	_ = sm.RegisterDataStore("scratch", mock.New())

	im := importer.New(sm, importer.WithLogger(logger))
	im.ImportPostures(ctx, importer.DefaultSource)
*/
package posestore
