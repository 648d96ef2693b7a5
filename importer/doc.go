/*
Package importer uploads a static posture file to a document store.

A posture file is a JSON object mapping posture names to joint-angle
records:

	{
	    "sitting":  {"left_hip": 90, "right_hip": 90},
	    "standing": {"left_hip": 180, "right_hip": 180}
	}

Each entry becomes one document in the "pose_references" collection, keyed
by the posture name. Records are opaque and written verbatim. Writes are
strictly sequential: an entry is written only after the previous upsert has
been acknowledged, in the order the entries appear in the file.

Usage:

	imp := importer.New(store, importer.WithLogger(logger))

	// Log and return: failures become an error trace
	imp.ImportPostures(ctx, importer.DefaultSource)

	// Or observe the outcome
	report, err := imp.Run(ctx, "https://example.com/joint_angle.json")

The first fetch, parse or write failure stops the run. Postures already written
stay written; report.Written lists them.
*/
package importer
