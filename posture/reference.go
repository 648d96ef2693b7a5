/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package posture

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/posestore/datastore"
	storeerrors "github.com/suparena/posestore/errors"
)

// DefaultReferenceCollection holds the reference poses written by the importer.
const DefaultReferenceCollection = "pose_references"

// nameField is a label stored alongside the joint angles in some reference documents.
const nameField = "name"

// ReferenceLoader reads reference poses from a document store.
type ReferenceLoader struct {
	store      datastore.Getter
	collection string
	logger     *zap.Logger
}

// NewReferenceLoader returns a loader over store. An empty collection means
// DefaultReferenceCollection; a nil logger discards output.
func NewReferenceLoader(store datastore.Getter, collection string, logger *zap.Logger) *ReferenceLoader {
	if collection == "" {
		collection = DefaultReferenceCollection
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceLoader{store: store, collection: collection, logger: logger}
}

// Load returns the numeric joint angles of the exercise's reference pose.
// A missing document yields an empty reference, not an error.
func (l *ReferenceLoader) Load(ctx context.Context, exercise string) (map[string]float64, error) {
	body, err := l.store.Get(ctx, l.collection, exercise)
	if err != nil {
		if storeerrors.IsNotFound(err) {
			l.logger.Warn("reference pose not found",
				zap.String("collection", l.collection),
				zap.String("exercise", exercise))
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("failed to load reference pose %q: %w", exercise, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, storeerrors.NewParseError(l.collection+"/"+exercise, "reference pose is not a JSON object", err)
	}
	delete(fields, nameField)

	reference := make(map[string]float64, len(fields))
	for joint, v := range fields {
		if angle, ok := v.(float64); ok {
			reference[joint] = angle
		}
	}
	return reference, nil
}
