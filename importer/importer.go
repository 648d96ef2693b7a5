/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package importer

import (
	"context"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/posestore/datastore"
	storeerrors "github.com/suparena/posestore/errors"
)

const (
	// DefaultCollection is the collection postures are written to.
	DefaultCollection = "pose_references"

	// DefaultSource is the posture file location used when none is given.
	DefaultSource = "static/data/joint_angle.json"
)

// Report describes one import run. On failure Written lists the postures
// stored before the failing step.
type Report struct {
	RunID      string          `json:"runId"`
	Source     string          `json:"source"`
	Collection string          `json:"collection"`
	Written    []string        `json:"written"`
	StartedAt  strfmt.DateTime `json:"startedAt"`
	FinishedAt strfmt.DateTime `json:"finishedAt"`
}

// Importer uploads a posture file to a document store, one upsert per posture.
type Importer struct {
	store      datastore.DocumentStore
	fetcher    Fetcher
	logger     *zap.Logger
	collection string
	now        func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithFetcher sets the Fetcher used to retrieve sources.
func WithFetcher(f Fetcher) Option {
	return func(im *Importer) {
		if f != nil {
			im.fetcher = f
		}
	}
}

// WithLogger sets the logger that receives per-posture and failure traces.
func WithLogger(logger *zap.Logger) Option {
	return func(im *Importer) {
		if logger != nil {
			im.logger = logger
		}
	}
}

// WithCollection overrides DefaultCollection.
func WithCollection(collection string) Option {
	return func(im *Importer) {
		if collection != "" {
			im.collection = collection
		}
	}
}

// New returns an Importer writing to store.
func New(store datastore.DocumentStore, opts ...Option) *Importer {
	im := &Importer{
		store:      store,
		fetcher:    NewSourceFetcher(nil),
		logger:     zap.NewNop(),
		collection: DefaultCollection,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Collection returns the collection the importer writes to.
func (im *Importer) Collection() string {
	return im.collection
}

// ImportPostures runs the import and logs a failure instead of returning it.
func (im *Importer) ImportPostures(ctx context.Context, location string) {
	report, err := im.Run(ctx, location)
	if err != nil {
		im.logger.Error("error writing joint angles",
			zap.String("run_id", report.RunID),
			zap.String("source", location),
			zap.String("collection", im.collection),
			zap.Int("written", len(report.Written)),
			zap.Error(err))
	}
}

// Run fetches and parses the source, then upserts each posture in document
// order, waiting for every write before issuing the next. The first failure
// stops the run; earlier writes are kept. The returned Report is never nil.
func (im *Importer) Run(ctx context.Context, location string) (*Report, error) {
	report := &Report{
		RunID:      uuid.NewString(),
		Source:     location,
		Collection: im.collection,
		Written:    []string{},
		StartedAt:  strfmt.DateTime(im.now()),
	}
	finish := func(err error) (*Report, error) {
		report.FinishedAt = strfmt.DateTime(im.now())
		return report, err
	}

	logger := im.logger.With(zap.String("run_id", report.RunID))

	data, err := im.fetcher.Fetch(ctx, location)
	if err != nil {
		return finish(storeerrors.NewFetchError(location, err))
	}

	postures, err := parsePostureSet(location, data)
	if err != nil {
		return finish(err)
	}
	logger.Debug("posture file loaded",
		zap.String("source", location),
		zap.Int("postures", len(postures)))

	for _, p := range postures {
		if err := im.store.Upsert(ctx, im.collection, p.Name, p.JointAngles); err != nil {
			return finish(storeerrors.NewWriteError(im.collection, p.Name, err))
		}
		report.Written = append(report.Written, p.Name)
		logger.Info("joint angles written",
			zap.String("posture", p.Name),
			zap.String("collection", im.collection))
	}

	return finish(nil)
}
