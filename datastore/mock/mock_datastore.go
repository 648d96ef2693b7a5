/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Store for testing
package mock

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/posestore/errors"
	"github.com/suparena/posestore/storagemodels"
)

// UpsertCall records one Upsert invocation.
type UpsertCall struct {
	Collection string
	DocumentID string
	Value      json.RawMessage
}

type docKey struct {
	collection string
	id         string
}

// DataStore is an in-memory datastore.Store
type DataStore struct {
	mu          sync.RWMutex
	data        map[docKey]json.RawMessage
	calls       []UpsertCall
	upsertError error
	failAt      int
	failAtError error
	getError    error
	deleteError error
	onUpsert    func(UpsertCall)
}

// New creates a new mock DataStore
func New() *DataStore {
	return &DataStore{
		data: make(map[docKey]json.RawMessage),
	}
}

// WithUpsertError makes every Upsert return err
func (m *DataStore) WithUpsertError(err error) *DataStore {
	m.upsertError = err
	return m
}

// FailUpsertAt makes the nth Upsert call (1-based) return err.
// The failing call is still recorded.
func (m *DataStore) FailUpsertAt(n int, err error) *DataStore {
	m.failAt = n
	m.failAtError = err
	return m
}

// WithGetError makes Get operations return an error
func (m *DataStore) WithGetError(err error) *DataStore {
	m.getError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// OnUpsert registers a hook invoked for every Upsert call before it is applied
func (m *DataStore) OnUpsert(f func(UpsertCall)) *DataStore {
	m.onUpsert = f
	return m
}

// Upsert stores a copy of value, replacing any existing document
func (m *DataStore) Upsert(ctx context.Context, collection, documentID string, value json.RawMessage) error {
	call := UpsertCall{Collection: collection, DocumentID: documentID, Value: clone(value)}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	n := len(m.calls)
	hook := m.onUpsert
	m.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if m.upsertError != nil {
		return m.upsertError
	}
	if m.failAt > 0 && n == m.failAt {
		return m.failAtError
	}
	if documentID == "" {
		return errors.NewValidationError("documentID", "must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[docKey{collection, documentID}] = call.Value
	return nil
}

// Get retrieves a document body
func (m *DataStore) Get(ctx context.Context, collection, documentID string) (json.RawMessage, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.data[docKey{collection, documentID}]; ok {
		return clone(v), nil
	}
	return nil, errors.NewNotFoundError(collection, documentID)
}

// Delete removes a document
func (m *DataStore) Delete(ctx context.Context, collection, documentID string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := docKey{collection, documentID}
	if _, exists := m.data[k]; !exists {
		return errors.NewNotFoundError(collection, documentID)
	}
	delete(m.data, k)
	return nil
}

// List returns the collection's documents ordered by id
func (m *DataStore) List(ctx context.Context, params *storagemodels.ListParams) ([]storagemodels.Document, error) {
	if params == nil || params.Collection == "" {
		return nil, errors.NewValidationError("collection", "required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []storagemodels.Document
	for k, v := range m.data {
		if k.collection != params.Collection || !strings.HasPrefix(k.id, params.IDPrefix) {
			continue
		}
		docs = append(docs, storagemodels.Document{Collection: k.collection, ID: k.id, Body: clone(v)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	if params.Limit > 0 && int(params.Limit) < len(docs) {
		docs = docs[:params.Limit]
	}
	return docs, nil
}

// Stream delivers the List result on a channel
func (m *DataStore) Stream(ctx context.Context, params *storagemodels.ListParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	options := storagemodels.ApplyStreamOptions(opts...)
	resultChan := make(chan storagemodels.StreamResult, options.BufferSize)

	go func() {
		defer close(resultChan)

		docs, err := m.List(ctx, params)
		if err != nil {
			select {
			case <-ctx.Done():
			case resultChan <- storagemodels.StreamResult{Error: err}:
			}
			return
		}

		for i, doc := range docs {
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.StreamResult{
				Document: doc,
				Meta:     storagemodels.StreamMeta{Index: int64(i), PageNumber: 1},
			}:
			}
		}
	}()

	return resultChan
}

// Helper methods for testing

// Calls returns the recorded Upsert calls in order
func (m *DataStore) Calls() []UpsertCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]UpsertCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// SetDocument directly stores a document (for testing)
func (m *DataStore) SetDocument(collection, documentID string, value json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[docKey{collection, documentID}] = clone(value)
}

// Documents returns a copy of a collection's documents keyed by id
func (m *DataStore) Documents(collection string) map[string]json.RawMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]json.RawMessage)
	for k, v := range m.data {
		if k.collection == collection {
			result[k.id] = clone(v)
		}
	}
	return result
}

// Count returns the number of stored documents
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data and recorded calls
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[docKey]json.RawMessage)
	m.calls = nil
}

func clone(v json.RawMessage) json.RawMessage {
	if v == nil {
		return nil
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out
}
