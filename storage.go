/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package posestore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/posestore/datastore"
	"github.com/suparena/posestore/storagemodels"
)

// StorageManager routes document operations by collection to registered
// stores. Collections without a registration use the default store.
// StorageManager itself satisfies datastore.Store.
type StorageManager struct {
	mu           sync.RWMutex
	defaultStore datastore.Store
	stores       map[string]datastore.Store
}

var _ datastore.Store = (*StorageManager)(nil)

// NewStorageManager creates a manager that falls back to defaultStore.
// defaultStore may be nil, in which case unregistered collections fail.
func NewStorageManager(defaultStore datastore.Store) *StorageManager {
	return &StorageManager{
		defaultStore: defaultStore,
		stores:       make(map[string]datastore.Store),
	}
}

// RegisterDataStore binds store to collection.
func (sm *StorageManager) RegisterDataStore(collection string, store datastore.Store) error {
	if store == nil {
		return fmt.Errorf("datastore for collection %q is nil", collection)
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.stores[collection]; exists {
		return fmt.Errorf("datastore for collection %q already registered", collection)
	}
	sm.stores[collection] = store
	return nil
}

// RemoveDataStore drops the registration for collection.
func (sm *StorageManager) RemoveDataStore(collection string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.stores[collection]; !exists {
		return fmt.Errorf("datastore for collection %q not found", collection)
	}
	delete(sm.stores, collection)
	return nil
}

// GetDataStore returns the store serving collection, falling back to the default.
func (sm *StorageManager) GetDataStore(collection string) (datastore.Store, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ds, exists := sm.stores[collection]; exists {
		return ds, nil
	}
	if sm.defaultStore != nil {
		return sm.defaultStore, nil
	}
	return nil, fmt.Errorf("datastore for collection %q not found", collection)
}

// Collections returns the registered collection names, sorted.
func (sm *StorageManager) Collections() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	keys := make([]string, 0, len(sm.stores))
	for k := range sm.stores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (sm *StorageManager) Upsert(ctx context.Context, collection, documentID string, value json.RawMessage) error {
	ds, err := sm.GetDataStore(collection)
	if err != nil {
		return err
	}
	return ds.Upsert(ctx, collection, documentID, value)
}

func (sm *StorageManager) Get(ctx context.Context, collection, documentID string) (json.RawMessage, error) {
	ds, err := sm.GetDataStore(collection)
	if err != nil {
		return nil, err
	}
	return ds.Get(ctx, collection, documentID)
}

func (sm *StorageManager) Delete(ctx context.Context, collection, documentID string) error {
	ds, err := sm.GetDataStore(collection)
	if err != nil {
		return err
	}
	return ds.Delete(ctx, collection, documentID)
}

func (sm *StorageManager) List(ctx context.Context, params *storagemodels.ListParams) ([]storagemodels.Document, error) {
	if params == nil {
		return nil, fmt.Errorf("list params are required")
	}
	ds, err := sm.GetDataStore(params.Collection)
	if err != nil {
		return nil, err
	}
	return ds.List(ctx, params)
}

// Stream delivers a routing failure as a single error result.
func (sm *StorageManager) Stream(ctx context.Context, params *storagemodels.ListParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	var ds datastore.Store
	var err error
	if params == nil {
		err = fmt.Errorf("list params are required")
	} else {
		ds, err = sm.GetDataStore(params.Collection)
	}
	if err != nil {
		ch := make(chan storagemodels.StreamResult, 1)
		ch <- storagemodels.StreamResult{Error: err}
		close(ch)
		return ch
	}
	return ds.Stream(ctx, params, opts...)
}
