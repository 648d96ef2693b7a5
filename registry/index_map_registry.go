/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"
)

// DefaultIndexMap lays out a collection's documents under one partition,
// one sort key per document id.
var DefaultIndexMap = map[string]string{
	"PK": "COLLECTION#{Collection}",
	"SK": "DOC#{DocumentID}",
}

var (
	indexMapRegistry = make(map[string]map[string]string)
	mu               sync.RWMutex
)

// RegisterIndexMap associates a collection with the key templates (PK, SK, etc.)
// used to address its documents. Registering a collection twice replaces the map.
func RegisterIndexMap(collection string, idxMap map[string]string) error {
	if _, ok := idxMap["PK"]; !ok {
		return fmt.Errorf("index map for %q has no PK template", collection)
	}
	if _, ok := idxMap["SK"]; !ok {
		return fmt.Errorf("index map for %q has no SK template", collection)
	}

	cp := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		cp[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[collection] = cp
	return nil
}

// GetIndexMap retrieves the index map registered for the collection, if any.
func GetIndexMap(collection string) (map[string]string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[collection]
	return m, ok
}

// IndexMapFor returns the registered index map for the collection, or DefaultIndexMap.
func IndexMapFor(collection string) map[string]string {
	if m, ok := GetIndexMap(collection); ok {
		return m
	}
	return DefaultIndexMap
}

// UnregisterIndexMap removes a collection's index map.
func UnregisterIndexMap(collection string) {
	mu.Lock()
	defer mu.Unlock()
	delete(indexMapRegistry, collection)
}
