/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/posestore/storagemodels"
)

func seededStore(t *testing.T, n int) (*DocumentStore, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	store := New(api, "poses-test")
	for i := 0; i < n; i++ {
		body := json.RawMessage(fmt.Sprintf(`{"knee":%d}`, i))
		if err := store.Upsert(context.Background(), "pose_references", fmt.Sprintf("p%02d", i), body); err != nil {
			t.Fatal(err)
		}
	}
	return store, api
}

// TestStreamWithOptions tests streaming with various options
func TestStreamWithOptions(t *testing.T) {
	ctx := context.Background()
	params := &storagemodels.ListParams{Collection: "pose_references"}

	t.Run("AllPages", func(t *testing.T) {
		store, api := seededStore(t, 7)

		var progressCalled int32
		resultChan := store.Stream(ctx, params,
			storagemodels.WithPageSize(3),
			storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
				atomic.AddInt32(&progressCalled, 1)
			}),
		)

		var lastIndex int64 = -1
		count := 0
		for result := range resultChan {
			if result.Error != nil {
				t.Fatalf("Unexpected error: %v", result.Error)
			}
			if result.Meta.Index <= lastIndex {
				t.Errorf("Index should be increasing: got %d after %d", result.Meta.Index, lastIndex)
			}
			lastIndex = result.Meta.Index
			if result.Meta.PageNumber < 1 {
				t.Errorf("Page number should be >= 1, got %d", result.Meta.PageNumber)
			}
			count++
		}

		if count != 7 {
			t.Fatalf("Expected 7 documents, got %d", count)
		}
		if api.queries != 3 {
			t.Errorf("Expected 3 pages, got %d", api.queries)
		}
		if atomic.LoadInt32(&progressCalled) == 0 {
			t.Error("Progress handler was not called")
		}
	})

	t.Run("RetryThrottling", func(t *testing.T) {
		store, api := seededStore(t, 2)
		api.queryErr = []error{&types.ProvisionedThroughputExceededException{}}

		resultChan := store.Stream(ctx, params, storagemodels.WithRetryBackoff(time.Millisecond))

		count := 0
		for result := range resultChan {
			if result.Error != nil {
				t.Fatalf("Unexpected error: %v", result.Error)
			}
			count++
		}
		if count != 2 {
			t.Fatalf("Expected 2 documents after retry, got %d", count)
		}
	})

	t.Run("NonRetryableStops", func(t *testing.T) {
		store, api := seededStore(t, 2)
		api.queryErr = []error{errors.New("access denied")}

		var results []storagemodels.StreamResult
		for result := range store.Stream(ctx, params) {
			results = append(results, result)
		}
		if len(results) != 1 || results[0].Error == nil {
			t.Fatalf("Expected a single error result, got %+v", results)
		}
	})

	t.Run("ErrorHandlerContinues", func(t *testing.T) {
		store, api := seededStore(t, 2)
		api.queryErr = []error{errors.New("transient")}

		handled := 0
		resultChan := store.Stream(ctx, params, storagemodels.WithErrorHandler(func(err error) bool {
			handled++
			return true
		}))

		count := 0
		for result := range resultChan {
			if result.Error == nil {
				count++
			}
		}
		if handled != 1 || count != 2 {
			t.Fatalf("Expected 1 handled error and 2 documents, got %d and %d", handled, count)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		store, _ := seededStore(t, 5)

		count := 0
		for range store.Stream(ctx, &storagemodels.ListParams{Collection: "pose_references", Limit: 3}) {
			count++
		}
		if count != 3 {
			t.Fatalf("Expected 3 documents, got %d", count)
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		store, _ := seededStore(t, 10)
		cancelCtx, cancel := context.WithCancel(ctx)

		resultChan := store.Stream(cancelCtx, params,
			storagemodels.WithPageSize(1),
			storagemodels.WithBufferSize(0),
		)

		<-resultChan
		cancel()

		// The channel must close once the worker observes cancellation
		received := 1
		for range resultChan {
			received++
		}
		if received >= 10 {
			t.Fatalf("Expected stream to stop early, received %d", received)
		}
	})
}
