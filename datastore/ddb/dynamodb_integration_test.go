//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	storeerrors "github.com/suparena/posestore/errors"
	"github.com/suparena/posestore/storagemodels"
)

func getIntegrationStore(t *testing.T) *DocumentStore {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	tableName := os.Getenv("AWS_DDB_TABLE")
	if tableName == "" {
		t.Skip("AWS_DDB_TABLE not set, skipping integration test")
	}

	store, err := NewDynamodbDocumentStore(context.Background(), ClientConfig{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Endpoint:  os.Getenv("AWS_DDB_ENDPOINT"),
	}, tableName)
	if err != nil {
		t.Fatalf("Failed to create datastore: %v", err)
	}
	return store
}

func TestIntegrationDocumentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := getIntegrationStore(t)

	collection := fmt.Sprintf("it_pose_references_%d", time.Now().UnixNano())
	body := json.RawMessage(`{"left_knee":172.5,"right_knee":170}`)

	if err := store.Upsert(ctx, collection, "standing", body); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.Get(ctx, collection, "standing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	t.Logf("Stored body: %s", got)

	docs, err := store.List(ctx, &storagemodels.ListParams{Collection: collection})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "standing" {
		t.Fatalf("Expected one document standing, got %+v", docs)
	}

	if err := store.Delete(ctx, collection, "standing"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, collection, "standing"); !storeerrors.IsNotFound(err) {
		t.Fatalf("Expected not found after delete, got %v", err)
	}
}
