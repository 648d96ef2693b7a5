/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeerrors "github.com/suparena/posestore/errors"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"POSESTORE_SOURCE", "POSESTORE_COLLECTION", "POSESTORE_LOG_LEVEL", "POSESTORE_HTTP_TIMEOUT",
		"AWS_REGION", "AWS_ACCESS_KEY", "AWS_SECRET_KEY", "AWS_DDB_TABLE", "AWS_DDB_ENDPOINT",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "static/data/joint_angle.json", cfg.Source)
	assert.Equal(t, "pose_references", cfg.Collection)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.HTTPTimeout)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "poseimport.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
source: https://example.test/joint_angle.json
httpTimeout: 5s
dynamodb:
  region: eu-west-1
  table: from-yaml
`), 0o644))

	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("AWS_DDB_TABLE=from-dotenv\nAWS_DDB_ENDPOINT=http://localhost:8000\n"), 0o644))

	t.Setenv("AWS_DDB_ENDPOINT", "http://dynamodb.local:8000")

	cfg, err := Load(yamlPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/joint_angle.json", cfg.Source, "yaml overrides default")
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "eu-west-1", cfg.DynamoDB.Region)
	assert.Equal(t, "from-dotenv", cfg.DynamoDB.Table, ".env overrides yaml")
	assert.Equal(t, "http://dynamodb.local:8000", cfg.DynamoDB.Endpoint, "process env overrides .env")
	assert.Equal(t, "pose_references", cfg.Collection, "unset keys keep their default")
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("source: [unterminated"), 0o644))
	_, err = Load(bad, filepath.Join(dir, "missing.env"))
	assert.Error(t, err)

	t.Setenv("POSESTORE_HTTP_TIMEOUT", "soon")
	_, err = Load("", filepath.Join(dir, "missing.env"))
	assert.ErrorContains(t, err, "parse env")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.DynamoDB.Region = "us-east-1"
		cfg.DynamoDB.Table = "poses"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing table", mutate: func(c *Config) { c.DynamoDB.Table = "" }},
		{name: "missing region", mutate: func(c *Config) { c.DynamoDB.Region = "" }},
		{name: "missing collection", mutate: func(c *Config) { c.Collection = "" }},
		{name: "half credentials", mutate: func(c *Config) { c.DynamoDB.AccessKey = "AKIA" }},
		{name: "negative timeout", mutate: func(c *Config) { c.HTTPTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.True(t, storeerrors.IsValidationError(cfg.Validate()))
		})
	}
}
