/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	storeerrors "github.com/suparena/posestore/errors"
)

const (
	defaultSource     = "static/data/joint_angle.json"
	defaultCollection = "pose_references"
	defaultLogLevel   = "info"
)

// Config holds the settings of the poseimport command.
type Config struct {
	Source      string         `yaml:"source" env:"POSESTORE_SOURCE"`
	Collection  string         `yaml:"collection" env:"POSESTORE_COLLECTION"`
	LogLevel    string         `yaml:"logLevel" env:"POSESTORE_LOG_LEVEL"`
	HTTPTimeout time.Duration  `yaml:"httpTimeout" env:"POSESTORE_HTTP_TIMEOUT"`
	DynamoDB    DynamoDBConfig `yaml:"dynamodb"`
}

// DynamoDBConfig holds the document store connection settings.
type DynamoDBConfig struct {
	Region    string `yaml:"region" env:"AWS_REGION"`
	AccessKey string `yaml:"accessKey" env:"AWS_ACCESS_KEY"`
	SecretKey string `yaml:"secretKey" env:"AWS_SECRET_KEY"`
	Table     string `yaml:"table" env:"AWS_DDB_TABLE"`
	Endpoint  string `yaml:"endpoint" env:"AWS_DDB_ENDPOINT"`
}

// Default returns the built-in configuration. HTTPTimeout zero means no timeout.
func Default() *Config {
	return &Config{
		Source:     defaultSource,
		Collection: defaultCollection,
		LogLevel:   defaultLogLevel,
	}
}

// Load builds a Config from the defaults, then the YAML file at path (if
// non-empty), then .env files, then the process environment. Later layers
// win. Missing .env files are ignored; godotenv never overrides variables
// that are already set.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings required to reach the DynamoDB document store.
func (c *Config) Validate() error {
	if c.Collection == "" {
		return storeerrors.NewValidationError("collection", "required")
	}
	if c.DynamoDB.Table == "" {
		return storeerrors.NewValidationError("dynamodb.table", "required (AWS_DDB_TABLE)")
	}
	if c.DynamoDB.Region == "" {
		return storeerrors.NewValidationError("dynamodb.region", "required (AWS_REGION)")
	}
	if (c.DynamoDB.AccessKey == "") != (c.DynamoDB.SecretKey == "") {
		return storeerrors.NewValidationError("dynamodb", "access key and secret key must be set together")
	}
	if c.HTTPTimeout < 0 {
		return storeerrors.NewValidationError("httpTimeout", "must not be negative")
	}
	return nil
}
