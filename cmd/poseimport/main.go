/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/posestore"
	"github.com/suparena/posestore/config"
	"github.com/suparena/posestore/datastore"
	"github.com/suparena/posestore/datastore/ddb"
)

var (
	// Global flags
	configPath string
	collection string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// openStore builds the document store the commands operate on.
	openStore = openDynamoDBStore
)

var rootCmd = &cobra.Command{
	Use:   "poseimport",
	Short: "Load reference postures into the pose document store",
	Long: `poseimport uploads a joint angle file to the pose_references collection
and reads the stored reference poses back.

Configuration is read from the optional --config YAML file, then .env, then
the environment (POSESTORE_*, AWS_REGION, AWS_DDB_TABLE, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if collection != "" {
			cfg.Collection = collection
		}

		logger, err = buildLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&collection, "collection", "", "Collection to operate on (default pose_references)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// openDynamoDBStore connects to the configured table and wraps it in a
// StorageManager so every collection is served by the same table.
func openDynamoDBStore(ctx context.Context, c *config.Config) (datastore.Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	store, err := ddb.NewDynamodbDocumentStore(ctx, ddb.ClientConfig{
		Region:    c.DynamoDB.Region,
		AccessKey: c.DynamoDB.AccessKey,
		SecretKey: c.DynamoDB.SecretKey,
		Endpoint:  c.DynamoDB.Endpoint,
	}, c.DynamoDB.Table, ddb.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	logger.Debug("document store opened",
		zap.String("table", store.TableName()),
		zap.String("region", c.DynamoDB.Region))
	return posestore.NewStorageManager(store), nil
}
