/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/posestore"
	"github.com/suparena/posestore/importer"
	"github.com/suparena/posestore/posture"
	"github.com/suparena/posestore/storagemodels"
)

var (
	strict    bool
	landmarks bool
)

var importCmd = &cobra.Command{
	Use:   "import [location]",
	Short: "Upload a joint angle file, one document per posture",
	Long: `Fetches the posture file (http(s) URL, file:// URL or local path) and
upserts every posture into the collection in file order.

The first failure stops the import and is logged; postures written before it
are kept. With --strict the failure also makes the command exit non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var getCmd = &cobra.Command{
	Use:   "get <posture>",
	Short: "Print a stored posture document",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the postures stored in the collection",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var compareCmd = &cobra.Command{
	Use:   "compare <exercise> <angles.json>",
	Short: "Score live joint angles against a stored reference pose",
	Long: `Reads live joint angles from a JSON object such as {"left_knee": 92.5}
and compares them with the exercise's reference pose.

With --landmarks the file holds a pose landmark array ([{"x":..,"y":..}, ...])
and the joint angles are computed from it first.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd, posestore.GetVersionInfo())
	},
}

func init() {
	importCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the import fails")
	compareCmd.Flags().BoolVar(&landmarks, "landmarks", false, "Input file holds pose landmarks instead of joint angles")
}

func runImport(cmd *cobra.Command, args []string) error {
	location := cfg.Source
	if len(args) == 1 {
		location = args[0]
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	im := importer.New(store,
		importer.WithCollection(cfg.Collection),
		importer.WithLogger(logger),
		importer.WithFetcher(importer.NewSourceFetcher(&http.Client{Timeout: cfg.HTTPTimeout})))

	if !strict {
		im.ImportPostures(cmd.Context(), location)
		return nil
	}

	report, err := im.Run(cmd.Context(), location)
	if perr := printJSON(cmd, report); perr != nil {
		return perr
	}
	return err
}

func runGet(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	body, err := store.Get(cmd.Context(), cfg.Collection, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	docs, err := store.List(cmd.Context(), &storagemodels.ListParams{Collection: cfg.Collection})
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	logger.Debug("documents listed", zap.String("collection", cfg.Collection), zap.Int("count", len(ids)))
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	exercise, path := args[0], args[1]

	live, err := readLiveAngles(path, landmarks)
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	reference, err := posture.NewReferenceLoader(store, cfg.Collection, logger).Load(cmd.Context(), exercise)
	if err != nil {
		return err
	}
	return printJSON(cmd, posture.Compare(reference, live))
}

func readLiveAngles(path string, fromLandmarks bool) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if fromLandmarks {
		var points []posture.Point
		if err := json.Unmarshal(data, &points); err != nil {
			return nil, fmt.Errorf("parse landmarks %s: %w", path, err)
		}
		return posture.ExtractJointAngles(points)
	}

	var angles map[string]float64
	if err := json.Unmarshal(data, &angles); err != nil {
		return nil, fmt.Errorf("parse joint angles %s: %w", path, err)
	}
	return angles, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
