/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suparena/posestore/config"
	"github.com/suparena/posestore/datastore"
	"github.com/suparena/posestore/datastore/mock"
	"github.com/suparena/posestore/posture"
)

// setup points the commands at an in-memory store and returns it with a
// command whose output is captured.
func setup(t *testing.T) (*mock.DataStore, *cobra.Command, *bytes.Buffer) {
	t.Helper()

	store := mock.New()
	origOpen := openStore
	openStore = func(ctx context.Context, c *config.Config) (datastore.Store, error) { return store, nil }
	t.Cleanup(func() {
		openStore = origOpen
		strict = false
		landmarks = false
	})

	cfg = config.Default()
	logger = zap.NewNop()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return store, cmd, out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunImport(t *testing.T) {
	store, cmd, _ := setup(t)
	src := writeFile(t, "joint_angle.json", `{"squat": {"left_knee": 90}, "plank": {"left_hip": 180}}`)

	require.NoError(t, runImport(cmd, []string{src}))

	calls := store.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "squat", calls[0].DocumentID)
	assert.Equal(t, "plank", calls[1].DocumentID)
	assert.Equal(t, "pose_references", calls[0].Collection)
}

func TestRunImportFailureModes(t *testing.T) {
	t.Run("LenientSwallowsFailure", func(t *testing.T) {
		_, cmd, _ := setup(t)
		assert.NoError(t, runImport(cmd, []string{filepath.Join(t.TempDir(), "missing.json")}))
	})

	t.Run("StrictReturnsFailure", func(t *testing.T) {
		_, cmd, out := setup(t)
		strict = true
		src := writeFile(t, "bad.json", `[1, 2, 3]`)

		assert.Error(t, runImport(cmd, []string{src}))
		assert.Contains(t, out.String(), `"written": []`)
	})
}

func TestRunGetAndList(t *testing.T) {
	store, cmd, out := setup(t)
	store.SetDocument("pose_references", "squat", json.RawMessage(`{"left_knee":90}`))
	store.SetDocument("pose_references", "lunge", json.RawMessage(`{"left_knee":100}`))

	require.NoError(t, runGet(cmd, []string{"squat"}))
	assert.JSONEq(t, `{"left_knee":90}`, strings.TrimSpace(out.String()))

	out.Reset()
	require.NoError(t, runList(cmd, nil))
	assert.Equal(t, "lunge\nsquat\n", out.String())

	assert.Error(t, runGet(cmd, []string{"missing"}))
}

func TestRunCompare(t *testing.T) {
	store, cmd, out := setup(t)
	store.SetDocument("pose_references", "squat", json.RawMessage(`{"name":"Squat","left_knee":90,"right_knee":90}`))
	live := writeFile(t, "live.json", `{"left_knee": 100, "right_knee": 150}`)

	require.NoError(t, runCompare(cmd, []string{"squat", live}))

	var m posture.Match
	require.NoError(t, json.Unmarshal(out.Bytes(), &m))
	assert.Equal(t, 2, m.Total)
	assert.Equal(t, 1, m.Matching)
	assert.False(t, m.Correct)
	assert.Equal(t, []string{posture.RightKnee}, m.Mismatched)
}

func TestReadLiveAnglesFromLandmarks(t *testing.T) {
	_, err := readLiveAngles(writeFile(t, "few.json", `[{"x":0,"y":0}]`), true)
	assert.Error(t, err)

	points := make([]posture.Point, 33)
	data, err := json.Marshal(points)
	require.NoError(t, err)

	angles, err := readLiveAngles(writeFile(t, "landmarks.json", string(data)), true)
	require.NoError(t, err)
	assert.Len(t, angles, len(posture.JointLandmarks))
}

func TestBuildLogger(t *testing.T) {
	l, err := buildLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))

	l, err = buildLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = buildLogger("loud", false)
	assert.Error(t, err)
}
