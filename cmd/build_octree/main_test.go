package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPoints = `0 0 0 100
1 0 0 100
0 1 0 100
0 0 1 100
`

func TestRunBuildEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "cloud.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte(testPoints), 0o644))

	outputDir := filepath.Join(dir, "octree")
	meta, err := runBuild(outputDir, "0.1", inputPath)
	require.NoError(t, err)

	assert.Greater(t, len(meta.Nodes), 0)
	_, err = os.Stat(filepath.Join(outputDir, "meta.pb"))
	assert.NoError(t, err)
}

func TestRunBuildRejectsBadResolution(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "cloud.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte(testPoints), 0o644))

	_, err := runBuild(filepath.Join(dir, "octree"), "not-a-number", inputPath)
	assert.Error(t, err)
}
