package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/wire"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

func writeTestOctree(t *testing.T, dir string) {
	t.Helper()
	root := geom.Cube{Min: geom.Vec3{}, Edge: 8}

	enc := nodeio.Encoding{Position: encoding.Uint16, Cube: root}
	f, err := os.Create(filepath.Join(dir, nodeio.AttributeFileName(octree.Root().String(), "position")))
	require.NoError(t, err)
	b := pointdata.NewBatchBuilder()
	b.Push(pointdata.Point{Position: geom.Vec3{X: 1, Y: 1, Z: 1}})
	require.NoError(t, nodeio.NewNodeWriter(enc, f, nil).Write(b.Build()))
	require.NoError(t, f.Close())

	meta := &octree.Meta{Version: octree.MetaVersion, RootCube: root, Resolution: 0.01, Nodes: map[octree.NodeId]uint64{octree.Root(): 1}}
	metaFile, err := os.Create(filepath.Join(dir, "meta.pb"))
	require.NoError(t, err)
	require.NoError(t, wire.WriteLengthPrefixed(metaFile, wire.EncodeMeta(meta)))
	require.NoError(t, metaFile.Close())
}

func identityMatrixParam() string {
	m := [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	var buf bytes.Buffer
	for i, v := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return buf.String()
}

func TestHandleVisibleNodesRequiresMatrix(t *testing.T) {
	dir := t.TempDir()
	writeTestOctree(t, dir)
	state, err := newAppState(dir, 10)
	require.NoError(t, err)

	router := newRouter(state)
	req := httptest.NewRequest(http.MethodGet, "/visible_nodes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleVisibleNodesReturnsRoot(t *testing.T) {
	dir := t.TempDir()
	writeTestOctree(t, dir)
	state, err := newAppState(dir, 10)
	require.NoError(t, err)

	router := newRouter(state)
	req := httptest.NewRequest(http.MethodGet, "/visible_nodes?matrix="+identityMatrixParam(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []visibleNodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, octree.Root().String(), resp[0].ID)
	assert.Equal(t, uint64(1), resp[0].NumPoints)
}

func TestHandleNodesDataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeTestOctree(t, dir)
	state, err := newAppState(dir, 10)
	require.NoError(t, err)

	router := newRouter(state)
	body, err := json.Marshal(nodesDataRequest{NodeIDs: []string{octree.Root().String()}})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/nodes_data", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())

	reader := bytes.NewReader(rec.Body.Bytes())
	positionBlob, err := wire.ReadLengthPrefixed(reader)
	require.NoError(t, err)
	assert.NotEmpty(t, positionBlob)
}

func TestHandleNodesDataRejectsBadID(t *testing.T) {
	dir := t.TempDir()
	writeTestOctree(t, dir)
	state, err := newAppState(dir, 10)
	require.NoError(t, err)

	router := newRouter(state)
	body, err := json.Marshal(nodesDataRequest{NodeIDs: []string{"not-a-node-id"}})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/nodes_data", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
