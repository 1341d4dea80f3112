package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/internal/wire"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/query"
)

// attributeOrder is the fixed (position, color, intensity) chunk order
// of a /nodes_data blob (§6).
var attributeOrder = []string{"position", "color", "intensity"}

// newRouter wires the two HTTP endpoints of §6's "HTTP surface
// (collaborator)", following the gorilla/mux router-per-handler shape
// of hauke96-simple-osm-queries's web/api.go.
func newRouter(state *appState) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/visible_nodes", handleVisibleNodes(state)).Methods(http.MethodGet)
	r.HandleFunc("/nodes_data", handleNodesData(state)).Methods(http.MethodPost)
	return r
}

type visibleNodeResponse struct {
	ID        string `json:"id"`
	NumPoints uint64 `json:"num_points"`
}

// handleVisibleNodes answers GET /visible_nodes?matrix=m0,m1,...,m15.
// The view-projection matrix is the only required query parameter;
// viewport_height and min_projected_size_pixels are optional overrides
// of query.DefaultEngineOptions().
func handleVisibleNodes(state *appState) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		matrixParam := req.URL.Query().Get("matrix")
		m, err := parseMatrix(matrixParam)
		if err != nil {
			writeError(w, err)
			return
		}

		opts := query.DefaultEngineOptions()
		if v := req.URL.Query().Get("viewport_height"); v != "" {
			h, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeError(w, werrors.Wrap(werrors.KindDomainError, err, "parse viewport_height"))
				return
			}
			opts.ViewportHeightPixels = h
		}
		if v := req.URL.Query().Get("min_projected_size_pixels"); v != "" {
			s, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeError(w, werrors.Wrap(werrors.KindDomainError, err, "parse min_projected_size_pixels"))
				return
			}
			opts.MinProjectedSizePixels = s
		}

		frustum := geom.NewFrustum(m)
		ids := query.VisibleNodes(state.tree, frustum, opts)

		resp := make([]visibleNodeResponse, len(ids))
		for i, id := range ids {
			resp[i] = visibleNodeResponse{ID: id.String(), NumPoints: state.tree.Index.NumPoints(id)}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			sigolo.Errorf("write /visible_nodes response: %v", err)
		}
	}
}

func parseMatrix(param string) ([16]float64, error) {
	var m [16]float64
	if param == "" {
		return m, werrors.New(werrors.KindDomainError, "missing required query parameter 'matrix'")
	}
	fields := strings.Split(param, ",")
	if len(fields) != 16 {
		return m, werrors.New(werrors.KindDomainError, "matrix must have exactly 16 comma-separated components")
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return m, werrors.Wrap(werrors.KindDomainError, err, "parse matrix component")
		}
		m[i] = v
	}
	return m, nil
}

type nodesDataRequest struct {
	NodeIDs []string `json:"node_ids"`
}

// handleNodesData answers POST /nodes_data: a JSON list of node ids in,
// a concatenated binary payload out -- one (position_blob ||
// color_blob || intensity_blob) group per requested node, each chunk
// individually length-prefixed (§6). Blobs are cached by node id so a
// repeated request for the same node skips the filesystem.
func handleNodesData(state *appState) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body nodesDataRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, werrors.Wrap(werrors.KindMalformedData, err, "decode request body"))
			return
		}

		var out bytes.Buffer
		for _, raw := range body.NodeIDs {
			id, err := octree.ParseNodeId(raw)
			if err != nil {
				writeError(w, err)
				return
			}
			blob, err := state.nodeBlob(req.Context(), id)
			if err != nil {
				writeError(w, err)
				return
			}
			out.Write(blob)
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if _, err := w.Write(out.Bytes()); err != nil {
			sigolo.Errorf("write /nodes_data response: %v", err)
		}
	}
}

// nodeBlob returns id's (position || color || intensity) chunk group,
// building and caching it on first request. Meta.Attributes lists
// every attribute the octree's schema *can* carry, not which ones a
// given node actually wrote (pkg/builder's knownAttributes does the
// same) -- so each attribute is requested individually here, and a
// KindUnknownAttribute failure is treated as "this node has no such
// stream" rather than propagated, matching readNodeBatch's
// os.IsNotExist tolerance on the write side.
func (s *appState) nodeBlob(ctx context.Context, id octree.NodeId) ([]byte, error) {
	key := id.String()
	if cached, ok := s.nodeData.Get(key); ok {
		return cached, nil
	}

	var buf bytes.Buffer
	for _, attr := range attributeOrder {
		payload, _, err := s.readAttribute(ctx, id, attr)
		if err != nil {
			return nil, err
		}
		if err := wire.WriteLengthPrefixed(&buf, payload); err != nil {
			return nil, werrors.Wrap(werrors.KindIo, err, "write chunk "+attr)
		}
	}

	blob := buf.Bytes()
	s.nodeData.Add(key, blob)
	return blob, nil
}

// readAttribute opens and fully reads one attribute stream for id, ok
// is false when the node simply doesn't carry that attribute.
func (s *appState) readAttribute(ctx context.Context, id octree.NodeId, attr string) ([]byte, bool, error) {
	streams, err := s.provider.Data(ctx, id, []string{attr})
	if err != nil {
		if werrors.Is(err, werrors.KindUnknownAttribute) {
			return nil, false, nil
		}
		return nil, false, err
	}
	r := streams[attr]
	defer r.Close()

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, false, werrors.Wrap(werrors.KindIo, err, "read attribute "+attr)
	}
	return payload, true, nil
}

// writeError maps a werrors.Kind to the HTTP status §7 assigns it and
// writes a small JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case werrors.Is(err, werrors.KindDomainError), werrors.Is(err, werrors.KindUnknownAttribute), werrors.Is(err, werrors.KindMalformedData):
		status = http.StatusBadRequest
	case werrors.Is(err, werrors.KindCancelled):
		status = 499
	case werrors.Is(err, werrors.KindIo), werrors.Is(err, werrors.KindTransport):
		status = http.StatusInternalServerError
	}
	sigolo.Errorf("request failed: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
