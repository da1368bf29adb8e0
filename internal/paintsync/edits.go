// Package paintsync keeps a mesh color buffer in sync with a sparse,
// externally stored vertex paint map.
package paintsync

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Faultbox/meshpaint/internal/brush"
	"github.com/Faultbox/meshpaint/internal/geometry"
)

// VertexIndex is a global vertex index in a merged mesh.
type VertexIndex int

// EditMap is the typed sparse paint map: vertex index to color.
type EditMap map[VertexIndex]Color

// Clone returns a copy of m.
func (m EditMap) Clone() EditMap {
	out := make(EditMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Indices returns the keys in ascending order.
func (m EditMap) Indices() []VertexIndex {
	keys := make([]VertexIndex, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// MergeDiff records each changed vertex's final color, replacing any
// earlier entry.
func (m EditMap) MergeDiff(diff brush.Diff) {
	for _, c := range diff {
		m[VertexIndex(c.Index)] = FromArray(c.Color)
	}
}

// FromDiff converts a brush diff into an edit map.
func FromDiff(diff brush.Diff) EditMap {
	m := make(EditMap, len(diff))
	m.MergeDiff(diff)
	return m
}

// Decode parses the boundary form {"12": "#00ff00"}. Entries with a
// non-integer key, or an index outside [0, vertexCount), are dropped.
// Malformed colors become NeutralGray. A negative vertexCount skips the
// range check.
func Decode(raw map[string]string, vertexCount int) (EditMap, Report) {
	var report Report
	edits := make(EditMap, len(raw))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		idx, err := strconv.Atoi(key)
		if err != nil {
			report.add(InvalidIndex, key, value, err)
			continue
		}
		// "+12" and "012" would alias vertex 12.
		if strconv.Itoa(idx) != key {
			report.add(InvalidIndex, key, value, fmt.Errorf("index %q is not in canonical form", key))
			continue
		}
		if idx < 0 || (vertexCount >= 0 && idx >= vertexCount) {
			report.add(IndexOutOfRange, key, value, nil)
			continue
		}

		c, err := ParseHex(value)
		if err != nil {
			report.add(InvalidColor, key, value, err)
			c = NeutralGray
		}
		edits[VertexIndex(idx)] = c
	}
	return edits, report
}

// Encode converts edits to the boundary form.
func Encode(edits EditMap) map[string]string {
	raw := make(map[string]string, len(edits))
	for idx, c := range edits {
		raw[strconv.Itoa(int(idx))] = c.Hex()
	}
	return raw
}

// Replay writes every in-range edit into the mesh color buffer and returns
// how many were applied.
func Replay(mesh *geometry.Mesh, edits EditMap) int {
	n := mesh.VertexCount()
	applied := 0
	for idx, c := range edits {
		if idx < 0 || int(idx) >= n {
			continue
		}
		mesh.SetColor(int(idx), c.Array())
		applied++
	}
	return applied
}
