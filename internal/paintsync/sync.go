package paintsync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/brush"
	"github.com/Faultbox/meshpaint/internal/geometry"
	"github.com/Faultbox/meshpaint/internal/logger"
)

// Stats counts forwarded updates.
type Stats struct {
	Forwarded int // updates accepted by the store
	Failed    int // updates the store rejected
}

// Sync owns the live edit map of one model and mirrors it into a mesh and
// a Store. It is not safe for concurrent use.
type Sync struct {
	store   Store
	modelID string

	mesh  *geometry.Mesh
	base  [3]float32
	edits EditMap
	stats Stats
}

// New creates a Sync for modelID backed by store.
func New(store Store, modelID string) *Sync {
	return &Sync{
		store:   store,
		modelID: modelID,
		base:    geometry.DefaultColor,
		edits:   make(EditMap),
	}
}

// SetBaseColor sets the color Reload resets unpainted vertices to.
func (s *Sync) SetBaseColor(c [3]float32) {
	s.base = c
}

// ModelID returns the store key.
func (s *Sync) ModelID() string {
	return s.modelID
}

// Mount loads the stored edits and replays them onto mesh. A load error
// leaves the mesh unpainted and is returned; decode problems are reported
// but never fail the mount.
func (s *Sync) Mount(ctx context.Context, mesh *geometry.Mesh) (Report, error) {
	s.mesh = mesh
	s.edits = make(EditMap)

	raw, err := s.store.Load(ctx, s.modelID)
	if err != nil {
		logger.Error("failed to load paint edits",
			zap.String("model", s.modelID),
			zap.Error(err),
		)
		return Report{}, fmt.Errorf("load edits for %q: %w", s.modelID, err)
	}

	report := s.apply(raw)
	logger.Info("mounted paint edits",
		zap.String("model", s.modelID),
		zap.Int("edits", len(s.edits)),
		zap.Int("diagnostics", len(report.Diagnostics)),
	)
	return report, nil
}

// Reload re-reads the store and rebuilds the mesh colors from scratch.
// Used when the backing data changes outside this process.
func (s *Sync) Reload(ctx context.Context) (Report, error) {
	if s.mesh == nil {
		return Report{}, fmt.Errorf("reload %q: not mounted", s.modelID)
	}
	raw, err := s.store.Load(ctx, s.modelID)
	if err != nil {
		return Report{}, fmt.Errorf("reload edits for %q: %w", s.modelID, err)
	}

	s.mesh.ResetColors(s.base)
	report := s.apply(raw)
	logger.Debug("reloaded paint edits",
		zap.String("model", s.modelID),
		zap.Int("edits", len(s.edits)),
	)
	return report, nil
}

func (s *Sync) apply(raw map[string]string) Report {
	edits, report := Decode(raw, s.mesh.VertexCount())
	for _, d := range report.Diagnostics {
		logger.Warn("paint edit rejected",
			zap.String("model", s.modelID),
			zap.Stringer("kind", d.Kind),
			zap.String("index", d.Key),
			zap.String("color", d.Value),
		)
	}
	s.edits = edits
	Replay(s.mesh, edits)
	return report
}

// Forward records a non-empty diff and sends just those entries to the
// store. Store failures are logged and counted; the live edit map keeps the
// new colors either way.
func (s *Sync) Forward(ctx context.Context, diff brush.Diff) {
	if diff.Empty() {
		return
	}
	s.edits.MergeDiff(diff)

	if err := s.store.Update(ctx, s.modelID, Encode(FromDiff(diff))); err != nil {
		s.stats.Failed++
		logger.Error("failed to store paint edits",
			zap.String("model", s.modelID),
			zap.Int("vertices", len(diff)),
			zap.Error(err),
		)
		return
	}
	s.stats.Forwarded++
}

// Edits returns a copy of the live edit map.
func (s *Sync) Edits() EditMap {
	return s.edits.Clone()
}

// Stats returns forwarding counters.
func (s *Sync) Stats() Stats {
	return s.stats
}

// Unmount drops the mesh reference. The edit map is kept.
func (s *Sync) Unmount() {
	s.mesh = nil
}
