// Package relayout drives when the layout engine runs. Parameter changes
// are debounced so a slider drag triggers one relayout, not dozens;
// panel-open and explicit refresh run immediately. The published snapshot
// is replaced wholesale, never patched, so readers never observe a
// half-updated layout.
package relayout

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/map-engine/pkg/label"
	"github.com/jwebster45206/map-engine/pkg/layout"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// DebounceDelay is how long after the last parameter change a relayout
// fires.
const DebounceDelay = 500 * time.Millisecond

// Snapshot is one immutable layout result.
type Snapshot struct {
	Nodes        []worldmap.MapNode
	LabelOffsets map[string]float64
	MapVersion   uint64
	ConfigHash   uint64
}

// Scheduler owns the current snapshot and recomputes it on demand.
type Scheduler struct {
	mu       sync.Mutex
	data     *worldmap.MapData
	cfg      layout.Config
	snapshot *Snapshot
	timer    *time.Timer
	onUpdate func(*Snapshot)
	logger   *slog.Logger
}

// NewScheduler creates a scheduler over the given snapshot source.
// onUpdate is called with each new snapshot, including the immediate one
// computed here.
func NewScheduler(data *worldmap.MapData, cfg layout.Config, onUpdate func(*Snapshot), logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		data:     data.Sanitize(logger),
		cfg:      cfg.Clamped(),
		onUpdate: onUpdate,
		logger:   logger,
	}
	s.refreshLocked()
	return s
}

// Snapshot returns the current layout result. The returned value is
// immutable; the scheduler only ever swaps in a fresh one.
func (s *Scheduler) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Refresh relays out immediately: panel becoming visible or an explicit
// refresh request.
func (s *Scheduler) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.refreshLocked()
}

// SetMapData replaces the map snapshot and relays out immediately; the
// host replaces map data on game events, which must not lag.
func (s *Scheduler) SetMapData(data *worldmap.MapData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.data = data.Sanitize(s.logger)
	s.refreshLocked()
}

// SetConfig schedules a debounced relayout with new parameters. Repeated
// calls within the window collapse into one run with the last value.
func (s *Scheduler) SetConfig(cfg layout.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg.Clamped()
	s.stopTimerLocked()
	s.timer = time.AfterFunc(DebounceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.refreshLocked()
	})
}

// Stop cancels any pending debounced relayout.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

func (s *Scheduler) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) refreshLocked() {
	nodes := layout.Layout(s.data, s.cfg)
	snap := &Snapshot{
		Nodes:        nodes,
		LabelOffsets: label.ResolveOffsets(nodes, s.data, s.cfg),
		MapVersion:   s.data.Version(),
		ConfigHash:   s.cfg.Hash(),
	}
	s.snapshot = snap
	if s.onUpdate != nil {
		s.onUpdate(snap)
	}
}
