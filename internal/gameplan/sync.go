package gameplan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters"
)

// ItemResult is the per-item outcome of one sync pass.
type ItemResult struct {
	Area    string `json:"area"`
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Status  string `json:"status,omitempty"`
	Path    string `json:"path,omitempty"`
	Changed bool   `json:"changed"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Report summarizes a sync pass. A skipped item is a recoverable
// per-item failure; the pass as a whole still succeeds.
type Report struct {
	Synced  int          `json:"synced"`
	Skipped int          `json:"skipped"`
	Items   []ItemResult `json:"items"`
}

// SyncService mirrors all configured tracked items into their local
// documents, one area at a time, one item at a time.
type SyncService struct {
	cfg      *config.Config
	registry *adapters.Registry
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSyncService wires the sync orchestrator.
func NewSyncService(cfg *config.Config, registry *adapters.Registry, logger zerolog.Logger) *SyncService {
	return &SyncService{
		cfg:      cfg,
		registry: registry,
		now:      time.Now,
		logger:   logger.With().Str("component", "sync").Logger(),
	}
}

// Run processes every configured area in sorted order; a non-empty
// area argument restricts the pass to that one area. Fetch failures
// are isolated per item: the item is reported as skipped, its existing
// document is left untouched, and the batch continues.
func (s *SyncService) Run(ctx context.Context, area string) (*Report, error) {
	report := &Report{}

	if area != "" {
		if _, ok := s.cfg.Areas[area]; !ok {
			return nil, fmt.Errorf("area %q is not configured", area)
		}
	}

	areaNames := make([]string, 0, len(s.cfg.Areas))
	for name := range s.cfg.Areas {
		if area != "" && name != area {
			continue
		}
		areaNames = append(areaNames, name)
	}
	sort.Strings(areaNames)

	for _, name := range areaNames {
		adapter, ok := s.registry.Get(name)
		if !ok {
			s.logger.Warn().Str("area", name).Msg("no adapter for configured area")
			continue
		}

		items := adapter.Items(s.cfg.Areas[name])
		if len(items) == 0 {
			continue
		}

		if !adapter.Available() {
			for _, item := range items {
				report.add(ItemResult{
					Area:    name,
					ID:      item.ID,
					Skipped: true,
					Error:   fmt.Sprintf("adapter %q is not available", name),
				})
			}
			continue
		}

		for _, item := range items {
			report.add(s.syncItem(ctx, adapter, name, item))
		}
	}

	return report, nil
}

func (r *Report) add(res ItemResult) {
	if res.Skipped {
		r.Skipped++
	} else {
		r.Synced++
	}
	r.Items = append(r.Items, res)
}

func (s *SyncService) syncItem(ctx context.Context, adapter adapters.Adapter, area string, item adapters.TrackedItem) ItemResult {
	res := ItemResult{Area: area, ID: item.ID}

	// reuse the existing document directory when one exists so the
	// sidecar and any manual content stay put as titles drift
	path := adapters.FindDocument(s.cfg.AreaDir(area), item.ID)

	var prev adapters.SyncMetadata
	if path != "" {
		prev = adapters.LoadMetadata(path)
	}

	snap, err := adapter.Fetch(ctx, item)
	if err != nil {
		s.logger.Warn().Str("area", area).Str("item", item.ID).Err(err).Msg("fetch failed, skipping item")
		res.Skipped = true
		res.Error = err.Error()
		return res
	}

	if path == "" {
		path = adapter.StoragePath(item, snap.Title)
	}
	res.Path = path
	res.Title = snap.Title
	res.Status = snap.Status
	res.Changed = adapters.DetectChange(prev, snap.Version)

	if err := adapter.UpdateDocument(path, snap, item); err != nil {
		res.Skipped = true
		res.Error = err.Error()
		return res
	}

	meta := adapters.SyncMetadata{
		LastSync: s.now().UTC().Format(time.RFC3339),
		Updated:  snap.Version,
	}
	if err := adapters.SaveMetadata(path, meta); err != nil {
		s.logger.Warn().Str("item", item.ID).Err(err).Msg("sidecar write failed")
		res.Error = err.Error()
	}

	s.logger.Debug().
		Str("area", area).
		Str("item", item.ID).
		Bool("changed", res.Changed).
		Msg("item synced")
	return res
}
