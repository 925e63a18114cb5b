package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/probelab/lanscope/internal/shared/types"
)

var validate = validator.New()

// ErrNotFound is returned when a target ID is not in the catalog.
var ErrNotFound = errors.New("target not found")

// Recorder receives catalog gauge updates. A nil Recorder disables it.
type Recorder interface {
	SetCatalogTargets(count int)
}

// Manager handles target catalog storage: an in-memory map fronting a
// directory of JSON files. Seeded targets live only in memory; targets
// created through the API are persisted so they survive restarts.
type Manager struct {
	targets sync.Map
	count   int64
	dir     string
	rec     Recorder
	timeNow func() time.Time
}

// NewManager creates a catalog manager. An empty dir disables persistence.
func NewManager(dir string, rec Recorder) *Manager {
	return &Manager{
		dir:     dir,
		rec:     rec,
		timeNow: time.Now,
	}
}

// Save validates a target, assigns an ID when missing, persists it, and
// installs it in the cache.
func (m *Manager) Save(target *types.Target) error {
	if err := m.prepare(target); err != nil {
		return err
	}

	if m.dir != "" {
		data, err := sonic.MarshalIndent(target, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal target: %w", err)
		}
		if err := os.MkdirAll(m.dir, 0o755); err != nil {
			return fmt.Errorf("failed to create catalog dir: %w", err)
		}
		if err := os.WriteFile(m.targetPath(target.ID), data, 0o644); err != nil {
			return fmt.Errorf("failed to write target: %w", err)
		}
	}

	m.install(target)
	return nil
}

// Put validates and caches a target without touching the filesystem. The
// seeder uses this so seed files are never rewritten at boot.
func (m *Manager) Put(target *types.Target) error {
	if err := m.prepare(target); err != nil {
		return err
	}
	m.install(target)
	return nil
}

// Get returns the target with the given ID.
func (m *Manager) Get(id string) (*types.Target, error) {
	if cached, ok := m.targets.Load(id); ok {
		return cached.(*types.Target), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns all targets, optionally filtered by expected address space,
// sorted by name for stable output.
func (m *Manager) List(space *types.AddressSpace) []*types.Target {
	var targets []*types.Target

	m.targets.Range(func(_, value interface{}) bool {
		target := value.(*types.Target)
		if space == nil || target.ExpectedSpace == *space {
			targets = append(targets, target)
		}
		return true
	})

	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return targets
}

// Delete removes a target from the cache and from disk when persisted.
func (m *Manager) Delete(id string) error {
	if _, ok := m.targets.Load(id); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if m.dir != "" {
		if err := os.Remove(m.targetPath(id)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete target file: %w", err)
		}
	}

	m.targets.Delete(id)
	atomic.AddInt64(&m.count, -1)
	m.updateGauge()
	return nil
}

// Exists checks if a target ID is in the catalog.
func (m *Manager) Exists(id string) bool {
	_, ok := m.targets.Load(id)
	return ok
}

// Stats returns catalog statistics.
func (m *Manager) Stats() types.CatalogStats {
	var total int
	spaces := make(map[types.AddressSpace]int)
	var lastUpdated *time.Time

	m.targets.Range(func(_, value interface{}) bool {
		target := value.(*types.Target)
		total++
		if target.ExpectedSpace != "" {
			spaces[target.ExpectedSpace]++
		}

		if lastUpdated == nil || target.UpdatedAt.After(*lastUpdated) {
			updated := target.UpdatedAt
			lastUpdated = &updated
		}

		return true
	})

	return types.CatalogStats{
		TotalTargets: total,
		Spaces:       spaces,
		LastUpdated:  lastUpdated,
	}
}

// prepare validates invariants and fills generated fields in place.
func (m *Manager) prepare(target *types.Target) error {
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	if target.ExpectedSpace != "" && !types.ValidSpace(target.ExpectedSpace, "full") {
		return fmt.Errorf("invalid target: unknown address space %q", target.ExpectedSpace)
	}

	if target.ID == "" {
		target.ID = uuid.NewString()
	}
	target.UpdatedAt = m.timeNow()
	if target.CreatedAt.IsZero() {
		target.CreatedAt = target.UpdatedAt
	}
	return nil
}

func (m *Manager) install(target *types.Target) {
	_, existed := m.targets.Load(target.ID)
	m.targets.Store(target.ID, target)
	if !existed {
		atomic.AddInt64(&m.count, 1)
	}
	m.updateGauge()
}

func (m *Manager) updateGauge() {
	if m.rec != nil {
		m.rec.SetCatalogTargets(int(atomic.LoadInt64(&m.count)))
	}
}

// targetPath generates the filesystem path for a persisted target.
func (m *Manager) targetPath(id string) string {
	return filepath.Join(m.dir, id+".json")
}
