package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/shared/types"
)

// seedPattern matches the target file formats the seeder understands.
const seedPattern = "**/*.{json,yaml,yml,toml}"

// Seeder populates a Manager from a directory of target files plus a
// small built-in set.
type Seeder struct {
	manager *Manager
	dir     string
	log     *logging.Logger
}

// NewSeeder creates a target seeder reading from dir.
func NewSeeder(manager *Manager, dir string, log *logging.Logger) *Seeder {
	if log == nil {
		log = logging.NewNop()
	}
	return &Seeder{
		manager: manager,
		dir:     dir,
		log:     log.Component("catalog"),
	}
}

// Seed loads all target files from the seed directory. A missing
// directory is not an error; invalid files are skipped with a warning.
func (s *Seeder) Seed() error {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		s.log.Info("target directory not found, skipping seed", zap.String("dir", s.dir))
		return nil
	}

	// fastwalk runs the callback concurrently, so collect under a lock
	// and decode in a deterministic order afterwards.
	var (
		mu    sync.Mutex
		paths []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, s.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(s.dir, p)
		if relErr != nil {
			return nil
		}
		if matched, _ := doublestar.Match(seedPattern, filepath.ToSlash(rel)); matched {
			mu.Lock()
			paths = append(paths, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk target directory: %w", err)
	}

	sort.Strings(paths)

	var loaded, failed int
	for _, p := range paths {
		if err := s.loadFile(p); err != nil {
			s.log.Warn("skipping target file", zap.String("file", filepath.Base(p)), zap.Error(err))
			failed++
		} else {
			loaded++
		}
	}

	s.log.Info("target seeding complete",
		zap.String("dir", s.dir),
		zap.Int("loaded", loaded),
		zap.Int("failed", failed))
	return nil
}

// loadFile decodes one target file by extension and installs it.
func (s *Seeder) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var target types.Target
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = sonic.Unmarshal(data, &target)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &target)
	case ".toml":
		err = toml.Unmarshal(data, &target)
	}
	if err != nil {
		return err
	}

	if target.ID == "" {
		// Derive a stable ID from the file name so reseeding updates in
		// place instead of accumulating duplicates.
		base := filepath.Base(path)
		target.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return s.manager.Put(&target)
}

// SeedDefaults installs the built-in targets when absent. deviceURL
// points at the companion echo server and may be empty.
func (s *Seeder) SeedDefaults(deviceURL string) error {
	defaults := []types.Target{
		{
			ID:            "router-admin",
			Name:          "Router Admin",
			URL:           "http://192.168.1.1/",
			ExpectedSpace: types.SpacePrivate,
			Description:   "Common home router address",
			Tags:          []string{"builtin", "rfc1918"},
		},
		{
			ID:            "link-local",
			Name:          "Link-Local Probe",
			URL:           "http://169.254.1.1/",
			ExpectedSpace: types.SpaceLocal,
			Description:   "Link-local address, reachable only on the same segment",
			Tags:          []string{"builtin"},
		},
		{
			ID:            "public-reference",
			Name:          "Public Reference",
			URL:           "https://example.com/",
			ExpectedSpace: types.SpacePublic,
			Description:   "Public endpoint for contrast with local probes",
			Tags:          []string{"builtin"},
		},
	}

	if deviceURL != "" {
		defaults = append(defaults, types.Target{
			ID:            "companion-device",
			Name:          "Companion Device",
			URL:           deviceURL,
			ExpectedSpace: types.SpaceLoopback,
			Description:   "The bundled echo server",
			Tags:          []string{"builtin", "device"},
		})
	}

	var seeded int
	for i := range defaults {
		if s.manager.Exists(defaults[i].ID) {
			continue
		}
		if err := s.manager.Put(&defaults[i]); err != nil {
			s.log.Warn("failed to seed default target", zap.String("name", defaults[i].Name), zap.Error(err))
			continue
		}
		seeded++
	}

	s.log.Debug("seeded default targets", zap.Int("count", seeded))
	return nil
}
