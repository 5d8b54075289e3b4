package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ManifestFile is the name of the per-directory texture listing.
const ManifestFile = "textures.json"

// ManifestEntry describes one exported texture in textures.json.
type ManifestEntry struct {
	Source   string `json:"source"`
	Name     string `json:"name"`
	File     string `json:"file"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MipCount int    `json:"mip_count"`
	Offset   int64  `json:"offset"`
}

// manifestSet gathers entries per output directory. Several archives share
// a directory when an output override is given, so listings are merged and
// written once after every worker has finished.
type manifestSet struct {
	mu   sync.Mutex
	dirs map[string][]ManifestEntry
}

func newManifestSet() *manifestSet {
	return &manifestSet{dirs: make(map[string][]ManifestEntry)}
}

func (m *manifestSet) add(dir string, entries []ManifestEntry) {
	if len(entries) == 0 {
		return
	}
	m.mu.Lock()
	m.dirs[dir] = append(m.dirs[dir], entries...)
	m.mu.Unlock()
}

// write stores textures.json in every directory that received textures.
// Entries are ordered by source archive, then by offset.
func (m *manifestSet) write() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for dir, entries := range m.dirs {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Source != entries[j].Source {
				return entries[i].Source < entries[j].Source
			}
			return entries[i].Offset < entries[j].Offset
		})

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encode manifest: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0644); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}
	return nil
}
