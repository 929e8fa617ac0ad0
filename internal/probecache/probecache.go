// Package probecache records probed compiler identities so that repeated
// queries about the same compiler binary can skip the probe subprocess.
package probecache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goplus/ccprobe/pkgs/toolchain"
)

// Store directory layout:
//
//	probeDir/
//	  .probe.json    # maps compiler path → Entry
const cacheFile = ".probe.json"

// Entry is the recorded result of probing one compiler binary.
type Entry struct {
	Info      toolchain.CompilerInfo `json:"info"`
	ModTime   time.Time              `json:"mod_time"`
	ProbeTime time.Time              `json:"probe_time"`
}

type probeCache struct {
	Cache map[string]*Entry `json:"cache"`
}

// Store is a probe record file rooted at a directory.
type Store struct {
	dir   string
	cache probeCache
}

// Open loads the store under dir. A missing record file yields an empty store.
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir}
	cache, err := loadCache(filepath.Join(dir, cacheFile))
	switch {
	case err == nil:
		s.cache = *cache
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}
	return s, nil
}

// Get returns the recorded identity of compiler. Records whose compiler
// binary has changed since the probe are treated as absent.
func (s *Store) Get(compiler string) (toolchain.CompilerInfo, bool) {
	entry, ok := s.cache.Cache[compiler]
	if !ok {
		return toolchain.CompilerInfo{}, false
	}
	fi, err := os.Stat(compiler)
	if err != nil || !fi.ModTime().Equal(entry.ModTime) {
		return toolchain.CompilerInfo{}, false
	}
	return entry.Info, true
}

// Put records info as the identity of compiler.
func (s *Store) Put(compiler string, info toolchain.CompilerInfo) error {
	fi, err := os.Stat(compiler)
	if err != nil {
		return err
	}
	if s.cache.Cache == nil {
		s.cache.Cache = make(map[string]*Entry)
	}
	s.cache.Cache[compiler] = &Entry{
		Info:      info,
		ModTime:   fi.ModTime(),
		ProbeTime: time.Now(),
	}
	return nil
}

// Save writes the store back to disk.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return saveCache(filepath.Join(s.dir, cacheFile), &s.cache)
}

func loadCache(path string) (*probeCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cache probeCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

func saveCache(path string, cache *probeCache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
