package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cstlint/internal/analyzer"
	"cstlint/internal/diag"
	"cstlint/internal/source"
)

// Bump when cachedFile or the diagnostics it stores change shape.
const cacheSchemaVersion uint16 = 1

// Digest keys a cache entry.
type Digest [sha256.Size]byte

// DiskCache stores the diagnostics of previously linted files, keyed by
// file content, configuration and rule versions. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedFile is the msgpack payload of one entry. Spans are stored with
// the file ID they had when written and rebound on load.
type cachedFile struct {
	Schema      uint16
	Path        string
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Key derives the entry key for file linted under a configuration
// fingerprint by the given analyzer's rules.
func Key(file *source.File, fingerprint string, rules []analyzer.RuleMetadata) Digest {
	h := sha256.New()
	_, _ = h.Write(file.Hash[:])
	_, _ = h.Write([]byte(fingerprint))
	for _, m := range rules {
		_, _ = h.Write([]byte(m.Name + "@" + m.Version + "\n"))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// two-level fan-out keeps directories small
	return filepath.Join(c.dir, "lint", hexKey[:2], hexKey+".mp")
}

// Put writes the diagnostics of file under key. The write is atomic: a
// reader sees either the old entry or the new one.
func (c *DiskCache) Put(key Digest, file *source.File, diags []diag.Diagnostic) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload := cachedFile{Schema: cacheSchemaVersion, Path: file.Path, Diagnostics: diags}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get returns the diagnostics stored under key, rebound to file. A missing
// entry or one from another schema version is a miss, not an error.
func (c *DiskCache) Get(key Digest, file *source.File) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachedFile
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	for i := range payload.Diagnostics {
		rebind(&payload.Diagnostics[i], file.ID)
	}
	return payload.Diagnostics, true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func rebind(d *diag.Diagnostic, id source.FileID) {
	d.Primary.File = id
	for i := range d.Notes {
		d.Notes[i].Span.File = id
	}
	for i := range d.Fixes {
		for j := range d.Fixes[i].Edits {
			d.Fixes[i].Edits[j].Span.File = id
		}
	}
}
