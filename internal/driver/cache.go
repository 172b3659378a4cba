package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachedSite format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a cache key.
type Digest [sha256.Size]byte

// DiskCache хранит результаты переписывания по хешу текста вызова и опций.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedSite struct {
	Schema uint16
	Site   SiteResult
}

// OpenDiskCache opens a cache under dir, or under $XDG_CACHE_HOME/app
// (~/.cache/app) when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "sites", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a site to the cache.
func (c *DiskCache) Put(key Digest, site *SiteResult) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&cachedSite{Schema: diskCacheSchemaVersion, Site: *site}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a site from the cache. Entries of another schema are misses.
func (c *DiskCache) Get(key Digest, out *SiteResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var entry cachedSite
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	if entry.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	*out = entry.Site
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "sites"))
}

// cacheKey хеширует всё, от чего зависит результат переписывания
func cacheKey(args []byte, offset int, opts Options) Digest {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(offset)) //nolint:gosec // offset is a display width
	h.Write(buf[:])
	c := opts.Capture
	fmt.Fprintf(h, "%s\x00%s\x00%t\x00", c.Callee, c.ColumnLabel, c.TypeSelf)
	if c.Table != nil {
		h.Write([]byte(c.Table.Fingerprint()))
	}
	h.Write(args)
	var d Digest
	h.Sum(d[:0])
	return d
}
