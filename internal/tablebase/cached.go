package tablebase

import (
	"sync"

	"github.com/corvidchess/chessplay/internal/board"
	"github.com/corvidchess/chessplay/internal/storage"
)

// CachedProber wraps another prober with an in-memory cache, optionally
// backed by a persistent store so results from a previous process survive
// a restart instead of re-hitting the (typically network-bound) inner
// prober.
type CachedProber struct {
	inner   Prober
	cache   map[uint64]ProbeResult
	mu      sync.RWMutex
	maxSize int
	hits    uint64
	misses  uint64

	persist *storage.Store
}

// NewCachedProber creates a cached prober wrapping the given prober.
func NewCachedProber(inner Prober, cacheSize int) *CachedProber {
	return &CachedProber{
		inner:   inner,
		cache:   make(map[uint64]ProbeResult, cacheSize),
		maxSize: cacheSize,
	}
}

// NewCachedLichessProber creates a cached Lichess prober with default cache
// size, backed by the persistent store when one can be opened.
func NewCachedLichessProber() *CachedProber {
	cp := NewCachedProber(NewLichessProber(), 100000)
	if s, err := storage.Open(); err == nil {
		cp.persist = s
	}
	return cp
}

// encodeProbeResult/decodeProbeResult give ProbeResult a fixed 6-byte
// on-disk encoding for the persistent store.
func encodeProbeResult(r ProbeResult) []byte {
	found := byte(0)
	if r.Found {
		found = 1
	}
	buf := make([]byte, 6)
	buf[0] = found
	buf[1] = byte(int8(r.WDL))
	dtz := int32(r.DTZ)
	buf[2] = byte(dtz)
	buf[3] = byte(dtz >> 8)
	buf[4] = byte(dtz >> 16)
	buf[5] = byte(dtz >> 24)
	return buf
}

func decodeProbeResult(data []byte) (ProbeResult, bool) {
	if len(data) != 6 {
		return ProbeResult{}, false
	}
	dtz := int32(data[2]) | int32(data[3])<<8 | int32(data[4])<<16 | int32(data[5])<<24
	return ProbeResult{
		Found: data[0] != 0,
		WDL:   WDL(int8(data[1])),
		DTZ:   int(dtz),
	}, true
}

func (cp *CachedProber) Probe(pos *board.Position) ProbeResult {
	// Check in-memory cache first
	cp.mu.RLock()
	if result, ok := cp.cache[pos.Hash]; ok {
		cp.mu.RUnlock()
		cp.mu.Lock()
		cp.hits++
		cp.mu.Unlock()
		return result
	}
	cp.mu.RUnlock()

	// Then the persistent store, if any.
	if cp.persist != nil {
		if data, found, err := cp.persist.TablebaseEntry(pos.Hash); err == nil && found {
			if result, ok := decodeProbeResult(data); ok {
				cp.mu.Lock()
				cp.hits++
				cp.cacheLocked(pos.Hash, result)
				cp.mu.Unlock()
				return result
			}
		}
	}

	// Cache miss - probe underlying
	result := cp.inner.Probe(pos)

	cp.mu.Lock()
	cp.misses++
	cp.cacheLocked(pos.Hash, result)
	cp.mu.Unlock()

	if cp.persist != nil {
		cp.persist.SetTablebaseEntry(pos.Hash, encodeProbeResult(result))
	}

	return result
}

// cacheLocked inserts into the in-memory map; caller holds cp.mu.
func (cp *CachedProber) cacheLocked(hash uint64, result ProbeResult) {
	if len(cp.cache) >= cp.maxSize {
		// Simple eviction: clear half the cache
		i := 0
		for k := range cp.cache {
			if i >= cp.maxSize/2 {
				break
			}
			delete(cp.cache, k)
			i++
		}
	}
	cp.cache[hash] = result
}

func (cp *CachedProber) ProbeRoot(pos *board.Position) RootResult {
	// Root probing is not cached (needs move info)
	return cp.inner.ProbeRoot(pos)
}

func (cp *CachedProber) MaxPieces() int {
	return cp.inner.MaxPieces()
}

func (cp *CachedProber) Available() bool {
	return cp.inner.Available()
}

// HitRate returns the cache hit rate as a percentage.
func (cp *CachedProber) HitRate() float64 {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	total := cp.hits + cp.misses
	if total == 0 {
		return 0
	}
	return float64(cp.hits) / float64(total) * 100
}

// CacheSize returns the current number of cached entries.
func (cp *CachedProber) CacheSize() int {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	return len(cp.cache)
}

// Clear clears the cache.
func (cp *CachedProber) Clear() {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.cache = make(map[uint64]ProbeResult, cp.maxSize)
	cp.hits = 0
	cp.misses = 0
}
