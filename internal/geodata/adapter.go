package geodata

import (
	"container/list"
	"sync"
	"time"

	"github.com/sarops/driftsim/internal/monitoring"
)

// cacheKey rounds a (lat,lng) pair to 1e-4 degrees, per spec.md §4.4.
type cacheKey struct {
	lat int64
	lng int64
}

func roundKey(lat, lng float64) cacheKey {
	const scale = 1e4
	return cacheKey{lat: int64(lat * scale), lng: int64(lng * scale)}
}

// Adapter wraps a Provider with an LRU depth cache bounded at a hard cap,
// evicted FIFO once full (spec.md §5). Safe for concurrent use by
// multiple particle workers: cache misses compute-once in the common
// case, but duplicate computes under contention are tolerated rather than
// serialized, per spec.md §5.
type Adapter struct {
	provider Provider
	cap      int

	mu    sync.Mutex
	ll    *list.List // front = most recently inserted, back = oldest
	items map[cacheKey]*list.Element
}

type depthEntry struct {
	key   cacheKey
	depth float64
}

// NewAdapter wraps provider with a depth cache of the given capacity.
func NewAdapter(provider Provider, capacity int) *Adapter {
	if capacity <= 0 {
		capacity = 10000
	}
	return &Adapter{
		provider: provider,
		cap:      capacity,
		ll:       list.New(),
		items:    make(map[cacheKey]*list.Element),
	}
}

// Depth returns the cached or freshly-queried depth at (lat,lng). On a
// provider miss it returns the spec.md §7 conservative default and
// reports synthetic=true.
func (a *Adapter) Depth(lat, lng float64) (depthM float64, synthetic bool) {
	key := roundKey(lat, lng)

	a.mu.Lock()
	if el, ok := a.items[key]; ok {
		d := el.Value.(*depthEntry).depth
		a.mu.Unlock()
		return d, false
	}
	a.mu.Unlock()

	depth, ok := a.provider.Depth(lat, lng)
	if !ok {
		monitoring.Logf("geodata: depth miss at (%.5f,%.5f), falling back to synthetic default", lat, lng)
		return DefaultDepthM, true
	}

	a.insert(key, depth)
	return depth, false
}

func (a *Adapter) insert(key cacheKey, depth float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if el, ok := a.items[key]; ok {
		el.Value.(*depthEntry).depth = depth
		return
	}

	if a.ll.Len() >= a.cap {
		oldest := a.ll.Back()
		if oldest != nil {
			a.ll.Remove(oldest)
			delete(a.items, oldest.Value.(*depthEntry).key)
		}
	}

	el := a.ll.PushFront(&depthEntry{key: key, depth: depth})
	a.items[key] = el
}

// Len returns the number of cached entries (test/metrics helper).
func (a *Adapter) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ll.Len()
}

// BathymetryGradientAt queries the wrapped provider directly (gradients
// are not cached; they are consulted far less often than depth and the
// cache budget is spent on depth per spec.md §5).
func (a *Adapter) BathymetryGradientAt(lat, lng float64) (BathymetryGradient, bool) {
	return a.provider.BathymetryGradientAt(lat, lng)
}

// ShoreInfoAt queries the wrapped provider directly, falling back to a
// conservative "far from shore" default on a miss.
func (a *Adapter) ShoreInfoAt(lat, lng float64) (ShoreInfo, bool) {
	info, ok := a.provider.ShoreInfoAt(lat, lng)
	if !ok {
		monitoring.Logf("geodata: shore-info miss at (%.5f,%.5f), falling back to synthetic default", lat, lng)
		return ShoreInfo{DistanceKm: 1000}, false
	}
	return info, true
}

// ShoreTypeAt queries the wrapped provider, falling back to sandy on miss.
func (a *Adapter) ShoreTypeAt(lat, lng float64) (ShoreKind, bool) {
	kind, ok := a.provider.ShoreTypeAt(lat, lng)
	if !ok {
		return DefaultShoreKind, false
	}
	return kind, true
}

// RipCurrentAt queries the wrapped provider directly.
func (a *Adapter) RipCurrentAt(lat, lng float64, t time.Time) (RipCurrent, bool) {
	return a.provider.RipCurrentAt(lat, lng, t)
}
