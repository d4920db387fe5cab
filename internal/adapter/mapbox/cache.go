package mapbox

import (
	"container/list"
	"context"
	"sync"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/observability"
)

// CachedGeocoder wraps a Geocoder with a bounded LRU cache keyed by
// coordinates rounded to six decimal places (about 0.1 m).
type CachedGeocoder struct {
	inner   domain.Geocoder
	metrics *observability.Metrics

	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	entries  map[coordKey]*list.Element
}

type coordKey struct{ lat, lon int64 }

type cacheEntry struct {
	key    coordKey
	result domain.GeocodingResult
}

// NewCachedGeocoder creates a cache decorator holding at most maxEntries results.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:    inner,
		metrics:  metrics,
		capacity: max(1, maxEntries),
		order:    list.New(),
		entries:  make(map[coordKey]*list.Element),
	}
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := newCoordKey(lat, lon)
	if result, ok := c.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return result, err
	}
	// Empty results are not cached so a later call can retry.
	if result.FormattedAddress != "" {
		c.put(key, result)
	}
	return result, nil
}

// Len reports the number of cached results.
func (c *CachedGeocoder) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func newCoordKey(lat, lon float64) coordKey {
	const scale = 1e6
	return coordKey{lat: int64(lat*scale + 0.5*sign(lat)), lon: int64(lon*scale + 0.5*sign(lon))}
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

func (c *CachedGeocoder) get(key coordKey) (domain.GeocodingResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return domain.GeocodingResult{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).result, true
}

func (c *CachedGeocoder) put(key coordKey, result domain.GeocodingResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).result = result
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, result: result})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}
