package memory

import (
	"time"

	"finance-insights-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// DocumentCache keeps recently uploaded document text in memory so the
// ask flow can resolve a document override without a database round trip.
type DocumentCache struct {
	cache *cache.Cache
}

func NewDocumentCache() *DocumentCache {
	// Documents expire after 1 hour; expired entries are purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &DocumentCache{
		cache: c,
	}
}

func (r *DocumentCache) Save(doc *entity.Document) {
	r.cache.Set(doc.Filename, doc, cache.DefaultExpiration)
}

func (r *DocumentCache) Get(filename string) (*entity.Document, bool) {
	if x, found := r.cache.Get(filename); found {
		return x.(*entity.Document), true
	}
	return nil, false
}

func (r *DocumentCache) Delete(filename string) {
	r.cache.Delete(filename)
}
