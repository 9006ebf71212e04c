package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fcontreras/macrofilter/internal/filter"
	"github.com/fcontreras/macrofilter/internal/model"
)

// Redis keys for the process-shared reference cache.
const (
	redisKeyCategories = "refdata:categories"
	redisKeyAllergens  = "refdata:allergens"
	redisKeyDietLabels = "refdata:diet_labels"
)

// cacheEntry is one cached reference list with its fetch time and TTL.
type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
	ttl       time.Duration
}

func (e *cacheEntry) expired(now time.Time) bool {
	return e == nil || now.Sub(e.fetchedAt) >= e.ttl
}

// ReferenceService loads the slowly-changing lookup tables (categories,
// allergens, diet labels) with a time-boxed cache, and resolves display
// names back to ids for the query builder. When a Redis client is present
// the cache is shared across processes; otherwise it is local only.
type ReferenceService struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// NewReferenceService creates a new ReferenceService instance. rdb may be nil.
func NewReferenceService(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *ReferenceService {
	return &ReferenceService{
		db:      db,
		rdb:     rdb,
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

// Categories returns all category names ordered by name, prefixed with the
// "All Categories" sentinel option.
func (s *ReferenceService) Categories(ctx context.Context) ([]string, error) {
	cached, err := s.load(ctx, redisKeyCategories, func() (interface{}, error) {
		var names []string
		err := s.db.WithContext(ctx).Model(&model.Category{}).
			Order("category_name").Pluck("category_name", &names).Error
		return names, err
	}, &[]string{})
	if err != nil {
		return nil, err
	}
	names := *cached.(*[]string)
	return append([]string{filter.CategoryAll}, names...), nil
}

// Allergens returns all allergens ordered by name.
func (s *ReferenceService) Allergens(ctx context.Context) ([]model.Allergen, error) {
	cached, err := s.load(ctx, redisKeyAllergens, func() (interface{}, error) {
		var allergens []model.Allergen
		err := s.db.WithContext(ctx).Order("name").Find(&allergens).Error
		return allergens, err
	}, &[]model.Allergen{})
	if err != nil {
		return nil, err
	}
	return *cached.(*[]model.Allergen), nil
}

// DietLabels returns all diet labels ordered by name.
func (s *ReferenceService) DietLabels(ctx context.Context) ([]model.DietLabel, error) {
	cached, err := s.load(ctx, redisKeyDietLabels, func() (interface{}, error) {
		var labels []model.DietLabel
		err := s.db.WithContext(ctx).Order("label_name").Find(&labels).Error
		return labels, err
	}, &[]model.DietLabel{})
	if err != nil {
		return nil, err
	}
	return *cached.(*[]model.DietLabel), nil
}

// ResolveAllergenIDs maps allergen display names to ids. Names that are not
// in the loaded table are dropped, mirroring the selection widgets where
// only loaded names can be chosen.
func (s *ReferenceService) ResolveAllergenIDs(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	allergens, err := s.Allergens(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(allergens))
	for _, a := range allergens {
		byName[a.Name] = a.ID
	}
	var ids []int64
	for _, n := range names {
		if id, ok := byName[n]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ResolveDietLabelIDs maps diet label display names to ids, dropping
// unknown names.
func (s *ReferenceService) ResolveDietLabelIDs(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	labels, err := s.DietLabels(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(labels))
	for _, l := range labels {
		byName[l.Name] = l.ID
	}
	var ids []int64
	for _, n := range names {
		if id, ok := byName[n]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// load returns the cached value for key, consulting the local entry, then
// Redis, then the database. Last successful fetch wins; Redis failures fall
// through to the database. dest must be a pointer to the concrete list type
// and is used for JSON decoding of the shared cache entry.
func (s *ReferenceService) load(ctx context.Context, key string, fetch func() (interface{}, error), dest interface{}) (interface{}, error) {
	now := time.Now()

	s.mu.Lock()
	if e := s.entries[key]; !e.expired(now) {
		v := e.value
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			if err := json.Unmarshal(data, dest); err == nil {
				s.store(key, dest, now)
				return dest, nil
			}
		}
	}

	value, err := fetch()
	if err != nil {
		return nil, err
	}
	// Re-box through dest so the cached type matches the Redis path.
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return nil, err
	}
	s.store(key, dest, now)

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
			log.Printf("reference cache: failed to write %s to redis: %v", key, err)
		}
	}
	return dest, nil
}

func (s *ReferenceService) store(key string, value interface{}, fetchedAt time.Time) {
	s.mu.Lock()
	s.entries[key] = &cacheEntry{value: value, fetchedAt: fetchedAt, ttl: s.ttl}
	s.mu.Unlock()
}

// Invalidate drops all cached reference lists. Used by the seeder after it
// rewrites the lookup tables.
func (s *ReferenceService) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.entries = make(map[string]*cacheEntry)
	s.mu.Unlock()

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, redisKeyCategories, redisKeyAllergens, redisKeyDietLabels).Err(); err != nil {
			log.Printf("reference cache: failed to invalidate redis keys: %v", err)
		}
	}
}
