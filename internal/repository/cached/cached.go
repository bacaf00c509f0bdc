package cached

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/nkiryanov/modcheck/internal/models"
	"github.com/nkiryanov/modcheck/internal/repository"
)

const DefaultTTL = 10 * time.Minute

// WeightRepo keeps recent lookups of the wrapped repository in memory.
// Empty results are cached too: most sort codes have no entry.
type WeightRepo struct {
	next  repository.WeightRepo
	cache *cache.Cache
}

func NewWeightRepo(next repository.WeightRepo, ttl time.Duration) *WeightRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &WeightRepo{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *WeightRepo) FindWeights(ctx context.Context, sortCode int) ([]models.WeightEntry, error) {
	key := strconv.Itoa(sortCode)

	if v, ok := r.cache.Get(key); ok {
		return v.([]models.WeightEntry), nil
	}

	entries, err := r.next.FindWeights(ctx, sortCode)
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, entries, cache.DefaultExpiration)
	return entries, nil
}

// Drop all cached lookups
func (r *WeightRepo) Flush() {
	r.cache.Flush()
}
