package rate

import (
	"context"
	"sync"
	"time"

	"github.com/dropDatabas3/alquiler/internal/metrics"
	rdb "github.com/redis/go-redis/v9"
)

// Rule es el límite de un bucket.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Buckets agrupa limiters por nombre (login, public, ...) con reglas propias,
// todos sobre el mismo backend. Un bucket sin regla no limita.
type Buckets struct {
	client *rdb.Client // nil = memoria
	prefix string
	rules  map[string]Rule

	mu       sync.Mutex
	limiters map[string]Limiter
}

func NewBuckets(client *rdb.Client, prefix string, rules map[string]Rule) *Buckets {
	if prefix == "" {
		prefix = "rl:"
	}
	return &Buckets{client: client, prefix: prefix, rules: rules, limiters: map[string]Limiter{}}
}

func (b *Buckets) limiter(bucket string) (Limiter, bool) {
	rule, ok := b.rules[bucket]
	if !ok || rule.Limit <= 0 || rule.Window <= 0 {
		return nil, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if l, ok := b.limiters[bucket]; ok {
		return l, true
	}
	var l Limiter
	if b.client != nil {
		l = NewRedisLimiter(b.client, b.prefix+bucket+":", rule.Limit, rule.Window)
	} else {
		l = NewMemoryLimiter(rule.Limit, rule.Window)
	}
	b.limiters[bucket] = l
	return l, true
}

// Allow aplica la regla del bucket a la key y cuenta los rechazos.
func (b *Buckets) Allow(ctx context.Context, bucket, key string) (Result, error) {
	l, ok := b.limiter(bucket)
	if !ok {
		return Result{Allowed: true}, nil
	}
	res, err := l.Allow(ctx, key)
	if err != nil {
		return res, err
	}
	if !res.Allowed {
		metrics.RateLimited.WithLabelValues(bucket).Inc()
	}
	return res, nil
}
