package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
)

const defaultLockTTL = 5 * time.Second

// releaseScript deletes the key only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ScanLock serializes scans of the same identifier across instances.
// Key format: scanlock:<identifier>
type ScanLock struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewScanLock creates a ScanLock. The TTL bounds how long a crashed holder
// can block the identifier.
func NewScanLock(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ScanLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ScanLock{client: client, ttl: ttl, log: log}
}

// Acquire takes the lock or returns domain.ErrScanInProgress when another
// scan of the same identifier holds it.
func (l *ScanLock) Acquire(ctx context.Context, identifier string) (func(), error) {
	key := l.key(identifier)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("scan lock acquire: %w", err)
	}
	if !ok {
		return nil, domain.ErrScanInProgress
	}

	return func() { l.release(identifier, key, token) }, nil
}

// release runs on a fresh context since the request one may already be done.
// A failed release leaves the identifier blocked until the TTL expires.
func (l *ScanLock) release(identifier, key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.log.Warn().Err(err).
			Str("identifier", identifier).
			Str("key", key).
			Dur("ttl", l.ttl).
			Msg("scan lock release failed")
	}
}

func (l *ScanLock) key(identifier string) string {
	return fmt.Sprintf("scanlock:%s", identifier)
}
