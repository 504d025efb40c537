// README: Driver reservations backed by Redis (SET NX with TTL, compare-and-delete release).
package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cabdesk/internal/types"
)

const reservationKeyPrefix = "matching:driver:%s:reserved"

// releaseScript deletes the key only when it still names the releasing booking.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisReserver struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisReserver(client *redis.Client, ttl time.Duration) *RedisReserver {
	if ttl <= 0 {
		ttl = defaultReservationTTL
	}
	return &RedisReserver{redis: client, ttl: ttl}
}

func (r *RedisReserver) Reserve(ctx context.Context, driverID, bookingID types.ID) (bool, error) {
	ok, err := r.redis.SetNX(ctx, reservationKey(driverID), string(bookingID), r.ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	holder, err := r.redis.Get(ctx, reservationKey(driverID)).Result()
	if err == redis.Nil {
		// expired between SETNX and GET; try once more
		return r.redis.SetNX(ctx, reservationKey(driverID), string(bookingID), r.ttl).Result()
	}
	if err != nil {
		return false, err
	}
	return holder == string(bookingID), nil
}

func (r *RedisReserver) Release(ctx context.Context, driverID, bookingID types.ID) error {
	return releaseScript.Run(ctx, r.redis, []string{reservationKey(driverID)}, string(bookingID)).Err()
}

// Holder returns the booking currently holding driverID, if any.
func (r *RedisReserver) Holder(ctx context.Context, driverID types.ID) (types.ID, bool, error) {
	v, err := r.redis.Get(ctx, reservationKey(driverID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return types.ID(v), true, nil
}

func reservationKey(driverID types.ID) string {
	return fmt.Sprintf(reservationKeyPrefix, string(driverID))
}
