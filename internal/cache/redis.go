package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/travelagent/config"
	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

// AcquireBookingDayLock guards the flight+day uniqueness check against
// concurrent create requests. day must be a UTC midnight.
func (c *RedisCache) AcquireBookingDayLock(ctx context.Context, flightID int64, day time.Time, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, bookingDayKey(flightID, day), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseBookingDayLock(ctx context.Context, flightID int64, day time.Time) error {
	return c.client.Del(ctx, bookingDayKey(flightID, day)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func bookingDayKey(flightID int64, day time.Time) string {
	return fmt.Sprintf("lock:flight:%d:day:%s", flightID, day.Format("2006-01-02"))
}
