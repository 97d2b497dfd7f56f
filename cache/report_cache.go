// Package cache menyimpan hasil list laporan sementara di Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"safegrowth-backend/app/model"

	"github.com/redis/go-redis/v9"
)

// genKey adalah counter generasi. Invalidate menaikkan counter ini sehingga
// semua entri generasi lama tidak pernah dibaca lagi dan habis oleh TTL-nya sendiri.
const (
	genKey     = "safegrowth:reports:gen"
	listPrefix = "safegrowth:reports:list:"
)

// ReportCache menyimpan hasil ListReports per filter.
//
// Pemanggil membaca Generation sebelum query ke database lalu memakai nilai yang
// sama untuk Get dan Set. Hasil query yang selesai setelah Invalidate tersimpan
// di generasi lama, jadi tidak pernah disajikan.
type ReportCache interface {
	Generation(ctx context.Context) (int64, error)
	// Get mengembalikan (views, true) jika ada di cache.
	Get(ctx context.Context, gen int64, filter model.ReportFilter) ([]model.ReportView, bool, error)
	Set(ctx context.Context, gen int64, filter model.ReportFilter, views []model.ReportView) error
	Invalidate(ctx context.Context) error
}

// NewRedisClient membuat client Redis dan memastikan koneksinya hidup.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewReportCache membuat cache berbasis Redis. Jika client nil atau ttl <= 0,
// dikembalikan cache no-op.
func NewReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	if client == nil || ttl <= 0 {
		return noopCache{}
	}
	return &redisReportCache{client: client, ttl: ttl}
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func entryKey(gen int64, filter model.ReportFilter) string {
	return listPrefix + strconv.FormatInt(gen, 10) + ":status=" + filter.Status + "&category=" + filter.Category
}

func (c *redisReportCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

func (c *redisReportCache) Get(ctx context.Context, gen int64, filter model.ReportFilter) ([]model.ReportView, bool, error) {
	raw, err := c.client.Get(ctx, entryKey(gen, filter)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached reports: %w", err)
	}

	var views []model.ReportView
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached reports: %w", err)
	}
	return views, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, gen int64, filter model.ReportFilter, views []model.ReportView) error {
	raw, err := json.Marshal(views)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, entryKey(gen, filter), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache reports: %w", err)
	}
	return nil
}

func (c *redisReportCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, genKey).Err()
}

type noopCache struct{}

func (noopCache) Generation(context.Context) (int64, error) { return 0, nil }

func (noopCache) Get(context.Context, int64, model.ReportFilter) ([]model.ReportView, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, int64, model.ReportFilter, []model.ReportView) error {
	return nil
}

func (noopCache) Invalidate(context.Context) error { return nil }
