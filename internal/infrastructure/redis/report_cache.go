// Package redis implementa la caché de informes sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
)

var _ ports.ReportCache = (*ReportCache)(nil)

const keyPrefix = "stockpro:reports:"

// ReportCache guarda cada informe en su propia clave con TTL, bajo la versión
// vigente del tenant. Invalidate incrementa la versión: las entradas anteriores
// dejan de ser alcanzables y caducan solas.
type ReportCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// Options conexión de la caché.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, opt Options) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewReportCache construye la caché. ttl <= 0 usa 5 minutos.
func NewReportCache(client *goredis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportCache{client: client, ttl: ttl}
}

func versionKey(tenantID string) string {
	return keyPrefix + tenantID + ":version"
}

func entryKey(tenantID string, version int64, period string) string {
	return fmt.Sprintf("%s%s:v%d:%s", keyPrefix, tenantID, version, period)
}

func (c *ReportCache) GetReport(ctx context.Context, tenantID, period string) (*dto.ReportResponse, int64, error) {
	version, err := c.client.Get(ctx, versionKey(tenantID)).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return nil, 0, fmt.Errorf("redis get version: %w", err)
	}
	raw, err := c.client.Get(ctx, entryKey(tenantID, version, period)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, version, nil
		}
		return nil, version, fmt.Errorf("redis get: %w", err)
	}
	var r dto.ReportResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		// entrada corrupta: se trata como ausente
		return nil, version, nil
	}
	return &r, version, nil
}

func (c *ReportCache) SetReport(ctx context.Context, tenantID, period string, version int64, r *dto.ReportResponse) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, entryKey(tenantID, version, period), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *ReportCache) Invalidate(ctx context.Context, tenantID string) error {
	if err := c.client.Incr(ctx, versionKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	return nil
}
