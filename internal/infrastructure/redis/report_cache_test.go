package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "stockpro:reports:t1:version", versionKey("t1"))
	assert.Equal(t, "stockpro:reports:t1:v0:month", entryKey("t1", 0, "month"))

	// cada periodo y cada versión tienen su propia clave (y su propio TTL)
	assert.NotEqual(t, entryKey("t1", 3, "week"), entryKey("t1", 3, "month"))
	assert.NotEqual(t, entryKey("t1", 3, "week"), entryKey("t1", 4, "week"))
	assert.NotEqual(t, entryKey("t1", 3, "week"), entryKey("t2", 3, "week"))
}

func TestNewReportCache_TTLPorDefecto(t *testing.T) {
	c := NewReportCache(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"}), 0)
	assert.Equal(t, 5*time.Minute, c.ttl)
}

// Sin servidor las operaciones devuelven error; los casos de uso lo registran y siguen.
func TestReportCache_SinServidorDevuelveError(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	c := NewReportCache(client, time.Minute)
	ctx := context.Background()

	r, _, err := c.GetReport(ctx, "t1", "month")
	assert.Error(t, err)
	assert.Nil(t, r)
	assert.Error(t, c.SetReport(ctx, "t1", "month", 0, &dto.ReportResponse{Period: "month"}))
	assert.Error(t, c.Invalidate(ctx, "t1"))
}

func TestNewClient_PingFalla(t *testing.T) {
	_, err := NewClient(context.Background(), Options{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}
