// Package cache caché Redis de los KPIs del dashboard.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/pkg/config"
)

var (
	_ analytics.KPICache       = (*KPICache)(nil)
	_ inventory.ChangeNotifier = (*KPICache)(nil)
)

const defaultPrefix = "stockmaster:kpis"

// KPICache guarda los KPIs por filtro. Las claves llevan una generación que
// InventoryChanged incrementa, así un solo INCR invalida todas las entradas.
type KPICache struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewKPICache construye la caché. ttl <= 0 deja las entradas sin expiración.
func NewKPICache(rdb redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *KPICache {
	return &KPICache{rdb: rdb, prefix: defaultPrefix, ttl: ttl, log: log}
}

// Get busca la entrada de la generación vigente y devuelve esa generación
// también en miss, para pasarla a Set.
func (c *KPICache) Get(ctx context.Context, key string) (*dto.DashboardKPIsDTO, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.rdb.Get(ctx, c.entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("redis get: %w", err)
	}
	var kpis dto.DashboardKPIsDTO
	if err := json.Unmarshal(raw, &kpis); err != nil {
		return nil, 0, false, fmt.Errorf("decodificar kpis: %w", err)
	}
	return &kpis, gen, true, nil
}

// Set guarda el resultado bajo gen, la generación leída antes de calcularlo.
// Si hubo una invalidación entretanto la entrada queda huérfana y expira por TTL.
func (c *KPICache) Set(ctx context.Context, key string, gen int64, kpis *dto.DashboardKPIsDTO) error {
	raw, err := json.Marshal(kpis)
	if err != nil {
		return fmt.Errorf("codificar kpis: %w", err)
	}
	if err := c.rdb.Set(ctx, c.entryKey(gen, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InventoryChanged invalida todas las entradas tras un commit que tocó
// documentos, productos o el ledger.
func (c *KPICache) InventoryChanged(ctx context.Context) {
	if err := c.rdb.Incr(ctx, c.prefix+":gen").Err(); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo invalidar la caché de KPIs")
	}
}

func (c *KPICache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.prefix+":gen").Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generación: %w", err)
	}
	return gen, nil
}

func (c *KPICache) entryKey(gen int64, key string) string {
	return c.prefix + ":" + strconv.FormatInt(gen, 10) + ":" + key
}
