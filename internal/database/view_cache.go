package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const viewKeyPrefix = "view:"

// ViewCache guarda el contenido renderizado de rutas lógicas del dashboard
// ("/dashboard/invoices", "/dashboard/customers") y permite invalidarlas
// tras una mutación exitosa. Con redis == nil todas las operaciones son no-op,
// el servicio funciona sin cache.
type ViewCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *logrus.Logger
}

// NewViewCache crea una nueva instancia del cache de vistas
func NewViewCache(r *Redis, ttl time.Duration, logger *logrus.Logger) *ViewCache {
	return &ViewCache{
		redis:  r,
		ttl:    ttl,
		logger: logger,
	}
}

// Get obtiene el contenido cacheado de una ruta. El segundo retorno indica hit.
func (c *ViewCache) Get(ctx context.Context, path string) (string, bool) {
	if c == nil || c.redis == nil {
		return "", false
	}

	payload, err := c.redis.Get(ctx, viewKeyPrefix+path)
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).WithField("path", path).Warn("Error reading view cache")
		}
		return "", false
	}

	return payload, true
}

// Put guarda el contenido renderizado de una ruta
func (c *ViewCache) Put(ctx context.Context, path string, payload string) {
	if c == nil || c.redis == nil {
		return
	}

	if err := c.redis.SetWithTTL(ctx, viewKeyPrefix+path, payload, c.ttl); err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("Error writing view cache")
	}
}

// Invalidate marca una ruta como stale eliminando su entrada.
// Los errores de Redis no interrumpen la mutación que ya fue persistida.
func (c *ViewCache) Invalidate(ctx context.Context, path string) {
	if c == nil || c.redis == nil {
		return
	}

	if err := c.redis.Delete(ctx, viewKeyPrefix+path); err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("Error invalidating view cache")
		return
	}

	c.logger.WithField("path", path).Debug("View cache invalidated")
}
