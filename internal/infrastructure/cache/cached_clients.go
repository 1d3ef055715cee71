package cache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nwbc/credit-decision-service/internal/domain/port"
)

// Caching decorators around the provider ports. A cache hit skips the
// provider round trip entirely; identical cached payloads must therefore
// yield identical decisions. Cache write failures are logged and ignored:
// the payload was already fetched and the evaluation proceeds.

// CachedDebtBureauClient wraps a DebtBureauClient with a payload cache.
type CachedDebtBureauClient struct {
	inner  port.DebtBureauClient
	cache  port.PayloadCache
	logger *slog.Logger
}

// NewCachedDebtBureauClient builds the decorator.
func NewCachedDebtBureauClient(inner port.DebtBureauClient, cache port.PayloadCache, logger *slog.Logger) *CachedDebtBureauClient {
	return &CachedDebtBureauClient{inner: inner, cache: cache, logger: logger}
}

// GetDebtReport implements port.DebtBureauClient.
func (c *CachedDebtBureauClient) GetDebtReport(ctx context.Context, cuil string) (port.DebtReport, error) {
	key := "deuda:" + cuil
	if raw, ok := c.cache.Get(ctx, key); ok {
		var report port.DebtReport
		if err := json.Unmarshal(raw, &report); err == nil {
			return report, nil
		}
		c.logger.Warn("discarding corrupt cache entry", "key", key)
	}

	report, err := c.inner.GetDebtReport(ctx, cuil)
	if err != nil {
		return port.DebtReport{}, err
	}
	storePayload(ctx, c.cache, c.logger, key, report)
	return report, nil
}

// CachedPersonRegistryClient wraps a PersonRegistryClient with a payload cache.
type CachedPersonRegistryClient struct {
	inner  port.PersonRegistryClient
	cache  port.PayloadCache
	logger *slog.Logger
}

// NewCachedPersonRegistryClient builds the decorator.
func NewCachedPersonRegistryClient(inner port.PersonRegistryClient, cache port.PayloadCache, logger *slog.Logger) *CachedPersonRegistryClient {
	return &CachedPersonRegistryClient{inner: inner, cache: cache, logger: logger}
}

// GetPerson implements port.PersonRegistryClient.
func (c *CachedPersonRegistryClient) GetPerson(ctx context.Context, documentID string) (port.PersonRecord, error) {
	key := "persona:" + documentID
	if raw, ok := c.cache.Get(ctx, key); ok {
		var person port.PersonRecord
		if err := json.Unmarshal(raw, &person); err == nil {
			return person, nil
		}
		c.logger.Warn("discarding corrupt cache entry", "key", key)
	}

	person, err := c.inner.GetPerson(ctx, documentID)
	if err != nil {
		return port.PersonRecord{}, err
	}
	storePayload(ctx, c.cache, c.logger, key, person)
	return person, nil
}

// CachedBureauVariablesClient wraps a BureauVariablesClient with a payload cache.
type CachedBureauVariablesClient struct {
	inner  port.BureauVariablesClient
	cache  port.PayloadCache
	logger *slog.Logger
}

// NewCachedBureauVariablesClient builds the decorator.
func NewCachedBureauVariablesClient(inner port.BureauVariablesClient, cache port.PayloadCache, logger *slog.Logger) *CachedBureauVariablesClient {
	return &CachedBureauVariablesClient{inner: inner, cache: cache, logger: logger}
}

// GetVariables implements port.BureauVariablesClient.
func (c *CachedBureauVariablesClient) GetVariables(ctx context.Context, documentID string) (port.BureauVariables, error) {
	key := "variables:" + documentID
	if raw, ok := c.cache.Get(ctx, key); ok {
		var vars port.BureauVariables
		if err := json.Unmarshal(raw, &vars); err == nil {
			return vars, nil
		}
		c.logger.Warn("discarding corrupt cache entry", "key", key)
	}

	vars, err := c.inner.GetVariables(ctx, documentID)
	if err != nil {
		return nil, err
	}
	storePayload(ctx, c.cache, c.logger, key, vars)
	return vars, nil
}

func storePayload(ctx context.Context, cache port.PayloadCache, logger *slog.Logger, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Warn("marshal payload for cache", "key", key, "error", err)
		return
	}
	if err := cache.Set(ctx, key, raw); err != nil {
		logger.Warn("write payload cache", "key", key, "error", err)
	}
}
