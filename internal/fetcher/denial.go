package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

const (
	denialCacheKey = "access_denied_headers"
	denialCacheTTL = time.Hour
)

// Fingerprint возвращает отпечаток ключа доступа. В журналы и кэш
// попадает только отпечаток, сам ключ нигде не сохраняется.
func Fingerprint(authValue string) string {
	sum := sha256.Sum256([]byte(authValue))
	return hex.EncodeToString(sum[:])
}

// DenialSet хранит отпечатки ключей, на которые API ответил отказом в
// доступе. Набор живет в памяти, в Redis лежит снимок для переживания
// перезапуска.
type DenialSet struct {
	mu    sync.Mutex
	keys  map[string]struct{}
	cache interfaces.CachePort
	log   interfaces.LoggerPort
}

func NewDenialSet(cache interfaces.CachePort, log interfaces.LoggerPort) *DenialSet {
	return &DenialSet{
		keys:  make(map[string]struct{}),
		cache: cache,
		log:   log,
	}
}

// Load восстанавливает набор из снимка в Redis
func (d *DenialSet) Load(ctx context.Context) error {
	if d.cache == nil {
		return nil
	}
	raw, err := d.cache.Get(ctx, denialCacheKey)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, k := range keys {
		d.keys[k] = struct{}{}
	}
	return nil
}

// Contains проверяет, отзывался ли доступ у ключа с данным отпечатком
func (d *DenialSet) Contains(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.keys[fingerprint]
	return ok
}

// Add запоминает отпечаток отвергнутого ключа и обновляет снимок в Redis
func (d *DenialSet) Add(ctx context.Context, fingerprint string) {
	d.mu.Lock()
	d.keys[fingerprint] = struct{}{}
	keys := make([]string, 0, len(d.keys))
	for k := range d.keys {
		keys = append(keys, k)
	}
	d.mu.Unlock()

	if d.cache == nil {
		return
	}
	raw, err := json.Marshal(keys)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, denialCacheKey, raw, denialCacheTTL); err != nil && d.log != nil {
		d.log.Warn("не удалось сохранить снимок отвергнутых ключей", "error", err)
	}
}
