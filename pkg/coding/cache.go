package coding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
	"github.com/redis/go-redis/v9"
)

// Cache holds recently served prediction responses in Redis, keyed by a hash
// of the request. A nil Cache is a no-op.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(req models.PredictRequest) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%.4f|%d|%s", req.Text, req.Threshold, req.TopK, req.CodeType)))
	return "prediction:" + hex.EncodeToString(sum[:])
}

func (c *Cache) Get(ctx context.Context, req models.PredictRequest) (*models.PredictResponse, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, cacheKey(req)).Bytes()
	if err != nil {
		return nil, false
	}
	var resp models.PredictResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *Cache) Set(ctx context.Context, req models.PredictRequest, resp *models.PredictResponse) {
	if c == nil || resp == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(req), raw, c.ttl)
}
