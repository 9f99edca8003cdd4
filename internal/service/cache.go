package service

import (
	"context"
	"sync"
	"time"

	"github.com/ryusei20030204-code/RT/internal/model"
)

// labCache 研究室列表的时间盒快照缓存
//
// 窗口期内的重复读取返回上次快照，避免每次检索都打到存储后端；
// 任何一次成功追加都会手动失效，保证随后的读取立即反映新记录。
// gin 并发处理请求，因此以读写锁保护；后端本身串行化追加，无需更强的协调。
type labCache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	labs     []model.Lab
	loadedAt time.Time
	valid    bool
}

func newLabCache(ttl time.Duration) *labCache {
	return &labCache{ttl: ttl}
}

// GetOrLoad 窗口内返回缓存快照，否则调用 load 重新读取并更新快照
// load 失败时不缓存错误结果
func (c *labCache) GetOrLoad(ctx context.Context, load func(context.Context) ([]model.Lab, error)) ([]model.Lab, error) {
	c.mu.RLock()
	if c.valid && time.Since(c.loadedAt) < c.ttl {
		labs := c.labs
		c.mu.RUnlock()
		return labs, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// 双重检查：等锁期间可能已有其他请求完成加载
	if c.valid && time.Since(c.loadedAt) < c.ttl {
		return c.labs, nil
	}

	labs, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.labs = labs
	c.loadedAt = time.Now()
	c.valid = true
	return labs, nil
}

// Invalidate 手动失效，下一次 GetOrLoad 必然重新读取后端
func (c *labCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.labs = nil
}
