package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"recipebot-api/internal/infrastructure/config"
	"recipebot-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 模型回應快取介面
// 只快取原始模型輸出，不快取解析後的食譜
type Store interface {
	Get(ctx context.Context, prompt string) (string, error)
	Set(ctx context.Context, prompt string, content string) error
	Close() error
}

// Manager 程序內的回應快取，帶 TTL 與容量上限
type Manager struct {
	config *config.Config
	mu     sync.Mutex
	store  map[string]entry
	stats  stats
	done   chan struct{}
}

type entry struct {
	value      string
	expiresAt  time.Time
	createdAt  time.Time
	lastAccess time.Time
}

type stats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager 創建回應快取
func NewManager(cfg *config.Config) *Manager {
	m := &Manager{
		config: cfg,
		store:  make(map[string]entry),
		done:   make(chan struct{}),
	}

	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get 獲取快取值
func (m *Manager) Get(ctx context.Context, prompt string) (string, error) {
	key := hashKey(prompt)

	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.store[key]
	if !exists {
		m.stats.misses++
		return "", common.ErrCacheMiss
	}

	if time.Now().After(e.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return "", common.ErrCacheMiss
	}

	e.lastAccess = time.Now()
	m.store[key] = e
	m.stats.hits++

	common.LogInfo("快取命中", zap.String("鍵", key))
	return e.value, nil
}

// Set 設定快取值，容量滿時淘汰最久未使用的條目
func (m *Manager) Set(ctx context.Context, prompt string, content string) error {
	key := hashKey(prompt)
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.config.Cache.MaxSize {
		m.evictOldest()
	}

	m.store[key] = entry{
		value:      content,
		expiresAt:  now.Add(m.config.Cache.TTL),
		createdAt:  now,
		lastAccess: now,
	}
	return nil
}

// evictOldest 淘汰最久未訪問的條目，呼叫時必須持有鎖
func (m *Manager) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	for k, e := range m.store {
		if oldestKey == "" || e.lastAccess.Before(oldestTime) {
			oldestKey = k
			oldestTime = e.lastAccess
		}
	}
	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}

// Close 停止清理協程
func (m *Manager) Close() error {
	close(m.done)
	return nil
}

// startCleanup 週期性清除過期條目
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for k, e := range m.store {
				if now.After(e.expiresAt) {
					delete(m.store, k)
					m.stats.evictions++
				}
			}
			m.mu.Unlock()
		}
	}
}

func hashKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
