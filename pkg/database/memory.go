package database

import (
	"fmt"
	"sync"
	"time"

	"aigc-studio-mock-api/pkg/metrics"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// Clock returns the current time.
type Clock func() time.Time

// Option 配置 MockDatabase
type Option func(*MockDatabase)

// WithTokenSource 替换随机 token 生成器（测试中用于得到确定性的 token）
func WithTokenSource(ts utils.TokenSource) Option {
	return func(db *MockDatabase) { db.tokenSource = ts }
}

// WithClock 替换时钟
func WithClock(clock Clock) Option {
	return func(db *MockDatabase) { db.clock = clock }
}

// WithPersister 开启变更持久化
func WithPersister(p Persister) Option {
	return func(db *MockDatabase) { db.persister = p }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(log *zap.Logger) Option {
	return func(db *MockDatabase) { db.log = log }
}

// MockDatabase 内存数据库实现，启动时从 JSON 快照加载。
// 每个方法在一次加锁内完成读改写（包括 id 分配与快照回写），返回值均为副本。
type MockDatabase struct {
	mu          sync.RWMutex
	path        string
	st          *state
	ids         counters
	tokenSource utils.TokenSource
	clock       Clock
	persister   Persister
	log         *zap.Logger
}

// NewMockDatabase 从快照文件创建内存数据库，文件缺失或格式错误时返回错误
func NewMockDatabase(path string, opts ...Option) (*MockDatabase, error) {
	snap, err := ReadSnapshotFile(path)
	if err != nil {
		return nil, err
	}
	db := NewMockDatabaseFromSnapshot(snap, opts...)
	db.path = path
	return db, nil
}

// NewMockDatabaseFromSnapshot builds a store from an in-memory snapshot. Reload is
// unavailable for stores created this way.
func NewMockDatabaseFromSnapshot(snap *Snapshot, opts ...Option) *MockDatabase {
	st := newState(snap)
	db := &MockDatabase{
		st:          st,
		ids:         newCounters(st),
		tokenSource: utils.RandomTokenSource{},
		clock:       time.Now,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Reload 重新读取快照文件并整体替换内存状态
func (db *MockDatabase) Reload() error {
	if db.path == "" {
		return fmt.Errorf("store was not loaded from a file")
	}
	snap, err := ReadSnapshotFile(db.path)
	if err != nil {
		return err
	}
	st := newState(snap)

	db.mu.Lock()
	defer db.mu.Unlock()
	ids := newCounters(st)
	ids.raise(db.ids)
	db.st = st
	db.ids = ids
	return nil
}

// Snapshot 返回当前状态的快照副本
func (db *MockDatabase) Snapshot() *Snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.st.snapshot()
}

// HealthCheck 健康检查
func (db *MockDatabase) HealthCheck() error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.st == nil {
		return fmt.Errorf("store not loaded")
	}
	return nil
}

// Close 关闭持久化后端
func (db *MockDatabase) Close() error {
	if db.persister == nil {
		return nil
	}
	return db.persister.Close()
}

// now returns the store time: UTC, whole seconds.
func (db *MockDatabase) now() time.Time {
	return db.clock().UTC().Truncate(time.Second)
}

// persistLocked writes the full snapshot when persistence is enabled. Failures are
// logged only; the in-memory change stands. Callers hold db.mu.
func (db *MockDatabase) persistLocked() {
	if db.persister == nil {
		return
	}
	if err := db.persister.Save(db.st.snapshot()); err != nil {
		metrics.SnapshotWritesTotal.WithLabelValues(db.persister.Name(), "error").Inc()
		db.log.Error("failed to persist snapshot", zap.String("persister", db.persister.Name()), zap.Error(err))
		return
	}
	metrics.SnapshotWritesTotal.WithLabelValues(db.persister.Name(), "ok").Inc()
}
