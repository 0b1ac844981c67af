package database

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// SnapshotTable 存放快照镜像的表名，结构见 scripts/setup_db.go
const SnapshotTable = "mock_snapshots"

// snapshotName is the single row the persister keeps up to date.
const snapshotName = "current"

// PostgresPersister 将完整快照以 JSONB 形式 upsert 到 PostgreSQL
type PostgresPersister struct {
	db *sqlx.DB
}

type snapshotRow struct {
	Name      string    `db:"name"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewPostgresPersister 建立连接并确认可用
func NewPostgresPersister(dsn string) (*PostgresPersister, error) {
	// Sanitize DSN to avoid stray CR/LF from env values
	dsn = strings.TrimSpace(dsn)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// 快照写入是串行的，小连接池足够
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := EnsureSnapshotTable(db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresPersister{db: db}, nil
}

// EnsureSnapshotTable creates the snapshot table when it does not exist.
func EnsureSnapshotTable(db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + SnapshotTable + ` (
			name       TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create snapshot table: %w", err)
	}
	return nil
}

// Name 持久化后端名称
func (p *PostgresPersister) Name() string {
	return "postgres"
}

// Save upserts the snapshot document.
func (p *PostgresPersister) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO ` + SnapshotTable + ` (name, data, updated_at)
		VALUES (:name, :data, :updated_at)
		ON CONFLICT (name)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	row := snapshotRow{Name: snapshotName, Data: data, UpdatedAt: time.Now().UTC()}
	if _, err := p.db.NamedExec(query, row); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load 读取最近一次写入的快照
func (p *PostgresPersister) Load() (*Snapshot, error) {
	var row snapshotRow
	query := `SELECT name, data, updated_at FROM ` + SnapshotTable + ` WHERE name = $1`
	if err := p.db.Get(&row, query, snapshotName); err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return DecodeSnapshot(row.Data)
}

// Close 关闭连接
func (p *PostgresPersister) Close() error {
	return p.db.Close()
}
