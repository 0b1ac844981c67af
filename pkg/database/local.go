package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FilePersister 将快照回写到本地 JSON 文件
type FilePersister struct {
	path string
}

// NewFilePersister 创建文件持久化实例
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Name 持久化后端名称
func (p *FilePersister) Name() string {
	return "file"
}

// Save 写入完整快照。先写临时文件再重命名，避免进程中断留下半截文件
func (p *FilePersister) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Close 关闭连接（文件持久化无需关闭）
func (p *FilePersister) Close() error {
	return nil
}
