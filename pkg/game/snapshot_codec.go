package game

import (
	"fmt"
	"log"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeSnapshot 使用 msgpack 编码快照
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot 解码快照并检查版本
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("snapshot data is empty")
	}
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("incompatible snapshot version: %d (expected %d)", s.Version, SnapshotVersion)
	}
	if s.Encounter == nil {
		return nil, fmt.Errorf("snapshot has no encounter state")
	}
	return &s, nil
}

// SaveSnapshotFile 把快照写入文件（cmd/simulate 使用）
func SaveSnapshotFile(s *Snapshot, path string) error {
	data, err := EncodeSnapshot(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	log.Printf("[SnapshotCodec] Saved snapshot to %s: level=%d, score=%d, %d bytes",
		path, s.Encounter.State.Level, s.Score.Score, len(data))
	return nil
}

// LoadSnapshotFile 从文件读取快照
func LoadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	s, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[SnapshotCodec] Loaded snapshot from %s: level=%d, score=%d", path, s.Encounter.State.Level, s.Score.Score)
	return s, nil
}
