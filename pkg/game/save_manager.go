package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

// QuickSaveSlot 快速存档槽
const QuickSaveSlot = "quick"

const snapshotObject = "snapshots"

// SaveManager 战斗快照存档
//
// 快照以 msgpack 编码后按槽位保存到 gdata；
// gdataManager 为 nil 时退化为进程内存储（测试与无存储平台）。
type SaveManager struct {
	gdataManager *gdata.Manager
	memory       map[string][]byte
}

// NewSaveManager 创建存档管理器
//
// 参数:
//   - gdataManager: 跨平台存储，可为 nil
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	return &SaveManager{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
	}
}

// Persistent 存档是否写入磁盘
func (m *SaveManager) Persistent() bool {
	return m.gdataManager != nil
}

// SaveSnapshot 把快照写入槽位，覆盖已有存档
func (m *SaveManager) SaveSnapshot(slot string, s *Snapshot) error {
	if slot == "" {
		return fmt.Errorf("save slot is empty")
	}
	data, err := EncodeSnapshot(s)
	if err != nil {
		return err
	}
	if m.gdataManager == nil {
		m.memory[slot] = data
		return nil
	}
	if err := m.gdataManager.SaveObjectProp(snapshotObject, slot, data); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", slot, err)
	}
	log.Printf("[SaveManager] Saved slot %q: level=%d, score=%d", slot, s.Encounter.State.Level, s.Score.Score)
	return nil
}

// HasSnapshot 槽位是否有存档
func (m *SaveManager) HasSnapshot(slot string) bool {
	if m.gdataManager == nil {
		return len(m.memory[slot]) > 0
	}
	return m.gdataManager.ObjectPropExists(snapshotObject, slot)
}

// LoadSnapshot 读取槽位中的快照
func (m *SaveManager) LoadSnapshot(slot string) (*Snapshot, error) {
	if !m.HasSnapshot(slot) {
		return nil, fmt.Errorf("save slot %q not found", slot)
	}

	var data []byte
	if m.gdataManager == nil {
		data = m.memory[slot]
	} else {
		loaded, err := m.gdataManager.LoadObjectProp(snapshotObject, slot)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot %q: %w", slot, err)
		}
		data = loaded
	}

	s, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", slot, err)
	}
	return s, nil
}
