package game

import (
	"fmt"
	"time"

	"github.com/decker502/invaders/pkg/systems"
)

// SnapshotVersion 快照格式版本，字段不兼容时递增
const SnapshotVersion = 1

// Snapshot 一局战斗的完整存档
//
// 包含关卡、遭遇状态、所有实体（玩家及其升级、敌人、掩体、弹体、道具）、
// 当前 Boss 的变体状态，以及分数与经验。
type Snapshot struct {
	Version   int                        `msgpack:"version"`
	SavedAt   time.Time                  `msgpack:"savedAt"`
	Encounter *systems.EncounterSnapshot `msgpack:"encounter"`
	Score     ScoreState                 `msgpack:"score"`
}

// NewSnapshot 采集控制器和计分器的当前状态
//
// 参数:
//   - c: 遭遇控制器
//   - k: 计分器
//   - savedAt: 保存时间（仅用于展示）
func NewSnapshot(c *systems.EncounterController, k *ScoreKeeper, savedAt time.Time) *Snapshot {
	return &Snapshot{
		Version:   SnapshotVersion,
		SavedAt:   savedAt,
		Encounter: c.Snapshot(),
		Score:     k.State(),
	}
}

// RestoreInto 把快照恢复到控制器和计分器
// 控制器恢复失败时计分器保持不变
func (s *Snapshot) RestoreInto(c *systems.EncounterController, k *ScoreKeeper) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("incompatible snapshot version: %d (expected %d)", s.Version, SnapshotVersion)
	}
	if err := c.Restore(s.Encounter); err != nil {
		return fmt.Errorf("failed to restore encounter: %w", err)
	}
	k.Restore(s.Score)
	return nil
}
