package components

import (
	"time"

	"github.com/decker502/invaders/pkg/types"
)

// EncounterPhase 遭遇流程阶段
type EncounterPhase int

const (
	PhaseSettingUpLevel EncounterPhase = iota // 准备关卡
	PhaseRegularWave                          // 普通敌人波次
	PhaseBossWarning                          // Boss 出场前的警告
	PhaseBossActive                           // Boss 战
	PhaseLevelComplete                        // 关卡完成，等待进入下一关
	PhaseGameOver                             // 游戏结束（终态）
)

// String 返回阶段名称（日志使用）
func (p EncounterPhase) String() string {
	switch p {
	case PhaseSettingUpLevel:
		return "setting_up_level"
	case PhaseRegularWave:
		return "regular_wave"
	case PhaseBossWarning:
		return "boss_warning"
	case PhaseBossActive:
		return "boss_active"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EncounterState 当前关卡的难度状态
// 每关开始和每次击杀后重新计算
type EncounterState struct {
	Level                int
	IsBossLevel          bool
	BossType             types.BossType
	RemainingEnemies     int
	TotalEnemies         int
	EnemySpeedMultiplier float64
	BaseEnemySpeed       float64

	Phase        EncounterPhase
	PhaseStarted time.Duration
}

// EnemySpeed 当前普通敌人的实际移动速度
func (s EncounterState) EnemySpeed() float64 {
	return s.BaseEnemySpeed * s.EnemySpeedMultiplier
}
