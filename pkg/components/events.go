package components

import "github.com/decker502/invaders/pkg/types"

// EventTag 战斗事件的语义标签
// 音效/特效/计分等外部模块根据标签决定如何响应
type EventTag string

const (
	// 玩家
	EventPlayerShot      EventTag = "player_shot"
	EventLaserFired      EventTag = "laser_fired"
	EventPlayerHit       EventTag = "player_hit"
	EventPlayerShielded  EventTag = "player_shielded"
	EventPlayerDied      EventTag = "player_died"
	EventPlayerRevived   EventTag = "player_revived"
	EventShieldGranted   EventTag = "shield_granted"
	EventPowerUpSpawned  EventTag = "power_up_spawned"
	EventPowerUpPickedUp EventTag = "power_up_collected"
	EventPowerUpExpired  EventTag = "power_up_expired"

	// 普通敌人与掩体
	EventEnemyFired       EventTag = "enemy_fired"
	EventEnemyDestroyed   EventTag = "enemy_destroyed"
	EventBarrierHit       EventTag = "barrier_block_hit"
	EventBarrierDestroyed EventTag = "barrier_block_destroyed"
	EventWaveSpeedChanged EventTag = "wave_speed_changed"

	// Boss
	EventBossWarning         EventTag = "boss_warning"
	EventBossSpawned         EventTag = "boss_spawned"
	EventBossFired           EventTag = "boss_fired"
	EventSubTargetHit        EventTag = "sub_target_hit"
	EventSubTargetDestroyed  EventTag = "sub_target_destroyed"
	EventBossMainBodyExposed EventTag = "boss_main_body_exposed"
	EventBossMainBodyHit     EventTag = "boss_main_body_hit"
	EventBossDestroyed       EventTag = "boss_destroyed"
	EventBossDefeated        EventTag = "boss_defeated"
	EventCubePhaseChanged    EventTag = "cube_phase_changed"
	EventLaserWarning        EventTag = "laser_warning"
	EventAsteroidEscaped     EventTag = "asteroid_escaped"
	EventAsteroidImpact      EventTag = "asteroid_impact"
	EventNearMiss            EventTag = "near_miss"

	// 流程
	EventLevelStarted  EventTag = "level_started"
	EventLevelComplete EventTag = "level_complete"
	EventInvasion      EventTag = "invasion"
	EventGameOver      EventTag = "game_over"
)

// CombatEvent 战斗事件
// ScoreDelta/XP 非零时由计分模块累加；X/Y 是事件发生位置
type CombatEvent struct {
	Tag        EventTag
	X, Y       float64
	ScoreDelta int
	XP         int
	PlayerID   int // 0 表示与具体玩家无关
	BossType   types.BossType
	RegionID   int
	Level      int
}
