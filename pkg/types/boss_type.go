// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// BossType 定义 Boss 的种类
type BossType int

const (
	// BossNone 无 Boss（普通关卡）
	BossNone BossType = iota
	// BossTurretUFO 炮塔飞碟：3 个炮塔全部摧毁前本体无敌
	BossTurretUFO
	// BossAlienOverlord 外星霸主：两只手轮流锁定玩家砸下
	BossAlienOverlord
	// BossRubiksCube 魔方：7×7 方块网格持续旋转，按颜色切换攻击方式
	BossRubiksCube
	// BossBulletHell 弹幕 Boss：在区域内游走并定时下落慢速子弹
	BossBulletHell
	// BossAsteroidField 小行星带：无可射击目标，坚持到生命值耗尽即胜利
	BossAsteroidField
)

// AllBossTypes 所有可用 Boss 类型（按定义顺序）
var AllBossTypes = []BossType{
	BossTurretUFO,
	BossAlienOverlord,
	BossRubiksCube,
	BossBulletHell,
	BossAsteroidField,
}

// String 返回 Boss 类型的配置名
func (b BossType) String() string {
	switch b {
	case BossTurretUFO:
		return "turret_ufo"
	case BossAlienOverlord:
		return "alien_overlord"
	case BossRubiksCube:
		return "rubiks_cube"
	case BossBulletHell:
		return "bullet_hell"
	case BossAsteroidField:
		return "asteroid_field"
	default:
		return "none"
	}
}

// ParseBossType 将配置名解析为 BossType
func ParseBossType(name string) (BossType, error) {
	for _, bt := range AllBossTypes {
		if bt.String() == name {
			return bt, nil
		}
	}
	return BossNone, fmt.Errorf("unknown boss type %q", name)
}
