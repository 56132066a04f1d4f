package types

// PowerUpType 道具类型
type PowerUpType int

const (
	PowerUpRapidFire     PowerUpType = iota // 快速射击（限时）
	PowerUpInvincibility                    // 无敌（限时）
	PowerUpLaser                            // 激光（一次性）
	PowerUpMultiShot                        // 三连发（限时）
)

// AllPowerUpTypes 所有道具类型
var AllPowerUpTypes = []PowerUpType{
	PowerUpRapidFire,
	PowerUpInvincibility,
	PowerUpLaser,
	PowerUpMultiShot,
}

// String 返回道具名称
func (p PowerUpType) String() string {
	switch p {
	case PowerUpRapidFire:
		return "rapid_fire"
	case PowerUpInvincibility:
		return "invincibility"
	case PowerUpLaser:
		return "laser"
	case PowerUpMultiShot:
		return "multi_shot"
	default:
		return "unknown"
	}
}

// UpgradeType 关卡之间可选的永久升级
// 由升级选择界面（核心之外）调用 ModifierSet.ApplyUpgrade 生效
type UpgradeType int

const (
	UpgradePierce             UpgradeType = iota // 穿透 +1
	UpgradeBulletLength                          // 子弹长度 +25%
	UpgradeBarrierPhase                          // 子弹穿过掩体
	UpgradeBossDamage                            // 对 Boss 伤害 +25%
	UpgradeAmmoCapacity                          // 弹药容量 +1
	UpgradeExtraBullet                           // 额外并行子弹
	UpgradeReinforcedBarriers                    // 掩体耐久 +1
	UpgradePostBossShield                        // 击败 Boss 后获得护盾
)

// AllUpgradeTypes 所有升级类型
var AllUpgradeTypes = []UpgradeType{
	UpgradePierce,
	UpgradeBulletLength,
	UpgradeBarrierPhase,
	UpgradeBossDamage,
	UpgradeAmmoCapacity,
	UpgradeExtraBullet,
	UpgradeReinforcedBarriers,
	UpgradePostBossShield,
}

// String 返回升级名称
func (u UpgradeType) String() string {
	switch u {
	case UpgradePierce:
		return "pierce"
	case UpgradeBulletLength:
		return "bullet_length"
	case UpgradeBarrierPhase:
		return "barrier_phase"
	case UpgradeBossDamage:
		return "boss_damage"
	case UpgradeAmmoCapacity:
		return "ammo_capacity"
	case UpgradeExtraBullet:
		return "extra_bullet"
	case UpgradeReinforcedBarriers:
		return "reinforced_barriers"
	case UpgradePostBossShield:
		return "post_boss_shield"
	default:
		return "unknown"
	}
}
