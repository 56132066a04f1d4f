package types

// ProjectileKind 投射物种类
// 每种投射物拥有各自的运动规则，由 ProjectileRegistry 统一推进
type ProjectileKind int

const (
	ProjectileStraight       ProjectileKind = iota // 直线子弹（玩家/敌人）
	ProjectileHoming                               // 追踪子弹（炮塔、魔方蓝色阶段）
	ProjectileLaser                                // 激光束（矩形、限时）
	ProjectileLarge                                // 大子弹（炮塔飞碟本体）
	ProjectileFireball                             // 火球（朝捕获的目标点飞行）
	ProjectileSlow                                 // 慢速下落子弹（弹幕 Boss）
	ProjectileSpinningSquare                       // 旋转方块（魔方红色阶段）
	ProjectileRapid                                // 快速子弹
	ProjectileBall                                 // 慢速垂直球（魔方黄色阶段）
	ProjectileBouncingBall                         // 反弹球（魔方白色阶段）
)

// String 返回投射物种类名称
func (k ProjectileKind) String() string {
	switch k {
	case ProjectileStraight:
		return "straight"
	case ProjectileHoming:
		return "homing"
	case ProjectileLaser:
		return "laser"
	case ProjectileLarge:
		return "large"
	case ProjectileFireball:
		return "fireball"
	case ProjectileSlow:
		return "slow"
	case ProjectileSpinningSquare:
		return "spinning_square"
	case ProjectileRapid:
		return "rapid"
	case ProjectileBall:
		return "ball"
	case ProjectileBouncingBall:
		return "bouncing_ball"
	default:
		return "unknown"
	}
}

// Faction 投射物阵营
type Faction int

const (
	FactionPlayer Faction = iota // 玩家发射
	FactionEnemy                 // 普通敌人发射
	FactionBoss                  // Boss 发射
)

// Hostile 是否为敌对阵营（会伤害玩家）
func (f Faction) Hostile() bool {
	return f != FactionPlayer
}

// ShapeKind 碰撞形状
type ShapeKind int

const (
	ShapeRect   ShapeKind = iota // 轴对齐矩形（X,Y 为左上角）
	ShapeCircle                  // 圆形（X,Y 为圆心）
)
