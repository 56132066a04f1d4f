package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/decker502/invaders/pkg/embedded"
	"github.com/decker502/invaders/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultCombatConfigPath 内置战斗参数文件路径（embed.FS）
const DefaultCombatConfigPath = "data/combat.yaml"

// 速度倍率策略
const (
	SpeedPolicyThreshold = "threshold" // 阈值表：按剩余敌人数查表
	SpeedPolicyFormula   = "formula"   // 公式：按已消灭比例的幂函数
)

// 基础速度递增策略
const (
	BaseSpeedPolicyLevels = "levels" // 每 N 关递增一次
	BaseSpeedPolicyBosses = "bosses" // 每击败一个 Boss 递增一次
)

// Millis 以毫秒为单位的时长（YAML 中写整数）
type Millis int

// Duration 转换为 time.Duration
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// Scaled 随遭遇次数线性增长的数值
// 公式: Base + (encounterIndex - 1) * PerEncounter
type Scaled struct {
	Base         float64 `yaml:"base"`         // 第一次遭遇时的数值
	PerEncounter float64 `yaml:"perEncounter"` // 每多遭遇一次增加的数值
}

// At 返回第 encounterIndex 次遭遇（从 1 开始）的数值
// encounterIndex < 1 按 1 处理
func (s Scaled) At(encounterIndex int) float64 {
	if encounterIndex < 1 {
		encounterIndex = 1
	}
	return s.Base + float64(encounterIndex-1)*s.PerEncounter
}

// AtInt 返回取整后的数值（向下取整，最小为 1）
func (s Scaled) AtInt(encounterIndex int) int {
	v := int(math.Floor(s.At(encounterIndex)))
	if v < 1 {
		return 1
	}
	return v
}

// ScaledCooldown 随遭遇次数按乘法衰减的冷却时间
// 公式: max(Min, Base * Decay^(encounterIndex - 1))
type ScaledCooldown struct {
	Base  Millis  `yaml:"baseMs"` // 第一次遭遇时的冷却
	Decay float64 `yaml:"decay"`  // 每多遭遇一次乘以的系数 (0, 1]
	Min   Millis  `yaml:"minMs"`  // 冷却下限
}

// At 返回第 encounterIndex 次遭遇的冷却时间
func (c ScaledCooldown) At(encounterIndex int) time.Duration {
	if encounterIndex < 1 {
		encounterIndex = 1
	}
	ms := float64(c.Base) * math.Pow(c.Decay, float64(encounterIndex-1))
	if ms < float64(c.Min) {
		ms = float64(c.Min)
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// ScreenConfig 战斗区域尺寸
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig 玩家飞船参数
type PlayerConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Speed           float64 `yaml:"speed"`             // 水平移动速度（像素/秒）
	StartLives      int     `yaml:"startLives"`        // 初始生命数
	RespawnImmunity Millis  `yaml:"respawnImmunityMs"` // 复活后的无敌时间
	BottomMargin    float64 `yaml:"bottomMargin"`      // 飞船顶部距屏幕底部的距离
	CoopSpacing     float64 `yaml:"coopSpacing"`       // 双人模式两艘飞船的间距
	PowerUpDuration Millis  `yaml:"powerUpDurationMs"` // 限时道具持续时间
}

// WeaponConfig 玩家与普通敌人武器参数
type WeaponConfig struct {
	BulletWidth        float64 `yaml:"bulletWidth"`
	BulletHeight       float64 `yaml:"bulletHeight"`        // 基础子弹长度（受 BulletLengthMultiplier 影响）
	BulletSpeed        float64 `yaml:"bulletSpeed"`         // 像素/秒
	BulletDamage       int     `yaml:"bulletDamage"`        // 子弹基础伤害
	ShootCooldown      Millis  `yaml:"shootCooldownMs"`     // 普通射击间隔
	RapidFireCooldown  Millis  `yaml:"rapidFireCooldownMs"` // 快速射击道具的射击间隔
	MultiShotSpread    float64 `yaml:"multiShotSpread"`     // 三连发左右子弹的水平偏移
	ExtraBulletOffset  float64 `yaml:"extraBulletOffset"`   // 额外子弹升级的水平偏移
	LaserWidth         float64 `yaml:"laserWidth"`
	LaserDuration      Millis  `yaml:"laserDurationMs"`
	LaserDamage        int     `yaml:"laserDamage"`
	LaserRehitInterval Millis  `yaml:"laserRehitIntervalMs"` // 激光对同一 Boss 区域的重复伤害间隔
	EnemyBulletWidth   float64 `yaml:"enemyBulletWidth"`
	EnemyBulletHeight  float64 `yaml:"enemyBulletHeight"`
	EnemyBulletSpeed   float64 `yaml:"enemyBulletSpeed"`
}

// EnemyConfig 普通敌人波次参数
type EnemyConfig struct {
	Rows                int     `yaml:"rows"`
	Cols                int     `yaml:"cols"`
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	SpacingX            float64 `yaml:"spacingX"`
	SpacingY            float64 `yaml:"spacingY"`
	StartY              float64 `yaml:"startY"`
	DropDistance        float64 `yaml:"dropDistance"`        // 触边后整体下移距离
	Health              int     `yaml:"health"`              // 每个敌人的生命值
	FireChancePerSecond float64 `yaml:"fireChancePerSecond"` // 每个敌人每秒开火概率
}

// SpeedThreshold 阈值表条目
type SpeedThreshold struct {
	Remaining  int     `yaml:"remaining"`  // 剩余敌人数阈值
	Multiplier float64 `yaml:"multiplier"` // 剩余数 <= 阈值时适用的倍率
}

// ProgressionConfig 难度曲线参数
type ProgressionConfig struct {
	// Boss 关卡间隔逐渐增大：L0, L0+G0, L0+G0+(G0+inc), ...
	FirstBossLevel   int `yaml:"firstBossLevel"`
	InitialBossGap   int `yaml:"initialBossGap"`
	BossGapIncrement int `yaml:"bossGapIncrement"`

	// 关卡内速度倍率
	SpeedPolicy          string           `yaml:"speedPolicy"`
	SpeedThresholds      []SpeedThreshold `yaml:"speedThresholds"`
	FormulaExponent      float64          `yaml:"formulaExponent"`
	FormulaMaxMultiplier float64          `yaml:"formulaMaxMultiplier"`
	FinalThreshold       int              `yaml:"finalThreshold"` // 剩余数 <= 该值时追加 FinalBoost
	FinalBoost           float64          `yaml:"finalBoost"`

	// 关卡间基础速度
	BaseSpeed       float64 `yaml:"baseSpeed"`       // 第一关基础速度（像素/秒）
	SpeedIncrement  float64 `yaml:"speedIncrement"`  // 每次递增的速度
	BaseSpeedPolicy string  `yaml:"baseSpeedPolicy"` // levels 或 bosses
	EveryNLevels    int     `yaml:"everyNLevels"`
}

// PowerUpConfig 道具参数
type PowerUpConfig struct {
	Chance     float64 `yaml:"chance"`     // 击杀普通敌人时掉落概率
	CoopFactor float64 `yaml:"coopFactor"` // 双人模式概率系数
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	FallSpeed  float64 `yaml:"fallSpeed"`
	Lifetime   Millis  `yaml:"lifetimeMs"`
}

// BarrierConfig 掩体参数
type BarrierConfig struct {
	Count            int     `yaml:"count"`
	OffsetFromBottom float64 `yaml:"offsetFromBottom"`
	Rows             int     `yaml:"rows"`
	Cols             int     `yaml:"cols"`
	BlockWidth       float64 `yaml:"blockWidth"`
	BlockHeight      float64 `yaml:"blockHeight"`
	BaseHits         int     `yaml:"baseHits"` // 未强化时每块承受次数
	MaxHits          int     `yaml:"maxHits"`  // 强化后的上限
}

// ScoringConfig 分数与经验参数
type ScoringConfig struct {
	EnemyScore     int     `yaml:"enemyScore"`
	EnemyXP        int     `yaml:"enemyXP"`
	PowerUpScore   int     `yaml:"powerUpScore"`
	SubTargetScore int     `yaml:"subTargetScore"` // 乘以遭遇次数
	SubTargetXP    int     `yaml:"subTargetXP"`
	BossScore      int     `yaml:"bossScore"` // 乘以遭遇次数
	BossXP         int     `yaml:"bossXP"`
	NearMissXP     int     `yaml:"nearMissXP"`
	NearMissBand   float64 `yaml:"nearMissBand"` // 擦身而过判定带宽（像素）

	// 升级所需经验: XPLevelBase * XPLevelGrowth^(等级-1)
	XPLevelBase   int     `yaml:"xpLevelBase"`
	XPLevelGrowth float64 `yaml:"xpLevelGrowth"`
}

// EncounterConfig 遭遇流程参数
type EncounterConfig struct {
	BossWarning           Millis   `yaml:"bossWarningMs"`
	LevelCompleteDelay    Millis   `yaml:"levelCompleteDelayMs"`
	DestructionDuration   Millis   `yaml:"destructionDurationMs"` // Boss 爆炸动画时长
	EnabledBosses         []string `yaml:"enabledBosses"`
	PostBossShieldCharges int      `yaml:"postBossShieldCharges"`
}

// TurretUFOConfig 炮塔飞碟参数
type TurretUFOConfig struct {
	Width            float64        `yaml:"width"`
	Height           float64        `yaml:"height"`
	Y                float64        `yaml:"y"`
	Speed            Scaled         `yaml:"speed"`
	Health           Scaled         `yaml:"health"`
	TurretHealth     Scaled         `yaml:"turretHealth"`
	TurretWidth      float64        `yaml:"turretWidth"`
	TurretHeight     float64        `yaml:"turretHeight"`
	TurretCooldown   ScaledCooldown `yaml:"turretCooldown"`
	BulletSpeed      Scaled         `yaml:"bulletSpeed"`
	Homing           Millis         `yaml:"homingMs"` // 炮塔子弹追踪时长
	BulletSize       float64        `yaml:"bulletSize"`
	BodyCooldown     ScaledCooldown `yaml:"bodyCooldown"`
	LargeBulletSize  float64        `yaml:"largeBulletSize"`
	LargeBulletSpeed Scaled         `yaml:"largeBulletSpeed"`
	SpreadCount      int            `yaml:"spreadCount"`
	SpreadAngleDeg   float64        `yaml:"spreadAngleDeg"`
}

// AlienOverlordConfig 外星霸主参数
type AlienOverlordConfig struct {
	HeadWidth        float64        `yaml:"headWidth"`
	HeadHeight       float64        `yaml:"headHeight"`
	Y                float64        `yaml:"y"`
	Health           Scaled         `yaml:"health"`
	HandHealth       Scaled         `yaml:"handHealth"`
	HandWidth        float64        `yaml:"handWidth"`
	HandHeight       float64        `yaml:"handHeight"`
	HandSpread       float64        `yaml:"handSpread"` // 手的静止位置距头部中心的水平距离
	HandIdle         Millis         `yaml:"handIdleMs"`
	SeekSpeed        Scaled         `yaml:"seekSpeed"`
	SeekTimeout      Millis         `yaml:"seekTimeoutMs"`
	DropSpeed        Scaled         `yaml:"dropSpeed"`
	DropOffset       float64        `yaml:"dropOffset"` // 手的下边缘下降到 玩家Y + DropOffset
	ReturnSpeed      float64        `yaml:"returnSpeed"`
	FireballCooldown ScaledCooldown `yaml:"fireballCooldown"`
	FireballSpeed    Scaled         `yaml:"fireballSpeed"`
	FireballRadius   float64        `yaml:"fireballRadius"`
}

// RubiksCubeConfig 魔方参数
type RubiksCubeConfig struct {
	GridSize        int            `yaml:"gridSize"`
	SquareSize      float64        `yaml:"squareSize"`
	CenterY         float64        `yaml:"centerY"`
	Health          Scaled         `yaml:"health"` // 中心方块（本体）生命值
	SquareHealth    Scaled         `yaml:"squareHealth"`
	RotationSpeed   Scaled         `yaml:"rotationSpeed"` // 弧度/秒
	MoveSpeed       Scaled         `yaml:"moveSpeed"`
	MoveMargin      float64        `yaml:"moveMargin"`
	MixedDuration   Millis         `yaml:"mixedMs"`
	AttackDuration  Millis         `yaml:"attackMs"`
	ShuffleInterval Millis         `yaml:"shuffleIntervalMs"`
	CenterScale     float64        `yaml:"centerScale"`
	RedCooldown     ScaledCooldown `yaml:"redCooldown"`
	BlueCooldown    ScaledCooldown `yaml:"blueCooldown"`
	GreenCooldown   ScaledCooldown `yaml:"greenCooldown"`
	YellowCooldown  ScaledCooldown `yaml:"yellowCooldown"`
	OrangeCooldown  ScaledCooldown `yaml:"orangeCooldown"`
	HomingSpeed     Scaled         `yaml:"homingSpeed"`
	HomingDuration  Millis         `yaml:"homingMs"`
	SpinningSize    float64        `yaml:"spinningSize"`
	RapidSpeed      Scaled         `yaml:"rapidSpeed"`
	RapidSize       float64        `yaml:"rapidSize"`
	LaserWarning    Millis         `yaml:"laserWarningMs"`
	LaserBeam       Millis         `yaml:"laserBeamMs"`
	LaserWidth      float64        `yaml:"laserWidth"`
	BallRadius      float64        `yaml:"ballRadius"`
	BallSpeed       float64        `yaml:"ballSpeed"`
	BallsPerVolley  int            `yaml:"ballsPerVolley"`
	BouncingRadius  float64        `yaml:"bouncingRadius"`
	BouncingSpeed   float64        `yaml:"bouncingSpeed"`
	BouncingLife    Millis         `yaml:"bouncingLifeMs"`
	BarrelSpin      float64        `yaml:"barrelSpin"` // 每次喷射后炮管旋转的弧度
	FireballSpeed   float64        `yaml:"fireballSpeed"`
	FireballRadius  float64        `yaml:"fireballRadius"`
}

// BulletHellConfig 弹幕 Boss 参数
type BulletHellConfig struct {
	Width        float64        `yaml:"width"`
	Height       float64        `yaml:"height"`
	ZoneX        float64        `yaml:"zoneX"` // 游走区域（左上角 + 宽高）
	ZoneY        float64        `yaml:"zoneY"`
	ZoneW        float64        `yaml:"zoneW"`
	ZoneH        float64        `yaml:"zoneH"`
	Speed        Scaled         `yaml:"speed"`
	Health       Scaled         `yaml:"health"`
	FireCooldown ScaledCooldown `yaml:"fireCooldown"`
	BulletSpeed  Scaled         `yaml:"bulletSpeed"`
	BulletRadius float64        `yaml:"bulletRadius"`
}

// AsteroidFieldConfig 小行星带参数
type AsteroidFieldConfig struct {
	Health                Scaled         `yaml:"health"`
	HealthLossPerAsteroid int            `yaml:"healthLossPerAsteroid"`
	SpawnInterval         ScaledCooldown `yaml:"spawnInterval"`
	MinRadius             float64        `yaml:"minRadius"`
	MaxRadius             float64        `yaml:"maxRadius"`
	FallSpeedMin          Scaled         `yaml:"fallSpeedMin"`
	FallSpeedMax          Scaled         `yaml:"fallSpeedMax"`
}

// BossesConfig 五种 Boss 参数
type BossesConfig struct {
	TurretUFO     TurretUFOConfig     `yaml:"turretUFO"`
	AlienOverlord AlienOverlordConfig `yaml:"alienOverlord"`
	RubiksCube    RubiksCubeConfig    `yaml:"rubiksCube"`
	BulletHell    BulletHellConfig    `yaml:"bulletHell"`
	AsteroidField AsteroidFieldConfig `yaml:"asteroidField"`
}

// CombatConfig 战斗核心的全部可调参数
type CombatConfig struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Player      PlayerConfig      `yaml:"player"`
	Weapons     WeaponConfig      `yaml:"weapons"`
	Enemies     EnemyConfig       `yaml:"enemies"`
	Progression ProgressionConfig `yaml:"progression"`
	PowerUps    PowerUpConfig     `yaml:"powerUps"`
	Barriers    BarrierConfig     `yaml:"barriers"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Encounter   EncounterConfig   `yaml:"encounter"`
	Bosses      BossesConfig      `yaml:"bosses"`
}

// LoadCombatConfig 从文件系统加载战斗参数
// 文件中缺失的字段保留默认值
//
// 参数：
//
//	filepath - YAML 文件路径
//
// 返回：
//
//	*CombatConfig - 解析并验证后的配置
//	error - 读取、解析或验证失败时返回错误
func LoadCombatConfig(filepath string) (*CombatConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read combat config file %s: %w", filepath, err)
	}

	cfg, err := ParseCombatConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid combat config %s: %w", filepath, err)
	}
	return cfg, nil
}

// LoadEmbeddedCombatConfig 从嵌入资源加载战斗参数
// embedded 包必须已初始化
func LoadEmbeddedCombatConfig(path string) (*CombatConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded combat config %s: %w", path, err)
	}

	cfg, err := ParseCombatConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid embedded combat config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCombatConfig 解析 YAML 数据
// 解析结果叠加在 DefaultCombatConfig 之上，然后进行验证
func ParseCombatConfig(data []byte) (*CombatConfig, error) {
	cfg := DefaultCombatConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse combat config YAML: %w", err)
	}

	if err := ValidateCombatConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnabledBossTypes 返回已启用的 Boss 类型
// 配置已验证时不会出错；未知名称被跳过
func (c *CombatConfig) EnabledBossTypes() []types.BossType {
	result := make([]types.BossType, 0, len(c.Encounter.EnabledBosses))
	for _, name := range c.Encounter.EnabledBosses {
		bt, err := types.ParseBossType(name)
		if err != nil {
			continue
		}
		result = append(result, bt)
	}
	return result
}

// SortedSpeedThresholds 返回按剩余数降序排列的阈值表副本
func (p *ProgressionConfig) SortedSpeedThresholds() []SpeedThreshold {
	sorted := make([]SpeedThreshold, len(p.SpeedThresholds))
	copy(sorted, p.SpeedThresholds)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Remaining > sorted[j].Remaining
	})
	return sorted
}

// ValidateCombatConfig 验证配置的完整性和合法性
// 返回第一个不合法字段的错误
func ValidateCombatConfig(c *CombatConfig) error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen: width and height must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	}

	if c.Player.StartLives < 1 {
		return fmt.Errorf("player.startLives must be at least 1, got %d", c.Player.StartLives)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return fmt.Errorf("player: width and height must be positive")
	}

	if c.Weapons.BulletDamage < 1 {
		return fmt.Errorf("weapons.bulletDamage must be at least 1, got %d", c.Weapons.BulletDamage)
	}
	if c.Weapons.BulletSpeed <= 0 || c.Weapons.EnemyBulletSpeed <= 0 {
		return fmt.Errorf("weapons: bullet speeds must be positive")
	}

	if c.Enemies.Rows < 1 || c.Enemies.Cols < 1 {
		return fmt.Errorf("enemies: rows and cols must be at least 1, got %dx%d", c.Enemies.Rows, c.Enemies.Cols)
	}
	if c.Enemies.Health < 1 {
		return fmt.Errorf("enemies.health must be at least 1, got %d", c.Enemies.Health)
	}

	if err := validateProgression(&c.Progression); err != nil {
		return fmt.Errorf("progression: %w", err)
	}

	if c.PowerUps.Chance < 0 || c.PowerUps.Chance > 1 {
		return fmt.Errorf("powerUps.chance must be within [0,1], got %v", c.PowerUps.Chance)
	}
	if c.PowerUps.CoopFactor < 0 || c.PowerUps.CoopFactor > 1 {
		return fmt.Errorf("powerUps.coopFactor must be within [0,1], got %v", c.PowerUps.CoopFactor)
	}

	if c.Barriers.BaseHits < 1 || c.Barriers.MaxHits < c.Barriers.BaseHits {
		return fmt.Errorf("barriers: need 1 <= baseHits <= maxHits, got %d/%d", c.Barriers.BaseHits, c.Barriers.MaxHits)
	}

	if len(c.Encounter.EnabledBosses) == 0 {
		return fmt.Errorf("encounter.enabledBosses: at least one boss type is required")
	}
	for _, name := range c.Encounter.EnabledBosses {
		if _, err := types.ParseBossType(name); err != nil {
			return fmt.Errorf("encounter.enabledBosses: %w", err)
		}
	}

	if c.Scoring.NearMissBand < 0 {
		return fmt.Errorf("scoring.nearMissBand cannot be negative, got %v", c.Scoring.NearMissBand)
	}
	if c.Scoring.XPLevelBase <= 0 {
		return fmt.Errorf("scoring.xpLevelBase must be positive, got %d", c.Scoring.XPLevelBase)
	}
	if c.Scoring.XPLevelGrowth < 1 {
		return fmt.Errorf("scoring.xpLevelGrowth must be at least 1, got %v", c.Scoring.XPLevelGrowth)
	}

	return validateBosses(&c.Bosses)
}

// validateProgression 验证难度曲线参数
func validateProgression(p *ProgressionConfig) error {
	if p.FirstBossLevel < 1 {
		return fmt.Errorf("firstBossLevel must be at least 1, got %d", p.FirstBossLevel)
	}
	if p.InitialBossGap < 1 {
		return fmt.Errorf("initialBossGap must be at least 1, got %d", p.InitialBossGap)
	}
	if p.BossGapIncrement < 0 {
		return fmt.Errorf("bossGapIncrement cannot be negative, got %d", p.BossGapIncrement)
	}

	switch p.SpeedPolicy {
	case SpeedPolicyThreshold:
		if len(p.SpeedThresholds) == 0 {
			return fmt.Errorf("speedThresholds: at least one entry is required for policy %q", p.SpeedPolicy)
		}
		// 剩余数越少倍率越高（或相等），保证单调性
		sorted := p.SortedSpeedThresholds()
		for i := 1; i < len(sorted); i++ {
			if sorted[i].Remaining == sorted[i-1].Remaining {
				return fmt.Errorf("speedThresholds: duplicate remaining threshold %d", sorted[i].Remaining)
			}
			if sorted[i].Multiplier < sorted[i-1].Multiplier {
				return fmt.Errorf("speedThresholds: multiplier for remaining<=%d (%v) is lower than for remaining<=%d (%v)",
					sorted[i].Remaining, sorted[i].Multiplier, sorted[i-1].Remaining, sorted[i-1].Multiplier)
			}
		}
		if sorted[0].Multiplier < 1 {
			return fmt.Errorf("speedThresholds: multipliers must be at least 1, got %v", sorted[0].Multiplier)
		}
	case SpeedPolicyFormula:
		if p.FormulaExponent <= 0 {
			return fmt.Errorf("formulaExponent must be positive, got %v", p.FormulaExponent)
		}
		if p.FormulaMaxMultiplier < 0 || p.FinalBoost < 0 {
			return fmt.Errorf("formulaMaxMultiplier and finalBoost cannot be negative")
		}
	default:
		return fmt.Errorf("unknown speedPolicy %q", p.SpeedPolicy)
	}

	switch p.BaseSpeedPolicy {
	case BaseSpeedPolicyLevels:
		if p.EveryNLevels < 1 {
			return fmt.Errorf("everyNLevels must be at least 1, got %d", p.EveryNLevels)
		}
	case BaseSpeedPolicyBosses:
	default:
		return fmt.Errorf("unknown baseSpeedPolicy %q", p.BaseSpeedPolicy)
	}

	if p.BaseSpeed <= 0 {
		return fmt.Errorf("baseSpeed must be positive, got %v", p.BaseSpeed)
	}
	return nil
}

// validateCooldown 验证冷却参数
func validateCooldown(name string, c ScaledCooldown) error {
	if c.Base <= 0 {
		return fmt.Errorf("%s.baseMs must be positive, got %d", name, c.Base)
	}
	if c.Decay <= 0 || c.Decay > 1 {
		return fmt.Errorf("%s.decay must be within (0,1], got %v", name, c.Decay)
	}
	if c.Min < 0 {
		return fmt.Errorf("%s.minMs cannot be negative, got %d", name, c.Min)
	}
	return nil
}

// validateBosses 验证 Boss 参数
func validateBosses(b *BossesConfig) error {
	cooldowns := []struct {
		name string
		c    ScaledCooldown
	}{
		{"bosses.turretUFO.turretCooldown", b.TurretUFO.TurretCooldown},
		{"bosses.turretUFO.bodyCooldown", b.TurretUFO.BodyCooldown},
		{"bosses.alienOverlord.fireballCooldown", b.AlienOverlord.FireballCooldown},
		{"bosses.rubiksCube.redCooldown", b.RubiksCube.RedCooldown},
		{"bosses.rubiksCube.blueCooldown", b.RubiksCube.BlueCooldown},
		{"bosses.rubiksCube.greenCooldown", b.RubiksCube.GreenCooldown},
		{"bosses.rubiksCube.yellowCooldown", b.RubiksCube.YellowCooldown},
		{"bosses.rubiksCube.orangeCooldown", b.RubiksCube.OrangeCooldown},
		{"bosses.bulletHell.fireCooldown", b.BulletHell.FireCooldown},
		{"bosses.asteroidField.spawnInterval", b.AsteroidField.SpawnInterval},
	}
	for _, cd := range cooldowns {
		if err := validateCooldown(cd.name, cd.c); err != nil {
			return err
		}
	}

	if b.TurretUFO.Health.Base < 1 || b.AlienOverlord.Health.Base < 1 || b.RubiksCube.Health.Base < 1 ||
		b.BulletHell.Health.Base < 1 || b.AsteroidField.Health.Base < 1 {
		return fmt.Errorf("bosses: every health.base must be at least 1")
	}
	if b.RubiksCube.GridSize < 3 || b.RubiksCube.GridSize%2 == 0 {
		return fmt.Errorf("bosses.rubiksCube.gridSize must be an odd number >= 3, got %d", b.RubiksCube.GridSize)
	}
	if b.AsteroidField.HealthLossPerAsteroid < 1 {
		return fmt.Errorf("bosses.asteroidField.healthLossPerAsteroid must be at least 1, got %d", b.AsteroidField.HealthLossPerAsteroid)
	}
	if b.AsteroidField.MinRadius <= 0 || b.AsteroidField.MaxRadius < b.AsteroidField.MinRadius {
		return fmt.Errorf("bosses.asteroidField: need 0 < minRadius <= maxRadius")
	}
	if b.BulletHell.ZoneW <= 0 || b.BulletHell.ZoneH <= 0 {
		return fmt.Errorf("bosses.bulletHell: zone must have positive size")
	}
	return nil
}
