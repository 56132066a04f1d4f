package config

// DefaultCombatConfig 返回内置默认参数
// 与 data/combat.yaml 保持一致；YAML 中缺失的字段使用这里的值
func DefaultCombatConfig() *CombatConfig {
	return &CombatConfig{
		Screen: ScreenConfig{Width: 1920, Height: 1080},
		Player: PlayerConfig{
			Width:           60,
			Height:          45,
			Speed:           480,
			StartLives:      3,
			RespawnImmunity: 1000,
			BottomMargin:    80,
			CoopSpacing:     200,
			PowerUpDuration: 10000,
		},
		Weapons: WeaponConfig{
			BulletWidth:        5,
			BulletHeight:       15,
			BulletSpeed:        600,
			BulletDamage:       1,
			ShootCooldown:      300,
			RapidFireCooldown:  100,
			MultiShotSpread:    25,
			ExtraBulletOffset:  12,
			LaserWidth:         15,
			LaserDuration:      1000,
			LaserDamage:        1,
			LaserRehitInterval: 200,
			EnemyBulletWidth:   5,
			EnemyBulletHeight:  15,
			EnemyBulletSpeed:   600,
		},
		Enemies: EnemyConfig{
			Rows:                5,
			Cols:                12,
			Width:               45,
			Height:              30,
			SpacingX:            90,
			SpacingY:            75,
			StartY:              100,
			DropDistance:        30,
			Health:              1,
			FireChancePerSecond: 0.08,
		},
		Progression: ProgressionConfig{
			FirstBossLevel:   4,
			InitialBossGap:   5,
			BossGapIncrement: 1,
			SpeedPolicy:      SpeedPolicyThreshold,
			SpeedThresholds: []SpeedThreshold{
				{Remaining: 50, Multiplier: 1.2},
				{Remaining: 40, Multiplier: 1.5},
				{Remaining: 25, Multiplier: 2.0},
				{Remaining: 10, Multiplier: 3.0},
				{Remaining: 3, Multiplier: 4.5},
			},
			FormulaExponent:      1.0,
			FormulaMaxMultiplier: 3.0,
			FinalThreshold:       5,
			FinalBoost:           1.0,
			BaseSpeed:            48,
			SpeedIncrement:       12,
			BaseSpeedPolicy:      BaseSpeedPolicyLevels,
			EveryNLevels:         1,
		},
		PowerUps: PowerUpConfig{
			Chance:     0.05,
			CoopFactor: 0.5,
			Width:      40,
			Height:     40,
			FallSpeed:  180,
			Lifetime:   15000,
		},
		Barriers: BarrierConfig{
			Count:            5,
			OffsetFromBottom: 300,
			Rows:             5,
			Cols:             8,
			BlockWidth:       11,
			BlockHeight:      12,
			BaseHits:         1,
			MaxHits:          3,
		},
		Scoring: ScoringConfig{
			EnemyScore:     10,
			EnemyXP:        1,
			PowerUpScore:   50,
			SubTargetScore: 100,
			SubTargetXP:    5,
			BossScore:      1000,
			BossXP:         25,
			NearMissXP:     2,
			NearMissBand:   30,
			XPLevelBase:    20,
			XPLevelGrowth:  1.5,
		},
		Encounter: EncounterConfig{
			BossWarning:           3000,
			LevelCompleteDelay:    2000,
			DestructionDuration:   2000,
			EnabledBosses:         []string{"turret_ufo", "alien_overlord", "rubiks_cube", "bullet_hell", "asteroid_field"},
			PostBossShieldCharges: 1,
		},
		Bosses: BossesConfig{
			TurretUFO: TurretUFOConfig{
				Width:            300,
				Height:           100,
				Y:                120,
				Speed:            Scaled{Base: 120, PerEncounter: 20},
				Health:           Scaled{Base: 50, PerEncounter: 10},
				TurretHealth:     Scaled{Base: 10, PerEncounter: 3},
				TurretWidth:      50,
				TurretHeight:     40,
				TurretCooldown:   ScaledCooldown{Base: 1500, Decay: 0.85, Min: 400},
				BulletSpeed:      Scaled{Base: 360, PerEncounter: 30},
				Homing:           600,
				BulletSize:       10,
				BodyCooldown:     ScaledCooldown{Base: 1200, Decay: 0.85, Min: 300},
				LargeBulletSize:  24,
				LargeBulletSpeed: Scaled{Base: 300, PerEncounter: 25},
				SpreadCount:      3,
				SpreadAngleDeg:   20,
			},
			AlienOverlord: AlienOverlordConfig{
				HeadWidth:        220,
				HeadHeight:       160,
				Y:                100,
				Health:           Scaled{Base: 60, PerEncounter: 15},
				HandHealth:       Scaled{Base: 20, PerEncounter: 5},
				HandWidth:        120,
				HandHeight:       90,
				HandSpread:       420,
				HandIdle:         1500,
				SeekSpeed:        Scaled{Base: 360, PerEncounter: 40},
				SeekTimeout:      2500,
				DropSpeed:        Scaled{Base: 600, PerEncounter: 60},
				DropOffset:       20,
				ReturnSpeed:      480,
				FireballCooldown: ScaledCooldown{Base: 1400, Decay: 0.85, Min: 400},
				FireballSpeed:    Scaled{Base: 420, PerEncounter: 30},
				FireballRadius:   14,
			},
			RubiksCube: RubiksCubeConfig{
				GridSize:        7,
				SquareSize:      44,
				CenterY:         300,
				Health:          Scaled{Base: 40, PerEncounter: 10},
				SquareHealth:    Scaled{Base: 3, PerEncounter: 1},
				RotationSpeed:   Scaled{Base: 0.4, PerEncounter: 0.1},
				MoveSpeed:       Scaled{Base: 80, PerEncounter: 15},
				MoveMargin:      250,
				MixedDuration:   4000,
				AttackDuration:  6000,
				ShuffleInterval: 500,
				CenterScale:     1.6,
				RedCooldown:     ScaledCooldown{Base: 900, Decay: 0.9, Min: 300},
				BlueCooldown:    ScaledCooldown{Base: 250, Decay: 0.9, Min: 100},
				GreenCooldown:   ScaledCooldown{Base: 3000, Decay: 0.9, Min: 1500},
				YellowCooldown:  ScaledCooldown{Base: 700, Decay: 0.9, Min: 250},
				OrangeCooldown:  ScaledCooldown{Base: 120, Decay: 0.95, Min: 60},
				HomingSpeed:     Scaled{Base: 300, PerEncounter: 25},
				HomingDuration:  1500,
				SpinningSize:    24,
				RapidSpeed:      Scaled{Base: 480, PerEncounter: 30},
				RapidSize:       8,
				LaserWarning:    1000,
				LaserBeam:       1500,
				LaserWidth:      40,
				BallRadius:      12,
				BallSpeed:       150,
				BallsPerVolley:  3,
				BouncingRadius:  20,
				BouncingSpeed:   420,
				BouncingLife:    12000,
				BarrelSpin:      0.35,
				FireballSpeed:   360,
				FireballRadius:  12,
			},
			BulletHell: BulletHellConfig{
				Width:        140,
				Height:       100,
				ZoneX:        200,
				ZoneY:        80,
				ZoneW:        1520,
				ZoneH:        300,
				Speed:        Scaled{Base: 200, PerEncounter: 25},
				Health:       Scaled{Base: 80, PerEncounter: 20},
				FireCooldown: ScaledCooldown{Base: 600, Decay: 0.85, Min: 150},
				BulletSpeed:  Scaled{Base: 180, PerEncounter: 15},
				BulletRadius: 8,
			},
			AsteroidField: AsteroidFieldConfig{
				Health:                Scaled{Base: 100, PerEncounter: 20},
				HealthLossPerAsteroid: 1,
				SpawnInterval:         ScaledCooldown{Base: 700, Decay: 0.9, Min: 200},
				MinRadius:             18,
				MaxRadius:             60,
				FallSpeedMin:          Scaled{Base: 180, PerEncounter: 20},
				FallSpeedMax:          Scaled{Base: 360, PerEncounter: 30},
			},
		},
	}
}
