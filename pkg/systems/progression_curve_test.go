package systems

import (
	"math"
	"reflect"
	"testing"

	"github.com/decker502/invaders/pkg/config"
)

func newTestCurve() *ProgressionCurve {
	return NewProgressionCurve(&config.DefaultCombatConfig().Progression)
}

func TestBossSchedule(t *testing.T) {
	c := newTestCurve()

	want := []int{4, 9, 15, 22, 30, 39, 49, 60, 72, 85, 99}
	if got := c.BossLevels(100); !reflect.DeepEqual(got, want) {
		t.Fatalf("BossLevels(100): expected %v, got %v", want, got)
	}

	isBoss := make(map[int]int)
	for i, l := range want {
		isBoss[l] = i + 1
	}
	for level := 1; level <= 100; level++ {
		ordinal, expected := isBoss[level]
		if c.IsBossLevel(level) != expected {
			t.Errorf("IsBossLevel(%d): expected %v", level, expected)
		}
		if got := c.BossOrdinal(level); got != ordinal {
			t.Errorf("BossOrdinal(%d): expected %d, got %d", level, ordinal, got)
		}
	}
}

func TestBossSchedulePurity(t *testing.T) {
	c := newTestCurve()

	// 调用顺序不影响结果
	forward := make([]bool, 101)
	for level := 1; level <= 100; level++ {
		forward[level] = c.IsBossLevel(level)
	}
	for level := 100; level >= 1; level-- {
		if c.IsBossLevel(level) != forward[level] {
			t.Fatalf("IsBossLevel(%d) changed between calls", level)
		}
	}
}

func TestBossScheduleCustomGaps(t *testing.T) {
	cfg := config.DefaultCombatConfig().Progression
	cfg.FirstBossLevel = 3
	cfg.InitialBossGap = 3
	cfg.BossGapIncrement = 0
	c := NewProgressionCurve(&cfg)

	if got, want := c.BossLevels(20), []int{3, 6, 9, 12, 15, 18}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if c.IsBossLevel(0) || c.IsBossLevel(-3) {
		t.Error("non-positive levels are never boss levels")
	}
}

func TestThresholdMultiplier(t *testing.T) {
	c := newTestCurve()

	tests := []struct {
		name      string
		total     int
		remaining int
		want      float64
	}{
		{"满员", 60, 60, 1.0},
		{"高于所有阈值", 60, 51, 1.0},
		{"恰好50", 60, 50, 1.2},
		{"恰好40", 60, 40, 1.5},
		{"介于25和40之间", 60, 30, 1.5},
		{"恰好10", 60, 10, 3.0},
		{"最后3个", 60, 3, 4.5},
		{"全部消灭", 60, 0, 4.5},
		{"剩余为负", 60, -5, 4.5},
		{"剩余超过总数", 60, 90, 1.0},
		{"总数为0", 0, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.EnemySpeedMultiplier(tt.total, tt.remaining, 1); got != tt.want {
				t.Errorf("EnemySpeedMultiplier(%d, %d): expected %v, got %v", tt.total, tt.remaining, tt.want, got)
			}
		})
	}
}

func TestThresholdScenarioCustomTable(t *testing.T) {
	cfg := config.DefaultCombatConfig().Progression
	cfg.SpeedPolicy = config.SpeedPolicyThreshold
	cfg.SpeedThresholds = []config.SpeedThreshold{
		{Remaining: 55, Multiplier: 1.0},
		{Remaining: 45, Multiplier: 1.5},
		{Remaining: 35, Multiplier: 2.5},
	}
	c := NewProgressionCurve(&cfg)

	if got := c.EnemySpeedMultiplier(60, 40, 1); got != 1.5 {
		t.Errorf("60-enemy wave with 40 remaining: expected 1.5, got %v", got)
	}
	if got := c.EnemySpeedMultiplier(60, 35, 1); got != 2.5 {
		t.Errorf("35 remaining: expected 2.5, got %v", got)
	}
	if got := c.EnemySpeedMultiplier(60, 58, 1); got != 1.0 {
		t.Errorf("58 remaining: expected 1.0, got %v", got)
	}
}

func TestFormulaMultiplier(t *testing.T) {
	cfg := config.DefaultCombatConfig().Progression
	cfg.SpeedPolicy = config.SpeedPolicyFormula
	cfg.FormulaExponent = 2
	cfg.FormulaMaxMultiplier = 3
	cfg.FinalThreshold = 5
	cfg.FinalBoost = 1
	c := NewProgressionCurve(&cfg)

	tests := []struct {
		name      string
		remaining int
		want      float64
	}{
		{"满员", 60, 1.0},
		{"消灭一半", 30, 1 + 0.25*3},
		{"剩余6个", 6, 1 + math.Pow(54.0/60, 2)*3},
		{"进入最终加速", 5, 1 + math.Pow(55.0/60, 2)*3 + 1},
		{"全部消灭", 0, 1 + 3 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.EnemySpeedMultiplier(60, tt.remaining, 1); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMultiplierMonotonic(t *testing.T) {
	formula := config.DefaultCombatConfig().Progression
	formula.SpeedPolicy = config.SpeedPolicyFormula

	curves := map[string]*ProgressionCurve{
		"阈值表": newTestCurve(),
		"公式":  NewProgressionCurve(&formula),
	}

	for name, c := range curves {
		t.Run(name, func(t *testing.T) {
			for _, total := range []int{1, 7, 60, 200} {
				prev := c.EnemySpeedMultiplier(total, total, 1)
				for remaining := total - 1; remaining >= 0; remaining-- {
					got := c.EnemySpeedMultiplier(total, remaining, 1)
					if got < prev {
						t.Fatalf("total %d: multiplier decreased from %v to %v at remaining %d", total, prev, got, remaining)
					}
					prev = got
				}
			}
		})
	}
}

func TestBaseEnemySpeed(t *testing.T) {
	cfg := config.DefaultCombatConfig().Progression
	cfg.BaseSpeed = 48
	cfg.SpeedIncrement = 12

	tests := []struct {
		name   string
		policy string
		every  int
		level  int
		bosses int
		want   float64
	}{
		{"第一关", config.BaseSpeedPolicyLevels, 1, 1, 0, 48},
		{"第五关", config.BaseSpeedPolicyLevels, 1, 5, 0, 96},
		{"每三关递增", config.BaseSpeedPolicyLevels, 3, 7, 0, 72},
		{"按Boss递增_未击败", config.BaseSpeedPolicyBosses, 1, 12, 0, 48},
		{"按Boss递增_击败两个", config.BaseSpeedPolicyBosses, 1, 12, 2, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.BaseSpeedPolicy = tt.policy
			cfg.EveryNLevels = tt.every
			c := NewProgressionCurve(&cfg)
			if got := c.BaseEnemySpeed(tt.level, tt.bosses); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
