// verify_progression 打印 Boss 关卡排期和速度倍率表，用于检查参数文件
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/systems"
)

var (
	configPath = flag.String("config", "data/combat.yaml", "战斗参数文件（为空时使用默认参数）")
	levels     = flag.Int("levels", 40, "排期显示到第几关")
)

func main() {
	flag.Parse()

	cfg := config.DefaultCombatConfig()
	if *configPath != "" {
		loaded, err := config.LoadCombatConfig(*configPath)
		if err != nil {
			log.Fatalf("❌ Failed to load combat config: %v", err)
		}
		cfg = loaded
	}
	curve := systems.NewProgressionCurve(&cfg.Progression)

	fmt.Printf("Speed policy: %s, base speed policy: %s\n\n", cfg.Progression.SpeedPolicy, cfg.Progression.BaseSpeedPolicy)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tBOSS\tBASE SPEED")
	bosses := 0
	for level := 1; level <= *levels; level++ {
		marker := ""
		if ord := curve.BossOrdinal(level); ord > 0 {
			marker = fmt.Sprintf("#%d", ord)
		}
		fmt.Fprintf(w, "%d\t%s\t%.1f\n", level, marker, curve.BaseEnemySpeed(level, bosses))
		if marker != "" {
			bosses++
		}
	}
	w.Flush()

	total := cfg.Enemies.Rows * cfg.Enemies.Cols
	fmt.Printf("\nBoss levels: %v\n\nSpeed multiplier for a wave of %d:\n", curve.BossLevels(*levels), total)
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REMAINING\tMULTIPLIER")
	prev := 0.0
	for remaining := total; remaining >= 0; remaining-- {
		m := curve.EnemySpeedMultiplier(total, remaining, 1)
		if m != prev || remaining == 0 {
			fmt.Fprintf(w, "%d\t%.2f\n", remaining, m)
			prev = m
		}
	}
	w.Flush()
}
