package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/systems/boss"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

var factionColors = map[types.Faction]color.Color{
	types.FactionPlayer: colornames.Lightskyblue,
	types.FactionEnemy:  colornames.Orangered,
	types.FactionBoss:   colornames.Magenta,
}

// Draw 用基本图形绘制战场，调试用的碰撞区域由设置控制
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	w := g.controller.World()

	for _, b := range w.Barriers {
		for i := range b.Blocks {
			blk := &b.Blocks[i]
			fillRect(screen, blk.Rect(), barrierColor(blk.HitsRemaining))
		}
	}
	for _, e := range w.Enemies {
		if e.Alive() {
			fillRect(screen, e.Rect(), colornames.Limegreen)
		}
	}
	for _, p := range w.PowerUps {
		fillRect(screen, p.Rect(), colornames.Gold)
	}
	if w.Boss != nil {
		g.drawBoss(screen, w.Boss)
	}
	for _, p := range w.Projectiles.All() {
		g.drawProjectile(screen, p)
	}
	for _, p := range w.Players {
		if !p.Alive {
			continue
		}
		clr := color.Color(colornames.White)
		if p.IsImmune(g.now) {
			clr = colornames.Lightgrey
		}
		fillRect(screen, p.Rect(), clr)
		if p.ShieldCharges > 0 {
			cx, cy := p.CenterX(), p.Y+p.H/2
			vector.StrokeCircle(screen, float32(cx), float32(cy), float32(p.W*0.75), 1, colornames.Cyan, true)
		}
	}

	g.drawHUD(screen)
}

func (g *Game) drawBoss(screen *ebiten.Image, b boss.Boss) {
	base := b.Base()
	showHitboxes := g.settings.Settings().ShowHitboxes
	if !showHitboxes {
		fillRect(screen, base.Rect(), colornames.Purple)
	}
	for _, r := range b.DamageableRegions() {
		clr := color.Color(colornames.Crimson)
		if r.MainBody {
			clr = colornames.Violet
		}
		if len(r.Polygon) >= 3 {
			strokePolygon(screen, r.Polygon, clr)
			continue
		}
		if showHitboxes {
			strokeRect(screen, r.Rect, clr)
		} else {
			fillRect(screen, r.Rect, clr)
		}
	}
	if hs, ok := b.(boss.HazardSource); ok {
		for _, h := range hs.Hazards() {
			if h.Circle {
				vector.DrawFilledCircle(screen, float32(h.X), float32(h.Y), float32(h.Radius), colornames.Sienna, true)
			} else {
				fillRect(screen, h.Rect, colornames.Sienna)
			}
		}
	}

	// 血条
	barW := g.cfg.Screen.Width * 0.6
	x := (g.cfg.Screen.Width - barW) / 2
	vector.DrawFilledRect(screen, float32(x), 28, float32(barW), 6, colornames.Darkred, false)
	vector.DrawFilledRect(screen, float32(x), 28, float32(barW*base.HealthRatio()), 6, colornames.Red, false)
}

func (g *Game) drawProjectile(screen *ebiten.Image, p *components.Projectile) {
	clr := factionColors[p.Faction]
	if p.IsLaser() && !p.IsArmed(g.now) {
		// 预警中的激光只画轮廓
		strokeRect(screen, p.Bounds(), clr)
		return
	}
	if p.Shape == types.ShapeCircle {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), clr, true)
		return
	}
	fillRect(screen, p.Bounds(), clr)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.controller.State()
	var sb strings.Builder
	fmt.Fprintf(&sb, "LEVEL %d  SCORE %d  XP %d/%d (lv %d)", st.Level, g.keeper.Score(), g.keeper.XP(), g.keeper.XPToNextLevel(), g.keeper.XPLevel())
	for _, p := range g.controller.Players() {
		fmt.Fprintf(&sb, "  P%d lives %d", p.ID, p.Lives)
	}
	ebitenutil.DebugPrintAt(screen, sb.String(), 4, 4)

	h := int(g.cfg.Screen.Height)
	switch st.Phase {
	case components.PhaseBossWarning:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("WARNING: %v APPROACHING", st.BossType), 4, 40)
	case components.PhaseLevelComplete:
		if len(g.offers) > 0 {
			players := g.controller.Players()
			target := players[g.upgradeTarget%len(players)]
			lines := []string{fmt.Sprintf("PLAYER %d: CHOOSE AN UPGRADE", target.ID)}
			for i, u := range g.offers {
				lines = append(lines, fmt.Sprintf("[%d] %v", i+1, u))
			}
			ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 4, h/2)
		} else {
			ebitenutil.DebugPrintAt(screen, "LEVEL COMPLETE", 4, h/2)
		}
	case components.PhaseGameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R to restart", 4, h/2)
	}
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 4, h/2+60)
	}
	if g.message != "" && g.now < g.msgUntil {
		ebitenutil.DebugPrintAt(screen, g.message, 4, h-20)
	}
}

func barrierColor(hits int) color.Color {
	switch {
	case hits >= 3:
		return colornames.Forestgreen
	case hits == 2:
		return colornames.Yellowgreen
	default:
		return colornames.Olive
	}
}

func fillRect(screen *ebiten.Image, r utils.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func strokeRect(screen *ebiten.Image, r utils.Rect, clr color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, clr, false)
}

func strokePolygon(screen *ebiten.Image, pts []utils.Vec2, clr color.Color) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, true)
	}
}
