package systems

import (
	"math"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/systems/boss"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// offscreenMargin 弹体完全离开屏幕超过该距离后移除
const offscreenMargin = 50.0

// AdvanceContext 弹体运动需要的外部信息
type AdvanceContext struct {
	Players []*components.Player
	// Anchor Boss 激光的锚点；没有 Boss 或 Boss 不提供锚点时为 nil
	Anchor boss.AnchorSource
}

// ProjectileRegistry 场上所有弹体
//
// 保持加入顺序（碰撞按该顺序结算），负责分配 ID、推进运动和回收：
//   - 追踪弹在 HomingUntil 之前转向目标玩家，之后直线飞行
//   - 锚定激光每帧跟随玩家或 Boss 中心
//   - 反弹球在屏幕边缘反弹，直到 ExpiresAt
//   - 超时或离开屏幕的弹体被移除
type ProjectileRegistry struct {
	projectiles []*components.Projectile
	nextID      int
	screenW     float64
	screenH     float64
}

// NewProjectileRegistry 创建弹体注册表
func NewProjectileRegistry(screen config.ScreenConfig) *ProjectileRegistry {
	return &ProjectileRegistry{
		nextID:  1,
		screenW: screen.Width,
		screenH: screen.Height,
	}
}

// Add 加入弹体并分配 ID
func (r *ProjectileRegistry) Add(p *components.Projectile) int {
	p.ID = r.nextID
	r.nextID++
	r.projectiles = append(r.projectiles, p)
	return p.ID
}

// All 按加入顺序返回所有弹体（只读视图，不要修改切片本身）
func (r *ProjectileRegistry) All() []*components.Projectile {
	return r.projectiles
}

// Len 弹体数量
func (r *ProjectileRegistry) Len() int {
	return len(r.projectiles)
}

// Get 按 ID 查找弹体
func (r *ProjectileRegistry) Get(id int) (*components.Projectile, bool) {
	for _, p := range r.projectiles {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Remove 移除指定 ID 的弹体
func (r *ProjectileRegistry) Remove(id int) bool {
	for i, p := range r.projectiles {
		if p.ID == id {
			r.projectiles = append(r.projectiles[:i], r.projectiles[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveSet 一次移除多个弹体，保持其余弹体的顺序
func (r *ProjectileRegistry) RemoveSet(ids map[int]bool) {
	if len(ids) == 0 {
		return
	}
	r.filter(func(p *components.Projectile) bool { return !ids[p.ID] })
}

// RemoveFaction 移除某一阵营的所有弹体（关卡切换、Boss 结束时清场）
func (r *ProjectileRegistry) RemoveFaction(faction types.Faction) {
	r.filter(func(p *components.Projectile) bool { return p.Faction != faction })
}

// Clear 移除所有弹体，ID 继续递增
func (r *ProjectileRegistry) Clear() {
	r.projectiles = nil
}

// CountLive 统计某一阵营的弹体数量
func (r *ProjectileRegistry) CountLive(faction types.Faction) int {
	n := 0
	for _, p := range r.projectiles {
		if p.Faction == faction {
			n++
		}
	}
	return n
}

// CountOwned 统计玩家在场的普通子弹数量（激光不计入弹药）
func (r *ProjectileRegistry) CountOwned(playerID int) int {
	n := 0
	for _, p := range r.projectiles {
		if p.Faction == types.FactionPlayer && p.OwnerID == playerID && !p.IsLaser() {
			n++
		}
	}
	return n
}

// NextID 下一个分配的 ID（快照使用）
func (r *ProjectileRegistry) NextID() int {
	return r.nextID
}

// Restore 用快照中的弹体替换当前内容
func (r *ProjectileRegistry) Restore(projectiles []*components.Projectile, nextID int) {
	r.projectiles = append([]*components.Projectile(nil), projectiles...)
	r.nextID = max(nextID, 1)
	for _, p := range r.projectiles {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
}

func (r *ProjectileRegistry) filter(keep func(p *components.Projectile) bool) {
	kept := r.projectiles[:0]
	for _, p := range r.projectiles {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(r.projectiles); i++ {
		r.projectiles[i] = nil
	}
	r.projectiles = kept
}

// Advance 推进所有弹体一帧
//
// 参数:
//   - now: 当前模拟时间
//   - dt: 帧间隔（秒）
//   - ctx: 玩家列表和 Boss 锚点
func (r *ProjectileRegistry) Advance(now time.Duration, dt float64, ctx AdvanceContext) {
	r.filter(func(p *components.Projectile) bool {
		if p.Expired(now) {
			return false
		}
		if p.Anchored {
			return r.followAnchor(p, ctx)
		}

		if p.Kind == types.ProjectileHoming || p.Kind == types.ProjectileSpinningSquare || p.Kind == types.ProjectileRapid {
			r.steer(p, now, ctx.Players)
		}
		if p.Spin != 0 {
			p.Angle += p.Spin * dt
		}

		p.X += p.VX * dt
		p.Y += p.VY * dt

		if p.Kind == types.ProjectileBouncingBall {
			r.bounce(p)
			return true
		}
		return !r.offscreen(p)
	})
	r.SyncLaserFlags(ctx.Players)
}

// steer 追踪阶段把速度方向对准目标玩家中心；目标不存在时保持当前方向
func (r *ProjectileRegistry) steer(p *components.Projectile, now time.Duration, players []*components.Player) {
	if now >= p.HomingUntil || p.TargetPlayerID == 0 {
		return
	}
	for _, pl := range players {
		if pl == nil || pl.ID != p.TargetPlayerID || !pl.Alive {
			continue
		}
		cx, cy := p.Center()
		dx, dy, ok := utils.Normalize(pl.CenterX()-cx, pl.Y+pl.H/2-cy)
		if !ok {
			return
		}
		p.VX, p.VY = dx*p.Speed, dy*p.Speed
		return
	}
}

// followAnchor 玩家激光从飞船顶部延伸到屏幕顶端；Boss 激光从锚点延伸到屏幕底部
// 锚点消失（玩家死亡、Boss 结束）时返回 false
func (r *ProjectileRegistry) followAnchor(p *components.Projectile, ctx AdvanceContext) bool {
	if p.Faction == types.FactionPlayer {
		for _, pl := range ctx.Players {
			if pl != nil && pl.ID == p.OwnerID && pl.Alive {
				p.X = pl.CenterX() - p.W/2
				p.Y = 0
				p.H = max(pl.Y, 0)
				return true
			}
		}
		return false
	}

	if ctx.Anchor == nil {
		return false
	}
	ax, ay := ctx.Anchor.Anchor()
	p.X = ax - p.W/2
	p.Y = ay
	p.H = max(r.screenH-ay, 0)
	return true
}

// bounce 圆形弹体在四条边上反弹
func (r *ProjectileRegistry) bounce(p *components.Projectile) {
	if p.X-p.Radius < 0 {
		p.X = p.Radius
		p.VX = math.Abs(p.VX)
	} else if p.X+p.Radius > r.screenW {
		p.X = r.screenW - p.Radius
		p.VX = -math.Abs(p.VX)
	}
	if p.Y-p.Radius < 0 {
		p.Y = p.Radius
		p.VY = math.Abs(p.VY)
	} else if p.Y+p.Radius > r.screenH {
		p.Y = r.screenH - p.Radius
		p.VY = -math.Abs(p.VY)
	}
}

func (r *ProjectileRegistry) offscreen(p *components.Projectile) bool {
	b := p.Bounds()
	return b.X+b.W < -offscreenMargin || b.X > r.screenW+offscreenMargin ||
		b.Y+b.H < -offscreenMargin || b.Y > r.screenH+offscreenMargin
}

// SyncLaserFlags 根据在场的玩家激光更新 Player.LaserActive
func (r *ProjectileRegistry) SyncLaserFlags(players []*components.Player) {
	for _, pl := range players {
		if pl == nil {
			continue
		}
		pl.LaserActive = false
		for _, p := range r.projectiles {
			if p.Faction == types.FactionPlayer && p.IsLaser() && p.OwnerID == pl.ID {
				pl.LaserActive = true
				break
			}
		}
	}
}
