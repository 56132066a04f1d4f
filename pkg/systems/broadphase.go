package systems

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/utils"
)

// 宽相位空间覆盖的范围和网格大小（像素）
// 战斗区域需要落在 [0, broadphaseExtent) 内
const (
	broadphaseExtent = 4096
	broadphaseCell   = 64
)

var tagEnemy = resolv.NewTag("enemy")

// EnemyIndex 普通敌人的宽相位索引
// 每个存活敌人对应 resolv 空间中的一个矩形；查询返回候选敌人在切片中的下标
type EnemyIndex struct {
	space  *resolv.Space
	shapes []resolv.IShape
	owner  map[resolv.IShape]int
}

// NewEnemyIndex 创建空索引
func NewEnemyIndex() *EnemyIndex {
	return &EnemyIndex{
		space: resolv.NewSpace(broadphaseExtent, broadphaseExtent, broadphaseCell, broadphaseCell),
		owner: make(map[resolv.IShape]int),
	}
}

// Sync 用当前敌人位置重建索引，死亡的敌人不进入索引
func (ix *EnemyIndex) Sync(enemies []*components.Enemy) {
	if len(ix.shapes) > 0 {
		ix.space.Remove(ix.shapes...)
	}
	ix.shapes = ix.shapes[:0]
	clear(ix.owner)

	for i, e := range enemies {
		if e == nil || !e.Alive() {
			continue
		}
		sh := resolv.NewRectangleFromTopLeft(e.X, e.Y, e.W, e.H)
		sh.Tags().Set(tagEnemy)
		ix.shapes = append(ix.shapes, sh)
		ix.owner[sh] = i
	}
	if len(ix.shapes) > 0 {
		ix.space.Add(ix.shapes...)
	}
}

// Candidates 返回与矩形可能相交的敌人下标（升序）
// 返回所有与矩形共享网格单元的敌人（包括把矩形完全包含在内的敌人），
// 调用方仍需做精确检测
func (ix *EnemyIndex) Candidates(r utils.Rect) []int {
	if len(ix.shapes) == 0 || r.W <= 0 || r.H <= 0 {
		return nil
	}

	query := resolv.NewRectangleFromTopLeft(r.X, r.Y, r.W, r.H)
	ix.space.Add(query)
	defer ix.space.Remove(query)

	seen := make(map[int]bool)
	var result []int
	query.SelectTouchingCells(0).FilterShapes().ByTags(tagEnemy).ForEach(func(shape resolv.IShape) bool {
		if idx, ok := ix.owner[shape]; ok && !seen[idx] {
			seen[idx] = true
			result = append(result, idx)
		}
		return true
	})
	sort.Ints(result)
	return result
}

// Len 索引中的敌人数
func (ix *EnemyIndex) Len() int {
	return len(ix.shapes)
}
